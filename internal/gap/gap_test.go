package gap

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	g := Compute(
		[]string{"Python", "machine learning", "sql"},
		[]string{"python", "pandas", "Machine Learning"},
	)
	if want := []string{"machine learning", "python"}; !reflect.DeepEqual(g.Matched, want) {
		t.Errorf("Matched = %v, want %v", g.Matched, want)
	}
	if want := []string{"sql"}; !reflect.DeepEqual(g.Missing, want) {
		t.Errorf("Missing = %v, want %v", g.Missing, want)
	}
	if want := []string{"pandas"}; !reflect.DeepEqual(g.Extra, want) {
		t.Errorf("Extra = %v, want %v", g.Extra, want)
	}
}

func TestCompute_empty(t *testing.T) {
	g := Compute(nil, nil)
	if len(g.Matched) != 0 || len(g.Missing) != 0 || len(g.Extra) != 0 {
		t.Errorf("expected empty gap, got %+v", g)
	}
	if g.Matched == nil || g.Missing == nil || g.Extra == nil {
		t.Error("empty gap lists should be non-nil so they encode as []")
	}
}

func TestCompute_noFuzzyMatching(t *testing.T) {
	g := Compute([]string{"node.js"}, []string{"nodejs"})
	if len(g.Matched) != 0 {
		t.Errorf("exact matching only, got matched %v", g.Matched)
	}
}

func TestCompute_invariants(t *testing.T) {
	cases := []struct {
		jd, cand []string
	}{
		{[]string{"a", "b", "c"}, []string{"b", "c", "d"}},
		{[]string{"A", "a", "B"}, []string{"b"}},
		{[]string{"x"}, nil},
		{nil, []string{"y", "Y", "z"}},
		{[]string{"go", "rust"}, []string{"go", "rust"}},
	}
	for _, tc := range cases {
		g := Compute(tc.jd, tc.cand)
		if !reflect.DeepEqual(union(g.Matched, g.Missing), normalize(tc.jd)) {
			t.Errorf("matched ∪ missing != JD for %v/%v: %+v", tc.jd, tc.cand, g)
		}
		if !reflect.DeepEqual(union(g.Matched, g.Extra), normalize(tc.cand)) {
			t.Errorf("matched ∪ extra != candidate for %v/%v: %+v", tc.jd, tc.cand, g)
		}
		if intersects(g.Matched, g.Missing) || intersects(g.Matched, g.Extra) || intersects(g.Missing, g.Extra) {
			t.Errorf("lists not disjoint for %v/%v: %+v", tc.jd, tc.cand, g)
		}
		for _, l := range [][]string{g.Matched, g.Missing, g.Extra} {
			if !sort.StringsAreSorted(l) {
				t.Errorf("list not sorted: %v", l)
			}
		}
	}
}

func normalize(items []string) []string {
	set := map[string]bool{}
	for _, s := range items {
		set[strings.ToLower(s)] = true
	}
	out := []string{}
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func union(a, b []string) []string {
	return normalize(append(append([]string{}, a...), b...))
}

func intersects(a, b []string) bool {
	set := map[string]bool{}
	for _, s := range a {
		set[s] = true
	}
	for _, s := range b {
		if set[s] {
			return true
		}
	}
	return false
}
