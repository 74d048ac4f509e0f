// Package gap compares the skills a job description asks for with the skills a candidate has.
package gap

import (
	"sort"
	"strings"

	"github.com/hyperjump/screener/internal/models"
)

// Compute returns matched (JD ∩ candidate), missing (JD − candidate) and extra (candidate − JD)
// skills. Both inputs are lower-cased and deduplicated first; comparison is exact string equality.
func Compute(jdSkills, candSkills []string) models.SkillGap {
	jd := toSet(jdSkills)
	cand := toSet(candSkills)

	gap := models.SkillGap{Matched: []string{}, Missing: []string{}, Extra: []string{}}
	for s := range jd {
		if _, ok := cand[s]; ok {
			gap.Matched = append(gap.Matched, s)
		} else {
			gap.Missing = append(gap.Missing, s)
		}
	}
	for s := range cand {
		if _, ok := jd[s]; !ok {
			gap.Extra = append(gap.Extra, s)
		}
	}
	sort.Strings(gap.Matched)
	sort.Strings(gap.Missing)
	sort.Strings(gap.Extra)
	return gap
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}
