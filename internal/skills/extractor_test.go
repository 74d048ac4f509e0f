package skills

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testVocabulary() *Vocabulary {
	return NewVocabulary(
		[]string{"python", "pandas", "numpy", "go", "c++", "c#", ".net", "node.js", "ci/cd", "Docker"},
		[]string{"machine learning", "Deep Learning", "spring boot", "  "},
	)
}

func TestExtractSkills(t *testing.T) {
	e := NewExtractor(testVocabulary())
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"tokens and phrase", "Experienced in Python, Pandas and Machine Learning.", []string{"machine learning", "pandas", "python"}},
		{"deduplicated", "python PYTHON Python", []string{"python"}},
		{"symbol skills", "Skills: C++, C#, .NET, Node.js and CI/CD.", []string{".net", "c#", "c++", "ci/cd", "node.js"}},
		{"slash-joined stack", "Stack: Python/Django, HTML/CSS, C++/Qt", []string{"c++", "python"}},
		{"slash skill and its parts", "ci/cd with python/numpy", []string{"ci/cd", "numpy", "python"}},
		{"slash before phrase", "Pandas/Machine Learning", []string{"machine learning", "pandas"}},
		{"phrase needs contiguous tokens", "machine and learning", []string{}},
		{"dictionary entries are lower-cased", "docker, deep learning", []string{"deep learning", "docker"}},
		{"no partial token match", "golang pythonic", []string{}},
		{"empty text", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractSkills(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSkills(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractSkills_emptyVocabulary(t *testing.T) {
	e := NewExtractor(nil)
	if got := e.ExtractSkills("python machine learning"); len(got) != 0 {
		t.Errorf("expected no skills, got %v", got)
	}
}

func TestExtractExperienceYears(t *testing.T) {
	e := NewExtractor(nil)
	tests := []struct {
		text string
		want float64
	}{
		{"I have 3 years and 5+ years of experience", 5},
		{"Over 10 yrs in industry", 10},
		{"Experience of 12 years in banking", 12},
		{"2 Years at Acme, 7 YEARS overall", 7},
		{"no numbers here", 0},
		{"99999999999999999999 years", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := e.ExtractExperienceYears(tt.text); got != tt.want {
			t.Errorf("ExtractExperienceYears(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtractEducation(t *testing.T) {
	e := NewExtractor(nil)
	tests := []struct {
		name string
		text string
		want string
	}{
		// MBA precedes BTECH in the degree table.
		{"mba before btech", "I completed my B.Tech and later an MBA", "MBA"},
		{"phd beats btech", "btech from IIT, then a PhD", "PHD"},
		{"bachelor of science", "Bachelor of Science in Physics", "BSC"},
		{"diploma", "Diploma in mechanical", "DIPLOMA"},
		// Intended: keywords match as substrings, so "member" yields BE. Do not add word boundaries.
		{"substring keyword", "Member of the chess club", "BE"},
		{"unknown", "self taught", "UNKNOWN"},
		{"empty", "", "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ExtractEducation(tt.text); got != tt.want {
				t.Errorf("ExtractEducation(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestDefaultDegreeRulesOrder(t *testing.T) {
	want := []string{"PHD", "MTECH", "MSC", "MBA", "MCA", "BE", "BTECH", "BSC", "DIPLOMA"}
	var got []string
	for _, r := range DefaultDegreeRules {
		got = append(got, r.Code)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("degree order = %v, want %v", got, want)
	}
}

func TestProfile(t *testing.T) {
	e := NewExtractor(testVocabulary())
	p := e.Profile("5 years experience in Python, pandas, and machine learning projects. M.Sc in CS")
	if !reflect.DeepEqual(p.Skills, []string{"machine learning", "pandas", "python"}) {
		t.Errorf("skills = %v", p.Skills)
	}
	if p.ExperienceYears != 5 {
		t.Errorf("experience = %v", p.ExperienceYears)
	}
	if p.Education != "MSC" {
		t.Errorf("education = %s", p.Education)
	}
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	skillsPath := filepath.Join(dir, "skills.json")
	phrasesPath := filepath.Join(dir, "phrases.json")
	if err := os.WriteFile(skillsPath, []byte(`["Python", "go"]`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(phrasesPath, []byte(`["machine learning"]`), 0600); err != nil {
		t.Fatal(err)
	}
	v := LoadVocabulary(skillsPath, phrasesPath, nil)
	if v.TokenCount() != 2 || v.PhraseCount() != 1 {
		t.Errorf("tokens=%d phrases=%d", v.TokenCount(), v.PhraseCount())
	}
	if !v.HasToken("python") {
		t.Error("token entries should be lower-cased")
	}
}

func TestLoadVocabulary_degradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "phrases.json")
	if err := os.WriteFile(corrupt, []byte(`{not json`), 0600); err != nil {
		t.Fatal(err)
	}
	v := LoadVocabulary(filepath.Join(dir, "missing.json"), corrupt, nil)
	if v.TokenCount() != 0 || v.PhraseCount() != 0 {
		t.Errorf("expected empty vocabulary, got tokens=%d phrases=%d", v.TokenCount(), v.PhraseCount())
	}
	e := NewExtractor(v)
	if got := e.ExtractSkills("python"); len(got) != 0 {
		t.Errorf("expected no skills, got %v", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Worked with C++/Qt, Node.js... and ci/cd; (.NET) -- done.")
	want := []string{"worked", "with", "c++", "qt", "node.js", "and", "ci", "cd", ".net", "done"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestCompoundTokens(t *testing.T) {
	got := compoundTokens("Python/Django, CI/CD and /usr/ paths; plain words")
	want := []string{"python/django", "ci/cd"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("compoundTokens = %v, want %v", got, want)
	}
}

func TestExtractSkills_slashJoinedStacks(t *testing.T) {
	e := NewExtractor(NewVocabulary([]string{"python", "django", "html", "css", "c++"}, nil))
	got := e.ExtractSkills("Stack: Python/Django, HTML/CSS, C++/Qt")
	want := []string{"c++", "css", "django", "html", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSkills = %v, want %v", got, want)
	}
}
