package skills

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hyperjump/screener/internal/models"
)

// experiencePatterns capture N in "N years", "N+ years", "N yrs" and "experience of N years".
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*\+?\s*years`),
	regexp.MustCompile(`(\d+)\s*\+?\s*yrs`),
	regexp.MustCompile(`experience of\s+(\d+)\s*years`),
}

// Extractor derives skills, experience and education from raw text using a fixed vocabulary.
// It is safe for concurrent use.
type Extractor struct {
	vocab   *Vocabulary
	degrees []DegreeRule
}

// NewExtractor returns an extractor over vocab and the default degree table.
// A nil vocab behaves like an empty one.
func NewExtractor(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = NewVocabulary(nil, nil)
	}
	return &Extractor{vocab: vocab, degrees: DefaultDegreeRules}
}

// ExtractSkills returns the sorted, deduplicated set of dictionary skills found in text.
func (e *Extractor) ExtractSkills(text string) []string {
	tokens := Tokenize(text)
	found := make(map[string]struct{})

	for _, tok := range tokens {
		if e.vocab.HasToken(tok) {
			found[tok] = struct{}{}
		}
	}
	for _, tok := range compoundTokens(text) {
		if e.vocab.HasToken(tok) {
			found[tok] = struct{}{}
		}
	}
	for _, phrase := range e.vocab.phrases {
		if containsSpan(tokens, phrase) {
			found[strings.Join(phrase, " ")] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func containsSpan(tokens, span []string) bool {
	n := len(span)
	for i := 0; i+n <= len(tokens); i++ {
		match := true
		for j := 0; j < n; j++ {
			if tokens[i+j] != span[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// ExtractExperienceYears returns the largest N across all experience patterns, or 0.
// Captures that do not parse as an int are skipped.
func (e *Extractor) ExtractExperienceYears(text string) float64 {
	lower := strings.ToLower(text)
	years := 0
	for _, re := range experiencePatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n > years {
				years = n
			}
		}
	}
	return float64(years)
}

// ExtractEducation returns the code of the first degree rule with a keyword occurring in text,
// or models.EducationUnknown.
func (e *Extractor) ExtractEducation(text string) string {
	return MatchDegree(e.degrees, text)
}

// Profile runs all three extractions on text.
func (e *Extractor) Profile(text string) models.Profile {
	return models.Profile{
		Skills:          e.ExtractSkills(text),
		ExperienceYears: e.ExtractExperienceYears(text),
		Education:       e.ExtractEducation(text),
	}
}
