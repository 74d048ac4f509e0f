package classify

import (
	"strings"

	"github.com/hyperjump/screener/internal/models"
)

var seniorKeywords = []string{"senior", "lead", "leader", "architect", "principal", "staff engineer"}

// InferSeniority applies, in order: an intern mention, a senior keyword or at least 5 years,
// at least 2 years, and otherwise junior. The first matching rule wins, so an intern mention
// overrides any amount of experience.
func InferSeniority(experienceYears float64, text string) string {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "intern") || strings.Contains(lower, "internship") {
		return models.SeniorityIntern
	}
	if containsAny(lower, seniorKeywords) || experienceYears >= 5 {
		return models.SenioritySenior
	}
	if experienceYears >= 2 {
		return models.SeniorityMid
	}
	return models.SeniorityJunior
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
