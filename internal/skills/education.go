package skills

import (
	"strings"

	"github.com/hyperjump/screener/internal/models"
)

// DegreeRule maps a degree code to the lower-case keywords that indicate it.
type DegreeRule struct {
	Code     string
	Keywords []string
}

// DefaultDegreeRules is evaluated top to bottom and the first match wins, so higher degrees
// come first. Keywords match as plain substrings, which means short keywords such as "be"
// also match inside ordinary words ("member" yields BE). This is intended; keep plain
// substring matching.
var DefaultDegreeRules = []DegreeRule{
	{Code: "PHD", Keywords: []string{"phd", "ph.d", "doctorate"}},
	{Code: "MTECH", Keywords: []string{"m.tech", "mtech", "master of technology"}},
	{Code: "MSC", Keywords: []string{"m.sc", "msc", "master of science"}},
	{Code: "MBA", Keywords: []string{"mba", "master of business administration"}},
	{Code: "MCA", Keywords: []string{"mca", "master of computer applications"}},
	{Code: "BE", Keywords: []string{"b.e", "be", "bachelor of engineering"}},
	{Code: "BTECH", Keywords: []string{"b.tech", "btech", "bachelor of technology"}},
	{Code: "BSC", Keywords: []string{"b.sc", "bsc", "bachelor of science"}},
	{Code: "DIPLOMA", Keywords: []string{"diploma"}},
}

// MatchDegree returns the code of the first rule in rules with any keyword contained in the
// lower-cased text, or models.EducationUnknown.
func MatchDegree(rules []DegreeRule, text string) string {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Code
			}
		}
	}
	return models.EducationUnknown
}
