// Package classify infers a coarse professional domain and seniority level for a candidate.
package classify

import (
	"strings"

	"github.com/hyperjump/screener/internal/models"
)

// DomainRule is one row of the domain keyword table.
type DomainRule struct {
	Label    string
	Keywords []string
}

// DefaultDomainRules is the domain keyword table. Order matters: on equal scores the earlier
// domain wins.
var DefaultDomainRules = []DomainRule{
	{
		Label: "Data Science / ML",
		Keywords: []string{
			"machine learning", "deep learning", "data science", "data analysis",
			"pandas", "numpy", "scikit-learn", "sklearn", "keras", "pytorch",
			"regression", "classification", "clustering", "nlp",
			"natural language processing", "computer vision", "time series",
		},
	},
	{
		Label: "Web Development",
		Keywords: []string{
			"html", "css", "javascript", "js", "react", "angular", "vue",
			"django", "flask", "php", "laravel", "node", "nodejs", "express",
			"rest api", "api development", "web development", "full stack",
			"frontend", "backend",
		},
	},
	{
		Label:    "Mobile Development",
		Keywords: []string{"android", "kotlin", "java", "flutter", "react native", "ios", "swift"},
	},
	{
		Label: "DevOps / Cloud",
		Keywords: []string{
			"docker", "kubernetes", "k8s", "aws", "azure", "gcp",
			"ci/cd", "cicd", "jenkins", "linux", "shell scripting",
			"terraform", "ansible", "cloud",
		},
	},
	{
		Label: "Software / Backend",
		Keywords: []string{
			"java", "c++", "c#", "spring", "spring boot", ".net",
			"oop", "object oriented", "microservices", "sql", "databases",
		},
	},
}

// InferDomain classifies a candidate with DefaultDomainRules.
func InferDomain(skills []string, text string) string {
	return InferDomainWith(DefaultDomainRules, skills, text)
}

// InferDomainWith scores each rule by the number of its keywords that occur as a substring of the
// lower-cased text or as a member of the lower-cased skill set, and returns the label of the first
// rule with the highest score. models.DomainGeneral is returned when every score is zero.
func InferDomainWith(rules []DomainRule, skills []string, text string) string {
	lower := strings.ToLower(text)
	skillSet := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillSet[strings.ToLower(s)] = struct{}{}
	}

	best, bestScore := models.DomainGeneral, 0
	for _, rule := range rules {
		score := 0
		for _, kw := range rule.Keywords {
			if _, ok := skillSet[kw]; ok || strings.Contains(lower, kw) {
				score++
			}
		}
		// Strictly greater keeps the earliest rule on ties.
		if score > bestScore {
			best, bestScore = rule.Label, score
		}
	}
	return best
}
