// Package models defines the data passed between the screening stages and returned to callers.
package models

// Education codes returned by skill extraction.
const (
	EducationUnknown = "UNKNOWN"
)

// Seniority labels.
const (
	SeniorityIntern = "INTERN"
	SeniorityJunior = "JUNIOR"
	SeniorityMid    = "MID-LEVEL"
	SenioritySenior = "SENIOR"
)

// DomainGeneral is returned when no domain keyword is found.
const DomainGeneral = "GENERAL / OTHER"

// Features is the per-résumé input to a fit scorer.
type Features struct {
	Similarity      float64 `json:"similarity"`
	SkillCount      int     `json:"skill_count"`
	ExperienceYears float64 `json:"experience_years"`
}

// Vector returns the features in model column order: similarity, skill_count, experience_years.
func (f Features) Vector() []float64 {
	return []float64{f.Similarity, float64(f.SkillCount), f.ExperienceYears}
}

// SkillGap compares JD skills with candidate skills. The three lists are sorted and pairwise disjoint.
type SkillGap struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Extra   []string `json:"extra"`
}

// Profile holds the structured signals extracted from a single text.
type Profile struct {
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experience_years"`
	Education       string   `json:"education"`
}

// Candidate is the screening record for one résumé. It is not modified after creation.
type Candidate struct {
	Filename        string   `json:"filename"`
	Skills          []string `json:"skills"`
	Similarity      float64  `json:"similarity"`
	Score           float64  `json:"score"`
	ExperienceYears float64  `json:"experience_years"`
	Education       string   `json:"education"`
	Domain          string   `json:"domain"`
	Seniority       string   `json:"seniority"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	ExtraSkills     []string `json:"extra_skills"`
	RawText         string   `json:"raw_text,omitempty"`
}
