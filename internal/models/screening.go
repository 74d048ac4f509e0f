package models

import "time"

// ScreeningResult is the ranked outcome of screening résumés against one job description.
type ScreeningResult struct {
	SessionID   string       `json:"session_id"`
	JDSkills    []string     `json:"jd_skills"`
	Candidates  []*Candidate `json:"candidates"`
	ScoringMode string       `json:"scoring_mode"`
	Received    int          `json:"received"`
	Skipped     []string     `json:"skipped,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	Duration    int64        `json:"duration_ms"`
}

// Summaries returns a copy of the candidates without raw text, for list views.
func (r *ScreeningResult) Summaries() []*Candidate {
	out := make([]*Candidate, len(r.Candidates))
	for i, c := range r.Candidates {
		cc := *c
		cc.RawText = ""
		out[i] = &cc
	}
	return out
}
