package models

import (
	"reflect"
	"testing"
)

func TestFeatures_Vector(t *testing.T) {
	f := Features{Similarity: 0.5, SkillCount: 3, ExperienceYears: 2}
	want := []float64{0.5, 3, 2}
	if got := f.Vector(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vector() = %v, want %v", got, want)
	}
}

func TestScreeningResult_Summaries(t *testing.T) {
	r := &ScreeningResult{Candidates: []*Candidate{{Filename: "a.pdf", RawText: "secret"}}}
	s := r.Summaries()
	if s[0].RawText != "" {
		t.Error("summary should drop raw text")
	}
	if r.Candidates[0].RawText != "secret" {
		t.Error("Summaries must not modify the stored candidate")
	}
}
