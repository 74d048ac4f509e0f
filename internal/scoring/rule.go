package scoring

import (
	"math"

	"github.com/hyperjump/screener/internal/models"
	"github.com/hyperjump/screener/pkg/utils"
)

// RuleConfig holds the weights and saturation caps of the rule-based formula.
type RuleConfig struct {
	SimilarityWeight float64 // default: 0.60
	SkillWeight      float64 // default: 0.25
	ExperienceWeight float64 // default: 0.15
	SkillCap         float64 // default: 10
	ExperienceCap    float64 // default: 5
}

// DefaultRuleConfig returns the tuned default weights.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		SimilarityWeight: 0.60,
		SkillWeight:      0.25,
		ExperienceWeight: 0.15,
		SkillCap:         10,
		ExperienceCap:    5,
	}
}

// ApplyDefaults fills zero fields with default values.
func (c *RuleConfig) ApplyDefaults() {
	d := DefaultRuleConfig()
	if c.SimilarityWeight == 0 && c.SkillWeight == 0 && c.ExperienceWeight == 0 {
		c.SimilarityWeight = d.SimilarityWeight
		c.SkillWeight = d.SkillWeight
		c.ExperienceWeight = d.ExperienceWeight
	}
	if c.SkillCap <= 0 {
		c.SkillCap = d.SkillCap
	}
	if c.ExperienceCap <= 0 {
		c.ExperienceCap = d.ExperienceCap
	}
}

// RuleScorer is the deterministic fallback:
//
//	score = 100 * (Ws*similarity + Wk*min(skills/SkillCap, 1) + We*min(years/ExperienceCap, 1))
type RuleScorer struct {
	config RuleConfig
}

// NewRuleScorer creates a rule-based scorer; zero fields in cfg take their defaults.
func NewRuleScorer(cfg RuleConfig) *RuleScorer {
	cfg.ApplyDefaults()
	return &RuleScorer{config: cfg}
}

// Score implements Scorer.
func (s *RuleScorer) Score(f models.Features) float64 {
	c := s.config
	skill := math.Min(float64(f.SkillCount)/c.SkillCap, 1)
	exp := math.Min(f.ExperienceYears/c.ExperienceCap, 1)
	raw := 100 * (c.SimilarityWeight*f.Similarity + c.SkillWeight*skill + c.ExperienceWeight*exp)
	return utils.Round2(utils.Clamp(raw, 0, 100))
}

// Mode implements Scorer.
func (s *RuleScorer) Mode() string { return ModeRuleBased }
