// Package scoring turns per-candidate features into a 0-100 fit score.
//
// Two strategies implement Scorer: a learned logistic-regression classifier loaded from an
// artifact produced by Train, and a deterministic weighted formula used when no artifact is
// available. Select picks one once at startup; the choice then holds for every screening run.
package scoring

import (
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/hyperjump/screener/internal/models"
	"github.com/hyperjump/screener/pkg/utils"
)

// Scoring modes reported by Scorer.Mode.
const (
	ModeLearned   = "learned"
	ModeRuleBased = "rule-based"
)

// Scorer computes a fit score in [0, 100], rounded to two decimals.
type Scorer interface {
	Score(f models.Features) float64
	Mode() string
}

// Select returns a LearnedScorer when the artifact at modelPath loads and validates, otherwise a
// RuleScorer built from rule. It never fails: an absent or broken artifact only downgrades the mode.
func Select(modelPath string, rule RuleConfig, logger *zap.Logger) Scorer {
	logger = utils.OrNop(logger)
	fallback := NewRuleScorer(rule)
	if modelPath == "" {
		logger.Info("no classifier configured; using rule-based scoring")
		return fallback
	}
	model, err := LoadModel(modelPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("classifier artifact not found; using rule-based scoring", zap.String("path", modelPath))
		} else {
			logger.Warn("classifier artifact unusable; using rule-based scoring",
				zap.String("path", modelPath), zap.Error(err))
		}
		return fallback
	}
	logger.Info("using learned classifier", zap.String("path", modelPath))
	return NewLearnedScorer(model)
}
