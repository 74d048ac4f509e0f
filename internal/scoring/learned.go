package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperjump/screener/internal/models"
	"github.com/hyperjump/screener/pkg/utils"
)

// FeatureNames is the column order of the classifier input.
var FeatureNames = []string{"similarity", "skill_count", "experience_years"}

// LogisticModel is a standardized logistic-regression classifier persisted as JSON.
// P(fit) = sigmoid(Intercept + Σ Coef[i] * (x[i] - Mean[i]) / Scale[i]).
type LogisticModel struct {
	Features  []string  `json:"features"`
	Mean      []float64 `json:"scaler_mean"`
	Scale     []float64 `json:"scaler_scale"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	TrainedAt time.Time `json:"trained_at,omitempty"`
	Metrics   *Metrics  `json:"metrics,omitempty"`
}

// Validate checks that the model has one finite parameter per feature in FeatureNames order.
func (m *LogisticModel) Validate() error {
	if len(m.Features) != len(FeatureNames) {
		return fmt.Errorf("expected %d features, got %d", len(FeatureNames), len(m.Features))
	}
	for i, name := range FeatureNames {
		if m.Features[i] != name {
			return fmt.Errorf("feature %d: expected %q, got %q", i, name, m.Features[i])
		}
	}
	n := len(FeatureNames)
	if len(m.Mean) != n || len(m.Scale) != n || len(m.Coef) != n {
		return fmt.Errorf("parameter length mismatch: mean=%d scale=%d coef=%d, want %d",
			len(m.Mean), len(m.Scale), len(m.Coef), n)
	}
	for _, params := range [][]float64{m.Mean, m.Scale, m.Coef, {m.Intercept}} {
		for _, v := range params {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("non-finite parameter")
			}
		}
	}
	return nil
}

// PredictProba returns the probability of the positive ("good fit") class for x.
func (m *LogisticModel) PredictProba(x []float64) float64 {
	z := m.Intercept
	for i, v := range x {
		scale := m.Scale[i]
		if scale == 0 {
			scale = 1
		}
		z += m.Coef[i] * (v - m.Mean[i]) / scale
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// LoadModel reads and validates a model artifact.
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}
	return &m, nil
}

// SaveModel writes the model as indented JSON, creating parent directories.
func SaveModel(path string, m *LogisticModel) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// LearnedScorer scales the classifier's positive-class probability to 0-100.
type LearnedScorer struct {
	model *LogisticModel
}

// NewLearnedScorer wraps a validated model.
func NewLearnedScorer(m *LogisticModel) *LearnedScorer {
	return &LearnedScorer{model: m}
}

// Score implements Scorer.
func (s *LearnedScorer) Score(f models.Features) float64 {
	return utils.Round2(100 * s.model.PredictProba(f.Vector()))
}

// Mode implements Scorer.
func (s *LearnedScorer) Mode() string { return ModeLearned }
