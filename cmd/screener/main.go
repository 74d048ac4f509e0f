// Package main is the screener CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/screener/internal/config"
	"github.com/hyperjump/screener/internal/embedding"
	"github.com/hyperjump/screener/internal/extract"
	"github.com/hyperjump/screener/internal/scoring"
	"github.com/hyperjump/screener/internal/screening"
	"github.com/hyperjump/screener/internal/skills"
	"github.com/hyperjump/screener/pkg/utils"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:           "screener",
	Short:         "Rank résumés against a job description",
	Long:          "Screener scores résumés against a job description using semantic similarity, extracted skills and experience.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: "+config.EnvConfigPath+" env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup resolves the config and builds the logger. --debug overrides debug: false in the file.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, path, err := config.Resolve(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	debugMode := cfg.Debug || debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if path == "" {
		path = "(built-in defaults)"
	}
	logger.Info("config loaded", zap.String("config_path", path), zap.Bool("debug", debugMode))
	return cfg, logger, nil
}

// components holds the long-lived collaborators shared by serve and screen.
type components struct {
	Embedder  embedding.Embedder
	Screener  *screening.Screener
	Documents *extract.Extractor
}

// Close releases the embedder.
func (c *components) Close() {
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

// initializeComponents loads the embedding model, vocabularies and scorer. Only a model load
// failure is an error; missing vocabularies or classifier degrade with a warning.
func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	embedder, err := embedding.New(embedding.Options{
		Provider:   cfg.Embedding.Provider,
		ModelPath:  cfg.Embedding.ModelPath,
		VocabPath:  cfg.Embedding.VocabPath,
		OutputName: cfg.Embedding.OutputName,
		Pooling:    cfg.Embedding.Pooling,
		Dimensions: cfg.Embedding.Dimensions,
		MaxTokens:  cfg.Embedding.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	logger.Info("embedder ready",
		zap.String("provider", cfg.Embedding.Provider),
		zap.Int("dimensions", embedder.Dimensions()),
	)

	vocab := skills.LoadVocabulary(cfg.Vocabulary.SkillsPath, cfg.Vocabulary.PhrasesPath, logger)
	scorer := scoring.Select(cfg.Scoring.ModelPath, ruleConfig(cfg.Scoring), logger)
	screener := screening.NewScreener(
		embedder,
		skills.NewExtractor(vocab),
		scorer,
		cfg.Screening.Workers,
		logger,
	)
	return &components{
		Embedder:  embedder,
		Screener:  screener,
		Documents: extract.NewExtractor(cfg.Screening.AllowedExtensions...),
	}, nil
}

func ruleConfig(s config.ScoringConfig) scoring.RuleConfig {
	return scoring.RuleConfig{
		SimilarityWeight: s.Weights.Similarity,
		SkillWeight:      s.Weights.Skills,
		ExperienceWeight: s.Weights.Experience,
		SkillCap:         s.SkillCap,
		ExperienceCap:    s.ExperienceCap,
	}
}
