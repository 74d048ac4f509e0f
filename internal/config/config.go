// Package config provides configuration loading and structs for the screener.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when --config is not given.
const EnvConfigPath = "SCREENER_CONFIG"

// DefaultConfigPath is used when neither --config nor SCREENER_CONFIG is set.
const DefaultConfigPath = "config.yaml"

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Screening  ScreeningConfig  `yaml:"screening"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	MaxUploadMB    int           `yaml:"max_upload_mb"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// EmbeddingConfig selects and configures the embedder.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"` // onnx | hashing
	ModelPath  string `yaml:"model_path"`
	VocabPath  string `yaml:"vocab_path"`  // WordPiece vocab.txt of the model
	OutputName string `yaml:"output_name"` // last_hidden_state, or a pooled output with pooling: none
	Pooling    string `yaml:"pooling"`     // mean | none
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
}

// VocabularyConfig holds the skill dictionary files.
type VocabularyConfig struct {
	SkillsPath  string `yaml:"skills_path"`
	PhrasesPath string `yaml:"phrases_path"`
}

// ScoringConfig holds the classifier artifact path and the rule-based fallback parameters.
type ScoringConfig struct {
	ModelPath     string         `yaml:"model_path"`
	Weights       ScoringWeights `yaml:"weights"`
	SkillCap      float64        `yaml:"skill_cap"`
	ExperienceCap float64        `yaml:"experience_cap"`
}

// ScoringWeights are the rule-based formula weights.
type ScoringWeights struct {
	Similarity float64 `yaml:"similarity"`
	Skills     float64 `yaml:"skills"`
	Experience float64 `yaml:"experience"`
}

// ScreeningConfig holds upload filtering and orchestration settings.
type ScreeningConfig struct {
	AllowedExtensions []string `yaml:"allowed_extensions"`
	Workers           int      `yaml:"workers"`
	MaxSessions       int      `yaml:"max_sessions"`
}

// Load reads and parses the config file at path, applies defaults, and expands paths.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	cfg.expandPaths(filepath.Dir(path))
	return &cfg, nil
}

// New returns the built-in configuration with unexpanded "./" paths, as written by init-config.
func New() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Default returns the built-in configuration with paths resolved against the working directory.
func Default() *Config {
	cfg := New()
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	cfg.expandPaths(dir)
	return cfg
}

// Resolve picks the config file: flagPath, then $SCREENER_CONFIG, then ./config.yaml.
// When only the implicit default applies and that file does not exist, the built-in defaults are
// returned. An explicitly named file that is missing is an error.
func Resolve(flagPath string) (*Config, string, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); os.IsNotExist(err) {
			return Default(), "", nil
		}
		path = DefaultConfigPath
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Save writes the config to path. Used by init-config.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) expandPaths(configDir string) {
	c.Embedding.ModelPath = expandPath(c.Embedding.ModelPath, configDir)
	c.Embedding.VocabPath = expandPath(c.Embedding.VocabPath, configDir)
	c.Vocabulary.SkillsPath = expandPath(c.Vocabulary.SkillsPath, configDir)
	c.Vocabulary.PhrasesPath = expandPath(c.Vocabulary.PhrasesPath, configDir)
	c.Scoring.ModelPath = expandPath(c.Scoring.ModelPath, configDir)
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory. Empty stays empty.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
