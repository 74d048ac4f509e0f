package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = 32
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 60 * time.Second
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "onnx"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "./data/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.VocabPath == "" {
		cfg.Embedding.VocabPath = "./data/models/vocab.txt"
	}
	if cfg.Embedding.OutputName == "" {
		cfg.Embedding.OutputName = "last_hidden_state"
	}
	if cfg.Embedding.Pooling == "" {
		cfg.Embedding.Pooling = "mean"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Vocabulary.SkillsPath == "" {
		cfg.Vocabulary.SkillsPath = "./data/skills_dict.json"
	}
	if cfg.Vocabulary.PhrasesPath == "" {
		cfg.Vocabulary.PhrasesPath = "./data/skills_phrases.json"
	}
	if cfg.Scoring.ModelPath == "" {
		cfg.Scoring.ModelPath = "./data/models/fit_model.json"
	}
	// Weights are defaulted together so a config may zero one of them on purpose.
	w := &cfg.Scoring.Weights
	if w.Similarity == 0 && w.Skills == 0 && w.Experience == 0 {
		w.Similarity = 0.60
		w.Skills = 0.25
		w.Experience = 0.15
	}
	if cfg.Scoring.SkillCap == 0 {
		cfg.Scoring.SkillCap = 10
	}
	if cfg.Scoring.ExperienceCap == 0 {
		cfg.Scoring.ExperienceCap = 5
	}
	if cfg.Screening.AllowedExtensions == nil {
		cfg.Screening.AllowedExtensions = []string{".pdf", ".docx"}
	}
	if cfg.Screening.Workers == 0 {
		cfg.Screening.Workers = 4
	}
	if cfg.Screening.MaxSessions == 0 {
		cfg.Screening.MaxSessions = 16
	}
}
