// Package skills extracts structured signals (skills, years of experience, education) from text.
package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/screener/pkg/utils"
)

// Vocabulary is the closed skill dictionary: single tokens matched exactly and multi-word
// phrases matched as contiguous token spans. It is read-only after construction.
type Vocabulary struct {
	tokens  map[string]struct{}
	phrases [][]string
}

// NewVocabulary builds a vocabulary from raw entries. Entries are lower-cased and trimmed;
// blank entries are ignored.
func NewVocabulary(tokens, phrases []string) *Vocabulary {
	v := &Vocabulary{tokens: make(map[string]struct{}, len(tokens))}
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			v.tokens[t] = struct{}{}
		}
	}
	for _, p := range phrases {
		if toks := Tokenize(p); len(toks) > 0 {
			v.phrases = append(v.phrases, toks)
		}
	}
	return v
}

// LoadVocabulary reads the token and phrase dictionaries (JSON arrays of strings).
// A dictionary that is missing or cannot be parsed is replaced by an empty one and a warning is
// logged; loading never fails.
func LoadVocabulary(skillsPath, phrasesPath string, logger *zap.Logger) *Vocabulary {
	logger = utils.OrNop(logger)
	tokens, err := readStringList(skillsPath)
	if err != nil {
		logger.Warn("skill dictionary unavailable; token matching disabled",
			zap.String("path", skillsPath), zap.Error(err))
	}
	phrases, err := readStringList(phrasesPath)
	if err != nil {
		logger.Warn("skill phrase list unavailable; phrase matching disabled",
			zap.String("path", phrasesPath), zap.Error(err))
	}
	v := NewVocabulary(tokens, phrases)
	logger.Debug("vocabulary loaded",
		zap.Int("tokens", v.TokenCount()), zap.Int("phrases", v.PhraseCount()))
	return v
}

func readStringList(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("no path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return list, nil
}

// HasToken reports whether tok is a single-token skill.
func (v *Vocabulary) HasToken(tok string) bool {
	_, ok := v.tokens[tok]
	return ok
}

// TokenCount returns the number of single-token skills.
func (v *Vocabulary) TokenCount() int { return len(v.tokens) }

// PhraseCount returns the number of phrase skills.
func (v *Vocabulary) PhraseCount() int { return len(v.phrases) }
