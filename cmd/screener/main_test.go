package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/screener/internal/config"
	"github.com/hyperjump/screener/internal/models"
	"github.com/hyperjump/screener/internal/scoring"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath, debug = "", false
	screenJDPath, screenFormat = "", "text"
	trainDataPath, trainOutPath = "", ""
	trainOpts = scoring.DefaultTrainOptions()
	initConfigForce = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// testConfig writes a config using the hashing embedder and small vocabularies under dir.
func testConfig(t *testing.T, dir string) string {
	t.Helper()
	writeFile(t, filepath.Join(dir, "skills.json"), `["python", "pandas", "sql", "react", "java"]`)
	writeFile(t, filepath.Join(dir, "phrases.json"), `["machine learning"]`)
	return writeFile(t, filepath.Join(dir, "config.yaml"), `
embedding:
  provider: hashing
  dimensions: 128
vocabulary:
  skills_path: ./skills.json
  phrases_path: ./phrases.json
scoring:
  model_path: ./model.json
screening:
  allowed_extensions: [".txt"]
  workers: 2
`)
}

func TestRuleConfig(t *testing.T) {
	got := ruleConfig(config.ScoringConfig{
		Weights:       config.ScoringWeights{Similarity: 0.5, Skills: 0.3, Experience: 0.2},
		SkillCap:      8,
		ExperienceCap: 4,
	})
	want := scoring.RuleConfig{
		SimilarityWeight: 0.5,
		SkillWeight:      0.3,
		ExperienceWeight: 0.2,
		SkillCap:         8,
		ExperienceCap:    4,
	}
	if got != want {
		t.Errorf("ruleConfig() = %+v, want %+v", got, want)
	}
}

func TestScreenCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	jd := writeFile(t, filepath.Join(dir, "jd.txt"), "Senior data scientist: python, pandas, sql, machine learning.")
	strong := writeFile(t, filepath.Join(dir, "strong.txt"),
		"Senior data scientist with 6 years of experience in python, pandas, sql and machine learning.")
	weak := writeFile(t, filepath.Join(dir, "weak.txt"), "Junior frontend developer. react, java.")
	pdf := writeFile(t, filepath.Join(dir, "other.pdf"), "not allowed")

	out, err := runCLI(t, "screen", "--config", cfg, "--jd", jd, "--format", "json", strong, weak, pdf)
	if err != nil {
		t.Fatalf("screen failed: %v\n%s", err, out)
	}

	var result models.ScreeningResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.Received != 3 {
		t.Errorf("received = %d, want 3", result.Received)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "other.pdf" {
		t.Errorf("skipped = %v, want [other.pdf]", result.Skipped)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(result.Candidates))
	}
	if result.Candidates[0].Filename != "strong.txt" {
		t.Errorf("top candidate = %s, want strong.txt", result.Candidates[0].Filename)
	}
	if result.ScoringMode != scoring.ModeRuleBased {
		t.Errorf("scoring mode = %s, want %s", result.ScoringMode, scoring.ModeRuleBased)
	}
	if result.Candidates[0].RawText != "" {
		t.Error("json output should not include raw text")
	}
}

func TestScreenCommandTextOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	jd := writeFile(t, filepath.Join(dir, "jd.txt"), "python developer")
	cv := writeFile(t, filepath.Join(dir, "cv.txt"), "python developer, 3 years")

	out, err := runCLI(t, "screen", "-c", cfg, "--jd", jd, cv)
	if err != nil {
		t.Fatalf("screen failed: %v", err)
	}
	if !strings.Contains(out, "#1 cv.txt") {
		t.Errorf("text output missing ranked candidate:\n%s", out)
	}
}

func TestScreenCommandErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	blank := writeFile(t, filepath.Join(dir, "blank.txt"), "   \n")
	cv := writeFile(t, filepath.Join(dir, "cv.txt"), "python")

	t.Run("blank job description", func(t *testing.T) {
		if _, err := runCLI(t, "screen", "-c", cfg, "--jd", blank, cv); err == nil {
			t.Error("expected error for blank job description")
		}
	})
	t.Run("bad format", func(t *testing.T) {
		if _, err := runCLI(t, "screen", "-c", cfg, "--jd", cv, "--format", "xml", cv); err == nil {
			t.Error("expected error for unknown format")
		}
	})
	t.Run("missing config", func(t *testing.T) {
		if _, err := runCLI(t, "screen", "-c", filepath.Join(dir, "nope.yaml"), "--jd", cv, cv); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestTrainCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	var b strings.Builder
	b.WriteString("similarity,skill_count,experience_years,label\n")
	for i := range 20 {
		fmt.Fprintf(&b, "%.2f,%d,%d,1\n", 0.7+float64(i%5)*0.05, 6+i%4, 4+i%3)
		fmt.Fprintf(&b, "%.2f,%d,%d,0\n", 0.1+float64(i%5)*0.05, i%3, i%2)
	}
	data := writeFile(t, filepath.Join(dir, "train.csv"), b.String())

	out, err := runCLI(t, "train", "-c", cfg, "--data", data)
	if err != nil {
		t.Fatalf("train failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Accuracy:") {
		t.Errorf("missing training report:\n%s", out)
	}

	model, err := scoring.LoadModel(filepath.Join(dir, "model.json"))
	if err != nil {
		t.Fatalf("model not written to scoring.model_path: %v", err)
	}
	if model.Metrics == nil || model.Metrics.TestSize != 10 {
		t.Errorf("unexpected model metrics: %+v", model.Metrics)
	}

	// The screen command now picks up the learned model.
	jd := writeFile(t, filepath.Join(dir, "jd.txt"), "python pandas")
	cv := writeFile(t, filepath.Join(dir, "cv.txt"), "python pandas, 5 years")
	out, err = runCLI(t, "screen", "-c", cfg, "--jd", jd, "--format", "json", cv)
	if err != nil {
		t.Fatalf("screen failed: %v", err)
	}
	var result models.ScreeningResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatal(err)
	}
	if result.ScoringMode != scoring.ModeLearned {
		t.Errorf("scoring mode = %s, want %s", result.ScoringMode, scoring.ModeLearned)
	}
}

func TestTrainCommandOutFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	data := writeFile(t, filepath.Join(dir, "train.csv"), "similarity,skill_count,experience_years,label\n0.9,5,3,1\n")

	if _, err := runCLI(t, "train", "-c", cfg, "--data", data, "--out", filepath.Join(dir, "m.json")); err == nil {
		t.Error("expected error for single-class data")
	}
	if _, err := os.Stat(filepath.Join(dir, "m.json")); !os.IsNotExist(err) {
		t.Error("no model should be written when training fails")
	}
}

func TestInitConfigCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "config.yaml")

	out, err := runCLI(t, "init-config", path)
	if err != nil {
		t.Fatalf("init-config failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output = %q", out)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}

	if _, err := runCLI(t, "init-config", path); err == nil {
		t.Error("expected error when file exists")
	}
	if _, err := runCLI(t, "init-config", "--force", path); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "screener version") {
		t.Errorf("output = %q", out)
	}
}
