// Package cli formats screening output for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/screener/internal/models"
	"github.com/hyperjump/screener/internal/scoring"
	"github.com/hyperjump/screener/pkg/utils"
)

// OutputFormat is the format for screening output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const maxSkillsLine = 120

// ParseOutputFormat validates a --format value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// WriteScreeningResults writes a screening result to w in the given format.
// JSON output omits raw résumé text.
func WriteScreeningResults(w io.Writer, result *models.ScreeningResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		out := *result
		out.Candidates = result.Summaries()
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(&out)
	default:
		writeScreeningText(w, result)
		return nil
	}
}

func writeScreeningText(w io.Writer, result *models.ScreeningResult) {
	fmt.Fprintf(w, "\nScreened %d resumes in %dms (%d ranked, %d skipped, %s scoring)\n",
		result.Received, result.Duration, len(result.Candidates), len(result.Skipped), result.ScoringMode)
	fmt.Fprintf(w, "JD skills: %s\n\n", joinOrDash(result.JDSkills))
	if len(result.Candidates) == 0 {
		fmt.Fprintln(w, "No candidates.")
	}
	for i, c := range result.Candidates {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "#%d %s | Score: %.2f | Similarity: %.4f\n", i+1, c.Filename, c.Score, c.Similarity)
		fmt.Fprintf(w, "Domain: %s | Seniority: %s | Experience: %.0f yrs | Education: %s\n",
			c.Domain, c.Seniority, c.ExperienceYears, c.Education)
		fmt.Fprintf(w, "Matched: %s\n", utils.Truncate(joinOrDash(c.MatchedSkills), maxSkillsLine))
		fmt.Fprintf(w, "Missing: %s\n", utils.Truncate(joinOrDash(c.MissingSkills), maxSkillsLine))
		fmt.Fprintf(w, "Extra:   %s\n", utils.Truncate(joinOrDash(c.ExtraSkills), maxSkillsLine))
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped: %s\n", strings.Join(result.Skipped, ", "))
	}
	fmt.Fprintln(w)
}

// WriteTrainingReport prints hold-out metrics of a trained classifier.
func WriteTrainingReport(w io.Writer, m *scoring.Metrics) {
	fmt.Fprintf(w, "Trained on %d samples, evaluated on %d\n", m.TrainSize, m.TestSize)
	fmt.Fprintf(w, "Accuracy: %.4f\n\n", m.Accuracy)
	fmt.Fprintf(w, "%-8s %10s %10s %10s %10s\n", "class", "precision", "recall", "f1", "support")
	for label, r := range m.PerClass {
		fmt.Fprintf(w, "%-8d %10.4f %10.4f %10.4f %10d\n", label, r.Precision, r.Recall, r.F1, r.Support)
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
