package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/screener/internal/cli"
	"github.com/hyperjump/screener/internal/extract"
	"github.com/hyperjump/screener/internal/screening"
)

var (
	screenJDPath string
	screenFormat string
)

var screenCmd = &cobra.Command{
	Use:   "screen --jd <file> <resume files...>",
	Short: "Screen résumé files against a job description",
	Long: `Rank résumé files against a job description and print the result.

The job description may be .txt, .md, .pdf or .docx. Résumés are filtered by
screening.allowed_extensions; unreadable or blank files are listed as skipped.

Examples:
  screener screen --jd jd.txt cv/*.pdf
  screener screen --jd jd.pdf --format json alice.docx bob.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().StringVar(&screenJDPath, "jd", "", "job description file (required)")
	screenCmd.Flags().StringVarP(&screenFormat, "format", "f", "text", "output format: text or json")
	_ = screenCmd.MarkFlagRequired("jd")
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(screenFormat)
	if err != nil {
		return err
	}
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	jdText, err := extract.NewExtractor().Extract(screenJDPath)
	if err != nil {
		return fmt.Errorf("read job description: %w", err)
	}
	if strings.TrimSpace(jdText) == "" {
		return screening.ErrEmptyJobDescription
	}

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	resumes, skipped := readResumes(comps.Documents, args, logger)
	result, err := comps.Screener.Screen(cmd.Context(), jdText, resumes)
	if err != nil {
		return err
	}
	result.Received = len(args)
	result.Skipped = append(skipped, result.Skipped...)

	return cli.WriteScreeningResults(cmd.OutOrStdout(), result, format)
}

// readResumes extracts every path; files that cannot be read are returned by base name in skipped.
func readResumes(docs *extract.Extractor, paths []string, logger *zap.Logger) (resumes []screening.Resume, skipped []string) {
	for _, path := range paths {
		name := filepath.Base(path)
		text, err := docs.Extract(path)
		if err != nil {
			logger.Warn("skipping resume", zap.String("path", path), zap.Error(err))
			skipped = append(skipped, name)
			continue
		}
		resumes = append(resumes, screening.Resume{Filename: name, Text: text})
	}
	return resumes, skipped
}
