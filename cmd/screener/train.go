package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/screener/internal/cli"
	"github.com/hyperjump/screener/internal/scoring"
)

var (
	trainDataPath string
	trainOutPath  string
	trainOpts     = scoring.DefaultTrainOptions()
)

var trainCmd = &cobra.Command{
	Use:   "train --data <file.csv|file.xlsx> [--out model.json]",
	Short: "Train the fit classifier from labeled data",
	Long: `Train the logistic-regression fit classifier.

The data file needs a header row with the columns similarity, skill_count,
experience_years and label (1 = good fit, 0 = not a fit). The model is written
to --out, or to scoring.model_path from the config when --out is empty.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&trainDataPath, "data", "", "training data, .csv or .xlsx (required)")
	trainCmd.Flags().StringVarP(&trainOutPath, "out", "o", "", "model output path (default: scoring.model_path)")
	trainCmd.Flags().Float64Var(&trainOpts.TestSize, "test-size", trainOpts.TestSize, "fraction held out for evaluation")
	trainCmd.Flags().Uint64Var(&trainOpts.Seed, "seed", trainOpts.Seed, "random seed for the train/test split")
	trainCmd.Flags().Float64Var(&trainOpts.C, "c", trainOpts.C, "inverse L2 regularization strength")
	trainCmd.Flags().IntVar(&trainOpts.Iterations, "iterations", trainOpts.Iterations, "gradient descent iterations")
	_ = trainCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	samples, err := scoring.LoadTrainingData(trainDataPath)
	if err != nil {
		return fmt.Errorf("load training data: %w", err)
	}
	logger.Info("training data loaded", zap.String("path", trainDataPath), zap.Int("samples", len(samples)))

	model, metrics, err := scoring.Train(samples, trainOpts)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	out := trainOutPath
	if out == "" {
		out = cfg.Scoring.ModelPath
	}
	if err := scoring.SaveModel(out, model); err != nil {
		return err
	}
	logger.Info("model saved", zap.String("path", out), zap.Float64("accuracy", metrics.Accuracy))

	cli.WriteTrainingReport(cmd.OutOrStdout(), metrics)
	fmt.Fprintf(cmd.OutOrStdout(), "\nModel saved to %s\n", out)
	return nil
}
