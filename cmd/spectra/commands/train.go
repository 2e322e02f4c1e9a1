// ABOUTME: Train command
// ABOUTME: Builds the dataset, fits the classifier and saves the model artifact
package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/spectra/internal/version"
	"github.com/harperreed/spectra/pkg/classifier"
	"github.com/harperreed/spectra/pkg/detect"
)

var (
	trainEpochs    int
	trainBatchSize int
	trainSeed      int64
	trainModel     string
	trainNoCache   bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the classifier on the configured corpora",
	Long: `Train the classifier on the configured corpora.

The corpora are loaded in order, split into train and test sets with the
configured seed, and the model is fit with the last validation_split of the
training set held out for monitoring. The trained model is evaluated on the
test set and written to the model path (local or s3://bucket/key).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := globalConfig
		if trainEpochs > 0 {
			cfg.Training.Epochs = trainEpochs
		}
		if trainBatchSize > 0 {
			cfg.Training.BatchSize = trainBatchSize
		}
		if trainSeed >= 0 {
			cfg.Training.Seed = uint64(trainSeed)
		}
		if trainModel != "" {
			cfg.Model.Path = trainModel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		runID := uuid.New().String()
		log.Printf("Training run %s (%s)", runID, version.String())

		ds, err := buildDataset(cmd.Context(), cfg, !trainNoCache)
		if err != nil {
			return err
		}

		model, err := classifier.New(cfg.Architecture(), cfg.Training.Seed)
		if err != nil {
			return err
		}
		log.Printf("Model %s: %d parameters, input %s", model.ID(), model.NumParams(), cfg.Image)

		out := cmd.OutOrStdout()
		fit := cfg.FitConfig()
		fit.OnEpoch = func(e classifier.EpochMetrics) {
			fmt.Fprintln(out, e.String())
		}

		start := time.Now()
		if _, err := model.Fit(cmd.Context(), ds.Train, fit); err != nil {
			return fmt.Errorf("training failed: %w", err)
		}
		log.Printf("Training finished in %v", time.Since(start).Round(time.Millisecond))

		metrics, err := model.Evaluate(ds.Test)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}
		fmt.Fprintf(out, "Test Loss: %.4f\n", metrics.Loss)
		fmt.Fprintf(out, "Test Accuracy: %.2f\n", metrics.Accuracy)

		if err := detect.SaveModel(cmd.Context(), model, cfg.Model.Path, cfg.S3Options()); err != nil {
			return fmt.Errorf("failed to save model: %w", err)
		}
		fmt.Fprintf(out, "Model saved to %s\n", cfg.Model.Path)
		return nil
	},
}

func init() {
	trainCmd.Flags().IntVar(&trainEpochs, "epochs", 0, "training epochs (default from config)")
	trainCmd.Flags().IntVar(&trainBatchSize, "batch-size", 0, "mini-batch size (default from config)")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", -1, "split and initialization seed (default from config)")
	trainCmd.Flags().StringVarP(&trainModel, "model", "m", "", "model output path or s3:// URL")
	trainCmd.Flags().BoolVar(&trainNoCache, "no-cache", false, "decode every image instead of using the tensor cache")
	rootCmd.AddCommand(trainCmd)
}
