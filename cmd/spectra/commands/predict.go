// ABOUTME: Predict command
// ABOUTME: Classifies spectrogram images or audio files with a saved model
package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/harperreed/spectra/pkg/audio/decode"
	"github.com/harperreed/spectra/pkg/detect"
	"github.com/harperreed/spectra/pkg/spectrogram"
)

var predictModel string

var predictCmd = &cobra.Command{
	Use:   "predict <file>...",
	Short: "Classify spectrogram images or audio files",
	Long: `Classify spectrogram images or audio files.

Audio files are rendered to a temporary spectrogram first, using the same
settings as training. Each file prints its verdict and the probability of
being real audio.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := globalConfig
		if predictModel != "" {
			cfg.Model.Path = predictModel
		}

		model, err := detect.LoadModel(cmd.Context(), cfg.Model.Path, cfg.S3Options())
		if err != nil {
			return err
		}
		svc := detect.NewService(model)

		tmp, err := os.MkdirTemp("", "spectra-predict-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)

		specCfg := cfg.SpectrogramConfig()
		specCfg.Width, specCfg.Height = model.InputShape().Width, model.InputShape().Height
		gen, err := spectrogram.NewGenerator(specCfg, tmp)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var failed int
		for _, path := range args {
			imagePath := path
			if decode.Supported(path) {
				imagePath, err = gen.Generate(path)
				if err != nil {
					log.Printf("Error processing %s: %v", path, err)
					failed++
					continue
				}
			}

			score, err := svc.Score(imagePath)
			if err != nil {
				log.Printf("Error processing %s: %v", path, err)
				failed++
				continue
			}
			fmt.Fprintf(out, "%s: %s (score %.4f)\n", path, detect.LabelForScore(score), score)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d files could not be classified", failed, len(args))
		}
		return nil
	},
}

func init() {
	predictCmd.Flags().StringVarP(&predictModel, "model", "m", "", "model path or s3:// URL")
	rootCmd.AddCommand(predictCmd)
}
