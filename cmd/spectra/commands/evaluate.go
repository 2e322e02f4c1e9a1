// ABOUTME: Evaluate command
// ABOUTME: Reports loss and accuracy of a saved model on the test split or all data
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/spectra/pkg/dataset"
	"github.com/harperreed/spectra/pkg/detect"
)

var (
	evaluateModel string
	evaluateAll   bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Report loss and accuracy of a saved model on the test split",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := globalConfig
		if evaluateModel != "" {
			cfg.Model.Path = evaluateModel
		}

		model, err := detect.LoadModel(cmd.Context(), cfg.Model.Path, cfg.S3Options())
		if err != nil {
			return err
		}
		// The split must see images at the size the model was trained on
		cfg.Image = model.InputShape()

		ds, err := buildDataset(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}

		examples := ds.Test
		scope := "Test"
		if evaluateAll {
			examples = append(append([]dataset.Example{}, ds.Train...), ds.Test...)
			scope = "All"
		}

		metrics, err := model.Evaluate(examples)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Examples: %d\n", scope, metrics.Count)
		fmt.Fprintf(out, "%s Loss: %.4f\n", scope, metrics.Loss)
		fmt.Fprintf(out, "%s Accuracy: %.2f\n", scope, metrics.Accuracy)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateModel, "model", "m", "", "model path or s3:// URL")
	evaluateCmd.Flags().BoolVar(&evaluateAll, "all", false, "evaluate on every example instead of the test split")
	rootCmd.AddCommand(evaluateCmd)
}
