// ABOUTME: Generate command
// ABOUTME: Renders spectrogram PNGs for one audio file or a directory
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/spectra/pkg/spectrogram"
)

var (
	generateRecursive bool
	generateWorkers   int
)

var generateCmd = &cobra.Command{
	Use:   "generate <input> <output>",
	Short: "Render spectrogram PNGs for an audio file or directory",
	Long: `Render mel spectrogram images.

With a directory input every supported audio file is converted and the
folder structure is mirrored under <output>. Files that fail to decode are
reported and skipped. With a single file input, <output> is either a .png
path or a directory.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := args[0], args[1]
		gen, err := spectrogram.NewGenerator(globalConfig.SpectrogramConfig(), out)
		if err != nil {
			return err
		}

		info, err := os.Stat(in)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			dst := out
			if !strings.EqualFold(filepath.Ext(out), ".png") {
				dst = filepath.Join(out, spectrogram.ImageName(in))
			}
			if err := gen.GenerateTo(in, dst); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved spectrogram: %s\n", dst)
			return nil
		}

		workers := generateWorkers
		if workers <= 0 {
			workers = globalConfig.Spectrogram.Workers
		}
		report, err := gen.GenerateDir(cmd.Context(), in, out, spectrogram.BatchOptions{
			Workers:   workers,
			Recursive: generateRecursive,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d spectrograms, %d failed\n", len(report.Generated), len(report.Failed))
		for _, f := range report.Failed {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %v\n", f.Path, f.Err)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVarP(&generateRecursive, "recursive", "r", false, "descend into subdirectories")
	generateCmd.Flags().IntVarP(&generateWorkers, "workers", "w", 0, "parallel files (default from config)")
	rootCmd.AddCommand(generateCmd)
}
