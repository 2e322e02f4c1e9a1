// ABOUTME: Split command
// ABOUTME: Cuts long audio files into fixed-length WAV chunks
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/spectra/internal/splitter"
)

var (
	splitChunk  time.Duration
	splitOutput string
)

var splitCmd = &cobra.Command{
	Use:   "split <dir>",
	Short: "Cut every audio file in a directory into fixed-length WAV chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := splitter.Dir(cmd.Context(), args[0], splitter.Options{
			Chunk:     splitChunk,
			OutputDir: splitOutput,
		})
		if err != nil {
			return err
		}

		var chunks, skipped, failed int
		for _, r := range results {
			chunks += len(r.Chunks)
			if r.Skipped {
				skipped++
			}
			if r.Err != nil {
				failed++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d chunks from %d files (%d skipped, %d failed)\n",
			chunks, len(results), skipped, failed)
		return nil
	},
}

func init() {
	splitCmd.Flags().DurationVar(&splitChunk, "chunk", splitter.DefaultChunk, "chunk length")
	splitCmd.Flags().StringVarP(&splitOutput, "output", "o", "", "output directory (default <dir>/split_audio)")
	rootCmd.AddCommand(splitCmd)
}
