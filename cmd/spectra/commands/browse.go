// ABOUTME: Browse command
// ABOUTME: Starts the track browser TUI with the configured library and model
package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/harperreed/spectra/internal/app"
	"github.com/harperreed/spectra/internal/library"
	"github.com/harperreed/spectra/pkg/audio/output"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the track library and run detection interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser(browserConfig())
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func browserConfig() app.Config {
	cfg := globalConfig
	return app.Config{
		Library: library.Dirs{
			Audio:        cfg.Library.AudioDir,
			Spectrograms: cfg.Library.SpectrogramDir,
			Covers:       cfg.Library.CoverDir,
		},
		ModelPath:   cfg.Model.Path,
		S3:          cfg.S3Options(),
		Spectrogram: cfg.SpectrogramConfig(),
	}
}

func runBrowser(cfg app.Config) error {
	browser, err := app.New(cfg, output.NewOto())
	if err != nil {
		return err
	}
	if err := browser.LoadModel(); err != nil {
		log.Printf("Warning: %v", err)
	}
	return browser.Start()
}
