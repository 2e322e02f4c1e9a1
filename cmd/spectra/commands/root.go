// ABOUTME: Root cobra command and shared setup
// ABOUTME: Loads configuration and routes logs to stdout and the log file
package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/harperreed/spectra/internal/config"
)

var (
	// Global flags
	configPath string
	logFile    string

	globalConfig *config.Config
	logCloser    io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "spectra",
	Short: "Spectrogram-based detector for AI-generated audio",
	Long: `spectra - tell AI-generated audio apart from real recordings.

Audio is rendered to mel spectrogram images, which a small convolutional
network classifies. Typical workflow:

  spectra split data/raw/ai            # cut long tracks into 30s chunks
  spectra generate data/raw/ai spectrograms/ai --recursive
  spectra generate data/raw/real spectrograms/real --recursive
  spectra train                         # uses corpora from spectra.yaml
  spectra predict song.mp3
  spectra browse                        # interactive library browser

Settings come from spectra.yaml, .env and SPECTRA_* variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		globalConfig = cfg
		if logFile == "" {
			logFile = cfg.Log.File
		}
		return setupLogging(cmd, cmd.Name() != "browse")
	},
}

// Execute runs the root command.
func Execute() error {
	defer closeLog()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default spectra.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (default from config)")
}

// setupLogging sends logs to the file, and also to stdout unless a TUI owns the terminal
func setupLogging(cmd *cobra.Command, toStdout bool) error {
	f, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	logCloser = f

	if toStdout {
		log.SetOutput(io.MultiWriter(cmd.OutOrStdout(), f))
	} else {
		log.SetOutput(f)
	}
	return nil
}

func closeLog() {
	if logCloser != nil {
		log.SetOutput(os.Stderr)
		logCloser.Close()
		logCloser = nil
	}
}
