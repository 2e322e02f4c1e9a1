// ABOUTME: Entry point for the spectra track browser
// ABOUTME: Parses CLI flags, loads the model and starts the TUI
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/spectra/internal/app"
	"github.com/harperreed/spectra/internal/config"
	"github.com/harperreed/spectra/internal/library"
	"github.com/harperreed/spectra/internal/version"
	"github.com/harperreed/spectra/pkg/audio/output"
)

var (
	configPath = flag.String("config", "", "Config file (default spectra.yaml)")
	audioDir   = flag.String("audio", "", "Audio directory (default from config)")
	specDir    = flag.String("spectrograms", "", "Spectrogram directory (default from config)")
	coverDir   = flag.String("covers", "", "Cover art directory (default from config)")
	modelPath  = flag.String("model", "", "Model path or s3:// URL (default from config)")
	logFile    = flag.String("log-file", "", "Log file path (default from config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	override(&cfg.Library.AudioDir, *audioDir)
	override(&cfg.Library.SpectrogramDir, *specDir)
	override(&cfg.Library.CoverDir, *coverDir)
	override(&cfg.Model.Path, *modelPath)
	override(&cfg.Log.File, *logFile)

	// TUI mode: log only to file
	f, err := os.OpenFile(cfg.Log.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()
	log.SetOutput(f)

	log.Printf("Starting %s", version.String())

	browser, err := app.New(app.Config{
		Library: library.Dirs{
			Audio:        cfg.Library.AudioDir,
			Spectrograms: cfg.Library.SpectrogramDir,
			Covers:       cfg.Library.CoverDir,
		},
		ModelPath:   cfg.Model.Path,
		S3:          cfg.S3Options(),
		Spectrogram: cfg.SpectrogramConfig(),
	}, output.NewOto())
	if err != nil {
		log.Fatalf("Failed to create browser: %v", err)
	}

	if err := browser.LoadModel(); err != nil {
		log.Printf("Warning: %v", err)
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("Shutdown signal received")
		browser.Stop()
	}()

	if err := browser.Start(); err != nil {
		log.Fatalf("Browser error: %v", err)
	}
	log.Printf("Browser stopped")
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
