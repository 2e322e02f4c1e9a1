// ABOUTME: Browser application orchestration
// ABOUTME: Wires the track library, detector, playback and cover art into the TUI
package app

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/spectra/internal/artwork"
	"github.com/harperreed/spectra/internal/library"
	"github.com/harperreed/spectra/internal/player"
	"github.com/harperreed/spectra/internal/ui"
	"github.com/harperreed/spectra/pkg/audio/output"
	"github.com/harperreed/spectra/pkg/detect"
	"github.com/harperreed/spectra/pkg/spectrogram"
	"github.com/harperreed/spectra/pkg/storage"
)

// Config holds browser configuration
type Config struct {
	Library     library.Dirs
	ModelPath   string
	S3          storage.S3Options
	Spectrogram spectrogram.Config
}

// Browser represents the main browser application
type Browser struct {
	config   Config
	detector *detect.Detector
	player   *player.Player
	covers   *artwork.Resolver
	tracks   []library.Track
	tuiProg  *tea.Program
}

// New creates a browser and scans its library
func New(config Config, out output.Output) (*Browser, error) {
	gen, err := spectrogram.NewGenerator(config.Spectrogram, config.Library.Spectrograms)
	if err != nil {
		return nil, err
	}

	tracks, err := library.Scan(config.Library)
	if err != nil {
		return nil, err
	}
	log.Printf("Found %d tracks in %s", len(tracks), config.Library.Audio)

	return &Browser{
		config:   config,
		detector: detect.NewDetector(gen, config.S3),
		player:   player.New(out),
		covers:   artwork.NewResolver(config.Library.Covers),
		tracks:   tracks,
	}, nil
}

// Tracks returns the scanned library
func (b *Browser) Tracks() []library.Track {
	return b.tracks
}

// Detector returns the detector used by the browser
func (b *Browser) Detector() *detect.Detector {
	return b.detector
}

// LoadModel loads the configured model. The browser stays usable without
// one; detection then reports the missing model.
func (b *Browser) LoadModel() error {
	if _, err := b.detector.LoadModel(b.config.ModelPath); err != nil {
		return fmt.Errorf("failed to load model %s: %w", b.config.ModelPath, err)
	}
	return nil
}

// Start runs the TUI until the user quits
func (b *Browser) Start() error {
	b.tuiProg = ui.Run(b.tracks, ui.Deps{
		Detector: b.detector,
		Playback: b.player,
		Volume:   b.player,
		Covers:   b.covers,
	})

	_, err := b.tuiProg.Run()
	b.Stop()
	if err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}

// Stop stops playback and the TUI
func (b *Browser) Stop() {
	if err := b.player.Close(); err != nil {
		log.Printf("Error closing output: %v", err)
	}
	if b.tuiProg != nil {
		b.tuiProg.Quit()
	}
}
