// ABOUTME: Browser-facing entry points for spectrogram generation and detection
// ABOUTME: Swaps the loaded model atomically so predictions never see a partial load
package detect

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/harperreed/spectra/pkg/classifier"
	"github.com/harperreed/spectra/pkg/spectrogram"
	"github.com/harperreed/spectra/pkg/storage"
)

// ErrNoModel is returned by Predict before a model has been loaded
var ErrNoModel = errors.New("no model loaded")

// Detector ties the spectrogram generator to the current inference service
type Detector struct {
	generator *spectrogram.Generator
	s3        storage.S3Options
	service   atomic.Pointer[Service]
}

// NewDetector creates a detector without a model
func NewDetector(generator *spectrogram.Generator, s3 storage.S3Options) *Detector {
	return &Detector{generator: generator, s3: s3}
}

// GenerateSpectrogram renders the spectrogram for an audio file and returns the PNG path
func (d *Detector) GenerateSpectrogram(audioPath string) (string, error) {
	return d.generator.Generate(audioPath)
}

// SpectrogramPath returns where GenerateSpectrogram writes for audioPath
func (d *Detector) SpectrogramPath(audioPath string) string {
	return d.generator.OutputPath(audioPath)
}

// Predict classifies a spectrogram image with the current model
func (d *Detector) Predict(imagePath string) (Label, error) {
	svc := d.service.Load()
	if svc == nil {
		return "", ErrNoModel
	}
	return svc.Predict(imagePath)
}

// LoadModel reads a model artifact and makes it current
func (d *Detector) LoadModel(path string) (*classifier.Model, error) {
	model, err := LoadModel(context.Background(), path, d.s3)
	if err != nil {
		return nil, err
	}
	if err := d.Use(model); err != nil {
		return nil, err
	}
	return model, nil
}

// Use makes an already loaded model current
func (d *Detector) Use(model *classifier.Model) error {
	cfg := d.generator.Config()
	in := model.InputShape()
	if in.Width != cfg.Width || in.Height != cfg.Height {
		return fmt.Errorf("model expects %dx%d spectrograms, generator renders %dx%d",
			in.Width, in.Height, cfg.Width, cfg.Height)
	}
	d.service.Store(NewService(model))
	log.Printf("Loaded model %s (%d parameters, input %s)", model.ID(), model.NumParams(), in)
	return nil
}

// Model returns the current model, or nil
func (d *Detector) Model() *classifier.Model {
	if svc := d.service.Load(); svc != nil {
		return svc.Model()
	}
	return nil
}
