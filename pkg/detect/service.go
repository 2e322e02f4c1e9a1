// ABOUTME: Inference service for single spectrogram images
// ABOUTME: Loads model artifacts from local disk or S3 and scores PNGs
package detect

import (
	"context"
	"fmt"

	"github.com/harperreed/spectra/pkg/classifier"
	"github.com/harperreed/spectra/pkg/storage"
)

// Service classifies spectrogram images with a trained model.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	model *classifier.Model
}

// NewService wraps a loaded model
func NewService(model *classifier.Model) *Service {
	return &Service{model: model}
}

// Model returns the underlying classifier
func (s *Service) Model() *classifier.Model {
	return s.model
}

// Score returns the probability that the image belongs to the real corpus
func (s *Service) Score(imagePath string) (float64, error) {
	score, err := s.model.PredictFile(imagePath)
	if err != nil {
		return 0, fmt.Errorf("failed to score %s: %w", imagePath, err)
	}
	return score, nil
}

// Predict classifies one spectrogram image
func (s *Service) Predict(imagePath string) (Label, error) {
	score, err := s.Score(imagePath)
	if err != nil {
		return "", err
	}
	return LabelForScore(score), nil
}

// LoadModel reads a model artifact from a local path or s3://bucket/key
func LoadModel(ctx context.Context, location string, opts storage.S3Options) (*classifier.Model, error) {
	store, key, err := storage.Resolve(ctx, location, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", classifier.ErrArtifact, err)
	}
	r, err := store.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", classifier.ErrArtifact, err)
	}
	defer r.Close()
	return classifier.Load(r)
}

// SaveModel writes a model artifact to a local path or s3://bucket/key
func SaveModel(ctx context.Context, model *classifier.Model, location string, opts storage.S3Options) error {
	store, key, err := storage.Resolve(ctx, location, opts)
	if err != nil {
		return err
	}
	w, err := store.Write(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", location, err)
	}
	if err := model.Save(w); err != nil {
		storage.Abort(w, err)
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return nil
}
