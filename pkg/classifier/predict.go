// ABOUTME: Single-example scoring
// ABOUTME: Normalizes images with the model's own input shape before scoring
package classifier

import (
	"image"

	"github.com/harperreed/spectra/pkg/tensor"
)

// Predict returns the probability that t belongs to label 1
func (m *Model) Predict(t tensor.Tensor) (float64, error) {
	if err := m.checkInput(t); err != nil {
		return 0, err
	}
	return m.forward(t.Float64(), nil).score(), nil
}

// PredictImage resizes and normalizes img to the model input, then scores it
func (m *Model) PredictImage(img image.Image) (float64, error) {
	t, err := tensor.FromImage(img, m.arch.Input)
	if err != nil {
		return 0, err
	}
	return m.Predict(t)
}

// PredictFile loads an image file and scores it
func (m *Model) PredictFile(path string) (float64, error) {
	t, err := tensor.Load(path, m.arch.Input)
	if err != nil {
		return 0, err
	}
	return m.Predict(t)
}
