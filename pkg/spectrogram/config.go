// ABOUTME: Spectrogram configuration
// ABOUTME: Mel, STFT and output image parameters with validation
package spectrogram

import (
	"errors"
	"fmt"
)

// Config controls the transform and the output image
type Config struct {
	NumMels   int
	FMin      float64
	FMax      float64
	NFFT      int
	HopLength int
	TopDB     float64
	Width     int
	Height    int
}

// DefaultConfig returns 128 mel bins up to 8kHz rendered at 128x128
func DefaultConfig() Config {
	return Config{
		NumMels:   128,
		FMin:      0,
		FMax:      8000,
		NFFT:      2048,
		HopLength: 512,
		TopDB:     80,
		Width:     128,
		Height:    128,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	var errs []error
	if c.NumMels <= 0 {
		errs = append(errs, fmt.Errorf("mel bins must be positive, got %d", c.NumMels))
	}
	if c.FMin < 0 || c.FMax <= c.FMin {
		errs = append(errs, fmt.Errorf("invalid frequency range %.0f-%.0f Hz", c.FMin, c.FMax))
	}
	if c.NFFT < 2 || c.NFFT&(c.NFFT-1) != 0 {
		errs = append(errs, fmt.Errorf("n_fft must be a power of two, got %d", c.NFFT))
	}
	if c.HopLength <= 0 {
		errs = append(errs, fmt.Errorf("hop length must be positive, got %d", c.HopLength))
	}
	if c.TopDB <= 0 {
		errs = append(errs, fmt.Errorf("top_db must be positive, got %.1f", c.TopDB))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid image size %dx%d", c.Width, c.Height))
	}
	return errors.Join(errs...)
}
