// ABOUTME: Mono analysis waveform
// ABOUTME: Float samples with a sample rate, validated before spectrogram analysis
package audio

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyWaveform is returned when a waveform has no samples
	ErrEmptyWaveform = errors.New("waveform has no samples")
	// ErrInvalidSampleRate is returned when a waveform's sample rate is not positive
	ErrInvalidSampleRate = errors.New("invalid sample rate")
)

// Waveform is a mono signal with samples in [-1, 1]
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the length of the waveform
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.SampleRate)
}

// Validate checks that the waveform can be analyzed
func (w Waveform) Validate() error {
	if w.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, w.SampleRate)
	}
	if len(w.Samples) == 0 {
		return ErrEmptyWaveform
	}
	return nil
}
