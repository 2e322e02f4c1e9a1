// ABOUTME: Mel power frame computation and decibel conversion
// ABOUTME: Applies the filter bank to each STFT frame of a waveform
package spectrogram

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/harperreed/spectra/pkg/audio"
	"gonum.org/v1/gonum/floats"
)

const amin = 1e-10

// ErrClipTooShort is returned for waveforms shorter than one analysis window
var ErrClipTooShort = errors.New("clip shorter than one analysis window")

// Frame is a mel power matrix stored mel-major: Power[m*Frames+t]
type Frame struct {
	Mels       int
	Frames     int
	SampleRate int
	Power      []float64
}

// At returns the power of mel bin m in time frame t
func (f *Frame) At(m, t int) float64 {
	return f.Power[m*f.Frames+t]
}

// DB converts power to decibels relative to the frame maximum, floored at
// -topDB. A silent frame maps to 0 dB everywhere.
func (f *Frame) DB(topDB float64) []float64 {
	ref := math.Max(amin, floats.Max(f.Power))
	refDB := 10 * math.Log10(ref)

	out := make([]float64, len(f.Power))
	for i, p := range f.Power {
		db := 10*math.Log10(math.Max(amin, p)) - refDB
		out[i] = math.Max(db, -topDB)
	}
	return out
}

type bankKey struct {
	sampleRate int
	cfg        Config
}

var (
	bankMu    sync.Mutex
	bankCache = map[bankKey][][]float64{}
)

func filterBank(cfg Config, sampleRate int) [][]float64 {
	key := bankKey{sampleRate: sampleRate, cfg: Config{NumMels: cfg.NumMels, FMin: cfg.FMin, FMax: cfg.FMax, NFFT: cfg.NFFT}}

	bankMu.Lock()
	defer bankMu.Unlock()
	if bank, ok := bankCache[key]; ok {
		return bank
	}
	bank := melFilterBank(sampleRate, cfg.NFFT, cfg.NumMels, cfg.FMin, cfg.FMax)
	bankCache[key] = bank
	return bank
}

// Compute builds the mel power frame of a waveform
func Compute(w audio.Waveform, cfg Config) (*Frame, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if len(w.Samples) < cfg.NFFT {
		return nil, fmt.Errorf("%w: %d samples, need %d", ErrClipTooShort, len(w.Samples), cfg.NFFT)
	}

	spectra := powerSpectrogram(w.Samples, cfg.NFFT, cfg.HopLength)
	bank := filterBank(cfg, w.SampleRate)

	frames := len(spectra)
	power := make([]float64, cfg.NumMels*frames)
	for t, bins := range spectra {
		for m, filter := range bank {
			power[m*frames+t] = floats.Dot(filter, bins)
		}
	}

	return &Frame{
		Mels:       cfg.NumMels,
		Frames:     frames,
		SampleRate: w.SampleRate,
		Power:      power,
	}, nil
}
