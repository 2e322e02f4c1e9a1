// ABOUTME: Tests for the power spectrogram
// ABOUTME: Tests frame count and spectral peak placement of a pure tone
package spectrogram

import (
	"math"
	"testing"
)

func sine(freq float64, rate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

func TestPowerSpectrogramFrames(t *testing.T) {
	tests := []struct {
		samples  int
		nfft     int
		hop      int
		expected int
	}{
		{2048, 2048, 512, 5},
		{22050, 2048, 512, 44},
		{1000, 512, 128, 8},
	}

	for _, tt := range tests {
		spec := powerSpectrogram(make([]float64, tt.samples), tt.nfft, tt.hop)
		if len(spec) != tt.expected {
			t.Errorf("%d samples: expected %d frames, got %d", tt.samples, tt.expected, len(spec))
		}
		for _, bins := range spec {
			if len(bins) != tt.nfft/2+1 {
				t.Fatalf("expected %d bins, got %d", tt.nfft/2+1, len(bins))
			}
		}
	}
}

func TestPowerSpectrogramPeak(t *testing.T) {
	// Bin 32 of a 512-point FFT at 8kHz is 500Hz
	spec := powerSpectrogram(sine(500, 8000, 4000), 512, 128)

	mid := spec[len(spec)/2]
	peak := 0
	for k, p := range mid {
		if p > mid[peak] {
			peak = k
		}
	}
	if peak != 32 {
		t.Errorf("expected peak at bin 32, got %d", peak)
	}
}

func TestPeriodicHann(t *testing.T) {
	const n = 8
	w := periodicHann(n)
	if len(w) != n {
		t.Fatalf("expected %d values, got %d", n, len(w))
	}
	if math.Abs(w[0]) > 1e-12 {
		t.Errorf("expected w[0] = 0, got %v", w[0])
	}
	if math.Abs(w[n/2]-1) > 1e-12 {
		t.Errorf("expected peak 1 at %d, got %v", n/2, w[n/2])
	}
	for k := 1; k < n; k++ {
		expected := 0.5 - 0.5*math.Cos(2*math.Pi*float64(k)/n)
		if math.Abs(w[k]-expected) > 1e-12 {
			t.Errorf("w[%d]: expected %v, got %v", k, expected, w[k])
		}
		if math.Abs(w[k]-w[n-k]) > 1e-12 {
			t.Errorf("expected w[%d] == w[%d], got %v and %v", k, n-k, w[k], w[n-k])
		}
	}
}
