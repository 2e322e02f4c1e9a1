// ABOUTME: Tests for the mel scale and filter bank
// ABOUTME: Tests Slaney breakpoints, round trips and filter layout
package spectrogram

import (
	"math"
	"testing"
)

func TestHzToMel(t *testing.T) {
	tests := []struct {
		hz       float64
		expected float64
	}{
		{0, 0},
		{200, 3},
		{1000, 15},
		{6400, 42},
	}

	for _, tt := range tests {
		got := hzToMel(tt.hz)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("hzToMel(%.0f): expected %f, got %f", tt.hz, tt.expected, got)
		}
	}
}

func TestMelRoundTrip(t *testing.T) {
	for _, hz := range []float64{0, 50, 440, 999, 1000, 2500, 8000, 11025} {
		got := melToHz(hzToMel(hz))
		if math.Abs(got-hz) > 1e-6 {
			t.Errorf("round trip %.1f: got %f", hz, got)
		}
	}
}

func TestMelFrequencies(t *testing.T) {
	freqs := melFrequencies(130, 0, 8000)
	if len(freqs) != 130 {
		t.Fatalf("expected 130 frequencies, got %d", len(freqs))
	}
	if freqs[0] != 0 {
		t.Errorf("expected first frequency 0, got %f", freqs[0])
	}
	if math.Abs(freqs[129]-8000) > 1e-6 {
		t.Errorf("expected last frequency 8000, got %f", freqs[129])
	}
	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			t.Fatalf("frequencies not increasing at %d", i)
		}
	}
}

func TestMelFilterBank(t *testing.T) {
	bank := melFilterBank(22050, 2048, 128, 0, 8000)
	if len(bank) != 128 {
		t.Fatalf("expected 128 filters, got %d", len(bank))
	}

	lastPeak := -1
	for m, filter := range bank {
		if len(filter) != 1025 {
			t.Fatalf("filter %d: expected 1025 bins, got %d", m, len(filter))
		}
		peak, peakVal := 0, 0.0
		for k, w := range filter {
			if w < 0 {
				t.Fatalf("filter %d bin %d negative: %f", m, k, w)
			}
			if w > peakVal {
				peak, peakVal = k, w
			}
		}
		if m >= 10 && peakVal == 0 {
			t.Errorf("filter %d is empty", m)
		}
		if peakVal > 0 {
			if peak < lastPeak {
				t.Errorf("filter %d peak %d before previous peak %d", m, peak, lastPeak)
			}
			lastPeak = peak
		}
	}

	// Nothing above 8kHz contributes
	cutoff := int(math.Ceil(8000.0 / (22050.0 / 2048)))
	for m, filter := range bank {
		for k := cutoff + 1; k < len(filter); k++ {
			if filter[k] != 0 {
				t.Fatalf("filter %d has weight above fmax at bin %d", m, k)
			}
		}
	}
}

func TestMelFilterBankClampsToNyquist(t *testing.T) {
	bank := melFilterBank(8000, 512, 40, 0, 8000)
	last := bank[len(bank)-1]
	var sum float64
	for _, w := range last {
		sum += w
	}
	if sum == 0 {
		t.Error("expected top filter to be non-empty when fmax exceeds nyquist")
	}
}
