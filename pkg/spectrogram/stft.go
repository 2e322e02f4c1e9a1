// ABOUTME: Power spectrogram via short-time Fourier transform
// ABOUTME: Centered Hann-windowed frames framed by gossp and transformed by go-dsp
package spectrogram

import (
	"github.com/mjibson/go-dsp/window"
	"github.com/r9y9/gossp/stft"
)

// powerSpectrogram returns |X|^2 for each frame over the nfft/2+1 positive
// bins. The signal is zero padded by nfft/2 on both sides so frame t is
// centered on sample t*hop.
func powerSpectrogram(samples []float64, nfft, hop int) [][]float64 {
	padded := make([]float64, len(samples)+nfft)
	copy(padded[nfft/2:], samples)

	s := stft.New(hop, nfft)
	s.Window = periodicHann(nfft)

	spectra := s.STFT(padded)
	bins := nfft/2 + 1
	out := make([][]float64, len(spectra))
	for t, spectrum := range spectra {
		power := make([]float64, bins)
		for k := 0; k < bins; k++ {
			re, im := real(spectrum[k]), imag(spectrum[k])
			power[k] = re*re + im*im
		}
		out[t] = power
	}
	return out
}

// periodicHann is the DFT-even Hann window: w[k] = 0.5 - 0.5cos(2πk/n)
func periodicHann(n int) []float64 {
	return window.Hann(n + 1)[:n]
}
