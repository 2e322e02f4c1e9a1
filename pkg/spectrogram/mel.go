// ABOUTME: Slaney mel scale and filter bank
// ABOUTME: Triangular area-normalized filters mapping FFT bins to mel bands
package spectrogram

import "math"

const (
	melFSp    = 200.0 / 3
	minLogHz  = 1000.0
	minLogMel = minLogHz / melFSp
)

var melLogStep = math.Log(6.4) / 27

// hzToMel converts frequency to the Slaney mel scale: linear below 1kHz,
// logarithmic above.
func hzToMel(hz float64) float64 {
	if hz >= minLogHz {
		return minLogMel + math.Log(hz/minLogHz)/melLogStep
	}
	return hz / melFSp
}

func melToHz(mel float64) float64 {
	if mel >= minLogMel {
		return minLogHz * math.Exp(melLogStep*(mel-minLogMel))
	}
	return mel * melFSp
}

// melFrequencies returns n frequencies evenly spaced on the mel scale
func melFrequencies(n int, fmin, fmax float64) []float64 {
	lo, hi := hzToMel(fmin), hzToMel(fmax)
	out := make([]float64, n)
	for i := range out {
		mel := lo
		if n > 1 {
			mel = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		out[i] = melToHz(mel)
	}
	return out
}

// melFilterBank builds numMels filters over the nfft/2+1 positive FFT bins.
// fmax is clamped to Nyquist so no filter is empty.
func melFilterBank(sampleRate, nfft, numMels int, fmin, fmax float64) [][]float64 {
	nyquist := float64(sampleRate) / 2
	if fmax > nyquist {
		fmax = nyquist
	}

	bins := nfft/2 + 1
	fftFreqs := make([]float64, bins)
	for k := range fftFreqs {
		fftFreqs[k] = nyquist * float64(k) / float64(bins-1)
	}

	melF := melFrequencies(numMels+2, fmin, fmax)
	bank := make([][]float64, numMels)
	for m := range bank {
		left, center, right := melF[m], melF[m+1], melF[m+2]
		enorm := 2.0 / (right - left)
		filter := make([]float64, bins)
		for k, f := range fftFreqs {
			lower := (f - left) / (center - left)
			upper := (right - f) / (right - center)
			w := math.Min(lower, upper)
			if w > 0 {
				filter[k] = w * enorm
			}
		}
		bank[m] = filter
	}
	return bank
}
