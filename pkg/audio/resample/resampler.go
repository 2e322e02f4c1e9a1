// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Used to convert between different sample rates using linear interpolation
package resample

import "github.com/harperreed/spectra/pkg/audio"

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	channels int
	ratio    float64
	position float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		channels: channels,
		ratio:    float64(inputRate) / float64(outputRate),
	}
}

// Resample converts interleaved input at the input rate into output at the
// output rate and returns the number of samples written. The fractional read
// position carries over between calls.
func (r *Resampler) Resample(input []int32, output []int32) int {
	if len(input) == 0 {
		return 0
	}

	inputFrames := len(input) / r.channels
	outputFrames := len(output) / r.channels

	outIdx := 0
	for outIdx < outputFrames {
		inputIdx := int(r.position)
		if inputIdx >= inputFrames-1 {
			break
		}

		frac := r.position - float64(inputIdx)
		for ch := 0; ch < r.channels; ch++ {
			s1 := float64(input[inputIdx*r.channels+ch])
			s2 := float64(input[(inputIdx+1)*r.channels+ch])
			output[outIdx*r.channels+ch] = int32(s1*(1.0-frac) + s2*frac)
		}

		outIdx++
		r.position += r.ratio
	}

	// Keep the fractional part for the next chunk
	r.position -= float64(int(r.position))

	return outIdx * r.channels
}

// Reset clears the read position
func (r *Resampler) Reset() {
	r.position = 0
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	return int(float64(inputFrames)/r.ratio) * r.channels
}

// Buffer converts a whole buffer to the given rate and channel count.
// Mono is duplicated to stereo; multi-channel input keeps its first channels.
func Buffer(buf audio.Buffer, rate, channels int) audio.Buffer {
	mapped := remapChannels(buf, channels)
	if buf.Format.SampleRate == rate || mapped.Frames() == 0 {
		mapped.Format.SampleRate = rate
		return mapped
	}

	r := New(buf.Format.SampleRate, rate, channels)
	out := make([]int32, r.OutputSamplesNeeded(len(mapped.Samples))+channels)
	n := r.Resample(mapped.Samples, out)

	format := mapped.Format
	format.SampleRate = rate
	return audio.Buffer{Samples: out[:n], Format: format}
}

func remapChannels(buf audio.Buffer, channels int) audio.Buffer {
	in := buf.Format.Channels
	if in == channels {
		return buf
	}

	frames := buf.Frames()
	out := make([]int32, frames*channels)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			src := c
			if src >= in {
				src = in - 1
			}
			out[i*channels+c] = buf.Samples[i*in+src]
		}
	}

	format := buf.Format
	format.Channels = channels
	return audio.Buffer{Samples: out, Format: format}
}
