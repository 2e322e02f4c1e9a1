// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write outputs audio samples (blocks until written)
	Write(samples []int32) error

	// Close releases output resources
	Close() error
}

// applyVolume scales samples by volume percent, clamped to 24-bit range
func applyVolume(samples []int32, volume int, muted bool) []int32 {
	multiplier := float64(volume) / 100.0
	if muted {
		multiplier = 0
	}

	result := make([]int32, len(samples))
	for i, sample := range samples {
		scaled := int64(float64(sample) * multiplier)
		if scaled > Max {
			scaled = Max
		} else if scaled < Min {
			scaled = Min
		}
		result[i] = int32(scaled)
	}
	return result
}

// VolumeControl is implemented by outputs that scale samples in software
type VolumeControl interface {
	SetVolume(volume int)
	SetMuted(muted bool)
	Volume() int
}
