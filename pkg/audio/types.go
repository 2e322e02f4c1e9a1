// ABOUTME: Audio type definitions
// ABOUTME: Defines audio formats, decoded buffers and sample conversions
package audio

import "time"

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23

	fullScale24 = 8388608.0
)

// Format describes a decoded audio stream
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// Buffer represents decoded PCM audio
type Buffer struct {
	Samples []int32 // Interleaved PCM samples in 24-bit range
	Format  Format
}

// Frames returns the number of sample frames (samples per channel)
func (b Buffer) Frames() int {
	if b.Format.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Format.Channels
}

// Duration returns the playback length of the buffer
func (b Buffer) Duration() time.Duration {
	if b.Format.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.Format.SampleRate)
}

// Slice returns the frames in [start, end), clamped to the buffer.
// The returned buffer shares the underlying sample storage.
func (b Buffer) Slice(start, end int) Buffer {
	frames := b.Frames()
	if start < 0 {
		start = 0
	}
	if end > frames {
		end = frames
	}
	if start >= end {
		return Buffer{Format: b.Format}
	}
	ch := b.Format.Channels
	return Buffer{
		Samples: b.Samples[start*ch : end*ch],
		Format:  b.Format,
	}
}

// Mono averages all channels into a single analysis waveform
func (b Buffer) Mono() Waveform {
	ch := b.Format.Channels
	frames := b.Frames()
	out := make([]float64, frames)
	if ch <= 0 {
		return Waveform{SampleRate: b.Format.SampleRate}
	}

	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += SampleToFloat(b.Samples[i*ch+c])
		}
		out[i] = sum / float64(ch)
	}

	return Waveform{Samples: out, SampleRate: b.Format.SampleRate}
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	return int32(sample) << 8
}

// SampleToFloat converts a 24-bit sample to the [-1, 1) float range
func SampleToFloat(sample int32) float64 {
	return float64(sample) / fullScale24
}

// SampleFromFloat converts a float sample to 24-bit range, clipping at full scale
func SampleFromFloat(f float64) int32 {
	v := f * fullScale24
	if v > Max24Bit {
		return Max24Bit
	}
	if v < Min24Bit {
		return Min24Bit
	}
	return int32(v)
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}
