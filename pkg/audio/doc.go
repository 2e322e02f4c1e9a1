// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Buffer and Waveform types plus sample conversions
// Package audio provides the audio types shared by the decoding, playback
// and analysis layers.
//
//   - Format: describes a decoded stream (codec, sample rate, channels, bit depth)
//   - Buffer: interleaved PCM in 24-bit range, as produced by the decoders
//   - Waveform: mono float samples in [-1, 1] used for spectrogram analysis
//
// Sample conversion helpers move between 16-bit, 24-bit and float ranges.
//
// Example:
//
//	buf, err := decode.File("clip.mp3")
//	if err != nil {
//	    return err
//	}
//	wave := buf.Mono()
package audio
