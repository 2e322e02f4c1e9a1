// ABOUTME: Audio decoder package for multiple container formats
// ABOUTME: Provides Decoder interface and implementations for MP3, FLAC, WAV and Opus
// Package decode turns complete audio files into PCM buffers.
//
// Supports: MP3, FLAC, WAV (8/16/24-bit PCM) and Ogg Opus.
//
// All decoders implement the Decoder interface and output interleaved int32
// samples in 24-bit range at the file's native sample rate. Every failure
// returned by File wraps ErrDecode so callers can treat unreadable, corrupt
// and unsupported inputs uniformly.
//
// Example:
//
//	wave, err := decode.Waveform("clip.flac")
//	if errors.Is(err, decode.ErrDecode) {
//	    log.Printf("skipping clip: %v", err)
//	}
package decode
