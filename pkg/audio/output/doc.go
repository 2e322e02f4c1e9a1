// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface and an oto-backed implementation
// Package output provides audio playback.
//
// oto allows a single device context per process, so an Oto output is
// opened once at a fixed format and fed through a pipe.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(44100, 2)
//	err = out.Write(samples)
package output
