// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts decoded buffers to a playback device's rate and channel layout
// Package resample provides sample rate and channel conversion for playback.
//
// Analysis always runs at a file's native rate; resampling only happens on
// the way to the audio device, which is opened once at a fixed format.
//
// Example:
//
//	out := resample.Buffer(buf, 44100, 2)
package resample
