// ABOUTME: Mel spectrogram generation package
// ABOUTME: Turns audio files into fixed-size grayscale PNG spectrogram images
// Package spectrogram renders the canonical image representation used for
// training and inference.
//
// The pipeline is fixed: decode at the native sample rate, short-time
// Fourier transform with a periodic Hann window, Slaney mel filter bank,
// decibels relative to the loudest bin clipped at TopDB, a grayscale raster
// with low frequencies at the bottom, and a bilinear resize to the target
// size.
// The same Config must be used for every image a model sees.
//
// Example:
//
//	gen, err := spectrogram.NewGenerator(spectrogram.DefaultConfig(), "spectrograms")
//	png, err := gen.Generate("music/track.mp3")
package spectrogram
