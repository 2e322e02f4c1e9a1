// ABOUTME: Normalized image tensors for the classifier
// ABOUTME: Converts spectrogram images into [0,1] float tensors of a fixed shape
// Package tensor holds the numeric form of a spectrogram image.
//
// A Tensor is stored channel-major (C, H, W) with every value in [0, 1].
// Images whose size differs from the requested shape are resized with
// bilinear interpolation; grayscale images are replicated across channels
// when three channels are requested.
//
// Example:
//
//	shape := tensor.Shape{Channels: 1, Height: 128, Width: 128}
//	t, err := tensor.Load("spectrograms/ai/clip.png", shape)
package tensor
