// ABOUTME: Convolutional binary classifier for spectrogram tensors
// ABOUTME: Provides model construction, Adam training, evaluation, prediction and persistence
// Package classifier implements the CNN that scores spectrograms.
//
// The architecture is a stack of Conv(3x3)+ReLU+MaxPool(2x2) blocks with
// increasing widths, a ReLU hidden layer, dropout, and either a single
// sigmoid unit or a two-way softmax. In both modes the score is the
// probability of label 1 ("real").
//
// Math runs on gonum matrices: convolutions are lowered to a matrix product
// with im2col, so one example costs a handful of GEMM calls. Training splits
// each mini-batch across workers and sums their gradients in a fixed order,
// so a run is reproducible for a given seed and worker count.
//
// Example:
//
//	m, err := classifier.New(classifier.DefaultArchitecture(shape), 42)
//	hist, err := m.Fit(ctx, ds.Train, classifier.FitConfig{Epochs: 10, BatchSize: 32, ValidationSplit: 0.2})
//	metrics, err := m.Evaluate(ds.Test)
//	err = m.SaveFile("model.msgpack")
package classifier
