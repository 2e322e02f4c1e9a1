// ABOUTME: Labeled dataset assembly
// ABOUTME: Loads spectrogram corpora into tensors and splits them reproducibly
// Package dataset builds the labeled examples the classifier trains on.
//
// Corpora are an explicit ordered list of (directory, label) pairs. Images
// are loaded in corpus order then lexical file order, converted to tensors
// of a fixed shape, and split into disjoint train and test subsets with a
// seeded permutation. The split is not stratified.
//
// Example:
//
//	b, err := dataset.NewBuilder(dataset.Options{Shape: shape, TestFraction: 0.2, Seed: 42})
//	ds, err := b.Build(ctx, []dataset.Corpus{
//	    {Name: "ai", Dir: "spectrograms/ai", Label: 0},
//	    {Name: "real", Dir: "spectrograms/real", Label: 1},
//	})
package dataset
