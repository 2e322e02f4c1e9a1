// ABOUTME: Shared fixtures for classifier tests
// ABOUTME: Builds tiny architectures and synthetic labeled tensors
package classifier

import (
	"fmt"
	"math/rand/v2"

	"github.com/harperreed/spectra/pkg/dataset"
	"github.com/harperreed/spectra/pkg/tensor"
)

var tinyShape = tensor.Shape{Channels: 1, Height: 8, Width: 8}

func tinyArch(output Output) Architecture {
	return Architecture{
		Input:   tinyShape,
		Filters: []int{2, 3},
		Kernel:  3,
		Pool:    1,
		Hidden:  4,
		Dropout: 0,
		Output:  output,
	}
}

func randomTensor(rng *rand.Rand, shape tensor.Shape) tensor.Tensor {
	data := make([]float32, shape.Size())
	for i := range data {
		data[i] = rng.Float32()
	}
	return tensor.Tensor{Shape: shape, Data: data}
}

// brightDark returns n examples: dark images labeled 0 and bright images labeled 1
func brightDark(n int, shape tensor.Shape, seed uint64) []dataset.Example {
	rng := rand.New(rand.NewPCG(seed, seed))
	out := make([]dataset.Example, n)
	for i := range out {
		label := i % 2
		base := float32(0.1)
		if label == 1 {
			base = 0.8
		}
		data := make([]float32, shape.Size())
		for j := range data {
			data[j] = base + 0.1*rng.Float32()
		}
		out[i] = dataset.Example{
			Path:  fmt.Sprintf("example%02d.png", i),
			Label: label,
			Input: tensor.Tensor{Shape: shape, Data: data},
		}
	}
	return out
}

func tinyShape2() tensor.Shape {
	return tensor.Shape{Channels: 1, Height: 9, Width: 9}
}
