// ABOUTME: Network architecture description
// ABOUTME: Layer widths, output mode and derived tensor sizes for each block
package classifier

import (
	"errors"
	"fmt"

	"github.com/harperreed/spectra/pkg/tensor"
)

// Output selects the final layer and loss
type Output string

const (
	// Sigmoid is one unit trained with binary cross-entropy
	Sigmoid Output = "sigmoid"
	// Softmax is two units trained with categorical cross-entropy
	Softmax Output = "softmax"
)

// Architecture fixes the shape of a model
type Architecture struct {
	Input   tensor.Shape `msgpack:"input"`
	Filters []int        `msgpack:"filters"`
	Kernel  int          `msgpack:"kernel"`
	Pool    int          `msgpack:"pool"`
	Hidden  int          `msgpack:"hidden"`
	Dropout float64      `msgpack:"dropout"`
	Output  Output       `msgpack:"output"`
}

// DefaultArchitecture returns the 32/64/128 filter network with a 128 unit hidden layer
func DefaultArchitecture(input tensor.Shape) Architecture {
	return Architecture{
		Input:   input,
		Filters: []int{32, 64, 128},
		Kernel:  3,
		Pool:    2,
		Hidden:  128,
		Dropout: 0.5,
		Output:  Sigmoid,
	}
}

// block holds the sizes around one conv+pool block
type block struct {
	inC, inH, inW      int
	outC, convH, convW int
	poolH, poolW       int
}

func (a Architecture) blocks() []block {
	out := make([]block, 0, len(a.Filters))
	c, h, w := a.Input.Channels, a.Input.Height, a.Input.Width
	for _, f := range a.Filters {
		b := block{inC: c, inH: h, inW: w, outC: f}
		b.convH, b.convW = h-a.Kernel+1, w-a.Kernel+1
		if a.Pool > 0 {
			b.poolH, b.poolW = b.convH/a.Pool, b.convW/a.Pool
		}
		out = append(out, b)
		c, h, w = f, b.poolH, b.poolW
	}
	return out
}

// FlatSize is the length of the flattened feature vector after the last block
func (a Architecture) FlatSize() int {
	blocks := a.blocks()
	if len(blocks) == 0 {
		return a.Input.Size()
	}
	last := blocks[len(blocks)-1]
	return last.outC * last.poolH * last.poolW
}

func (a Architecture) outputs() int {
	if a.Output == Softmax {
		return 2
	}
	return 1
}

// Validate checks that every block keeps a positive spatial size
func (a Architecture) Validate() error {
	var errs []error
	if err := a.Input.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(a.Filters) == 0 {
		errs = append(errs, errors.New("at least one convolution block is required"))
	}
	if a.Kernel < 1 {
		errs = append(errs, fmt.Errorf("kernel must be positive, got %d", a.Kernel))
	}
	if a.Pool < 1 {
		errs = append(errs, fmt.Errorf("pool must be positive, got %d", a.Pool))
	}
	if a.Hidden < 1 {
		errs = append(errs, fmt.Errorf("hidden units must be positive, got %d", a.Hidden))
	}
	if a.Dropout < 0 || a.Dropout >= 1 {
		errs = append(errs, fmt.Errorf("dropout must be in [0,1), got %v", a.Dropout))
	}
	if a.Output != Sigmoid && a.Output != Softmax {
		errs = append(errs, fmt.Errorf("unknown output mode %q", a.Output))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for i, b := range a.blocks() {
		if b.outC < 1 {
			return fmt.Errorf("block %d: filters must be positive, got %d", i, b.outC)
		}
		if b.poolH < 1 || b.poolW < 1 {
			return fmt.Errorf("block %d: input %dx%d too small for kernel %d and pool %d",
				i, b.inW, b.inH, a.Kernel, a.Pool)
		}
	}
	return nil
}
