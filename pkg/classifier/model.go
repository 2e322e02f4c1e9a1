// ABOUTME: Model parameters, forward pass and backpropagation
// ABOUTME: Holds weights as gonum-backed slices and computes per-example gradients
package classifier

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/spectra/pkg/tensor"
	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned when an input tensor does not match the model input
var ErrShape = errors.New("input shape does not match model")

const probEpsilon = 1e-7

// param is one weight matrix or bias vector stored row-major
type param struct {
	Name  string
	Rows  int
	Cols  int
	Value []float64
}

func (p *param) matrix() *mat.Dense {
	return mat.NewDense(p.Rows, p.Cols, p.Value)
}

// Model is a trainable CNN. A model must not be trained while other
// goroutines predict with it; prediction alone is safe for concurrent use.
type Model struct {
	id        string
	createdAt time.Time
	arch      Architecture
	seed      uint64
	params    []*param
	opt       *adam
}

// New creates a model with Glorot-uniform weights drawn from seed
func New(arch Architecture, seed uint64) (*Model, error) {
	if err := arch.Validate(); err != nil {
		return nil, fmt.Errorf("invalid architecture: %w", err)
	}

	m := &Model{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		arch:      arch,
		seed:      seed,
		params:    layout(arch),
	}

	rng := rand.New(rand.NewPCG(seed, 0x5eed))
	k2 := arch.Kernel * arch.Kernel
	for i, b := range arch.blocks() {
		glorot(rng, m.params[2*i], b.inC*k2, b.outC*k2)
	}
	n := len(arch.Filters)
	glorot(rng, m.params[2*n], arch.FlatSize(), arch.Hidden)
	glorot(rng, m.params[2*n+2], arch.Hidden, arch.outputs())

	m.opt = newAdam(m.params)
	return m, nil
}

// layout allocates zeroed parameters in a fixed order: each conv weight and
// bias, then hidden weight and bias, then output weight and bias.
func layout(arch Architecture) []*param {
	var params []*param
	k2 := arch.Kernel * arch.Kernel
	for i, b := range arch.blocks() {
		params = append(params,
			newParam(fmt.Sprintf("conv%d.weight", i), b.outC, b.inC*k2),
			newParam(fmt.Sprintf("conv%d.bias", i), 1, b.outC))
	}
	params = append(params,
		newParam("hidden.weight", arch.Hidden, arch.FlatSize()),
		newParam("hidden.bias", 1, arch.Hidden),
		newParam("output.weight", arch.outputs(), arch.Hidden),
		newParam("output.bias", 1, arch.outputs()))
	return params
}

func newParam(name string, rows, cols int) *param {
	return &param{Name: name, Rows: rows, Cols: cols, Value: make([]float64, rows*cols)}
}

func glorot(rng *rand.Rand, p *param, fanIn, fanOut int) {
	limit := math.Sqrt(6 / float64(fanIn+fanOut))
	for i := range p.Value {
		p.Value[i] = (rng.Float64()*2 - 1) * limit
	}
}

// ID returns the identifier assigned when the model was created
func (m *Model) ID() string { return m.id }

// Architecture returns the model's architecture
func (m *Model) Architecture() Architecture { return m.arch }

// InputShape returns the tensor shape the model accepts
func (m *Model) InputShape() tensor.Shape { return m.arch.Input }

// CreatedAt returns when the model was first created
func (m *Model) CreatedAt() time.Time { return m.createdAt }

// NumParams returns the number of trainable values
func (m *Model) NumParams() int {
	n := 0
	for _, p := range m.params {
		n += len(p.Value)
	}
	return n
}

// trace keeps the intermediate values of one forward pass
type trace struct {
	input   []float64
	cols    []*mat.Dense
	acts    [][]float64
	argmax  [][]int
	pooled  [][]float64
	hidden  []float64
	mask    []float64
	dropped []float64
	probs   []float64
}

// score is the probability of label 1
func (t *trace) score() float64 {
	if len(t.probs) == 2 {
		return t.probs[1]
	}
	return t.probs[0]
}

// forward runs the network. A nil rng means inference: dropout is disabled.
func (m *Model) forward(x []float64, rng *rand.Rand) *trace {
	a := m.arch
	tr := &trace{input: x}

	in := x
	for i, b := range a.blocks() {
		col := im2col(in, b.inC, b.inH, b.inW, a.Kernel)
		act := conv(m.params[2*i].matrix(), m.params[2*i+1].Value, col)
		pooled, argmax := maxPool(act, b.outC, b.convH, b.convW, a.Pool)

		tr.cols = append(tr.cols, col)
		tr.acts = append(tr.acts, act)
		tr.argmax = append(tr.argmax, argmax)
		tr.pooled = append(tr.pooled, pooled)
		in = pooled
	}

	n := len(a.Filters)
	tr.hidden = dense(m.params[2*n], m.params[2*n+1], in)
	relu(tr.hidden)

	tr.dropped = tr.hidden
	if rng != nil && a.Dropout > 0 {
		keep := 1 - a.Dropout
		tr.mask = make([]float64, len(tr.hidden))
		tr.dropped = make([]float64, len(tr.hidden))
		for i, h := range tr.hidden {
			if rng.Float64() < keep {
				tr.mask[i] = 1 / keep
				tr.dropped[i] = h / keep
			}
		}
	}

	logits := dense(m.params[2*n+2], m.params[2*n+3], tr.dropped)
	if a.Output == Softmax {
		tr.probs = softmax(logits)
	} else {
		tr.probs = []float64{sigmoid(logits[0])}
	}
	return tr
}

// dense computes W*x + b
func dense(w, b *param, x []float64) []float64 {
	y := mat.NewVecDense(w.Rows, nil)
	y.MulVec(w.matrix(), mat.NewVecDense(len(x), x))
	out := y.RawVector().Data
	for i := range out {
		out[i] += b.Value[i]
	}
	return out
}

// loss is the cross-entropy of the trace against label
func (t *trace) loss(label int) float64 {
	if len(t.probs) == 2 {
		return -math.Log(clip(t.probs[label]))
	}
	p := clip(t.probs[0])
	if label == 1 {
		return -math.Log(p)
	}
	return -math.Log(1 - p)
}

func (t *trace) correct(label int) bool {
	return (t.score() >= 0.5) == (label == 1)
}

func clip(p float64) float64 {
	return math.Min(math.Max(p, probEpsilon), 1-probEpsilon)
}

// backward adds the gradient of the loss for one example into grads, which
// is aligned with m.params.
func (m *Model) backward(tr *trace, label int, grads [][]float64) {
	a := m.arch
	n := len(a.Filters)

	// Cross-entropy through sigmoid or softmax reduces to p - y
	dz := make([]float64, len(tr.probs))
	copy(dz, tr.probs)
	if len(dz) == 2 {
		dz[label]--
	} else {
		dz[0] -= float64(label)
	}

	dDropped := denseBackward(m.params[2*n+2], grads[2*n+2], grads[2*n+3], dz, tr.dropped)

	dHidden := dDropped
	for i := range dHidden {
		if tr.mask != nil {
			dHidden[i] *= tr.mask[i]
		}
		if tr.hidden[i] <= 0 {
			dHidden[i] = 0
		}
	}

	flat := tr.input
	if n > 0 {
		flat = tr.pooled[n-1]
	}
	dIn := denseBackward(m.params[2*n], grads[2*n], grads[2*n+1], dHidden, flat)

	blocks := a.blocks()
	for i := n - 1; i >= 0; i-- {
		b := blocks[i]
		dAct := unpool(dIn, tr.argmax[i], len(tr.acts[i]))
		for j, v := range tr.acts[i] {
			if v <= 0 {
				dAct[j] = 0
			}
		}

		cols := b.convH * b.convW
		dZ := mat.NewDense(b.outC, cols, dAct)

		gw := mat.NewDense(b.outC, b.inC*a.Kernel*a.Kernel, grads[2*i])
		var dw mat.Dense
		dw.Mul(dZ, tr.cols[i].T())
		gw.Add(gw, &dw)

		gb := grads[2*i+1]
		for c := 0; c < b.outC; c++ {
			var sum float64
			for _, v := range dAct[c*cols : (c+1)*cols] {
				sum += v
			}
			gb[c] += sum
		}

		if i == 0 {
			break
		}
		var dCol mat.Dense
		dCol.Mul(m.params[2*i].matrix().T(), dZ)
		dIn = col2im(&dCol, b.inC, b.inH, b.inW, a.Kernel)
	}
}

// denseBackward accumulates dW += dy x^T and db += dy, and returns W^T dy
func denseBackward(w *param, gw, gb []float64, dy, x []float64) []float64 {
	dyVec := mat.NewVecDense(len(dy), dy)
	g := mat.NewDense(w.Rows, w.Cols, gw)
	g.RankOne(g, 1, dyVec, mat.NewVecDense(len(x), x))
	for i, v := range dy {
		gb[i] += v
	}

	dx := mat.NewVecDense(w.Cols, nil)
	dx.MulVec(w.matrix().T(), dyVec)
	return dx.RawVector().Data
}

func (m *Model) checkInput(t tensor.Tensor) error {
	if t.Shape != m.arch.Input || len(t.Data) != m.arch.Input.Size() {
		return fmt.Errorf("%w: got %v, want %v", ErrShape, t.Shape, m.arch.Input)
	}
	return nil
}
