// ABOUTME: Adam optimizer
// ABOUTME: Bias-corrected first and second moment updates over model parameters
package classifier

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	defaultLearningRate = 0.001
	defaultBeta1        = 0.9
	defaultBeta2        = 0.999
	defaultEpsilon      = 1e-7
)

type adam struct {
	LearningRate float64     `msgpack:"learning_rate"`
	Beta1        float64     `msgpack:"beta1"`
	Beta2        float64     `msgpack:"beta2"`
	Epsilon      float64     `msgpack:"epsilon"`
	Step         int         `msgpack:"step"`
	M            [][]float64 `msgpack:"m"`
	V            [][]float64 `msgpack:"v"`
}

func newAdam(params []*param) *adam {
	a := &adam{
		LearningRate: defaultLearningRate,
		Beta1:        defaultBeta1,
		Beta2:        defaultBeta2,
		Epsilon:      defaultEpsilon,
		M:            make([][]float64, len(params)),
		V:            make([][]float64, len(params)),
	}
	for i, p := range params {
		a.M[i] = make([]float64, len(p.Value))
		a.V[i] = make([]float64, len(p.Value))
	}
	return a
}

// update applies one step given gradients aligned with params
func (a *adam) update(params []*param, grads [][]float64) {
	a.Step++
	t := float64(a.Step)
	lr := a.LearningRate * math.Sqrt(1-math.Pow(a.Beta2, t)) / (1 - math.Pow(a.Beta1, t))

	for i, p := range params {
		g := grads[i]
		m, v := a.M[i], a.V[i]

		floats.Scale(a.Beta1, m)
		floats.AddScaled(m, 1-a.Beta1, g)

		for j, gj := range g {
			v[j] = a.Beta2*v[j] + (1-a.Beta2)*gj*gj
			p.Value[j] -= lr * m[j] / (math.Sqrt(v[j]) + a.Epsilon)
		}
	}
}
