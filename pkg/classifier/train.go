// ABOUTME: Training and evaluation loops
// ABOUTME: Mini-batch Adam with a held-out validation tail and parallel gradient workers
package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/harperreed/spectra/pkg/dataset"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// ErrNoData is returned when there is nothing to train on or evaluate
var ErrNoData = errors.New("no examples")

// FitConfig controls a training run
type FitConfig struct {
	Epochs          int
	BatchSize       int
	ValidationSplit float64
	Seed            uint64
	// Workers splits each batch across goroutines; 0 uses GOMAXPROCS
	Workers int
	// OnEpoch is called after every epoch
	OnEpoch func(EpochMetrics)
}

func (c FitConfig) withDefaults() FitConfig {
	if c.Epochs <= 0 {
		c.Epochs = 10
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 32
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// EpochMetrics are the results of one epoch
type EpochMetrics struct {
	Epoch         int           `msgpack:"epoch"`
	Epochs        int           `msgpack:"epochs"`
	Loss          float64       `msgpack:"loss"`
	Accuracy      float64       `msgpack:"accuracy"`
	HasValidation bool          `msgpack:"has_validation"`
	ValLoss       float64       `msgpack:"val_loss"`
	ValAccuracy   float64       `msgpack:"val_accuracy"`
	Duration      time.Duration `msgpack:"duration"`
}

func (e EpochMetrics) String() string {
	s := fmt.Sprintf("Epoch %d/%d - %s - loss: %.4f - accuracy: %.4f",
		e.Epoch, e.Epochs, e.Duration.Round(time.Millisecond), e.Loss, e.Accuracy)
	if e.HasValidation {
		s += fmt.Sprintf(" - val_loss: %.4f - val_accuracy: %.4f", e.ValLoss, e.ValAccuracy)
	}
	return s
}

// History collects per-epoch metrics
type History struct {
	Epochs []EpochMetrics
}

// Metrics are aggregate loss and accuracy over a set of examples
type Metrics struct {
	Loss     float64
	Accuracy float64
	Count    int
}

// Fit trains the model. The last ValidationSplit fraction of examples is
// held out before shuffling and only used for reporting. The context is
// checked between epochs.
func (m *Model) Fit(ctx context.Context, examples []dataset.Example, cfg FitConfig) (*History, error) {
	cfg = cfg.withDefaults()
	if cfg.ValidationSplit < 0 || cfg.ValidationSplit >= 1 {
		return nil, fmt.Errorf("validation split must be in [0,1), got %v", cfg.ValidationSplit)
	}
	if err := m.checkExamples(examples); err != nil {
		return nil, err
	}

	splitAt := int(math.Floor(float64(len(examples)) * (1 - cfg.ValidationSplit)))
	train, val := examples[:splitAt], examples[splitAt:]
	if len(train) == 0 {
		return nil, fmt.Errorf("%w: validation split leaves no training data", ErrNoData)
	}

	inputs := make([][]float64, len(train))
	for i, e := range train {
		inputs[i] = e.Input.Float64()
	}

	shuffle := rand.New(rand.NewPCG(cfg.Seed, m.seed))
	order := make([]int, len(train))
	for i := range order {
		order[i] = i
	}

	workers := make([]*worker, cfg.Workers)
	for i := range workers {
		workers[i] = newWorker(m.params)
	}
	grads := workers[0].grads

	history := &History{}
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return history, err
		}
		start := time.Now()

		shuffle.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		var lossSum float64
		var correct int
		for b := 0; b < len(order); b += cfg.BatchSize {
			batch := order[b:min(b+cfg.BatchSize, len(order))]
			loss, ok := m.accumulate(workers, batch, inputs, train, uint64(epoch))

			scale := 1 / float64(len(batch))
			for _, g := range grads {
				floats.Scale(scale, g)
			}
			m.opt.update(m.params, grads)

			lossSum += loss
			correct += ok
		}

		metrics := EpochMetrics{
			Epoch:    epoch,
			Epochs:   cfg.Epochs,
			Loss:     lossSum / float64(len(train)),
			Accuracy: float64(correct) / float64(len(train)),
		}
		if len(val) > 0 {
			vm, err := m.Evaluate(val)
			if err != nil {
				return history, err
			}
			metrics.HasValidation = true
			metrics.ValLoss = vm.Loss
			metrics.ValAccuracy = vm.Accuracy
		}
		metrics.Duration = time.Since(start)

		history.Epochs = append(history.Epochs, metrics)
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(metrics)
		}
	}
	return history, nil
}

// worker owns a gradient buffer for its share of a batch
type worker struct {
	grads   [][]float64
	loss    float64
	correct int
}

func newWorker(params []*param) *worker {
	w := &worker{grads: make([][]float64, len(params))}
	for i, p := range params {
		w.grads[i] = make([]float64, len(p.Value))
	}
	return w
}

func (w *worker) reset() {
	for _, g := range w.grads {
		clear(g)
	}
	w.loss, w.correct = 0, 0
}

// accumulate computes the batch gradient sum into workers[0].grads and
// returns the summed loss and number of correct predictions.
func (m *Model) accumulate(workers []*worker, batch []int, inputs [][]float64, examples []dataset.Example, epoch uint64) (float64, int) {
	n := min(len(workers), len(batch))
	chunk := (len(batch) + n - 1) / n

	var eg errgroup.Group
	for wi := 0; wi < n; wi++ {
		w := workers[wi]
		w.reset()
		lo, hi := min(wi*chunk, len(batch)), min((wi+1)*chunk, len(batch))
		eg.Go(func() error {
			for _, idx := range batch[lo:hi] {
				// Dropout masks depend only on the epoch and example
				rng := rand.New(rand.NewPCG(m.seed^epoch, uint64(idx)))
				tr := m.forward(inputs[idx], rng)
				label := examples[idx].Label
				w.loss += tr.loss(label)
				if tr.correct(label) {
					w.correct++
				}
				m.backward(tr, label, w.grads)
			}
			return nil
		})
	}
	eg.Wait()

	total := workers[0]
	loss, correct := total.loss, total.correct
	for _, w := range workers[1:n] {
		for i, g := range w.grads {
			floats.Add(total.grads[i], g)
		}
		loss += w.loss
		correct += w.correct
	}
	return loss, correct
}

// Evaluate computes loss and accuracy without changing the model
func (m *Model) Evaluate(examples []dataset.Example) (Metrics, error) {
	if err := m.checkExamples(examples); err != nil {
		return Metrics{}, err
	}

	n := min(runtime.GOMAXPROCS(0), len(examples))
	chunk := (len(examples) + n - 1) / n
	losses := make([]float64, n)
	corrects := make([]int, n)

	var eg errgroup.Group
	for wi := 0; wi < n; wi++ {
		lo, hi := min(wi*chunk, len(examples)), min((wi+1)*chunk, len(examples))
		eg.Go(func() error {
			for _, e := range examples[lo:hi] {
				tr := m.forward(e.Input.Float64(), nil)
				losses[wi] += tr.loss(e.Label)
				if tr.correct(e.Label) {
					corrects[wi]++
				}
			}
			return nil
		})
	}
	eg.Wait()

	var loss float64
	var correct int
	for i := range losses {
		loss += losses[i]
		correct += corrects[i]
	}
	return Metrics{
		Loss:     loss / float64(len(examples)),
		Accuracy: float64(correct) / float64(len(examples)),
		Count:    len(examples),
	}, nil
}

func (m *Model) checkExamples(examples []dataset.Example) error {
	if len(examples) == 0 {
		return ErrNoData
	}
	for _, e := range examples {
		if e.Label != dataset.LabelAI && e.Label != dataset.LabelReal {
			return fmt.Errorf("%s: label must be 0 or 1, got %d", e.Path, e.Label)
		}
		if err := m.checkInput(e.Input); err != nil {
			return fmt.Errorf("%s: %w", e.Path, err)
		}
	}
	return nil
}
