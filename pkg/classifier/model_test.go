// ABOUTME: Tests for model construction and prediction
// ABOUTME: Tests seeded initialization, score range, idempotence and concurrent use
package classifier

import (
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/harperreed/spectra/pkg/tensor"
)

func TestNewSeeded(t *testing.T) {
	a, err := New(tinyArch(Sigmoid), 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(tinyArch(Sigmoid), 42)
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(tinyArch(Sigmoid), 43)
	if err != nil {
		t.Fatal(err)
	}

	if a.ID() == b.ID() {
		t.Error("expected distinct model ids")
	}

	differs := false
	for i, p := range a.params {
		for j, v := range p.Value {
			if b.params[i].Value[j] != v {
				t.Fatalf("%s[%d]: same seed produced different weights", p.Name, j)
			}
			if c.params[i].Value[j] != v {
				differs = true
			}
		}
	}
	if !differs {
		t.Error("different seeds produced identical weights")
	}
}

func TestNewInvalidArchitecture(t *testing.T) {
	arch := tinyArch(Sigmoid)
	arch.Filters = nil
	if _, err := New(arch, 1); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNumParams(t *testing.T) {
	m, err := New(tinyArch(Softmax), 1)
	if err != nil {
		t.Fatal(err)
	}
	// conv0 2*9+2, conv1 3*18+3, hidden 4*48+4, output 2*4+2
	expected := 20 + 57 + 196 + 10
	if m.NumParams() != expected {
		t.Errorf("expected %d params, got %d", expected, m.NumParams())
	}
}

func TestPredict(t *testing.T) {
	for _, output := range []Output{Sigmoid, Softmax} {
		t.Run(string(output), func(t *testing.T) {
			m, err := New(tinyArch(output), 7)
			if err != nil {
				t.Fatal(err)
			}
			x := randomTensor(rand.New(rand.NewPCG(1, 1)), tinyShape)

			first, err := m.Predict(x)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if first < 0 || first > 1 {
				t.Errorf("score out of range: %f", first)
			}
			second, _ := m.Predict(x)
			if first != second {
				t.Errorf("expected idempotent prediction, got %f then %f", first, second)
			}
		})
	}
}

func TestPredictShapeMismatch(t *testing.T) {
	m, err := New(tinyArch(Sigmoid), 7)
	if err != nil {
		t.Fatal(err)
	}
	wrong := tensor.Tensor{Shape: tensor.Shape{Channels: 3, Height: 8, Width: 8}, Data: make([]float32, 192)}
	if _, err := m.Predict(wrong); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestPredictImageNormalizes(t *testing.T) {
	m, err := New(tinyArch(Sigmoid), 7)
	if err != nil {
		t.Fatal(err)
	}

	// A 16x16 image must be resized to the 8x8 model input
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	img.SetGray(0, 0, color.Gray{Y: 255})

	score, err := m.PredictImage(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	direct, err := tensor.FromImage(img, tinyShape)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := m.Predict(direct)
	if score != want {
		t.Errorf("expected %f, got %f", want, score)
	}
}

func TestPredictConcurrent(t *testing.T) {
	m, err := New(tinyArch(Sigmoid), 9)
	if err != nil {
		t.Fatal(err)
	}
	x := randomTensor(rand.New(rand.NewPCG(2, 2)), tinyShape)
	want, _ := m.Predict(x)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.Predict(x)
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- errors.New("concurrent prediction differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
