// ABOUTME: Dataset builder
// ABOUTME: Enumerates corpus images, decodes them with an optional cache and splits them
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harperreed/spectra/pkg/tensor"
)

const (
	LabelAI   = 0
	LabelReal = 1
)

// ErrEmptyClass is returned when a label has no examples after loading
var ErrEmptyClass = errors.New("class has no examples")

// Corpus is a directory of spectrogram images sharing one label
type Corpus struct {
	Name      string
	Dir       string
	Label     int
	Recursive bool
}

// Example is one labeled input
type Example struct {
	Path  string
	Label int
	Input tensor.Tensor
}

// Dataset is a disjoint train/test partition
type Dataset struct {
	Train []Example
	Test  []Example
}

// Cache stores decoded tensors between runs
type Cache interface {
	Get(path string, info fs.FileInfo, shape tensor.Shape) (tensor.Tensor, bool, error)
	Put(path string, info fs.FileInfo, t tensor.Tensor) error
}

// Options configures a Builder
type Options struct {
	Shape        tensor.Shape
	TestFraction float64
	Seed         uint64
	Extensions   []string
	Cache        Cache
}

// Builder loads corpora into datasets
type Builder struct {
	opts Options
}

// NewBuilder validates options and creates a builder
func NewBuilder(opts Options) (*Builder, error) {
	if err := opts.Shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input shape: %w", err)
	}
	if opts.TestFraction <= 0 || opts.TestFraction >= 1 {
		return nil, fmt.Errorf("test fraction must be in (0,1), got %v", opts.TestFraction)
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".png"}
	}
	return &Builder{opts: opts}, nil
}

// Build loads every corpus and splits the result into train and test
func (b *Builder) Build(ctx context.Context, corpora []Corpus) (*Dataset, error) {
	examples, err := b.Load(ctx, corpora)
	if err != nil {
		return nil, err
	}

	counts := CountLabels(examples)
	for _, label := range []int{LabelAI, LabelReal} {
		if counts[label] == 0 {
			return nil, fmt.Errorf("%w: label %d", ErrEmptyClass, label)
		}
	}

	train, test := Split(examples, b.opts.TestFraction, b.opts.Seed)
	log.Printf("Dataset: %d examples (%d ai, %d real), %d train, %d test",
		len(examples), counts[LabelAI], counts[LabelReal], len(train), len(test))

	return &Dataset{Train: train, Test: test}, nil
}

// Load decodes every image of every corpus in order. Files that fail to
// decode are skipped with a warning.
func (b *Builder) Load(ctx context.Context, corpora []Corpus) ([]Example, error) {
	var examples []Example
	for _, c := range corpora {
		if c.Label != LabelAI && c.Label != LabelReal {
			return nil, fmt.Errorf("corpus %q: label must be 0 or 1, got %d", c.Name, c.Label)
		}

		paths, err := b.listImages(c)
		if err != nil {
			return nil, err
		}

		loaded := 0
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			t, err := b.loadTensor(path)
			if err != nil {
				log.Printf("Warning: skipping %s: %v", path, err)
				continue
			}
			examples = append(examples, Example{Path: path, Label: c.Label, Input: t})
			loaded++
		}
		log.Printf("Loaded %d images from %s (label %d)", loaded, c.Dir, c.Label)
	}
	return examples, nil
}

func (b *Builder) loadTensor(path string) (tensor.Tensor, error) {
	if b.opts.Cache == nil {
		return tensor.Load(path, b.opts.Shape)
	}

	info, err := os.Stat(path)
	if err != nil {
		return tensor.Tensor{}, fmt.Errorf("%w: %w", tensor.ErrDecode, err)
	}
	if t, ok, err := b.opts.Cache.Get(path, info, b.opts.Shape); err != nil {
		log.Printf("Warning: tensor cache read failed for %s: %v", path, err)
	} else if ok {
		return t, nil
	}

	t, err := tensor.Load(path, b.opts.Shape)
	if err != nil {
		return tensor.Tensor{}, err
	}
	if err := b.opts.Cache.Put(path, info, t); err != nil {
		log.Printf("Warning: tensor cache write failed for %s: %v", path, err)
	}
	return t, nil
}

// listImages returns the corpus image paths in lexical order. A missing
// directory is an empty corpus.
func (b *Builder) listImages(c Corpus) ([]string, error) {
	if _, err := os.Stat(c.Dir); errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: corpus directory %s does not exist", c.Dir)
		return nil, nil
	}

	var paths []string
	err := filepath.WalkDir(c.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != c.Dir && !c.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if b.matches(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus %s: %w", c.Dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (b *Builder) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range b.opts.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// CountLabels returns the number of examples per label
func CountLabels(examples []Example) map[int]int {
	counts := make(map[int]int)
	for _, e := range examples {
		counts[e.Label]++
	}
	return counts
}
