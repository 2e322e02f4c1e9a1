// ABOUTME: Model artifact encoding
// ABOUTME: Saves and loads architecture, weights and optimizer state as msgpack
package classifier

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	artifactFormat  = "spectra-cnn"
	artifactVersion = 1
)

// ErrArtifact is returned when a model artifact is missing, corrupt or incompatible
var ErrArtifact = errors.New("invalid model artifact")

type artifact struct {
	Format       string       `msgpack:"format"`
	Version      int          `msgpack:"version"`
	ID           string       `msgpack:"id"`
	CreatedAt    time.Time    `msgpack:"created_at"`
	Seed         uint64       `msgpack:"seed"`
	Architecture Architecture `msgpack:"architecture"`
	Params       []param      `msgpack:"params"`
	Optimizer    *adam        `msgpack:"optimizer"`
}

// Save writes the model as a self-describing msgpack artifact
func (m *Model) Save(w io.Writer) error {
	a := artifact{
		Format:       artifactFormat,
		Version:      artifactVersion,
		ID:           m.id,
		CreatedAt:    m.createdAt,
		Seed:         m.seed,
		Architecture: m.arch,
		Optimizer:    m.opt,
	}
	for _, p := range m.params {
		a.Params = append(a.Params, *p)
	}

	if err := msgpack.NewEncoder(w).Encode(&a); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// SaveFile writes the model to path, creating parent directories
func (m *Model) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	if err := m.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a model written by Save
func Load(r io.Reader) (*Model, error) {
	var a artifact
	if err := msgpack.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifact, err)
	}
	if a.Format != artifactFormat {
		return nil, fmt.Errorf("%w: unknown format %q", ErrArtifact, a.Format)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrArtifact, a.Version)
	}
	if err := a.Architecture.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifact, err)
	}

	params := layout(a.Architecture)
	if len(a.Params) != len(params) {
		return nil, fmt.Errorf("%w: expected %d parameters, got %d", ErrArtifact, len(params), len(a.Params))
	}
	for i, want := range params {
		got := a.Params[i]
		if got.Name != want.Name || got.Rows != want.Rows || got.Cols != want.Cols || len(got.Value) != len(want.Value) {
			return nil, fmt.Errorf("%w: parameter %s has shape %dx%d, want %s %dx%d",
				ErrArtifact, got.Name, got.Rows, got.Cols, want.Name, want.Rows, want.Cols)
		}
		copy(want.Value, got.Value)
	}

	opt := a.Optimizer
	if !optimizerMatches(opt, params) {
		opt = newAdam(params)
	}

	return &Model{
		id:        a.ID,
		createdAt: a.CreatedAt,
		arch:      a.Architecture,
		seed:      a.Seed,
		params:    params,
		opt:       opt,
	}, nil
}

// LoadFile reads a model artifact from disk
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifact, err)
	}
	defer f.Close()
	return Load(f)
}

// optimizerMatches reports whether saved moments line up with params
func optimizerMatches(opt *adam, params []*param) bool {
	if opt == nil || len(opt.M) != len(params) || len(opt.V) != len(params) {
		return false
	}
	for i, p := range params {
		if len(opt.M[i]) != len(p.Value) || len(opt.V[i]) != len(p.Value) {
			return false
		}
	}
	return true
}
