// ABOUTME: Local filesystem FileStore
// ABOUTME: Resolves store paths under a root directory and creates parents on write
package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local implements FileStore on top of the local filesystem
type Local struct {
	root string
}

// NewLocal creates a Local store rooted at dir, creating it if needed
func NewLocal(dir string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &Local{root: abs}, nil
}

func (l *Local) resolve(path string) string {
	return filepath.Join(l.root, filepath.FromSlash(path))
}

// Read opens the named file for reading
func (l *Local) Read(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(l.resolve(path))
}

// Write creates the named file. Data goes to a temporary sibling that is
// renamed into place on Close, so readers never see a partial artifact.
func (l *Local) Write(_ context.Context, path string) (io.WriteCloser, error) {
	full := l.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(full), "."+filepath.Base(full)+".*")
	if err != nil {
		return nil, err
	}
	return &atomicFile{File: f, target: full}, nil
}

// Delete removes the named file
func (l *Local) Delete(_ context.Context, path string) error {
	err := os.Remove(l.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Exists reports whether the named file exists
func (l *Local) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(l.resolve(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

type atomicFile struct {
	*os.File
	target string
}

func (f *atomicFile) Close() error {
	if err := f.File.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), f.target); err != nil {
		os.Remove(f.Name())
		return err
	}
	return nil
}

var _ FileStore = (*Local)(nil)

func (f *atomicFile) abort(error) {
	f.File.Close()
	os.Remove(f.Name())
}
