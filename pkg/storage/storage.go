// ABOUTME: FileStore abstraction for model artifacts
// ABOUTME: Resolves local paths and s3:// URLs to a store plus an object key
// Package storage reads and writes model artifacts on local disk or any
// S3-compatible object store.
//
// A model location is either a filesystem path or s3://bucket/key. Resolve
// turns it into a FileStore and the key inside that store.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// FileStore is a minimal interface for file-oriented storage.
//
// Paths are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Read opens the named file for reading.
	// If the file does not exist, an error wrapping os.ErrNotExist is returned.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write opens the named file for writing, truncating it.
	// The caller must close the returned WriteCloser to flush data.
	Write(ctx context.Context, path string) (io.WriteCloser, error)

	// Delete removes the named file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, path string) (bool, error)
}

// Abort discards a writer returned by FileStore.Write without committing
// what was written so far
func Abort(w io.WriteCloser, cause error) {
	if a, ok := w.(interface{ abort(error) }); ok {
		a.abort(cause)
		return
	}
	w.Close()
}

// S3Options configures the client used for s3:// locations
type S3Options struct {
	Region   string
	Endpoint string
	// PathStyle addresses buckets as endpoint/bucket, as MinIO expects
	PathStyle bool
}

// Location is a parsed model location
type Location struct {
	Bucket string // empty for local paths
	Dir    string // local directory, or key prefix inside the bucket
	Name   string
}

// IsS3 reports whether the location names an object store
func (l Location) IsS3() bool {
	return l.Bucket != ""
}

// ParseLocation splits a local path or s3://bucket/key URL
func ParseLocation(raw string) (Location, error) {
	if !strings.HasPrefix(raw, "s3://") {
		if raw == "" {
			return Location{}, fmt.Errorf("empty storage location")
		}
		return Location{Dir: filepath.Dir(raw), Name: filepath.Base(raw)}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("invalid s3 location %q: %w", raw, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" || strings.HasSuffix(key, "/") {
		return Location{}, fmt.Errorf("s3 location must be s3://bucket/key, got %q", raw)
	}

	dir, name := "", key
	if i := strings.LastIndex(key, "/"); i >= 0 {
		dir, name = key[:i], key[i+1:]
	}
	return Location{Bucket: u.Host, Dir: dir, Name: name}, nil
}

// Resolve returns a store for the location and the key to use inside it
func Resolve(ctx context.Context, raw string, opts S3Options) (FileStore, string, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, "", err
	}
	if !loc.IsS3() {
		store, err := NewLocal(loc.Dir)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open local store: %w", err)
		}
		return store, loc.Name, nil
	}

	client, err := NewS3Client(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	return NewS3(client, loc.Bucket, loc.Dir), loc.Name, nil
}
