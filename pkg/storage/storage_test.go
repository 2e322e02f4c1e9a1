// ABOUTME: Tests for location parsing and the local store
// ABOUTME: Covers atomic writes, existence checks and missing files
package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Location
		wantErr bool
	}{
		{"local file", "models/model.msgpack", Location{Dir: "models", Name: "model.msgpack"}, false},
		{"bare file", "model.msgpack", Location{Dir: ".", Name: "model.msgpack"}, false},
		{"s3 nested", "s3://bucket/runs/7/model.msgpack", Location{Bucket: "bucket", Dir: "runs/7", Name: "model.msgpack"}, false},
		{"s3 root key", "s3://bucket/model.msgpack", Location{Bucket: "bucket", Name: "model.msgpack"}, false},
		{"s3 missing key", "s3://bucket/", Location{}, true},
		{"s3 missing bucket", "s3:///model.msgpack", Location{}, true},
		{"s3 directory", "s3://bucket/runs/", Location{}, true},
		{"empty", "", Location{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestLocalReadWrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(filepath.Join(t.TempDir(), "store"))
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	w, err := store.Write(ctx, "nested/model.bin")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := w.Write([]byte("weights")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Nothing is visible until Close
	if ok, _ := store.Exists(ctx, "nested/model.bin"); ok {
		t.Error("expected file to be hidden before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	ok, err := store.Exists(ctx, "nested/model.bin")
	if err != nil || !ok {
		t.Fatalf("expected file to exist, got %v, %v", ok, err)
	}

	r, err := store.Read(ctx, "nested/model.bin")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	defer r.Close()
	data, _ := io.ReadAll(r)
	if string(data) != "weights" {
		t.Errorf("expected %q, got %q", "weights", data)
	}

	entries, _ := os.ReadDir(filepath.Join(store.root, "nested"))
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after Close, got %d", len(entries))
	}
}

func TestLocalMissing(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	if _, err := store.Read(ctx, "absent"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
	if ok, err := store.Exists(ctx, "absent"); ok || err != nil {
		t.Errorf("expected false, nil, got %v, %v", ok, err)
	}
	if err := store.Delete(ctx, "absent"); err != nil {
		t.Errorf("expected deleting a missing file to succeed, got %v", err)
	}
}

func TestResolveLocal(t *testing.T) {
	dir := t.TempDir()
	store, key, err := Resolve(context.Background(), filepath.Join(dir, "out", "model.msgpack"), S3Options{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if key != "model.msgpack" {
		t.Errorf("expected key model.msgpack, got %q", key)
	}
	if _, ok := store.(*Local); !ok {
		t.Errorf("expected *Local, got %T", store)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); err != nil {
		t.Errorf("expected store directory to be created: %v", err)
	}
}

func TestResolveS3(t *testing.T) {
	store, key, err := Resolve(context.Background(), "s3://models/runs/model.msgpack", S3Options{Region: "eu-west-1", Endpoint: "http://localhost:9000", PathStyle: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	s3Store, ok := store.(*S3Store)
	if !ok {
		t.Fatalf("expected *S3Store, got %T", store)
	}
	if key != "model.msgpack" {
		t.Errorf("expected key model.msgpack, got %q", key)
	}
	if s3Store.bucket != "models" || s3Store.prefix != "runs" {
		t.Errorf("expected models/runs, got %s/%s", s3Store.bucket, s3Store.prefix)
	}
}

func TestLocalAbort(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	w, err := store.Write(ctx, "model.bin")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	w.Write([]byte("partial"))
	Abort(w, errors.New("encode failed"))

	if ok, _ := store.Exists(ctx, "model.bin"); ok {
		t.Error("expected aborted file to be absent")
	}
	entries, _ := os.ReadDir(store.root)
	if len(entries) != 0 {
		t.Errorf("expected temp file to be removed, got %d entries", len(entries))
	}
}
