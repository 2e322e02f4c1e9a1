// ABOUTME: Tests for the chunk splitter
// ABOUTME: Uses short synthetic WAV files and sub-second chunks
package splitter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/spectra/pkg/audio"
	"github.com/harperreed/spectra/pkg/audio/decode"
	"github.com/harperreed/spectra/pkg/audio/encode"
)

const rate = 8000

func writeClip(t *testing.T, path string, frames int) {
	t.Helper()
	buf := audio.Buffer{
		Samples: make([]int32, frames*2),
		Format:  audio.Format{SampleRate: rate, Channels: 2, BitDepth: 16},
	}
	for i := range buf.Samples {
		buf.Samples[i] = int32(i % 1000 * 256)
	}
	if err := encode.WriteWAVFile(path, buf); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, filepath.Join(dir, "long.wav"), rate*5/2) // 2.5 chunks
	writeClip(t, filepath.Join(dir, "short.wav"), rate/2)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.mp3"), []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := Dir(context.Background(), dir, Options{Chunk: time.Second})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	byName := map[string]Result{}
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
	}

	if byName["broken.mp3"].Err == nil {
		t.Error("expected broken.mp3 to fail")
	}
	if !byName["short.wav"].Skipped {
		t.Error("expected short.wav to be skipped")
	}

	long := byName["long.wav"]
	if long.Err != nil {
		t.Fatalf("unexpected error: %v", long.Err)
	}
	want := []string{
		filepath.Join(dir, OutputDirName, "long_chunk1.wav"),
		filepath.Join(dir, OutputDirName, "long_chunk2.wav"),
	}
	if len(long.Chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %v", len(want), long.Chunks)
	}
	for i, path := range want {
		if long.Chunks[i] != path {
			t.Errorf("chunk %d: expected %s, got %s", i, path, long.Chunks[i])
		}
		buf, err := decode.File(path)
		if err != nil {
			t.Fatalf("failed to decode chunk: %v", err)
		}
		if buf.Frames() != rate {
			t.Errorf("expected %d frames, got %d", rate, buf.Frames())
		}
		if buf.Format.Channels != 2 {
			t.Errorf("expected 2 channels, got %d", buf.Format.Channels)
		}
	}
}

func TestDirMissing(t *testing.T) {
	if _, err := Dir(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{}); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDirCanceled(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, filepath.Join(dir, "a.wav"), rate)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Dir(ctx, dir, Options{Chunk: time.Second})
	if err == nil {
		t.Error("expected context error")
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
