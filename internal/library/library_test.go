// ABOUTME: Tests for track library scanning
// ABOUTME: Covers pairing, spectrogram-only tracks and missing directories
package library

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	dirs := Dirs{
		Audio:        filepath.Join(dir, "audio"),
		Spectrograms: filepath.Join(dir, "spec"),
		Covers:       filepath.Join(dir, "covers"),
	}
	touch(t, filepath.Join(dirs.Audio, "b-side.mp3"))
	touch(t, filepath.Join(dirs.Audio, "anthem.flac"))
	touch(t, filepath.Join(dirs.Audio, "readme.txt"))
	touch(t, filepath.Join(dirs.Spectrograms, "anthem.png"))
	touch(t, filepath.Join(dirs.Spectrograms, "orphan.png"))

	tracks, err := Scan(dirs)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	tests := []struct {
		name           string
		hasAudio       bool
		hasSpectrogram bool
	}{
		{"anthem", true, true},
		{"b-side", true, false},
		{"orphan", false, true},
	}
	if len(tracks) != len(tests) {
		t.Fatalf("expected %d tracks, got %d", len(tests), len(tracks))
	}
	for i, tt := range tests {
		tr := tracks[i]
		if tr.Name != tt.name {
			t.Errorf("track %d: expected %s, got %s", i, tt.name, tr.Name)
		}
		if tr.HasAudio() != tt.hasAudio {
			t.Errorf("%s: expected HasAudio %v", tt.name, tt.hasAudio)
		}
		if tr.HasSpectrogram() != tt.hasSpectrogram {
			t.Errorf("%s: expected HasSpectrogram %v", tt.name, tt.hasSpectrogram)
		}
	}

	if want := filepath.Join(dirs.Spectrograms, "b-side.png"); tracks[1].SpectrogramPath != want {
		t.Errorf("expected spectrogram path %s, got %s", want, tracks[1].SpectrogramPath)
	}
}

func TestScanMissingDirs(t *testing.T) {
	dir := t.TempDir()
	tracks, err := Scan(Dirs{Audio: filepath.Join(dir, "nope"), Spectrograms: filepath.Join(dir, "nada")})
	if err != nil {
		t.Fatalf("expected missing directories to be empty, got %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("expected no tracks, got %d", len(tracks))
	}
}
