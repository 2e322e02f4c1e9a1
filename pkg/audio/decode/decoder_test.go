// ABOUTME: Tests for decoder dispatch
// ABOUTME: Tests extension mapping and DecodeFailure wrapping for bad inputs
package decode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCodecForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
		wantErr  bool
	}{
		{"song.mp3", "mp3", false},
		{"SONG.MP3", "mp3", false},
		{"dir/track.flac", "flac", false},
		{"clip.wav", "wav", false},
		{"voice.opus", "opus", false},
		{"voice.ogg", "opus", false},
		{"notes.txt", "", true},
		{"noextension", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			codec, err := CodecForPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupported) {
					t.Fatalf("expected ErrUnsupported, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if codec != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, codec)
			}
			if !Supported(tt.path) {
				t.Errorf("expected %s to be supported", tt.path)
			}
		})
	}
}

func TestNew_Unsupported(t *testing.T) {
	dec, err := New("aac")
	if err == nil {
		t.Fatal("expected error for unsupported codec, got nil")
	}
	if dec != nil {
		t.Fatal("expected decoder to be nil for unsupported codec")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestFile_Failures(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(corrupt, []byte("not a riff file at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	unsupported := filepath.Join(dir, "readme.txt")
	if err := os.WriteFile(unsupported, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		is   error
	}{
		{"missing file", filepath.Join(dir, "missing.mp3"), os.ErrNotExist},
		{"corrupt wav", corrupt, ErrCorrupt},
		{"unsupported extension", unsupported, ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := File(tt.path)
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
			if !errors.Is(err, tt.is) {
				t.Errorf("expected %v in chain, got %v", tt.is, err)
			}
		})
	}
}
