// ABOUTME: Tests for cover lookup and thumbnail rendering
// ABOUTME: Tests placeholder fallback, caching and half-block dimensions
package artwork

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func writeImage(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if filepath.Ext(path) == ".png" {
		err = png.Encode(f, img)
	} else {
		err = jpeg.Encode(f, img, nil)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "song.jpeg"), color.White)
	writeImage(t, filepath.Join(dir, "other.png"), color.Black)

	r := NewResolver(dir)

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"song", filepath.Join(dir, "song.jpeg"), false},
		{"other", filepath.Join(dir, "other.png"), false},
		{"missing", "", true},
	}
	for _, tt := range tests {
		got, err := r.Path(tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrNoCover) {
				t.Errorf("%s: expected ErrNoCover, got %v", tt.name, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%s: expected %s, got %s (%v)", tt.name, tt.want, got, err)
		}
	}

	writeImage(t, filepath.Join(dir, Placeholder+".jpeg"), color.Gray{Y: 128})
	got, err := r.Path("missing")
	if err != nil {
		t.Fatalf("expected placeholder, got %v", err)
	}
	if got != filepath.Join(dir, "placeholder.jpeg") {
		t.Errorf("expected placeholder path, got %s", got)
	}
}

func TestThumbnail(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "song.png"), color.RGBA{R: 200, A: 255})
	r := NewResolver(dir)

	thumb, err := r.Thumbnail("song", 6, 3)
	if err != nil {
		t.Fatalf("thumbnail failed: %v", err)
	}
	lines := strings.Split(thumb, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("line %d: expected width 6, got %d", i, w)
		}
	}

	again, err := r.Thumbnail("song", 6, 3)
	if err != nil || again != thumb {
		t.Error("expected cached thumbnail to match")
	}
	if len(r.cache) != 1 {
		t.Errorf("expected 1 cache entry, got %d", len(r.cache))
	}
}

func TestThumbnailCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.jpeg"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewResolver(dir).Thumbnail("bad", 4, 2); err == nil {
		t.Error("expected decode error")
	}
}

func TestRenderEmpty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if got := Render(img, 0, 4); got != "" {
		t.Errorf("expected empty render, got %q", got)
	}
}
