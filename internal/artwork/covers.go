// ABOUTME: Cover art lookup and terminal thumbnails
// ABOUTME: Resolves <covers>/<name>.jpeg with a placeholder fallback and renders half-block images
package artwork

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// Placeholder is the cover used for tracks without their own art
const Placeholder = "placeholder"

var extensions = []string{".jpeg", ".jpg", ".png"}

// ErrNoCover is returned when neither the track cover nor the placeholder exists
var ErrNoCover = errors.New("no cover art")

// Resolver finds cover images and caches rendered thumbnails
type Resolver struct {
	dir   string
	mu    sync.Mutex
	cache map[string]string
}

// NewResolver creates a resolver for covers stored in dir
func NewResolver(dir string) *Resolver {
	return &Resolver{
		dir:   dir,
		cache: make(map[string]string),
	}
}

// Path returns the cover for a track, falling back to the placeholder
func (r *Resolver) Path(name string) (string, error) {
	if p := r.find(name); p != "" {
		return p, nil
	}
	if p := r.find(Placeholder); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoCover, name)
}

func (r *Resolver) find(name string) string {
	if r.dir == "" {
		return ""
	}
	for _, ext := range extensions {
		p := filepath.Join(r.dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Thumbnail renders the track cover as width columns by rows lines of
// half-block characters. Results are cached per cover file and size.
func (r *Resolver) Thumbnail(name string, width, rows int) (string, error) {
	path, err := r.Path(name)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s@%dx%d", path, width, rows)
	r.mu.Lock()
	cached, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	img, err := load(path)
	if err != nil {
		return "", err
	}
	out := Render(img, width, rows)

	r.mu.Lock()
	r.cache[key] = out
	r.mu.Unlock()
	log.Printf("Rendered cover %s at %dx%d", path, width, rows)
	return out, nil
}

func load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cover: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cover %s: %w", path, err)
	}
	return img, nil
}

// Render draws img with one upper half block per cell: the foreground is
// the top pixel and the background the bottom one
func Render(img image.Image, width, rows int) string {
	if width <= 0 || rows <= 0 {
		return ""
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().
				Foreground(hex(dst, x, 2*y)).
				Background(hex(dst, x, 2*y+1))
			b.WriteString(style.Render("▀"))
		}
		if y < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func hex(img *image.RGBA, x, y int) lipgloss.Color {
	c := img.RGBAAt(x, y)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
