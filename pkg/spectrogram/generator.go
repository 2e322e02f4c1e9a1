// ABOUTME: Spectrogram file generator
// ABOUTME: Decodes audio files, renders them and writes PNGs singly or in batches
package spectrogram

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/harperreed/spectra/pkg/audio"
	"github.com/harperreed/spectra/pkg/audio/decode"
	"golang.org/x/sync/errgroup"
)

// Generator writes spectrogram images for audio files
type Generator struct {
	cfg       Config
	outputDir string
}

// NewGenerator creates a generator that writes into outputDir
func NewGenerator(cfg Config, outputDir string) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spectrogram config: %w", err)
	}
	return &Generator{cfg: cfg, outputDir: outputDir}, nil
}

// Config returns the generator's configuration
func (g *Generator) Config() Config {
	return g.cfg
}

// OutputPath returns where Generate writes the image for audioPath
func (g *Generator) OutputPath(audioPath string) string {
	return filepath.Join(g.outputDir, ImageName(audioPath))
}

// ImageName returns the PNG file name for an audio file
func ImageName(audioPath string) string {
	base := filepath.Base(audioPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}

// Image renders a waveform
func (g *Generator) Image(w audio.Waveform) (*image.Gray, error) {
	frame, err := Compute(w, g.cfg)
	if err != nil {
		return nil, err
	}
	return Render(frame, g.cfg), nil
}

// Generate writes <outputDir>/<basename>.png for the audio file and returns its path
func (g *Generator) Generate(audioPath string) (string, error) {
	out := g.OutputPath(audioPath)
	if err := g.GenerateTo(audioPath, out); err != nil {
		return "", err
	}
	return out, nil
}

// GenerateTo writes the spectrogram for audioPath to outputPath, replacing any existing file
func (g *Generator) GenerateTo(audioPath, outputPath string) error {
	wave, err := decode.Waveform(audioPath)
	if err != nil {
		return err
	}

	img, err := g.Image(wave)
	if err != nil {
		return fmt.Errorf("%s: %w", audioPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return writePNG(outputPath, img)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}

// BatchOptions controls directory generation
type BatchOptions struct {
	Workers   int
	Recursive bool
	// Progress is called after each file, from worker goroutines
	Progress func(audioPath string, err error)
}

// Failure records a file that could not be converted
type Failure struct {
	Path string
	Err  error
}

// Report summarizes a batch run
type Report struct {
	Generated []string
	Failed    []Failure
}

// GenerateDir converts every supported audio file under inDir, mirroring the
// directory structure under outDir. Per-file failures are logged and
// recorded in the report; the batch always continues.
func (g *Generator) GenerateDir(ctx context.Context, inDir, outDir string, opts BatchOptions) (*Report, error) {
	jobs, err := collectAudio(inDir, opts.Recursive)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		mu     sync.Mutex
		report Report
		eg     errgroup.Group
	)
	eg.SetLimit(workers)

	for _, rel := range jobs {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			src := filepath.Join(inDir, rel)
			dst := filepath.Join(outDir, filepath.Dir(rel), ImageName(rel))

			err := g.GenerateTo(src, dst)

			mu.Lock()
			if err != nil {
				log.Printf("Error processing %s: %v", src, err)
				report.Failed = append(report.Failed, Failure{Path: src, Err: err})
			} else {
				log.Printf("Saved spectrogram: %s", dst)
				report.Generated = append(report.Generated, dst)
			}
			mu.Unlock()

			if opts.Progress != nil {
				opts.Progress(src, err)
			}
			return nil
		})
	}
	eg.Wait()

	sort.Strings(report.Generated)
	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].Path < report.Failed[j].Path })

	if err := ctx.Err(); err != nil {
		return &report, err
	}
	return &report, nil
}

// collectAudio lists supported audio files relative to dir in lexical order
func collectAudio(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !decode.Supported(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return files, nil
}
