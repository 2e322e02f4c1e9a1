// ABOUTME: Splits long recordings into fixed-length WAV chunks
// ABOUTME: Writes <base>_chunk<i>.wav files under <dir>/split_audio
package splitter

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/spectra/pkg/audio/decode"
	"github.com/harperreed/spectra/pkg/audio/encode"
)

const (
	// DefaultChunk is the length of each output chunk
	DefaultChunk = 30 * time.Second
	// OutputDirName is the folder created inside the input directory
	OutputDirName = "split_audio"
)

// Options controls a split run
type Options struct {
	Chunk time.Duration
	// OutputDir defaults to <dir>/split_audio
	OutputDir string
}

// Result describes what happened to one input file
type Result struct {
	Path    string
	Chunks  []string
	Skipped bool
	Err     error
}

// Dir splits every supported audio file directly inside dir. Files shorter
// than one chunk are skipped and trailing partial chunks are dropped.
func Dir(ctx context.Context, dir string, opts Options) ([]Result, error) {
	if opts.Chunk <= 0 {
		opts.Chunk = DefaultChunk
	}
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Join(dir, OutputDirName)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && decode.Supported(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make([]Result, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := File(path, opts.OutputDir, opts.Chunk)
		if res.Err != nil {
			log.Printf("Error processing %s: %v", filepath.Base(path), res.Err)
		}
		results = append(results, res)
	}
	return results, nil
}

// File splits a single audio file into outDir
func File(path, outDir string, chunk time.Duration) Result {
	res := Result{Path: path}

	buf, err := decode.File(path)
	if err != nil {
		res.Err = err
		return res
	}

	frames := int(chunk.Seconds() * float64(buf.Format.SampleRate))
	if frames <= 0 {
		res.Err = fmt.Errorf("chunk length %v is too short", chunk)
		return res
	}
	n := buf.Frames() / frames
	if n == 0 {
		log.Printf("Skipping %s: not enough data for a %v chunk", filepath.Base(path), chunk)
		res.Skipped = true
		return res
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := range n {
		name := fmt.Sprintf("%s_chunk%d.wav", base, i+1)
		out := filepath.Join(outDir, name)
		if err := encode.WriteWAVFile(out, buf.Slice(i*frames, (i+1)*frames)); err != nil {
			res.Err = fmt.Errorf("failed to write %s: %w", name, err)
			return res
		}
		log.Printf("Exported %s", name)
		res.Chunks = append(res.Chunks, out)
	}
	return res
}
