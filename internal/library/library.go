// ABOUTME: Track library scanning for the browser
// ABOUTME: Pairs audio files with their spectrogram and cover art by name
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harperreed/spectra/pkg/audio/decode"
	"github.com/harperreed/spectra/pkg/spectrogram"
)

// Dirs locates the library content
type Dirs struct {
	Audio        string
	Spectrograms string
	Covers       string
}

// Track is one entry in the browser list
type Track struct {
	Name            string
	AudioPath       string // empty when only a spectrogram exists
	SpectrogramPath string
}

// HasAudio reports whether the track can be played
func (t Track) HasAudio() bool {
	return t.AudioPath != ""
}

// HasSpectrogram reports whether the spectrogram image is on disk
func (t Track) HasSpectrogram() bool {
	_, err := os.Stat(t.SpectrogramPath)
	return err == nil
}

// Scan lists every playable audio file plus any spectrogram without audio,
// sorted by name
func Scan(dirs Dirs) ([]Track, error) {
	tracks := map[string]*Track{}

	audioEntries, err := readDir(dirs.Audio)
	if err != nil {
		return nil, fmt.Errorf("failed to scan audio: %w", err)
	}
	for _, e := range audioEntries {
		if e.IsDir() || !decode.Supported(e.Name()) {
			continue
		}
		name := trimExt(e.Name())
		if _, dup := tracks[name]; dup {
			continue
		}
		tracks[name] = &Track{
			Name:            name,
			AudioPath:       filepath.Join(dirs.Audio, e.Name()),
			SpectrogramPath: filepath.Join(dirs.Spectrograms, spectrogram.ImageName(e.Name())),
		}
	}

	imageEntries, err := readDir(dirs.Spectrograms)
	if err != nil {
		return nil, fmt.Errorf("failed to scan spectrograms: %w", err)
	}
	for _, e := range imageEntries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		name := trimExt(e.Name())
		if _, ok := tracks[name]; ok {
			continue
		}
		tracks[name] = &Track{
			Name:            name,
			SpectrogramPath: filepath.Join(dirs.Spectrograms, e.Name()),
		}
	}

	out := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// readDir treats a missing directory as empty
func readDir(dir string) ([]os.DirEntry, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return entries, err
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
