// ABOUTME: Decoder interface definition and file dispatch
// ABOUTME: Maps file extensions to codecs and decodes whole files into buffers
package decode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/spectra/pkg/audio"
)

var (
	// ErrDecode wraps every failure to turn a file into audio
	ErrDecode = errors.New("audio decode failed")
	// ErrUnsupported is returned for file types no decoder handles
	ErrUnsupported = errors.New("unsupported audio format")
	// ErrCorrupt is returned when a stream cannot be parsed
	ErrCorrupt = errors.New("corrupt audio stream")
	// ErrNoSamples is returned when a stream decodes to zero samples
	ErrNoSamples = errors.New("decoded audio contains no samples")
)

// Decoder decodes a complete encoded stream to PCM
type Decoder interface {
	Decode(r io.Reader) (audio.Buffer, error)
}

var extensions = map[string]string{
	".mp3":  "mp3",
	".flac": "flac",
	".wav":  "wav",
	".wave": "wav",
	".opus": "opus",
	".ogg":  "opus",
}

// New creates a decoder for the named codec
func New(codec string) (Decoder, error) {
	switch codec {
	case "mp3":
		return NewMP3(), nil
	case "flac":
		return NewFLAC(), nil
	case "wav":
		return NewWAV(), nil
	case "opus":
		return NewOpus(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, codec)
	}
}

// CodecForPath returns the codec for a file based on its extension
func CodecForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	codec, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	return codec, nil
}

// Supported reports whether path has an extension a decoder handles
func Supported(path string) bool {
	_, err := CodecForPath(path)
	return err == nil
}

// File decodes an audio file into a PCM buffer
func File(path string) (audio.Buffer, error) {
	codec, err := CodecForPath(path)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	dec, err := New(codec)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("%w: failed to open audio file: %w", ErrDecode, err)
	}
	defer f.Close()

	buf, err := dec.Decode(f)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	if buf.Frames() == 0 {
		return audio.Buffer{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, ErrNoSamples)
	}

	return buf, nil
}

// Waveform decodes an audio file and mixes it down to mono
func Waveform(path string) (audio.Waveform, error) {
	buf, err := File(path)
	if err != nil {
		return audio.Waveform{}, err
	}
	return buf.Mono(), nil
}
