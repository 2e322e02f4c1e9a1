// ABOUTME: Ogg Opus audio decoder
// ABOUTME: Decodes Ogg-encapsulated Opus files to int32 samples at 48kHz
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/harperreed/spectra/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

const (
	opusSampleRate   = 48000
	opusMaxFrameSize = 5760 // 120ms at 48kHz
)

// OpusDecoder decodes Ogg Opus audio
type OpusDecoder struct{}

// NewOpus creates a new Opus decoder
func NewOpus() *OpusDecoder {
	return &OpusDecoder{}
}

// Decode reads the full Ogg stream. Opus always decodes at 48kHz.
func (d *OpusDecoder) Decode(r io.Reader) (audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("failed to read opus stream: %w", err)
	}

	channels, err := opusChannels(data)
	if err != nil {
		return audio.Buffer{}, err
	}

	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("%w: failed to create opus stream: %w", ErrCorrupt, err)
	}
	defer stream.Close()

	var samples []int32
	pcm := make([]int16, opusMaxFrameSize*channels)
	for {
		n, err := stream.Read(pcm)
		if err == io.EOF {
			break
		}
		if err != nil {
			return audio.Buffer{}, fmt.Errorf("%w: opus decode failed: %w", ErrCorrupt, err)
		}
		for i := 0; i < n*channels; i++ {
			samples = append(samples, audio.SampleFromInt16(pcm[i]))
		}
	}

	return audio.Buffer{
		Samples: samples,
		Format: audio.Format{
			Codec:      "opus",
			SampleRate: opusSampleRate,
			Channels:   channels,
			BitDepth:   16,
		},
	}, nil
}

// opusChannels reads the channel count from the OpusHead identification header
func opusChannels(data []byte) (int, error) {
	idx := bytes.Index(data, []byte("OpusHead"))
	if idx < 0 || len(data) < idx+10 {
		return 0, fmt.Errorf("%w: missing OpusHead header", ErrCorrupt)
	}
	channels := int(data[idx+9])
	if channels < 1 || channels > 2 {
		return 0, fmt.Errorf("%w: %d opus channels", ErrUnsupported, channels)
	}
	return channels, nil
}
