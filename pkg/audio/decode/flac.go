// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC streams frame by frame to int32 samples
package decode

import (
	"fmt"
	"io"

	"github.com/harperreed/spectra/pkg/audio"
	"github.com/mewkiz/flac"
)

// FLACDecoder decodes FLAC audio
type FLACDecoder struct{}

// NewFLAC creates a new FLAC decoder
func NewFLAC() *FLACDecoder {
	return &FLACDecoder{}
}

// Decode parses every frame of the stream and interleaves the subframes
func (d *FLACDecoder) Decode(r io.Reader) (audio.Buffer, error) {
	stream, err := flac.New(r)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("%w: failed to open flac stream: %w", ErrCorrupt, err)
	}

	bitDepth := int(stream.Info.BitsPerSample)
	channels := int(stream.Info.NChannels)
	samples := make([]int32, 0, int(stream.Info.NSamples)*channels)

	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return audio.Buffer{}, fmt.Errorf("%w: flac frame error: %w", ErrCorrupt, err)
		}

		for i := 0; i < int(frame.BlockSize); i++ {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, scaleTo24(frame.Subframes[ch].Samples[i], bitDepth))
			}
		}
	}

	return audio.Buffer{
		Samples: samples,
		Format: audio.Format{
			Codec:      "flac",
			SampleRate: int(stream.Info.SampleRate),
			Channels:   channels,
			BitDepth:   bitDepth,
		},
	}, nil
}

// scaleTo24 shifts a sample of the given bit depth into 24-bit range
func scaleTo24(sample int32, bitDepth int) int32 {
	switch {
	case bitDepth < 24:
		return sample << (24 - bitDepth)
	case bitDepth > 24:
		return sample >> (bitDepth - 24)
	default:
		return sample
	}
}
