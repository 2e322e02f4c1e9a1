// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 streams to int32 samples via go-mp3
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/harperreed/spectra/pkg/audio"
)

// MP3Decoder decodes MP3 audio
type MP3Decoder struct{}

// NewMP3 creates a new MP3 decoder
func NewMP3() *MP3Decoder {
	return &MP3Decoder{}
}

// Decode reads the whole MP3 stream. go-mp3 always produces 16-bit stereo.
func (d *MP3Decoder) Decode(r io.Reader) (audio.Buffer, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("%w: failed to create mp3 decoder: %w", ErrCorrupt, err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("%w: mp3 decode error: %w", ErrCorrupt, err)
	}

	return audio.Buffer{
		Samples: pcm16ToSamples(pcm),
		Format: audio.Format{
			Codec:      "mp3",
			SampleRate: decoder.SampleRate(),
			Channels:   2,
			BitDepth:   16,
		},
	}, nil
}

// pcm16ToSamples converts little-endian 16-bit PCM bytes to 24-bit samples
func pcm16ToSamples(data []byte) []int32 {
	numSamples := len(data) / 2
	samples := make([]int32, numSamples)
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = audio.SampleFromInt16(sample16)
	}
	return samples
}
