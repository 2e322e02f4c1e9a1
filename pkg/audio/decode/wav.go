// ABOUTME: WAV audio decoder
// ABOUTME: Decodes RIFF WAVE files through beep's wav streamer
package decode

import (
	"fmt"
	"io"
	"math"

	"github.com/faiface/beep/wav"
	"github.com/harperreed/spectra/pkg/audio"
)

// WAVDecoder decodes WAV audio
type WAVDecoder struct{}

// NewWAV creates a new WAV decoder
func NewWAV() *WAVDecoder {
	return &WAVDecoder{}
}

// fullScaleGain corrects beep's signed decoding, which divides by 2^bits-1
// where its encoder multiplies by 2^(bits-1)-1, back to full scale.
func fullScaleGain(precision int) float64 {
	if precision < 2 {
		return 1
	}
	bits := float64(precision * 8)
	return (math.Exp2(bits) - 1) / math.Exp2(bits-1)
}

// Decode drains the wav streamer. Mono files keep one channel.
func (d *WAVDecoder) Decode(r io.Reader) (audio.Buffer, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("%w: failed to open wav stream: %w", ErrCorrupt, err)
	}
	defer streamer.Close()

	channels := format.NumChannels
	if channels < 1 {
		channels = 1
	}

	gain := fullScaleGain(format.Precision)

	var samples []int32
	chunk := make([][2]float64, 4096)
	for {
		n, ok := streamer.Stream(chunk)
		for i := 0; i < n; i++ {
			samples = append(samples, audio.SampleFromFloat(chunk[i][0]*gain))
			if channels > 1 {
				samples = append(samples, audio.SampleFromFloat(chunk[i][1]*gain))
			}
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return audio.Buffer{}, fmt.Errorf("%w: wav decode error: %w", ErrCorrupt, err)
	}

	return audio.Buffer{
		Samples: samples,
		Format: audio.Format{
			Codec:      "wav",
			SampleRate: int(format.SampleRate),
			Channels:   min(channels, 2),
			BitDepth:   format.Precision * 8,
		},
	}, nil
}
