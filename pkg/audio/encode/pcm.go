// ABOUTME: PCM byte packing
// ABOUTME: Encodes int32 samples to 16-bit or 24-bit little-endian PCM bytes
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/harperreed/spectra/pkg/audio"
)

// PCM packs samples into little-endian PCM bytes of the given bit depth
func PCM(samples []int32, bitDepth int) ([]byte, error) {
	switch bitDepth {
	case 16:
		output := make([]byte, len(samples)*2)
		for i, sample := range samples {
			binary.LittleEndian.PutUint16(output[i*2:], uint16(audio.SampleToInt16(sample)))
		}
		return output, nil
	case 24:
		output := make([]byte, len(samples)*3)
		for i, sample := range samples {
			b := audio.SampleTo24Bit(sample)
			copy(output[i*3:], b[:])
		}
		return output, nil
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", bitDepth)
	}
}
