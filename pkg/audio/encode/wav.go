// ABOUTME: WAV file writer
// ABOUTME: Streams a PCM buffer through beep's wav encoder as 16 or 24-bit RIFF WAVE
package encode

import (
	"fmt"
	"io"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/harperreed/spectra/pkg/audio"
)

// WriteWAV encodes a mono or stereo buffer as WAV. 24-bit buffers keep
// their depth; everything else is written as 16-bit.
func WriteWAV(w io.WriteSeeker, buf audio.Buffer) error {
	ch := buf.Format.Channels
	if ch < 1 || ch > 2 {
		return fmt.Errorf("unsupported channel count for wav: %d", ch)
	}
	if buf.Format.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", buf.Format.SampleRate)
	}

	precision := 2
	if buf.Format.BitDepth == 24 {
		precision = 3
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(buf.Format.SampleRate),
		NumChannels: ch,
		Precision:   precision,
	}
	if err := wav.Encode(w, &bufferStreamer{buf: buf}, format); err != nil {
		return fmt.Errorf("failed to encode wav: %w", err)
	}
	return nil
}

// WriteWAVFile creates path and writes buf to it as WAV
func WriteWAVFile(path string, buf audio.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create wav file: %w", err)
	}

	if err := WriteWAV(f, buf); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// bufferStreamer exposes an audio.Buffer as a beep.Streamer
type bufferStreamer struct {
	buf audio.Buffer
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	ch := s.buf.Format.Channels
	frames := s.buf.Frames()
	if s.pos >= frames {
		return 0, false
	}

	n := 0
	for n < len(samples) && s.pos < frames {
		left := audio.SampleToFloat(s.buf.Samples[s.pos*ch])
		right := left
		if ch > 1 {
			right = audio.SampleToFloat(s.buf.Samples[s.pos*ch+1])
		}
		samples[n] = [2]float64{left, right}
		n++
		s.pos++
	}
	return n, true
}

func (s *bufferStreamer) Err() error {
	return nil
}
