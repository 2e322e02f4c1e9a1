// ABOUTME: Oto-based audio output implementation
// ABOUTME: Handles PCM playback with software volume control using oto library
package output

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/harperreed/spectra/pkg/audio"
	"github.com/harperreed/spectra/pkg/audio/encode"
)

const (
	Max = audio.Max24Bit
	Min = audio.Min24Bit
)

// Oto output implementation using oto library
type Oto struct {
	mu         sync.Mutex
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	volume     int
	muted      bool
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{volume: 100}
}

// Open initializes the output device. oto permits one context per process,
// so a second Open with a different format keeps the first one.
func (o *Oto) Open(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx != nil {
		if o.sampleRate != sampleRate || o.channels != channels {
			log.Printf("Warning: output already open at %dHz %dch, ignoring %dHz %dch",
				o.sampleRate, o.channels, sampleRate, channels)
		}
		return nil
	}

	ctx, readyChan, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	// Persistent player fed through a pipe
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)
	return nil
}

// Write outputs audio samples (blocks until written)
func (o *Oto) Write(samples []int32) error {
	o.mu.Lock()
	writer := o.pipeWriter
	volume, muted := o.volume, o.muted
	o.mu.Unlock()

	if writer == nil {
		return fmt.Errorf("output not initialized")
	}

	data, err := encode.PCM(applyVolume(samples, volume, muted), 16)
	if err != nil {
		return err
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}
	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
	}
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.volume = max(0, min(100, volume))
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.muted = muted
}

// Volume returns current volume
func (o *Oto) Volume() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}
