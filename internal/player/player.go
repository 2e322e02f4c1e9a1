// ABOUTME: Local file playback for the browser
// ABOUTME: Decodes a track, converts it to the output format and streams it to the device
package player

import (
	"fmt"
	"log"
	"sync"

	"github.com/harperreed/spectra/pkg/audio/decode"
	"github.com/harperreed/spectra/pkg/audio/output"
	"github.com/harperreed/spectra/pkg/audio/resample"
)

const (
	// DefaultSampleRate is the device rate every track is converted to
	DefaultSampleRate = 44100
	// DefaultChannels is the device channel count
	DefaultChannels = 2

	chunkFrames = 4096
)

// Player plays one track at a time. Starting a track stops the previous one.
type Player struct {
	out        output.Output
	sampleRate int
	channels   int

	mu      sync.Mutex
	current *playback
}

type playback struct {
	track string
	stop  chan struct{}
	done  chan struct{}
}

// New creates a player writing to out at the default device format
func New(out output.Output) *Player {
	return &Player{
		out:        out,
		sampleRate: DefaultSampleRate,
		channels:   DefaultChannels,
	}
}

// Play starts the audio file at path. The returned channel is closed when
// playback finishes or is stopped.
func (p *Player) Play(path string) (<-chan struct{}, error) {
	p.Stop()

	buf, err := decode.File(path)
	if err != nil {
		return nil, err
	}
	buf = resample.Buffer(buf, p.sampleRate, p.channels)

	if err := p.out.Open(p.sampleRate, p.channels); err != nil {
		return nil, fmt.Errorf("failed to open output: %w", err)
	}

	pb := &playback{
		track: path,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	p.mu.Lock()
	p.current = pb
	p.mu.Unlock()

	log.Printf("Playing %s (%v)", path, buf.Duration())

	go func() {
		defer close(pb.done)
		frames := buf.Frames()
		for start := 0; start < frames; start += chunkFrames {
			select {
			case <-pb.stop:
				log.Printf("Stopped %s", path)
				return
			default:
			}
			if err := p.out.Write(buf.Slice(start, start+chunkFrames).Samples); err != nil {
				log.Printf("Playback error: %v", err)
				return
			}
		}
		log.Printf("Finished %s", path)
	}()

	return pb.done, nil
}

// Stop halts the current track and waits for its writer to exit
func (p *Player) Stop() {
	p.mu.Lock()
	pb := p.current
	p.current = nil
	p.mu.Unlock()

	if pb == nil {
		return
	}
	select {
	case <-pb.stop:
	default:
		close(pb.stop)
	}
	<-pb.done
}

// Playing returns the path of the active track, or ""
func (p *Player) Playing() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return ""
	}
	select {
	case <-p.current.done:
		return ""
	default:
		return p.current.track
	}
}

// SetVolume sets the output volume (0-100) when the output supports it
func (p *Player) SetVolume(volume int) {
	if vc, ok := p.out.(output.VolumeControl); ok {
		vc.SetVolume(volume)
	}
}

// SetMuted mutes or unmutes the output when it supports it
func (p *Player) SetMuted(muted bool) {
	if vc, ok := p.out.(output.VolumeControl); ok {
		vc.SetMuted(muted)
	}
}

// Close stops playback and releases the device
func (p *Player) Close() error {
	p.Stop()
	return p.out.Close()
}
