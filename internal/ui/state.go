// ABOUTME: Playback state owned by the browser model
// ABOUTME: Toggling returns the next state instead of mutating shared globals
package ui

// PlaybackState records which track is playing, if any
type PlaybackState struct {
	Track   string
	Playing bool
}

// Toggle returns the state after pressing play on track: the same track
// stops, any other track starts and replaces the current one
func (s PlaybackState) Toggle(track string) PlaybackState {
	if s.Playing && s.Track == track {
		return PlaybackState{}
	}
	return PlaybackState{Track: track, Playing: true}
}

// Finished returns the state after track ends on its own
func (s PlaybackState) Finished(track string) PlaybackState {
	if s.Track != track {
		return s
	}
	return PlaybackState{}
}

// IsPlaying reports whether track is the one playing
func (s PlaybackState) IsPlaying(track string) bool {
	return s.Playing && s.Track == track
}
