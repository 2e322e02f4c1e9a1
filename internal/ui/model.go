// ABOUTME: Bubbletea model for the track browser
// ABOUTME: Lists tracks, runs detection and toggles playback from key presses
package ui

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/spectra/internal/library"
	"github.com/harperreed/spectra/pkg/detect"
)

const (
	coverWidth = 24
	coverRows  = 12
)

// Detector generates spectrograms and classifies them
type Detector interface {
	GenerateSpectrogram(audioPath string) (string, error)
	Predict(imagePath string) (detect.Label, error)
}

// Playback plays one track at a time
type Playback interface {
	Play(path string) (<-chan struct{}, error)
	Stop()
}

// Volume adjusts the playback level
type Volume interface {
	SetVolume(volume int)
	SetMuted(muted bool)
}

// Covers renders cover art thumbnails
type Covers interface {
	Thumbnail(name string, width, rows int) (string, error)
}

// Deps are the collaborators the browser drives
type Deps struct {
	Detector Detector
	Playback Playback
	Volume   Volume
	Covers   Covers
}

// Model represents the browser state
type Model struct {
	deps   Deps
	tracks []library.Track
	cursor int

	// Playback
	playback PlaybackState
	playSeq  int
	volume   int
	muted    bool

	// Detection
	results map[string]detect.Label
	busy    string
	status  string
	cover   string

	// Dimensions
	width  int
	height int
}

// NewModel creates a browser over tracks
func NewModel(tracks []library.Track, deps Deps) Model {
	return Model{
		deps:    deps,
		tracks:  tracks,
		results: make(map[string]detect.Label),
		volume:  100,
		status:  "Select a track and press enter to run detection",
	}
}

// Playback returns the current playback state
func (m Model) Playback() PlaybackState {
	return m.playback
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case DetectionMsg:
		m.applyDetection(msg)
	case PlaybackMsg:
		return m.applyPlayback(msg)
	}

	return m, nil
}

// View renders the browser
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Spectrogram AI Detector"))
	b.WriteString("\n")

	list := m.renderList()
	panel := m.renderPanel()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", panel))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(
		"↑/↓:Select  enter:Detect  p:Play/Stop  +/-:Volume  m:Mute  g:Regenerate  q:Quit"))

	return b.String()
}

// renderList renders the track list with play and prediction markers
func (m Model) renderList() string {
	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color("238"))
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	if len(m.tracks) == 0 {
		return valueStyle.Render("No tracks found")
	}

	var lines []string
	for i, t := range m.tracks {
		icon := " "
		if m.playback.IsPlaying(t.Name) {
			icon = "▶"
		}
		line := fmt.Sprintf("%s %-30s", icon, truncate(t.Name, 30))
		if label, ok := m.results[t.Name]; ok {
			line += " " + labelStyle(label).Render(label.String())
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = valueStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderPanel renders the cover and detection result for the selection
func (m Model) renderPanel() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	var b strings.Builder
	if m.cover != "" {
		b.WriteString(m.cover)
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render("Prediction: "))
	if t, ok := m.selected(); ok {
		if label, ok := m.results[t.Name]; ok {
			b.WriteString(labelStyle(label).Render(label.String()))
		} else if m.busy == t.Name {
			b.WriteString("running...")
		} else {
			b.WriteString("None")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.renderVolume())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Render(m.status))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(b.String())
}

// renderVolume renders the volume bar
func (m Model) renderVolume() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}
	return fmt.Sprintf("Volume: [%s] %d%%%s", renderBar(m.volume, 100, 10), m.volume, muteIcon)
}

func labelStyle(label detect.Label) lipgloss.Style {
	if label == detect.AIGenerated {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.playback.Playing && m.deps.Playback != nil {
			m.deps.Playback.Stop()
		}
		m.playback = PlaybackState{}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tracks)-1 {
			m.cursor++
		}
	case "enter":
		return m.startDetection(false)
	case "g":
		return m.startDetection(true)
	case "p":
		return m.togglePlayback()
	case "+", "=":
		m.setVolume(m.volume + 5)
	case "-":
		m.setVolume(m.volume - 5)
	case "m":
		m.muted = !m.muted
		if m.deps.Volume != nil {
			m.deps.Volume.SetMuted(m.muted)
		}
	}

	return m, nil
}

func (m *Model) setVolume(volume int) {
	m.volume = max(0, min(100, volume))
	if m.deps.Volume != nil {
		m.deps.Volume.SetVolume(m.volume)
	}
}

func (m Model) selected() (library.Track, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tracks) {
		return library.Track{}, false
	}
	return m.tracks[m.cursor], true
}

// startDetection runs generation and prediction off the update loop
func (m Model) startDetection(regenerate bool) (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok || m.deps.Detector == nil {
		return m, nil
	}
	if m.busy != "" {
		m.status = fmt.Sprintf("Still working on %s", m.busy)
		return m, nil
	}
	if regenerate && !t.HasAudio() {
		m.status = fmt.Sprintf("%s has no audio to regenerate from", t.Name)
		return m, nil
	}

	m.busy = t.Name
	if regenerate {
		delete(m.results, t.Name)
		m.status = fmt.Sprintf("Regenerating spectrogram for %s", t.Name)
	} else {
		m.status = fmt.Sprintf("Running detection on %s", t.Name)
	}
	return m, detectCmd(m.deps, t, regenerate)
}

func detectCmd(deps Deps, t library.Track, regenerate bool) tea.Cmd {
	return func() tea.Msg {
		msg := DetectionMsg{Track: t.Name}

		imagePath := t.SpectrogramPath
		if regenerate || !t.HasSpectrogram() {
			path, err := deps.Detector.GenerateSpectrogram(t.AudioPath)
			if err != nil {
				msg.Err = fmt.Errorf("failed to generate spectrogram: %w", err)
				return msg
			}
			imagePath = path
			msg.Generated = true
		}

		msg.Label, msg.Err = deps.Detector.Predict(imagePath)
		if deps.Covers != nil {
			cover, err := deps.Covers.Thumbnail(t.Name, coverWidth, coverRows)
			if err != nil {
				log.Printf("Cover for %s: %v", t.Name, err)
			}
			msg.Cover = cover
		}
		return msg
	}
}

// applyDetection records a finished detection
func (m *Model) applyDetection(msg DetectionMsg) {
	if m.busy == msg.Track {
		m.busy = ""
	}
	if msg.Cover != "" {
		m.cover = msg.Cover
	}
	if msg.Err != nil {
		log.Printf("Detection failed for %s: %v", msg.Track, msg.Err)
		m.status = fmt.Sprintf("Error: %v", msg.Err)
		return
	}
	m.results[msg.Track] = msg.Label
	log.Printf("Prediction for %s: %s", msg.Track, msg.Label)
	m.status = fmt.Sprintf("%s: %s", msg.Track, msg.Label)
	if msg.Generated {
		m.status += " (spectrogram generated)"
	}
}

// togglePlayback starts or stops the selected track
func (m Model) togglePlayback() (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok || m.deps.Playback == nil {
		return m, nil
	}
	if !t.HasAudio() {
		m.status = fmt.Sprintf("%s has no audio file", t.Name)
		return m, nil
	}

	next := m.playback.Toggle(t.Name)
	if !next.Playing {
		m.deps.Playback.Stop()
		m.playback = next
		m.status = fmt.Sprintf("Stopped %s", t.Name)
		return m, nil
	}

	done, err := m.deps.Playback.Play(t.AudioPath)
	if err != nil {
		m.playback = PlaybackState{}
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}
	m.playback = next
	m.playSeq++
	m.status = fmt.Sprintf("Playing %s", t.Name)
	return m, waitForEnd(t.Name, m.playSeq, done)
}

func waitForEnd(track string, seq int, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return PlaybackMsg{Track: track, Seq: seq, Finished: true}
	}
}

// applyPlayback clears the playing marker when the latest track ends
func (m Model) applyPlayback(msg PlaybackMsg) (tea.Model, tea.Cmd) {
	if msg.Finished && msg.Seq == m.playSeq {
		m.playback = m.playback.Finished(msg.Track)
	}
	return m, nil
}

// DetectionMsg carries the result of a detection run
type DetectionMsg struct {
	Track     string
	Label     detect.Label
	Generated bool
	Cover     string
	Err       error
}

// PlaybackMsg reports playback progress
type PlaybackMsg struct {
	Track    string
	Seq      int
	Finished bool
}

// Utility functions
func renderBar(value, maxValue, width int) string {
	filled := value * width / maxValue
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len([]rune(s)) <= length {
		return s
	}
	return string([]rune(s)[:length-3]) + "..."
}
