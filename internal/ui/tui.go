// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the browser
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/spectra/internal/library"
)

// Run creates the browser program. The caller starts it with Run.
func Run(tracks []library.Track, deps Deps) *tea.Program {
	return tea.NewProgram(NewModel(tracks, deps), tea.WithAltScreen())
}
