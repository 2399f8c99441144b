// Package status renders the one-line status bar shown under the chat view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/keymap"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/styles"
)

// State selects what the left side of the bar reports.
type State string

const (
	StateReady    State = "ready"
	StateThinking State = "thinking"
	StateError    State = "error"
	StateHelp     State = "help"
	StateAnswered State = "answered"
)

// Bar shows the current activity on the left and key hints on the right.
// It is passive: the owning view drives it through the setters and calls
// View when composing its own output.
type Bar struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	state         State
	message       string
	citationCount int
	width         int
}

// NewBar creates a status bar. Nil styles or keymap fall back to defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the bar at the configured width.
func (s *Bar) View() string {
	left := s.renderState()
	right := s.renderHints()

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderState produces the left segment for the current state.
func (s *Bar) renderState() string {
	switch s.state {
	case StateThinking:
		return s.styles.Muted.Render("Thinking...")

	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)

	case StateHelp:
		return s.styles.Normal.Render("Help")
	}

	if s.citationCount == 1 {
		return s.styles.Normal.Render("1 citation")
	}
	if s.citationCount > 1 {
		return s.styles.Normal.Render(fmt.Sprintf("%d citations", s.citationCount))
	}
	return s.styles.Muted.Render("Ready")
}

// renderHints produces the key hint segment. An answered question with
// citations switches to the answer bindings.
func (s *Bar) renderHints() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateAnswered && s.citationCount > 0 {
		bindings = s.keymap.AnswerHelp()
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return s.styles.Muted.Render(strings.Join(parts, " • "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the detail text shown in the error state.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCitationCount sets how many citations the last answer carried.
func (s *Bar) SetCitationCount(count int) {
	s.citationCount = count
}

// CitationCount returns the current citation count.
func (s *Bar) CitationCount() int {
	return s.citationCount
}

// SetWidth sets the render width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the render width.
func (s *Bar) Width() int {
	return s.width
}

// Clear returns the bar to the ready state with no message or citations.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.citationCount = 0
}
