// Package status draws the one-line bar under every view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/styles"
)

// State selects what the left side of the bar shows.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateInfo    State = "info"
)

// Bar shows a message or the open document on the left and key hints on
// the right. It is passive; the app pushes state into it.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	hints    []key.Binding
	state    State
	message  string
	document string
	elements int
	width    int
}

// NewBar returns a ready bar 80 columns wide.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

func (s *Bar) View() string {
	left, right := s.status(), s.keyHints()
	gap := s.width - s.styles.StatusBar.GetHorizontalFrameSize() -
		lipgloss.Width(left) - lipgloss.Width(right)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", max(gap, 1)) + right)
}

func (s *Bar) status() string {
	switch {
	case s.state == StateLoading:
		return s.styles.Muted.Render("Loading...")
	case s.state == StateError && s.message == "":
		return s.styles.Error.Render("Error")
	case s.state == StateError:
		return s.styles.Error.Render("Error: " + s.message)
	case s.state == StateInfo && s.message != "":
		return s.styles.Success.Render(s.message)
	case s.document != "":
		return s.styles.Normal.Render(fmt.Sprintf("%s  %d elements", s.document, s.elements))
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) keyHints() string {
	bindings := s.hints
	if len(bindings) == 0 {
		bindings = s.keymap.ShortHelp()
	}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b.Help().Key + ": " + b.Help().Desc
	}
	return s.styles.Muted.Render(strings.Join(parts, " | "))
}

func (s *Bar) SetState(state State) { s.state = state }
func (s *Bar) State() State         { return s.state }
func (s *Bar) Message() string      { return s.message }

// SetError shows err. A nil error only clears an error state, so a
// pending info message survives.
func (s *Bar) SetError(err error) {
	if err != nil {
		s.state, s.message = StateError, err.Error()
		return
	}
	if s.state == StateError {
		s.Clear()
	}
}

func (s *Bar) SetInfo(message string) {
	s.state, s.message = StateInfo, message
}

// SetDocument names the open document. An empty name means none is open.
func (s *Bar) SetDocument(name string, elements int) {
	s.document, s.elements = name, elements
}

func (s *Bar) Document() string  { return s.document }
func (s *Bar) ElementCount() int { return s.elements }

// SetHints replaces the key hints; nil restores the keymap's short help.
func (s *Bar) SetHints(bindings []key.Binding) { s.hints = bindings }

func (s *Bar) SetWidth(width int) { s.width = width }
func (s *Bar) Width() int         { return s.width }

// Clear drops any message and returns to the ready state.
func (s *Bar) Clear() {
	s.state, s.message = StateReady, ""
}
