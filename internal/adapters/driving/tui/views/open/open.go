// Package open provides the view that opens a document by path.
package open

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

// ErrEmptyPath is returned when enter is pressed without a path.
var ErrEmptyPath = errors.New("enter a file path")

// View asks for a file path and opens or registers it.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService
	path            *input.Field
	err             error
	opening         bool
	width           int
	height          int
}

// NewView creates a new open view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		documentService: documentService,
		path:            input.NewField(s, "Path", "/path/to/drawing.pdf"),
		width:           80,
		height:          24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Activate resets the form and focuses the path field.
func (v *View) Activate() tea.Cmd {
	v.err = nil
	v.opening = false
	v.path.Reset()
	return v.path.Focus()
}

// Update handles messages for the open view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DocumentOpened:
		v.opening = false
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			v.path.Blur()
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "enter":
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	v.path, cmd = v.path.Update(msg)
	return v, cmd
}

// submit validates the path and returns the open command.
func (v *View) submit() tea.Cmd {
	path := strings.TrimSpace(v.path.Value())
	if path == "" {
		v.err = ErrEmptyPath
		return nil
	}
	if v.documentService != nil && !v.documentService.IsValidExtension(path) {
		v.err = fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Ext(path))
		return nil
	}

	v.err = nil
	v.opening = true
	service := v.documentService
	return func() tea.Msg {
		if service == nil {
			return messages.DocumentOpened{Err: errors.New("document service not available")}
		}
		doc, err := service.OpenOrRegister(context.Background(), path)
		return messages.DocumentOpened{Document: doc, Err: err}
	}
}

// View renders the open form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Open Document"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("PDF, DXF and DWG files are supported."))
	b.WriteString("\n\n")
	b.WriteString(v.path.View())
	b.WriteString("\n\n")

	switch {
	case v.opening:
		b.WriteString(v.styles.Muted.Render("Opening..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[enter] open  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.path.SetWidth(width - 4)
}

// Path returns the current path input.
func (v *View) Path() string {
	return v.path.Value()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
