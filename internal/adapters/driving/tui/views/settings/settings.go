// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

var errServiceUnavailable = errors.New("settings service not available")

// row is one editable setting.
type row struct {
	key   string
	label string
	value func(*domain.AppSettings) string
}

var rows = []row{
	{"documents.recent_limit", "Recent limit", func(s *domain.AppSettings) string {
		return strconv.Itoa(s.Documents.RecentLimit)
	}},
	{"annotations.default_color", "Default colour", func(s *domain.AppSettings) string {
		return s.Annotations.DefaultColor
	}},
	{"annotations.default_stroke", "Default stroke", func(s *domain.AppSettings) string {
		return strconv.FormatFloat(s.Annotations.DefaultStroke, 'g', -1, 64)
	}},
	{"annotations.default_layer", "Default layer", func(s *domain.AppSettings) string {
		return s.Annotations.DefaultLayer
	}},
	{"annotations.strict_types", "Strict types", func(s *domain.AppSettings) string {
		return strconv.FormatBool(s.Annotations.StrictTypes)
	}},
	{"viewer.dpi", "Viewer DPI", func(s *domain.AppSettings) string {
		return strconv.Itoa(s.Viewer.DPI)
	}},
}

// View lists the settings and edits one at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	selected int
	editing  bool
	field    *input.Field

	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
		field:           input.NewField(s, "Value", ""),
	}
}

// Load returns a command that reads the current settings.
func (v *View) Load() tea.Cmd {
	v.editing = false
	v.field.Blur()

	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: errServiceUnavailable}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.editing = false
		v.field.Blur()
		return v, v.Load()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}

	if v.editing {
		var cmd tea.Cmd
		v.field, cmd = v.field.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(rows)-1 {
			v.selected++
		}
	case "enter", "e":
		if v.settings == nil {
			return v, nil
		}
		v.editing = true
		v.err = nil
		v.field.SetValue(rows[v.selected].value(v.settings))
		return v, v.field.Focus()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editing = false
		v.field.Blur()
		return v, nil
	case "enter":
		return v, v.save(rows[v.selected].key, v.field.Value())
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

func (v *View) save(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Key: key, Err: errServiceUnavailable}
		}
		return messages.SettingsSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// View renders the settings list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Defaults for new annotations and the viewer"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading..."))
		}
		return b.String()
	}

	for i, r := range rows {
		line := fmt.Sprintf("%-16s %s", r.label, r.value(v.settings))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.field.View())
		b.WriteString("\n\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n\n")
	}

	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] edit  [esc] back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.field.SetWidth(width - 4)
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// SelectedKey returns the key of the highlighted setting.
func (v *View) SelectedKey() string {
	return rows[v.selected].key
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
