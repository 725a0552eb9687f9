// Package styles holds the TUI palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a drafting-table palette: redline marks over blueprint ink.
type Theme struct {
	Redline   lipgloss.Color // accent for titles and selection
	Blueprint lipgloss.Color // secondary accent
	Paper     lipgloss.Color
	Ink       lipgloss.Color
	Pencil    lipgloss.Color // de-emphasised text
	Rule      lipgloss.Color // borders and frames
	OK        lipgloss.Color
	Caution   lipgloss.Color
	Fault     lipgloss.Color
}

// DefaultTheme returns the palette used when none is configured.
func DefaultTheme() *Theme {
	return &Theme{
		Redline:   lipgloss.Color("#D7263D"),
		Blueprint: lipgloss.Color("#3E7CB1"),
		Paper:     lipgloss.Color("#14213D"),
		Ink:       lipgloss.Color("#E8EDF2"),
		Pencil:    lipgloss.Color("#8A96A8"),
		Rule:      lipgloss.Color("#3B4A63"),
		OK:        lipgloss.Color("#59C27A"),
		Caution:   lipgloss.Color("#F2B134"),
		Fault:     lipgloss.Color("#FF6F59"),
	}
}

// Styles are the rendered styles every view draws with.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles derives the view styles from theme. A nil theme means
// DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	frame := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Rule)
	text := lipgloss.NewStyle().Foreground(theme.Ink)
	faint := lipgloss.NewStyle().Foreground(theme.Pencil)

	return &Styles{
		theme:      theme,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(theme.Redline),
		Subtitle:   lipgloss.NewStyle().Bold(true).Foreground(theme.Blueprint),
		Normal:     text,
		Muted:      faint,
		Selected:   text.Bold(true).Background(theme.Redline),
		Error:      lipgloss.NewStyle().Foreground(theme.Fault),
		Success:    lipgloss.NewStyle().Foreground(theme.OK),
		Warning:    lipgloss.NewStyle().Foreground(theme.Caution),
		InputField: frame.Padding(0, 1),
		StatusBar:  faint.Background(theme.Paper).Padding(0, 1),
		Help:       faint.Italic(true),
		Border:     frame,
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Swatch renders a small block in an annotation colour. Alpha is dropped
// since terminals cannot show it.
func (s *Styles) Swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(opaqueHex(color))).Render("■")
}

// opaqueHex strips the alpha digits from "#ARGB" and "#AARRGGBB".
func opaqueHex(color string) string {
	switch len(color) {
	case 5:
		return "#" + color[2:]
	case 9:
		return "#" + color[3:]
	default:
		return color
	}
}
