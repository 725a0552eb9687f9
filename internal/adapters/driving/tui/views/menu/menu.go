// Package menu is the start screen of the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/styles"
)

// Item is one menu entry. Key is a single-letter shortcut that selects
// the entry directly. An item with Quit set ends the program.
type Item struct {
	Key   string
	Label string
	View  messages.ViewType
	Quit  bool
}

var defaultItems = []Item{
	{Key: "o", Label: "Open Document", View: messages.ViewOpen},
	{Key: "r", Label: "Recent Documents", View: messages.ViewDocuments},
	{Key: "s", Label: "Settings", View: messages.ViewSettings},
	{Key: "h", Label: "Help", View: messages.ViewHelp},
	{Key: "q", Label: "Quit", Quit: true},
}

// View lists the menu items and the last opened document.
type View struct {
	styles     *styles.Styles
	items      []Item
	selected   int
	lastOpened string
	width      int
	height     int
	ready      bool
}

// NewView returns a menu with the cursor on the first item.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	items := make([]Item, len(defaultItems))
	copy(items, defaultItems)
	return &View{styles: s, items: items, width: 80, height: 24}
}

// Init is a no-op.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor or activates an item.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v, v.handleKey(msg.String())
	}
	return v, nil
}

func (v *View) handleKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		v.selected = max(v.selected-1, 0)
	case "down", "j":
		v.selected = min(v.selected+1, len(v.items)-1)
	case "enter":
		return v.activate(v.selected)
	default:
		for i, item := range v.items {
			if item.Key == key {
				v.selected = i
				return v.activate(i)
			}
		}
	}
	return nil
}

func (v *View) activate(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg { return messages.ViewChanged{View: item.View} }
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Redliner") + "\n")
	b.WriteString(v.styles.Subtitle.Render("PDF and CAD markup") + "\n\n")

	for i, item := range v.items {
		line := fmt.Sprintf("[%s] %s", item.Key, item.Label)
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(line) + "\n")
			continue
		}
		b.WriteString("  " + v.styles.Normal.Render(line) + "\n")
	}

	if v.lastOpened != "" {
		b.WriteString("\n" + v.styles.Muted.Render("Last opened: "+v.lastOpened) + "\n")
	}
	b.WriteString("\n" + v.styles.Help.Render("j/k move · enter select · letter jumps"))
	return b.String()
}

// SetLastOpened shows path under the menu.
func (v *View) SetLastOpened(path string) {
	v.lastOpened = path
}

// SetDimensions records the terminal size and marks the view ready.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected is the cursor index.
func (v *View) Selected() int {
	return v.selected
}
