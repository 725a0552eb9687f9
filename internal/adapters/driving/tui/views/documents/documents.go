// Package documents is the recent documents list.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

var errServiceUnavailable = errors.New("document service not available")

// chromeLines is the height taken by the title, footer and blank lines.
const chromeLines = 8

// View lists recently opened documents, newest first, with missing files
// flagged. Enter reopens, d forgets, o reveals the containing folder.
type View struct {
	styles  *styles.Styles
	service driving.DocumentService

	documents []domain.RecentDocument
	selected  int
	offset    int
	width     int
	height    int
	loading   bool
	err       error
}

func NewView(s *styles.Styles, service driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, service: service}
}

func (v *View) Init() tea.Cmd {
	return nil
}

// Load fetches the recent list.
func (v *View) Load() tea.Cmd {
	v.loading, v.err = true, nil
	return v.call(func(ctx context.Context, svc driving.DocumentService) tea.Msg {
		docs, err := svc.Recent(ctx, 0)
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}, func(err error) tea.Msg { return messages.DocumentsLoaded{Err: err} })
}

// call runs fn against the service off the update loop. onMissing builds
// the reply when no service was injected.
func (v *View) call(fn func(context.Context, driving.DocumentService) tea.Msg, onMissing func(error) tea.Msg) tea.Cmd {
	svc := v.service
	return func() tea.Msg {
		if svc == nil {
			return onMissing(errServiceUnavailable)
		}
		return fn(context.Background(), svc)
	}
}

func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v, v.handleKey(msg.String())
	case messages.DocumentsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			break
		}
		v.documents, v.err = msg.Documents, nil
		v.selected = min(v.selected, max(len(v.documents)-1, 0))
		v.follow()
	case messages.DocumentRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			break
		}
		return v, v.Load()
	case messages.ErrorOccurred:
		v.err = msg.Err
	}
	return v, nil
}

func (v *View) handleKey(k string) tea.Cmd {
	doc := v.SelectedDocument()
	switch k {
	case "up", "k":
		v.move(-1)
	case "down", "j":
		v.move(1)
	case "r":
		return v.Load()
	case "esc":
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	}
	if doc == nil {
		return nil
	}

	switch k {
	case "enter":
		path := doc.FilePath
		return v.call(func(ctx context.Context, svc driving.DocumentService) tea.Msg {
			opened, err := svc.OpenOrRegister(ctx, path)
			return messages.DocumentOpened{Document: opened, Err: err}
		}, func(err error) tea.Msg { return messages.DocumentOpened{Err: err} })
	case "d":
		id := doc.ID
		return v.call(func(ctx context.Context, svc driving.DocumentService) tea.Msg {
			return messages.DocumentRemoved{ID: id, Err: svc.Delete(ctx, id)}
		}, func(err error) tea.Msg { return messages.DocumentRemoved{ID: id, Err: err} })
	case "o":
		id := doc.ID
		return v.call(func(ctx context.Context, svc driving.DocumentService) tea.Msg {
			if err := svc.RevealInFolder(ctx, id); err != nil {
				return messages.ErrorOccurred{Err: err}
			}
			return messages.StatusChanged{Text: "Opened containing folder"}
		}, func(err error) tea.Msg { return messages.ErrorOccurred{Err: err} })
	}
	return nil
}

func (v *View) move(delta int) {
	next := v.selected + delta
	if next < 0 || next >= len(v.documents) {
		return
	}
	v.selected = next
	v.follow()
}

// follow scrolls the window so the selected row is visible.
func (v *View) follow() {
	rows := v.rows()
	switch {
	case v.selected < v.offset:
		v.offset = v.selected
	case v.selected >= v.offset+rows:
		v.offset = v.selected - rows + 1
	}
}

func (v *View) rows() int {
	return max(v.height-chromeLines, 1)
}

func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Recent Documents (%d)", len(v.documents))) + "\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents...") + "\n\n")
	case len(v.documents) == 0:
		v.writeErr(&b)
		b.WriteString(v.styles.Muted.Render("No documents opened yet.") + "\n\n")
	default:
		v.writeErr(&b)
		end := min(v.offset+v.rows(), len(v.documents))
		for i := v.offset; i < end; i++ {
			b.WriteString(v.row(i) + "\n")
		}
		if len(v.documents) > v.rows() {
			b.WriteString("\n" + v.styles.Muted.Render(
				fmt.Sprintf("  [%d-%d of %d]", v.offset+1, end, len(v.documents))))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] open  [d] remove  [o] folder  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) writeErr(b *strings.Builder) {
	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: "+v.err.Error()) + "\n\n")
	}
}

// row renders one entry as a padded name column and the file's mtime.
func (v *View) row(i int) string {
	doc := &v.documents[i]
	col := max(v.width/2-4, 16)
	name := doc.DisplayName()
	if len(name) > col {
		name = name[:col-3] + "..."
	}
	when := doc.LastModified.Local().Format("2006-01-02 15:04")

	if i == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", col, name, when))
	}
	nameStyle := v.styles.Normal
	if !doc.Exists {
		nameStyle = v.styles.Warning
	}
	return "  " + nameStyle.Render(fmt.Sprintf("%-*s  ", col, name)) + v.styles.Muted.Render(when)
}

func (v *View) SetDimensions(width, height int) {
	v.width, v.height = width, height
}

func (v *View) Documents() []domain.RecentDocument { return v.documents }
func (v *View) SelectedIndex() int                 { return v.selected }
func (v *View) Loading() bool                      { return v.loading }
func (v *View) Err() error                         { return v.err }

// SelectedDocument is nil when the list is empty.
func (v *View) SelectedDocument() *domain.RecentDocument {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}
