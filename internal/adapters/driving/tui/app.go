package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/views/annotations"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/views/draw"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/views/open"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
	"github.com/custodia-labs/redliner/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// statusBar shows the open document and errors.
	statusBar *status.Bar

	menuView        *menu.View
	openView        *open.View
	documentsView   *documents.View
	annotationsView *annotations.View
	drawView        *draw.View
	settingsView    *settings.View

	// document is the document open in the workspace.
	document *domain.Document

	// events delivers file changes for the open document.
	events      <-chan driving.DocumentEvent
	stopWatcher context.CancelFunc

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingDocumentService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          km,
		statusBar:       status.NewBar(s, km),
		menuView:        menu.NewView(s),
		openView:        open.NewView(s, ports.Document),
		documentsView:   documents.NewView(s, ports.Document),
		annotationsView: annotations.NewView(s, ports.Annotation, ports.Renderer),
		drawView:        draw.NewView(s, km, ports.Annotation),
		settingsView:    settings.NewView(s, ports.Settings),
		currentView:     messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("redliner"),
		a.loadLastOpened(),
	)
}

// lastOpenedLoaded carries the remembered path for the menu.
type lastOpenedLoaded struct {
	path string
}

func (a *App) loadLastOpened() tea.Cmd {
	prefs := a.ports.Preference
	if prefs == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		path, err := prefs.Get(ctx, domain.PrefLastOpened)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Debug("loading last opened document: %v", err)
			}
			return nil
		}
		return lastOpenedLoaded{path: path}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			a.stopWatching()
			return a, tea.Quit
		}
		return a, a.updateKey(msg)

	case lastOpenedLoaded:
		a.menuView.SetLastOpened(msg.path)
		return a, nil

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.DocumentsLoaded, messages.DocumentRemoved:
		a.documentsView, cmd = a.documentsView.Update(msg)
		if removed, ok := msg.(messages.DocumentRemoved); ok && removed.Err == nil {
			a.statusBar.SetInfo("Document removed")
			if a.document != nil && a.document.ID == removed.ID {
				a.closeDocument()
			}
		}
		return a, cmd

	case messages.DocumentOpened:
		a.openView, _ = a.openView.Update(msg)
		if msg.Err != nil {
			a.setError(msg.Err)
			if a.currentView == messages.ViewDocuments {
				a.documentsView, _ = a.documentsView.Update(messages.ErrorOccurred{Err: msg.Err})
			}
			return a, nil
		}
		return a, a.openDocument(msg.Document)

	case messages.AnnotationsLoaded:
		a.annotationsView, cmd = a.annotationsView.Update(msg)
		a.refreshStatus()
		if msg.Err != nil {
			a.setError(msg.Err)
		}
		return a, cmd

	case messages.AnnotationCreated:
		a.drawView, _ = a.drawView.Update(msg)
		if msg.Err != nil {
			// Draw view shows the error inline
			return a, nil
		}
		a.statusBar.SetInfo(fmt.Sprintf("Added %s", msg.Annotation.Type))
		a.currentView = messages.ViewAnnotations
		a.annotationsView, cmd = a.annotationsView.Update(msg)
		return a, cmd

	case messages.AnnotationDeleted:
		a.annotationsView, cmd = a.annotationsView.Update(msg)
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.statusBar.SetInfo("Annotation deleted")
		}
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		if msg.Err == nil {
			a.statusBar.SetInfo(fmt.Sprintf("Saved %s", msg.Key))
		}
		return a, cmd

	case messages.DocumentChanged:
		return a, a.handleDocumentChanged(msg)

	case messages.StatusChanged:
		a.statusBar.SetInfo(msg.Text)
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		if a.currentView == messages.ViewDocuments {
			a.documentsView, cmd = a.documentsView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		a.stopWatching()
		return a, tea.Quit
	}

	// Forward other messages to active view
	return a, a.forward(msg)
}

// updateKey routes a key press to the active view.
func (a *App) updateKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		if msg.String() == "?" {
			a.currentView = messages.ViewHelp
			return nil
		}
		a.menuView, cmd = a.menuView.Update(msg)
		return cmd

	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "?" || msg.String() == "q" {
			a.currentView = messages.ViewMenu
		}
		return nil

	case messages.ViewOpen, messages.ViewDraw, messages.ViewSettings:
		// Text entry views consume every key
		return a.forward(msg)

	case messages.ViewDocuments, messages.ViewAnnotations:
		if msg.String() == "q" {
			a.stopWatching()
			return tea.Quit
		}
		return a.forward(msg)
	}
	return nil
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewOpen:
		a.openView, cmd = a.openView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewAnnotations:
		a.annotationsView, cmd = a.annotationsView.Update(msg)
	case messages.ViewDraw:
		a.drawView, cmd = a.drawView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return cmd
}

// switchView activates view and runs its initialisation.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.statusBar.SetError(nil)

	switch view {
	case messages.ViewOpen:
		a.statusBar.SetHints(nil)
		return a.openView.Activate()
	case messages.ViewDocuments:
		a.statusBar.SetHints(a.keymap.DocumentsHelp())
		return a.documentsView.Load()
	case messages.ViewAnnotations:
		if a.document == nil {
			a.currentView = messages.ViewDocuments
			a.statusBar.SetHints(a.keymap.DocumentsHelp())
			return a.documentsView.Load()
		}
		a.statusBar.SetHints(a.keymap.AnnotationsHelp())
		return nil
	case messages.ViewDraw:
		if a.document == nil {
			a.currentView = messages.ViewMenu
			return nil
		}
		a.statusBar.SetHints(nil)
		return a.drawView.SetDocument(a.document)
	case messages.ViewSettings:
		a.statusBar.SetHints(nil)
		return a.settingsView.Load()
	case messages.ViewMenu, messages.ViewHelp:
		a.statusBar.SetHints(nil)
	}
	return nil
}

// openDocument makes doc the workspace document.
func (a *App) openDocument(doc *domain.Document) tea.Cmd {
	if doc == nil {
		return nil
	}
	a.document = doc
	a.currentView = messages.ViewAnnotations
	a.statusBar.SetError(nil)
	a.statusBar.SetHints(a.keymap.AnnotationsHelp())
	a.statusBar.SetDocument(doc.FileName, 0)
	a.menuView.SetLastOpened(doc.FilePath)

	if prefs := a.ports.Preference; prefs != nil {
		if err := prefs.Set(a.ctx, domain.PrefLastOpened, doc.FilePath); err != nil {
			logger.Warn("recording last opened document: %v", err)
		}
	}

	return tea.Batch(a.annotationsView.SetDocument(doc), a.watch(*doc))
}

// closeDocument clears the workspace after its document was removed.
func (a *App) closeDocument() {
	a.stopWatching()
	a.document = nil
	a.statusBar.SetDocument("", 0)
}

// watch starts monitoring doc on disk.
func (a *App) watch(doc domain.Document) tea.Cmd {
	a.stopWatching()
	if a.ports.Monitor == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(a.ctx)
	events, err := a.ports.Monitor.Watch(ctx, []domain.Document{doc})
	if err != nil {
		cancel()
		logger.Warn("watching %s: %v", doc.FilePath, err)
		return nil
	}
	a.events = events
	a.stopWatcher = cancel
	return waitForChange(events)
}

func (a *App) stopWatching() {
	if a.stopWatcher != nil {
		a.stopWatcher()
		a.stopWatcher = nil
	}
	a.events = nil
}

// waitForChange blocks until the next file event.
func waitForChange(events <-chan driving.DocumentEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return messages.DocumentChanged{Event: ev, Closed: !ok}
	}
}

func (a *App) handleDocumentChanged(msg messages.DocumentChanged) tea.Cmd {
	if msg.Closed || a.document == nil || msg.Event.DocumentID != a.document.ID {
		return nil
	}

	var cmd tea.Cmd
	if a.events != nil {
		cmd = waitForChange(a.events)
	}

	switch msg.Event.Kind {
	case driving.DocumentRemoved:
		a.setError(fmt.Errorf("%s: %w", a.document.FileName, domain.ErrFileNotFound))
	case driving.DocumentModified:
		a.statusBar.SetInfo(fmt.Sprintf("%s changed on disk", a.document.FileName))
	}
	return cmd
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetError(err)
}

// refreshStatus syncs the status bar with the workspace.
func (a *App) refreshStatus() {
	if a.document != nil {
		a.statusBar.SetDocument(a.document.FileName, a.annotationsView.ElementCount())
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewMenu:
		body = a.menuView.View()
	case messages.ViewOpen:
		body = a.openView.View()
	case messages.ViewDocuments:
		body = a.documentsView.View()
	case messages.ViewAnnotations:
		body = a.annotationsView.View()
	case messages.ViewDraw:
		body = a.drawView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", a.statusBar.View())
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, row := range a.keymap.FullHelp() {
		for _, binding := range row {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.stopWatching()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Document returns the document open in the workspace.
func (a *App) Document() *domain.Document {
	return a.document
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// Leave room for the status bar
	viewHeight := height - 2
	a.statusBar.SetWidth(width)
	a.menuView.SetDimensions(width, viewHeight)
	a.openView.SetDimensions(width, viewHeight)
	a.documentsView.SetDimensions(width, viewHeight)
	a.annotationsView.SetDimensions(width, viewHeight)
	a.drawView.SetDimensions(width, viewHeight)
	a.settingsView.SetDimensions(width, viewHeight)
}
