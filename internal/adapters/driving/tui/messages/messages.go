// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewOpen asks for a file path to open.
	ViewOpen
	// ViewDocuments is the recent documents list.
	ViewDocuments
	// ViewAnnotations is the annotation workspace for one document.
	ViewAnnotations
	// ViewDraw is the form for drawing a new annotation.
	ViewDraw
	// ViewSettings edits application settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewOpen:
		return "open"
	case ViewDocuments:
		return "documents"
	case ViewAnnotations:
		return "annotations"
	case ViewDraw:
		return "draw"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// StatusChanged carries an informational message for the status bar.
type StatusChanged struct {
	Text string
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded carries the recent document list.
type DocumentsLoaded struct {
	Documents []domain.RecentDocument
	Err       error
}

// DocumentOpened signals a document was opened or registered.
type DocumentOpened struct {
	Document *domain.Document
	Err      error
}

// DocumentRemoved signals a document was deleted from the recent list.
type DocumentRemoved struct {
	ID  int64
	Err error
}

// AnnotationsLoaded carries a document's annotations and layers.
type AnnotationsLoaded struct {
	DocumentID  int64
	Annotations []domain.Annotation
	Layers      []string
	Err         error
}

// AnnotationCreated signals a new annotation was stored.
type AnnotationCreated struct {
	Annotation *domain.Annotation
	Err        error
}

// AnnotationDeleted signals an annotation was removed.
type AnnotationDeleted struct {
	ID  int64
	Err error
}

// DocumentChanged reports that the open document changed on disk.
// Closed is set when the watch has ended.
type DocumentChanged struct {
	Event  driving.DocumentEvent
	Closed bool
}

// SettingsLoaded carries the current settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals a setting was changed.
type SettingsSaved struct {
	Key string
	Err error
}
