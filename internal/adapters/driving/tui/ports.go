// Package tui is the interactive terminal front end: open a drawing, browse
// recent documents, list and draw annotations, and edit settings.
package tui

import (
	"errors"

	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

var (
	ErrMissingDocumentService   = errors.New("tui: document service is required")
	ErrMissingAnnotationService = errors.New("tui: annotation service is required")
)

// Ports are the services the TUI drives. Document and Annotation are
// required; a nil optional port hides the feature that needs it.
type Ports struct {
	Document   driving.DocumentService
	Annotation driving.AnnotationService

	Renderer   driving.AnnotationRenderer
	Preference driving.PreferenceService // remembers the last opened file
	Settings   driving.SettingsService
	Monitor    driving.DocumentMonitor // watches the open file on disk
}

// NewPorts sets the required ports only.
func NewPorts(document driving.DocumentService, annotation driving.AnnotationService) *Ports {
	return &Ports{Document: document, Annotation: annotation}
}

// Validate reports the first missing required port.
func (p *Ports) Validate() error {
	switch {
	case p.Document == nil:
		return ErrMissingDocumentService
	case p.Annotation == nil:
		return ErrMissingAnnotationService
	}
	return nil
}
