// Package mcp serves documents and annotations to AI assistants over the
// Model Context Protocol.
package mcp

import (
	"errors"

	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

var (
	ErrMissingDocumentService   = errors.New("mcp: document service is required")
	ErrMissingAnnotationService = errors.New("mcp: annotation service is required")

	errRendererUnavailable = errors.New("annotation renderer not configured")
)

// Ports are the services behind the MCP tools and resources. Renderer may
// be nil, in which case render_annotations fails.
type Ports struct {
	Document   driving.DocumentService
	Annotation driving.AnnotationService
	Renderer   driving.AnnotationRenderer
}

// Validate reports the first missing required service.
func (p *Ports) Validate() error {
	switch {
	case p.Document == nil:
		return ErrMissingDocumentService
	case p.Annotation == nil:
		return ErrMissingAnnotationService
	}
	return nil
}
