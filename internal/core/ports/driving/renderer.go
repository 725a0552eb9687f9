package driving

import (
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

// AnnotationRenderer maps annotations to drawable elements.
type AnnotationRenderer interface {
	// RenderAnnotations clears canvas and adds one element per renderable
	// annotation. Returns the number of elements added.
	RenderAnnotations(canvas driven.Canvas, annotations []domain.Annotation) int

	// Element builds the element for a single annotation.
	// Returns false for types that are not rendered.
	Element(a domain.Annotation) (domain.Element, bool)
}
