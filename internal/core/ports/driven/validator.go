package driven

import "github.com/custodia-labs/redliner/internal/core/domain"

// AnnotationValidator checks an annotation before it is written.
type AnnotationValidator interface {
	// Validate returns an error wrapping domain.ErrInvalidInput describing
	// every violated rule. When strictTypes is false the type only has to
	// be non-empty.
	Validate(a *domain.Annotation, strictTypes bool) error
}
