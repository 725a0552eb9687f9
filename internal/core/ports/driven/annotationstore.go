package driven

import (
	"context"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// AnnotationStore persists annotations.
type AnnotationStore interface {
	// CreateAnnotation inserts an annotation and assigns its ID.
	CreateAnnotation(ctx context.Context, a *domain.Annotation) error

	// UpdateAnnotation stores changes to an existing annotation.
	// Returns domain.ErrNotFound if the annotation does not exist.
	UpdateAnnotation(ctx context.Context, a *domain.Annotation) error

	// GetAnnotation retrieves an annotation by ID.
	GetAnnotation(ctx context.Context, id int64) (*domain.Annotation, error)

	// ListAnnotations returns a document's annotations ordered by
	// CreatedAt then ID. An empty layer matches every layer.
	ListAnnotations(ctx context.Context, documentID int64, layer string) ([]domain.Annotation, error)

	// ListLayers returns the distinct non-empty layers used by a document.
	ListLayers(ctx context.Context, documentID int64) ([]string, error)

	// DeleteAnnotation removes an annotation.
	// Returns domain.ErrNotFound if the annotation does not exist.
	DeleteAnnotation(ctx context.Context, id int64) error
}
