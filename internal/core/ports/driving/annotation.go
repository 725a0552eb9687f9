package driving

import (
	"context"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// DrawRequest describes a drag gesture on a document.
type DrawRequest struct {
	Type   domain.AnnotationType
	StartX float64
	StartY float64
	EndX   float64
	EndY   float64
	Text   string
	Color  string
	Stroke float64
	Layer  string
}

// AnnotationService manages annotations on documents.
type AnnotationService interface {
	// Create stamps timestamps, validates and stores a new annotation.
	Create(ctx context.Context, a *domain.Annotation) (*domain.Annotation, error)

	// Draw turns a drag gesture into a stored annotation.
	// Returns domain.ErrTooSmall when the gesture is 5 units or less on
	// either axis.
	Draw(ctx context.Context, documentID int64, req DrawRequest) (*domain.Annotation, error)

	// Update bumps LastModified and stores changes.
	Update(ctx context.Context, a *domain.Annotation) error

	// Delete removes an annotation.
	Delete(ctx context.Context, id int64) error

	// Get retrieves an annotation by ID.
	Get(ctx context.Context, id int64) (*domain.Annotation, error)

	// ListForDocument returns a document's annotations, oldest first.
	ListForDocument(ctx context.Context, documentID int64) ([]domain.Annotation, error)

	// ListForDocumentAndLayer filters ListForDocument by layer.
	ListForDocumentAndLayer(ctx context.Context, documentID int64, layer string) ([]domain.Annotation, error)

	// Layers returns the distinct layers used on a document.
	Layers(ctx context.Context, documentID int64) ([]string, error)
}
