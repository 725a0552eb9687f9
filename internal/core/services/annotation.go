package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
	"github.com/custodia-labs/redliner/internal/logger"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService manages annotations on tracked documents.
type AnnotationService struct {
	annotations driven.AnnotationStore
	documents   driven.DocumentStore
	validator   driven.AnnotationValidator
	settings    driving.SettingsService
	now         func() time.Time
}

// NewAnnotationService creates a new annotation service.
// validator and settings may be nil.
func NewAnnotationService(
	annotations driven.AnnotationStore,
	documents driven.DocumentStore,
	validator driven.AnnotationValidator,
	settings driving.SettingsService,
) *AnnotationService {
	return &AnnotationService{
		annotations: annotations,
		documents:   documents,
		validator:   validator,
		settings:    settings,
		now:         time.Now,
	}
}

// Create validates a and stores it with fresh timestamps.
func (s *AnnotationService) Create(ctx context.Context, a *domain.Annotation) (*domain.Annotation, error) {
	if a == nil {
		return nil, fmt.Errorf("create annotation: %w", domain.ErrInvalidInput)
	}

	cfg := currentSettings(s.settings)
	if a.Color == "" {
		a.Color = cfg.Annotations.DefaultColor
	}
	if a.StrokeThickness == 0 {
		a.StrokeThickness = cfg.Annotations.DefaultStroke
	}
	a.ApplyDefaults()

	if err := s.validate(a, cfg.Annotations.StrictTypes); err != nil {
		return nil, fmt.Errorf("create annotation: %w", err)
	}
	if err := s.requireDocument(ctx, a.DocumentID); err != nil {
		return nil, fmt.Errorf("create annotation: %w", err)
	}

	now := s.now().UTC()
	a.ID = 0
	a.CreatedAt = now
	a.LastModified = now
	if err := s.annotations.CreateAnnotation(ctx, a); err != nil {
		return nil, storeError("create annotation", err)
	}

	logger.Debug("created %s annotation %d on document %d", a.Type, a.ID, a.DocumentID)
	return a, nil
}

// Draw turns a drag from (StartX, StartY) to (EndX, EndY) into an annotation.
// Arrows keep their direction; other shapes are normalised to a box with
// non-negative size. Text is anchored at the start point and has no size.
func (s *AnnotationService) Draw(
	ctx context.Context, documentID int64, req driving.DrawRequest,
) (*domain.Annotation, error) {
	cfg := currentSettings(s.settings)

	typ, _ := domain.ParseAnnotationType(string(req.Type))
	a := &domain.Annotation{
		DocumentID:      documentID,
		Type:            typ,
		Text:            req.Text,
		Color:           req.Color,
		StrokeThickness: req.Stroke,
		Layer:           req.Layer,
	}
	if a.Layer == "" {
		a.Layer = cfg.Annotations.DefaultLayer
	}

	rect := domain.RectFromDrag(req.StartX, req.StartY, req.EndX, req.EndY)
	switch typ {
	case domain.AnnotationText:
		a.X, a.Y = req.StartX, req.StartY
	case domain.AnnotationArrow:
		if !rect.IsDrawable() {
			return nil, fmt.Errorf("draw %s: %w", typ, domain.ErrTooSmall)
		}
		a.X, a.Y = req.StartX, req.StartY
		a.Width, a.Height = req.EndX-req.StartX, req.EndY-req.StartY
	default:
		if !rect.IsDrawable() {
			return nil, fmt.Errorf("draw %s: %w", typ, domain.ErrTooSmall)
		}
		a.X, a.Y, a.Width, a.Height = rect.X, rect.Y, rect.Width, rect.Height
	}

	return s.Create(ctx, a)
}

// Update validates and stores changes to an existing annotation.
// CreatedAt is preserved and LastModified bumped.
func (s *AnnotationService) Update(ctx context.Context, a *domain.Annotation) error {
	if a == nil {
		return fmt.Errorf("update annotation: %w", domain.ErrInvalidInput)
	}

	existing, err := s.annotations.GetAnnotation(ctx, a.ID)
	if err != nil {
		return storeError(fmt.Sprintf("update annotation %d", a.ID), err)
	}

	cfg := currentSettings(s.settings)
	if err := s.validate(a, cfg.Annotations.StrictTypes); err != nil {
		return fmt.Errorf("update annotation %d: %w", a.ID, err)
	}
	if a.DocumentID != existing.DocumentID {
		if err := s.requireDocument(ctx, a.DocumentID); err != nil {
			return fmt.Errorf("update annotation %d: %w", a.ID, err)
		}
	}

	a.CreatedAt = existing.CreatedAt
	a.LastModified = s.now().UTC()
	if err := s.annotations.UpdateAnnotation(ctx, a); err != nil {
		return storeError(fmt.Sprintf("update annotation %d", a.ID), err)
	}
	return nil
}

// Delete removes an annotation.
func (s *AnnotationService) Delete(ctx context.Context, id int64) error {
	if err := s.annotations.DeleteAnnotation(ctx, id); err != nil {
		return storeError(fmt.Sprintf("delete annotation %d", id), err)
	}
	logger.Debug("deleted annotation %d", id)
	return nil
}

// Get retrieves an annotation by ID.
func (s *AnnotationService) Get(ctx context.Context, id int64) (*domain.Annotation, error) {
	a, err := s.annotations.GetAnnotation(ctx, id)
	if err != nil {
		return nil, storeError(fmt.Sprintf("get annotation %d", id), err)
	}
	return a, nil
}

// ListForDocument returns a document's annotations, oldest first.
func (s *AnnotationService) ListForDocument(ctx context.Context, documentID int64) ([]domain.Annotation, error) {
	return s.list(ctx, documentID, "")
}

// ListForDocumentAndLayer returns a document's annotations on one layer.
func (s *AnnotationService) ListForDocumentAndLayer(
	ctx context.Context, documentID int64, layer string,
) ([]domain.Annotation, error) {
	if layer == "" {
		return nil, fmt.Errorf("list annotations: empty layer: %w", domain.ErrInvalidInput)
	}
	return s.list(ctx, documentID, layer)
}

// Layers returns the distinct layers used on a document.
func (s *AnnotationService) Layers(ctx context.Context, documentID int64) ([]string, error) {
	layers, err := s.annotations.ListLayers(ctx, documentID)
	if err != nil {
		return nil, storeError("list layers", err)
	}
	if layers == nil {
		layers = []string{}
	}
	return layers, nil
}

func (s *AnnotationService) list(ctx context.Context, documentID int64, layer string) ([]domain.Annotation, error) {
	annotations, err := s.annotations.ListAnnotations(ctx, documentID, layer)
	if err != nil {
		return nil, storeError("list annotations", err)
	}
	if annotations == nil {
		annotations = []domain.Annotation{}
	}
	return annotations, nil
}

// validate canonicalises the type tag and checks the annotation.
func (s *AnnotationService) validate(a *domain.Annotation, strict bool) error {
	if typ, ok := domain.ParseAnnotationType(string(a.Type)); ok {
		a.Type = typ
	}

	if s.validator != nil {
		return s.validator.Validate(a, strict)
	}

	switch {
	case a.DocumentID <= 0:
		return fmt.Errorf("document id is required: %w", domain.ErrInvalidInput)
	case a.Type == "":
		return fmt.Errorf("type is required: %w", domain.ErrInvalidInput)
	case strict && !a.Type.IsKnown():
		return fmt.Errorf("type %q: %w", a.Type, domain.ErrUnsupportedType)
	}
	return nil
}

func (s *AnnotationService) requireDocument(ctx context.Context, documentID int64) error {
	if _, err := s.documents.GetDocument(ctx, documentID); err != nil {
		return storeError(fmt.Sprintf("document %d", documentID), err)
	}
	return nil
}
