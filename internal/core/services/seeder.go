package services

import (
	"context"
	"path/filepath"
	"time"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
	"github.com/custodia-labs/redliner/internal/logger"
)

// Ensure Seeder implements the interface.
var _ driving.Seeder = (*Seeder)(nil)

// Seeder fills an empty store with two sample documents and one annotation
// of each renderable type on the first.
type Seeder struct {
	documents   driven.DocumentStore
	annotations driven.AnnotationStore
	baseDir     string
	now         func() time.Time
}

// NewSeeder creates a seeder whose sample documents live in baseDir.
func NewSeeder(documents driven.DocumentStore, annotations driven.AnnotationStore, baseDir string) *Seeder {
	return &Seeder{
		documents:   documents,
		annotations: annotations,
		baseDir:     baseDir,
		now:         time.Now,
	}
}

// Seed inserts sample data when no documents exist.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	count, err := s.documents.CountDocuments(ctx)
	if err != nil {
		return false, storeError("count documents", err)
	}
	if count > 0 {
		logger.Debug("seed skipped: %d documents present", count)
		return false, nil
	}

	now := s.now().UTC()
	day := 24 * time.Hour
	docs := []*domain.Document{
		{
			FilePath:     filepath.Join(s.baseDir, "dummy.pdf"),
			FileName:     "dummy.pdf",
			FileType:     domain.FileTypePDF,
			CreatedAt:    now.Add(-5 * day),
			LastModified: now.Add(-2 * day),
		},
		{
			FilePath:     filepath.Join(s.baseDir, "sample-local-pdf.pdf"),
			FileName:     "sample-local-pdf.pdf",
			FileType:     domain.FileTypePDF,
			CreatedAt:    now.Add(-3 * day),
			LastModified: now.Add(-1 * day),
		},
	}
	for _, doc := range docs {
		if err := s.documents.CreateDocument(ctx, doc); err != nil {
			return false, storeError("seed document", err)
		}
	}

	first := docs[0].ID
	samples := []domain.Annotation{
		{Type: domain.AnnotationRectangle, X: 100, Y: 150, Width: 200, Height: 100,
			Color: "#FF0000", StrokeThickness: 2, Layer: domain.LayerDefault, CreatedAt: now.Add(-day)},
		{Type: domain.AnnotationCircle, X: 350, Y: 200, Width: 80, Height: 80,
			Color: "#00FF00", StrokeThickness: 3, Layer: domain.LayerMarkup, CreatedAt: now.Add(-12 * time.Hour)},
		{Type: domain.AnnotationText, X: 150, Y: 300, Text: "Sample annotation text",
			Color: "#0000FF", StrokeThickness: 14, Layer: domain.LayerNotes, CreatedAt: now.Add(-6 * time.Hour)},
		{Type: domain.AnnotationArrow, X: 250, Y: 400, Width: 100, Height: 50,
			Color: "#FF8000", StrokeThickness: 3, Layer: domain.LayerRedlines, CreatedAt: now.Add(-3 * time.Hour)},
		{Type: domain.AnnotationHighlight, X: 120, Y: 500, Width: 180, Height: 25,
			Color: "#FFFF00", StrokeThickness: 1, Layer: domain.LayerDefault, CreatedAt: now.Add(-time.Hour)},
	}
	for i := range samples {
		a := samples[i]
		a.DocumentID = first
		a.LastModified = a.CreatedAt
		if err := s.annotations.CreateAnnotation(ctx, &a); err != nil {
			return false, storeError("seed annotation", err)
		}
	}

	logger.Info("seeded %d documents and %d annotations", len(docs), len(samples))
	return true, nil
}
