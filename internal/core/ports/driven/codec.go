package driven

import (
	"io"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// AnnotationSheet is the portable form of a document's annotations.
type AnnotationSheet struct {
	Document    domain.Document
	Annotations []domain.Annotation
}

// AnnotationCodec serialises annotation sheets.
type AnnotationCodec interface {
	// Encode writes the sheet to w.
	Encode(w io.Writer, sheet *AnnotationSheet) error

	// Decode reads a sheet from r.
	Decode(r io.Reader) (*AnnotationSheet, error)

	// Extension returns the file extension including the dot.
	Extension() string
}
