package driven

import (
	"context"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// DocumentStore persists tracked documents.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// CreateDocument inserts a document and assigns its ID.
	// Returns domain.ErrAlreadyExists if the path is already tracked.
	CreateDocument(ctx context.Context, doc *domain.Document) error

	// UpdateDocument stores changes to an existing document.
	UpdateDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)

	// GetDocumentByPath retrieves a document by its absolute path.
	GetDocumentByPath(ctx context.Context, path string) (*domain.Document, error)

	// ListDocuments returns documents ordered by LastModified, newest first.
	// A limit of zero or less returns all documents.
	ListDocuments(ctx context.Context, limit int) ([]domain.Document, error)

	// CountDocuments returns the number of tracked documents.
	CountDocuments(ctx context.Context) (int, error)

	// DeleteDocument removes a document and its annotations.
	DeleteDocument(ctx context.Context, id int64) error
}
