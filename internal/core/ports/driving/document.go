package driving

import (
	"context"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// DocumentService manages tracked documents and the recent list.
type DocumentService interface {
	// OpenOrRegister returns the document for path, creating it on first
	// open and bumping LastModified on every later open.
	// Returns domain.ErrUnsupportedType for extensions other than pdf, dxf
	// and dwg, and domain.ErrFileNotFound when the file does not exist.
	OpenOrRegister(ctx context.Context, path string) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// ListRecent returns documents newest first. A limit of zero or less
	// uses the configured default.
	ListRecent(ctx context.Context, limit int) ([]domain.Document, error)

	// Recent is ListRecent enriched with on-disk presence.
	Recent(ctx context.Context, limit int) ([]domain.RecentDocument, error)

	// Touch bumps a document's LastModified.
	Touch(ctx context.Context, id int64) (*domain.Document, error)

	// Delete removes a document and its annotations.
	Delete(ctx context.Context, id int64) error

	// IsValidExtension reports whether path has a tracked extension.
	IsValidExtension(path string) bool

	// RevealInFolder opens the document's folder in the file manager.
	RevealInFolder(ctx context.Context, id int64) error
}
