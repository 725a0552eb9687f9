package driving

import (
	"context"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// DocumentEventKind classifies a change to a tracked document file.
type DocumentEventKind string

// Document event kinds.
const (
	DocumentModified DocumentEventKind = "modified"
	DocumentRemoved  DocumentEventKind = "removed"
)

// DocumentEvent reports that a tracked file changed on disk.
type DocumentEvent struct {
	DocumentID int64
	Path       string
	Kind       DocumentEventKind
}

// DocumentMonitor watches tracked document files.
type DocumentMonitor interface {
	// Watch emits events for the given documents until ctx is cancelled,
	// then closes the channel.
	Watch(ctx context.Context, docs []domain.Document) (<-chan DocumentEvent, error)
}
