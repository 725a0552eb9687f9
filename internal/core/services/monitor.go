package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
	"github.com/custodia-labs/redliner/internal/logger"
)

// Ensure DocumentMonitor implements the interface.
var _ driving.DocumentMonitor = (*DocumentMonitor)(nil)

// DocumentMonitor turns file system changes into document events.
type DocumentMonitor struct {
	watcher driven.FileWatcher
}

// NewDocumentMonitor creates a new document monitor.
func NewDocumentMonitor(watcher driven.FileWatcher) *DocumentMonitor {
	return &DocumentMonitor{watcher: watcher}
}

// Watch emits an event each time one of docs changes on disk. The channel
// is closed once ctx is cancelled or the watcher stops. Watcher errors are
// logged and do not stop the stream.
func (m *DocumentMonitor) Watch(ctx context.Context, docs []domain.Document) (<-chan driving.DocumentEvent, error) {
	if m.watcher == nil {
		return nil, fmt.Errorf("watch documents: %w", domain.ErrNotImplemented)
	}

	byPath := make(map[string]int64, len(docs))
	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		if _, dup := byPath[doc.FilePath]; dup {
			continue
		}
		byPath[doc.FilePath] = doc.ID
		paths = append(paths, doc.FilePath)
	}

	fileEvents, fileErrors, err := m.watcher.Watch(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("watch documents: %w", err)
	}

	out := make(chan driving.DocumentEvent)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-fileErrors:
				if !ok {
					fileErrors = nil
					continue
				}
				logger.Warn("document watcher: %v", err)
			case ev, ok := <-fileEvents:
				if !ok {
					return
				}
				id, tracked := byPath[ev.Path]
				if !tracked {
					continue
				}
				kind := driving.DocumentModified
				if ev.Kind == driven.FileRemoved {
					kind = driving.DocumentRemoved
				}
				select {
				case out <- driving.DocumentEvent{DocumentID: id, Path: ev.Path, Kind: kind}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
