package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
	"github.com/custodia-labs/redliner/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService tracks opened document files and the recent list.
type DocumentService struct {
	documents driven.DocumentStore
	settings  driving.SettingsService
	revealer  driven.FileRevealer
	now       func() time.Time
}

// NewDocumentService creates a new document service.
// settings and revealer may be nil.
func NewDocumentService(
	documents driven.DocumentStore,
	settings driving.SettingsService,
	revealer driven.FileRevealer,
) *DocumentService {
	return &DocumentService{
		documents: documents,
		settings:  settings,
		revealer:  revealer,
		now:       time.Now,
	}
}

// OpenOrRegister returns the tracked document for path, creating it on the
// first open. Reopening bumps LastModified.
func (s *DocumentService) OpenOrRegister(ctx context.Context, path string) (*domain.Document, error) {
	if path == "" {
		return nil, fmt.Errorf("open document: empty path: %w", domain.ErrInvalidInput)
	}
	if !s.IsValidExtension(path) {
		return nil, fmt.Errorf("open %s: %w", path, domain.ErrUnsupportedType)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", abs, domain.ErrFileNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open %s: is a directory: %w", abs, domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	doc, err := s.documents.GetDocumentByPath(ctx, abs)
	switch {
	case err == nil:
		doc.LastModified = now
		if err := s.documents.UpdateDocument(ctx, doc); err != nil {
			return nil, storeError("reopen document", err)
		}
		logger.Debug("reopened document %d: %s", doc.ID, abs)
		return doc, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, storeError("look up document", err)
	}

	doc = &domain.Document{
		FilePath:     abs,
		FileName:     filepath.Base(abs),
		FileType:     domain.FileTypeFromPath(abs),
		CreatedAt:    now,
		LastModified: now,
	}
	if err := s.documents.CreateDocument(ctx, doc); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Registered concurrently; treat as a reopen.
			return s.OpenOrRegister(ctx, abs)
		}
		return nil, storeError("register document", err)
	}

	logger.Debug("registered document %d: %s", doc.ID, abs)
	return doc, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	doc, err := s.documents.GetDocument(ctx, id)
	if err != nil {
		return nil, storeError(fmt.Sprintf("get document %d", id), err)
	}
	return doc, nil
}

// ListRecent returns documents newest first.
func (s *DocumentService) ListRecent(ctx context.Context, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = currentSettings(s.settings).Documents.RecentLimit
	}

	docs, err := s.documents.ListDocuments(ctx, limit)
	if err != nil {
		return nil, storeError("list recent documents", err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}

// Recent returns the recent list with each file's presence on disk.
func (s *DocumentService) Recent(ctx context.Context, limit int) ([]domain.RecentDocument, error) {
	docs, err := s.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	recent := make([]domain.RecentDocument, 0, len(docs))
	for _, doc := range docs {
		_, statErr := os.Stat(doc.FilePath)
		recent = append(recent, domain.RecentDocument{Document: doc, Exists: statErr == nil})
	}
	return recent, nil
}

// Touch bumps a document's LastModified, moving it to the top of the
// recent list.
func (s *DocumentService) Touch(ctx context.Context, id int64) (*domain.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.LastModified = s.now().UTC()
	if err := s.documents.UpdateDocument(ctx, doc); err != nil {
		return nil, storeError("save document", err)
	}
	return doc, nil
}

// Delete removes a document and its annotations.
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	if err := s.documents.DeleteDocument(ctx, id); err != nil {
		return storeError(fmt.Sprintf("delete document %d", id), err)
	}
	logger.Debug("deleted document %d", id)
	return nil
}

// IsValidExtension reports whether path has a tracked extension.
func (s *DocumentService) IsValidExtension(path string) bool {
	return domain.FileTypeFromPath(path).IsTracked()
}

// RevealInFolder opens the document's folder in the file manager.
func (s *DocumentService) RevealInFolder(ctx context.Context, id int64) error {
	if s.revealer == nil {
		return fmt.Errorf("reveal document: %w", domain.ErrNotImplemented)
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := os.Stat(doc.FilePath); err != nil {
		return fmt.Errorf("reveal %s: %w", doc.FilePath, domain.ErrFileNotFound)
	}
	return s.revealer.Reveal(ctx, doc.FilePath)
}
