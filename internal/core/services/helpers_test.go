package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redliner/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

type testEnv struct {
	store       *memory.Store
	config      *memory.ConfigStore
	settings    *SettingsService
	documents   *DocumentService
	annotations *AnnotationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	config := memory.NewConfigStore()
	settings := NewSettingsService(config)
	return &testEnv{
		store:       store,
		config:      config,
		settings:    settings,
		documents:   NewDocumentService(store.DocumentStore(), settings, nil),
		annotations: NewAnnotationService(store.AnnotationStore(), store.DocumentStore(), nil, settings),
	}
}

// writeFile creates a file with the given name in a fresh temp dir.
func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0600))
	return path
}

// openDoc registers a fresh temp file and returns its document.
func (e *testEnv) openDoc(t *testing.T, name string) *domain.Document {
	t.Helper()
	doc, err := e.documents.OpenOrRegister(context.Background(), writeFile(t, name))
	require.NoError(t, err)
	return doc
}

// recordingCanvas is a driven.Canvas that keeps what it is given.
type recordingCanvas struct {
	cleared  int
	elements []domain.Element
}

var _ driven.Canvas = (*recordingCanvas)(nil)

func (c *recordingCanvas) Clear() {
	c.cleared++
	c.elements = nil
}

func (c *recordingCanvas) Add(el domain.Element) {
	c.elements = append(c.elements, el)
}

// failingDocumentStore reports a broken database on every call.
type failingDocumentStore struct{}

var errDiskIO = errors.New("disk I/O error")

func (failingDocumentStore) CreateDocument(context.Context, *domain.Document) error { return errDiskIO }
func (failingDocumentStore) UpdateDocument(context.Context, *domain.Document) error { return errDiskIO }
func (failingDocumentStore) GetDocument(context.Context, int64) (*domain.Document, error) {
	return nil, errDiskIO
}
func (failingDocumentStore) GetDocumentByPath(context.Context, string) (*domain.Document, error) {
	return nil, errDiskIO
}
func (failingDocumentStore) ListDocuments(context.Context, int) ([]domain.Document, error) {
	return nil, errDiskIO
}
func (failingDocumentStore) CountDocuments(context.Context) (int, error) { return 0, errDiskIO }
func (failingDocumentStore) DeleteDocument(context.Context, int64) error { return errDiskIO }
