// Package memory provides in-memory implementations of the driven store
// interfaces. They are used by service tests and by the --ephemeral mode of
// the CLI. Document deletion cascades to annotations, mirroring the SQLite
// schema.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

// Store holds documents, annotations and preferences behind one lock so
// that foreign key checks and cascades are atomic.
type Store struct {
	mu          sync.RWMutex
	nextDocID   int64
	nextAnnID   int64
	nextPrefID  int64
	documents   map[int64]domain.Document
	annotations map[int64]domain.Annotation
	preferences map[string]domain.UserPreference
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		documents:   make(map[int64]domain.Document),
		annotations: make(map[int64]domain.Annotation),
		preferences: make(map[string]domain.UserPreference),
	}
}

// Close is a no-op kept for parity with the SQLite store.
func (s *Store) Close() error {
	return nil
}

// DocumentStore returns a DocumentStore view of this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{s}
}

// AnnotationStore returns an AnnotationStore view of this store.
func (s *Store) AnnotationStore() driven.AnnotationStore {
	return &annotationStore{s}
}

// PreferenceStore returns a PreferenceStore view of this store.
func (s *Store) PreferenceStore() driven.PreferenceStore {
	return &preferenceStore{s}
}

// ==================== Documents ====================

type documentStore struct{ *Store }

var _ driven.DocumentStore = (*documentStore)(nil)

func (s *documentStore) CreateDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.documents {
		if existing.FilePath == doc.FilePath {
			return fmt.Errorf("creating document %s: %w", doc.FilePath, domain.ErrAlreadyExists)
		}
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.LastModified.IsZero() {
		doc.LastModified = now
	}
	s.nextDocID++
	doc.ID = s.nextDocID
	s.documents[doc.ID] = *doc
	return nil
}

func (s *documentStore) UpdateDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.documents[doc.ID]
	if !ok {
		return fmt.Errorf("updating document: %w", domain.ErrNotFound)
	}
	updated := *doc
	updated.CreatedAt = existing.CreatedAt
	s.documents[doc.ID] = updated
	return nil
}

func (s *documentStore) GetDocument(_ context.Context, id int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (s *documentStore) GetDocumentByPath(_ context.Context, path string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.documents {
		if doc.FilePath == path {
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *documentStore) ListDocuments(_ context.Context, limit int) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].LastModified.Equal(docs[j].LastModified) {
			return docs[i].LastModified.After(docs[j].LastModified)
		}
		return docs[i].ID > docs[j].ID
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (s *documentStore) CountDocuments(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}

func (s *documentStore) DeleteDocument(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return fmt.Errorf("deleting document: %w", domain.ErrNotFound)
	}
	delete(s.documents, id)
	for annID, a := range s.annotations {
		if a.DocumentID == id {
			delete(s.annotations, annID)
		}
	}
	return nil
}

// ==================== Annotations ====================

type annotationStore struct{ *Store }

var _ driven.AnnotationStore = (*annotationStore)(nil)

func (s *annotationStore) CreateAnnotation(_ context.Context, a *domain.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[a.DocumentID]; !ok {
		return fmt.Errorf("creating annotation for document %d: %w", a.DocumentID, domain.ErrNotFound)
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.LastModified.IsZero() {
		a.LastModified = now
	}
	s.nextAnnID++
	a.ID = s.nextAnnID
	s.annotations[a.ID] = *a
	return nil
}

func (s *annotationStore) UpdateAnnotation(_ context.Context, a *domain.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.annotations[a.ID]
	if !ok {
		return fmt.Errorf("updating annotation: %w", domain.ErrNotFound)
	}
	if _, ok := s.documents[a.DocumentID]; !ok {
		return fmt.Errorf("updating annotation %d: %w", a.ID, domain.ErrNotFound)
	}
	updated := *a
	updated.CreatedAt = existing.CreatedAt
	s.annotations[a.ID] = updated
	return nil
}

func (s *annotationStore) GetAnnotation(_ context.Context, id int64) (*domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.annotations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (s *annotationStore) ListAnnotations(
	_ context.Context, documentID int64, layer string,
) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Annotation
	for _, a := range s.annotations {
		if a.DocumentID != documentID {
			continue
		}
		if layer != "" && a.Layer != layer {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *annotationStore) ListLayers(_ context.Context, documentID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var layers []string
	for _, a := range s.annotations {
		if a.DocumentID != documentID || a.Layer == "" || seen[a.Layer] {
			continue
		}
		seen[a.Layer] = true
		layers = append(layers, a.Layer)
	}
	sort.Strings(layers)
	return layers, nil
}

func (s *annotationStore) DeleteAnnotation(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.annotations[id]; !ok {
		return fmt.Errorf("deleting annotation: %w", domain.ErrNotFound)
	}
	delete(s.annotations, id)
	return nil
}

// ==================== Preferences ====================

type preferenceStore struct{ *Store }

var _ driven.PreferenceStore = (*preferenceStore)(nil)

func (s *preferenceStore) GetPreference(_ context.Context, key string) (*domain.UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pref, ok := s.preferences[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &pref, nil
}

func (s *preferenceStore) SetPreference(_ context.Context, pref *domain.UserPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pref.LastModified.IsZero() {
		pref.LastModified = time.Now().UTC()
	}
	if existing, ok := s.preferences[pref.Key]; ok {
		pref.ID = existing.ID
	} else {
		s.nextPrefID++
		pref.ID = s.nextPrefID
	}
	s.preferences[pref.Key] = *pref
	return nil
}

func (s *preferenceStore) ListPreferences(_ context.Context) ([]domain.UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefs := make([]domain.UserPreference, 0, len(s.preferences))
	for _, p := range s.preferences {
		prefs = append(prefs, p)
	}
	sort.Slice(prefs, func(i, j int) bool { return prefs[i].Key < prefs[j].Key })
	return prefs, nil
}

func (s *preferenceStore) DeletePreference(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.preferences[key]; !ok {
		return fmt.Errorf("deleting preference: %w", domain.ErrNotFound)
	}
	delete(s.preferences, key)
	return nil
}
