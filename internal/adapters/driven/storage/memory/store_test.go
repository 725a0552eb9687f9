package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

func newDoc(path string) *domain.Document {
	return &domain.Document{FilePath: path, FileName: path, FileType: domain.FileTypeFromPath(path)}
}

func TestStore_DocumentIDsAreSequential(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	a, b := newDoc("/a.pdf"), newDoc("/b.pdf")
	require.NoError(t, s.DocumentStore().CreateDocument(ctx, a))
	require.NoError(t, s.DocumentStore().CreateDocument(ctx, b))

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.ErrorIs(t, s.DocumentStore().CreateDocument(ctx, newDoc("/a.pdf")), domain.ErrAlreadyExists)
}

func TestStore_ListDocumentsNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Now()

	for i, p := range []string{"/a.pdf", "/b.pdf", "/c.pdf"} {
		d := newDoc(p)
		d.LastModified = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, s.DocumentStore().CreateDocument(ctx, d))
	}

	docs, err := s.DocumentStore().ListDocuments(ctx, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "/c.pdf", docs[0].FilePath)
	assert.Equal(t, "/b.pdf", docs[1].FilePath)
}

func TestStore_AnnotationRequiresDocument(t *testing.T) {
	s := NewStore()
	err := s.AnnotationStore().CreateAnnotation(context.Background(), domain.NewAnnotation(9, domain.AnnotationRectangle))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DeleteDocumentCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	doc := newDoc("/a.pdf")
	require.NoError(t, s.DocumentStore().CreateDocument(ctx, doc))
	for _, layer := range []string{"Notes", "Default", "Notes"} {
		a := domain.NewAnnotation(doc.ID, domain.AnnotationRectangle)
		a.Layer = layer
		require.NoError(t, s.AnnotationStore().CreateAnnotation(ctx, a))
	}

	layers, err := s.AnnotationStore().ListLayers(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Default", "Notes"}, layers)

	require.NoError(t, s.DocumentStore().DeleteDocument(ctx, doc.ID))

	left, err := s.AnnotationStore().ListAnnotations(ctx, doc.ID, "")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestStore_Preferences(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	prefs := s.PreferenceStore()

	first := &domain.UserPreference{Key: "k", Value: "1"}
	require.NoError(t, prefs.SetPreference(ctx, first))
	second := &domain.UserPreference{Key: "k", Value: "2"}
	require.NoError(t, prefs.SetPreference(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	got, err := prefs.GetPreference(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "2", got.Value)

	require.NoError(t, prefs.DeletePreference(ctx, "k"))
	assert.ErrorIs(t, prefs.DeletePreference(ctx, "k"), domain.ErrNotFound)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	doc := newDoc("/a.pdf")
	require.NoError(t, s.DocumentStore().CreateDocument(ctx, doc))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := domain.NewAnnotation(doc.ID, domain.AnnotationCircle)
			assert.NoError(t, s.AnnotationStore().CreateAnnotation(ctx, a))
			_, err := s.AnnotationStore().ListAnnotations(ctx, doc.ID, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := s.AnnotationStore().ListAnnotations(ctx, doc.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	c := NewConfigStore()
	require.NoError(t, c.Set("viewer.dpi", int64(150)))
	require.NoError(t, c.Set("annotations.default_stroke", 2.5))
	require.NoError(t, c.Set("annotations.strict_types", true))
	require.NoError(t, c.Set("annotations.default_color", "#00FF00"))

	assert.Equal(t, 150, c.GetInt("viewer.dpi"))
	assert.InDelta(t, 150.0, c.GetFloat("viewer.dpi"), 1e-9)
	assert.InDelta(t, 2.5, c.GetFloat("annotations.default_stroke"), 1e-9)
	assert.True(t, c.GetBool("annotations.strict_types"))
	assert.Equal(t, "#00FF00", c.GetString("annotations.default_color"))
	assert.Empty(t, c.GetString("missing"))
	assert.Equal(t, []string{
		"annotations.default_color", "annotations.default_stroke",
		"annotations.strict_types", "viewer.dpi",
	}, c.Keys())
}
