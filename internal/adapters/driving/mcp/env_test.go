package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redliner/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/services"
)

type testEnv struct {
	server      *Server
	ports       *Ports
	documents   *services.DocumentService
	annotations *services.AnnotationService
}

func newTestEnv(t *testing.T, withRenderer bool) *testEnv {
	t.Helper()

	store := memory.NewStore()
	settings := services.NewSettingsService(memory.NewConfigStore())
	env := &testEnv{
		documents:   services.NewDocumentService(store.DocumentStore(), settings, nil),
		annotations: services.NewAnnotationService(store.AnnotationStore(), store.DocumentStore(), nil, settings),
	}

	ports := &Ports{Document: env.documents, Annotation: env.annotations}
	if withRenderer {
		ports.Renderer = services.NewAnnotationRenderer()
	}

	server, err := NewServer(ports)
	require.NoError(t, err)
	env.server = server
	env.ports = ports
	return env
}

// openDoc writes a PDF into a temp dir and registers it.
func (e *testEnv) openDoc(t *testing.T, name string) *domain.Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o600))
	doc, err := e.documents.OpenOrRegister(context.Background(), path)
	require.NoError(t, err)
	return doc
}

func (e *testEnv) addAnnotation(t *testing.T, docID int64, typ domain.AnnotationType, layer string) *domain.Annotation {
	t.Helper()
	a := domain.NewAnnotation(docID, typ)
	a.X, a.Y, a.Width, a.Height = 10, 20, 30, 40
	a.Layer = layer
	a.Text = "note"
	created, err := e.annotations.Create(context.Background(), a)
	require.NoError(t, err)
	return created
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
