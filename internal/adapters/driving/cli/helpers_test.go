package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redliner/internal/adapters/driven/canvas"
	"github.com/custodia-labs/redliner/internal/adapters/driven/codec"
	"github.com/custodia-labs/redliner/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/redliner/internal/adapters/driven/validation"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/services"
)

// testEnv holds the services installed for a command test.
type testEnv struct {
	dir         string
	documents   *services.DocumentService
	annotations *services.AnnotationService
	preferences *services.PreferenceService
	settings    *services.SettingsService
}

// setupTestServices installs real services over an in-memory store.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	settings := services.NewSettingsService(memory.NewConfigStore())
	documents := services.NewDocumentService(store.DocumentStore(), settings, nil)
	annotations := services.NewAnnotationService(
		store.AnnotationStore(), store.DocumentStore(), validation.New(), settings,
	)
	renderer := services.NewAnnotationRenderer()
	viewer := services.NewDocumentViewer(settings)
	preferences := services.NewPreferenceService(store.PreferenceStore())
	dir := t.TempDir()

	SetServices(&Services{
		Document:   documents,
		Annotation: annotations,
		Renderer:   renderer,
		Viewer:     viewer,
		Export: services.NewExportService(services.ExportDeps{
			Documents:   documents,
			Annotations: annotations,
			Renderer:    renderer,
			Viewer:      viewer,
			Codec:       codec.NewYAML(true),
			Rasterizer:  canvas.NewRasterizer(),
			Settings:    settings,
		}),
		Preference: preferences,
		Settings:   settings,
		Seeder:     services.NewSeeder(store.DocumentStore(), store.AnnotationStore(), dir),
	})
	t.Cleanup(func() {
		SetServices(nil)
		resetCommand()
	})

	return &testEnv{
		dir:         dir,
		documents:   documents,
		annotations: annotations,
		preferences: preferences,
		settings:    settings,
	}
}

// file creates a file in the test directory and returns its path.
func (e *testEnv) file(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("drawing"), 0o600))
	return path
}

// openDocument registers a new file and returns the document.
func (e *testEnv) openDocument(t *testing.T, name string) *domain.Document {
	t.Helper()
	doc, err := e.documents.OpenOrRegister(context.Background(), e.file(t, name))
	require.NoError(t, err)
	return doc
}

// addAnnotation stores a rectangle-like annotation on doc.
func (e *testEnv) addAnnotation(t *testing.T, docID int64, typ domain.AnnotationType, layer string) *domain.Annotation {
	t.Helper()
	a := &domain.Annotation{
		DocumentID: docID,
		Type:       typ,
		X:          10,
		Y:          20,
		Width:      30,
		Height:     40,
		Text:       "note",
		Layer:      layer,
	}
	created, err := e.annotations.Create(context.Background(), a)
	require.NoError(t, err)
	return created
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	return executeContext(context.Background(), args...)
}

// executeWithInput runs the root command with input on stdin.
func executeWithInput(input string, args ...string) (string, error) {
	return run(context.Background(), strings.NewReader(input), args...)
}

func executeContext(ctx context.Context, args ...string) (string, error) {
	return run(ctx, nil, args...)
}

func run(ctx context.Context, in io.Reader, args ...string) (string, error) {
	resetCommand()
	if in != nil {
		rootCmd.SetIn(in)
	}
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	setContext(rootCmd, ctx)

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

// resetCommand restores every flag to its default so runs do not leak.
func resetCommand() {
	rootCmd.SetIn(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	resetFlags(rootCmd)
}

// setContext replaces the context cobra keeps on every command after the
// first run.
func setContext(cmd *cobra.Command, ctx context.Context) {
	cmd.SetContext(ctx)
	for _, c := range cmd.Commands() {
		setContext(c, ctx)
	}
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
