package services

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

type jsonCodec struct{}

func (jsonCodec) Encode(w io.Writer, sheet *driven.AnnotationSheet) error {
	return json.NewEncoder(w).Encode(sheet)
}

func (jsonCodec) Decode(r io.Reader) (*driven.AnnotationSheet, error) {
	var sheet driven.AnnotationSheet
	if err := json.NewDecoder(r).Decode(&sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (jsonCodec) Extension() string { return ".json" }

type fakeRaster struct {
	recordingCanvas
	img   *image.RGBA
	scale float64
}

func (c *fakeRaster) Image() *image.RGBA { return c.img }

type fakeRasterizer struct {
	last *fakeRaster
}

func (r *fakeRasterizer) NewCanvas(page *image.RGBA, scale float64) driven.RasterCanvas {
	r.last = &fakeRaster{img: page, scale: scale}
	return r.last
}

func (r *fakeRasterizer) Thumbnail(img image.Image, width int) *image.RGBA {
	b := img.Bounds()
	return image.NewRGBA(image.Rect(0, 0, width, b.Dy()*width/b.Dx()))
}

func newExportEnv(t *testing.T) (*testEnv, *ExportService, *fakeRasterizer) {
	t.Helper()
	env := newTestEnv(t)
	rasterizer := &fakeRasterizer{}
	svc := NewExportService(ExportDeps{
		Documents:   env.documents,
		Annotations: env.annotations,
		Renderer:    NewAnnotationRenderer(),
		Viewer:      NewDocumentViewer(env.settings),
		Codec:       jsonCodec{},
		Rasterizer:  rasterizer,
		Settings:    env.settings,
	})
	return env, svc, rasterizer
}

func TestExportService_SaveCopy(t *testing.T) {
	env, svc, _ := newExportEnv(t)
	ctx := context.Background()
	doc := env.openDoc(t, "a.pdf")

	dest := filepath.Join(t.TempDir(), "out", "copy.pdf")
	require.NoError(t, svc.SaveCopy(ctx, doc.ID, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n", string(data))

	assert.ErrorIs(t, svc.SaveCopy(ctx, doc.ID, doc.FilePath), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.SaveCopy(ctx, 999, dest), domain.ErrNotFound)
}

func TestExportService_ExportImportRoundTrip(t *testing.T) {
	env, svc, _ := newExportEnv(t)
	ctx := context.Background()
	src := env.openDoc(t, "a.pdf")
	dst := env.openDoc(t, "b.pdf")

	for _, typ := range []string{"Rectangle", "Text", "Arrow"} {
		_, err := env.annotations.Create(ctx, &domain.Annotation{DocumentID: src.ID, Type: domain.AnnotationType(typ), X: 1, Y: 2})
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	n, err := svc.ExportAnnotations(ctx, src.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	imported, err := svc.ImportAnnotations(ctx, dst.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, imported)

	got, err := env.annotations.ListForDocument(ctx, dst.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, a := range got {
		assert.Equal(t, dst.ID, a.DocumentID)
	}

	srcAfter, err := env.annotations.ListForDocument(ctx, src.ID)
	require.NoError(t, err)
	assert.Len(t, srcAfter, 3)
}

func TestExportService_ImportStopsAtInvalid(t *testing.T) {
	env, svc, _ := newExportEnv(t)
	ctx := context.Background()
	doc := env.openDoc(t, "a.pdf")

	sheet := driven.AnnotationSheet{Annotations: []domain.Annotation{
		{Type: "Rectangle"},
		{Type: "Star"},
		{Type: "Circle"},
	}}
	raw, err := json.Marshal(sheet)
	require.NoError(t, err)

	n, err := svc.ImportAnnotations(ctx, doc.ID, bytes.NewReader(raw))
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Equal(t, 1, n)

	_, err = svc.ImportAnnotations(ctx, doc.ID, bytes.NewReader([]byte("{")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportService_RenderPNG(t *testing.T) {
	env, svc, rasterizer := newExportEnv(t)
	ctx := context.Background()
	doc := env.openDoc(t, "a.pdf")

	for _, layer := range []string{"Notes", "Redlines"} {
		_, err := env.annotations.Create(ctx, &domain.Annotation{DocumentID: doc.ID, Type: "Rectangle", Layer: layer})
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, svc.RenderPNG(ctx, doc.ID, &buf, driving.RenderOptions{DPI: 192}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1632, img.Bounds().Dx())
	assert.InDelta(t, 2.0, rasterizer.last.scale, 1e-9)
	assert.Len(t, rasterizer.last.elements, 2)

	buf.Reset()
	require.NoError(t, svc.RenderPNG(ctx, doc.ID, &buf, driving.RenderOptions{Width: 200, Layer: "Notes"}))
	thumb, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, thumb.Bounds().Dx())
	assert.Len(t, rasterizer.last.elements, 1)
}

func TestExportService_RenderPNG_CAD(t *testing.T) {
	env, svc, _ := newExportEnv(t)
	doc := env.openDoc(t, "site.dxf")

	err := svc.RenderPNG(context.Background(), doc.ID, io.Discard, driving.RenderOptions{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestExportService_WithoutOptionalPorts(t *testing.T) {
	env := newTestEnv(t)
	svc := NewExportService(ExportDeps{Documents: env.documents, Annotations: env.annotations})
	ctx := context.Background()

	_, err := svc.ExportAnnotations(ctx, 1, io.Discard)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.ImportAnnotations(ctx, 1, bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, svc.RenderPNG(ctx, 1, io.Discard, driving.RenderOptions{}), domain.ErrNotImplemented)
}
