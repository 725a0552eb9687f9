package services

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
	"github.com/custodia-labs/redliner/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// screenDPI is the resolution annotation coordinates are expressed in.
const screenDPI = 96.0

// ExportService copies document files and moves annotations in and out of
// the store.
type ExportService struct {
	documents   driving.DocumentService
	annotations driving.AnnotationService
	renderer    driving.AnnotationRenderer
	viewer      driving.DocumentViewer
	codec       driven.AnnotationCodec
	rasterizer  driven.Rasterizer
	settings    driving.SettingsService
}

// ExportDeps bundles the ports ExportService needs.
// Codec and Rasterizer may be nil, disabling sidecars and PNG export.
type ExportDeps struct {
	Documents   driving.DocumentService
	Annotations driving.AnnotationService
	Renderer    driving.AnnotationRenderer
	Viewer      driving.DocumentViewer
	Codec       driven.AnnotationCodec
	Rasterizer  driven.Rasterizer
	Settings    driving.SettingsService
}

// NewExportService creates a new export service.
func NewExportService(deps ExportDeps) *ExportService {
	return &ExportService{
		documents:   deps.Documents,
		annotations: deps.Annotations,
		renderer:    deps.Renderer,
		viewer:      deps.Viewer,
		codec:       deps.Codec,
		rasterizer:  deps.Rasterizer,
		settings:    deps.Settings,
	}
}

// SaveCopy copies the document file to dest and bumps the document.
func (s *ExportService) SaveCopy(ctx context.Context, documentID int64, dest string) error {
	doc, err := s.documents.Get(ctx, documentID)
	if err != nil {
		return err
	}

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dest, err)
	}
	if filepath.Clean(absDest) == doc.FilePath {
		return fmt.Errorf("save copy: destination is the source file: %w", domain.ErrInvalidInput)
	}

	if err := copyFile(doc.FilePath, absDest); err != nil {
		return fmt.Errorf("save copy of %s: %w", doc.FileName, err)
	}

	if _, err := s.documents.Touch(ctx, documentID); err != nil {
		return err
	}
	logger.Debug("copied %s to %s", doc.FilePath, absDest)
	return nil
}

// ExportAnnotations writes the document's annotations to w.
func (s *ExportService) ExportAnnotations(ctx context.Context, documentID int64, w io.Writer) (int, error) {
	if s.codec == nil {
		return 0, fmt.Errorf("export annotations: %w", domain.ErrNotImplemented)
	}

	doc, err := s.documents.Get(ctx, documentID)
	if err != nil {
		return 0, err
	}
	annotations, err := s.annotations.ListForDocument(ctx, documentID)
	if err != nil {
		return 0, err
	}

	sheet := &driven.AnnotationSheet{Document: *doc, Annotations: annotations}
	if err := s.codec.Encode(w, sheet); err != nil {
		return 0, fmt.Errorf("export annotations: %w", err)
	}
	return len(annotations), nil
}

// ImportAnnotations reads a sheet from r and adds its annotations to the
// document. IDs in the sheet are ignored. Stops at the first invalid
// annotation, returning how many were imported before it.
func (s *ExportService) ImportAnnotations(ctx context.Context, documentID int64, r io.Reader) (int, error) {
	if s.codec == nil {
		return 0, fmt.Errorf("import annotations: %w", domain.ErrNotImplemented)
	}

	if _, err := s.documents.Get(ctx, documentID); err != nil {
		return 0, err
	}

	sheet, err := s.codec.Decode(r)
	if err != nil {
		return 0, fmt.Errorf("import annotations: %w: %w", domain.ErrInvalidInput, err)
	}

	imported := 0
	for i := range sheet.Annotations {
		a := sheet.Annotations[i]
		a.ID = 0
		a.DocumentID = documentID
		if _, err := s.annotations.Create(ctx, &a); err != nil {
			return imported, fmt.Errorf("import annotation %d: %w", i+1, err)
		}
		imported++
	}
	return imported, nil
}

// RenderPNG renders the document's first page with its annotations drawn
// on top and writes it to w as PNG.
func (s *ExportService) RenderPNG(
	ctx context.Context, documentID int64, w io.Writer, opts driving.RenderOptions,
) error {
	if s.rasterizer == nil {
		return fmt.Errorf("render png: %w", domain.ErrNotImplemented)
	}

	doc, err := s.documents.Get(ctx, documentID)
	if err != nil {
		return err
	}

	dpi := opts.DPI
	if dpi <= 0 {
		dpi = currentSettings(s.settings).Viewer.DPI
	}

	page, err := s.viewer.RenderPage(ctx, doc.FilePath, 0, dpi)
	if err != nil {
		return err
	}

	var annotations []domain.Annotation
	if opts.Layer != "" {
		annotations, err = s.annotations.ListForDocumentAndLayer(ctx, documentID, opts.Layer)
	} else {
		annotations, err = s.annotations.ListForDocument(ctx, documentID)
	}
	if err != nil {
		return err
	}

	canvas := s.rasterizer.NewCanvas(page, float64(dpi)/screenDPI)
	drawn := s.renderer.RenderAnnotations(canvas, annotations)
	logger.Debug("rendered %d of %d annotations for document %d at %d dpi",
		drawn, len(annotations), documentID, dpi)

	var out image.Image = canvas.Image()
	if opts.Width > 0 {
		out = s.rasterizer.Thumbnail(out, opts.Width)
	}

	if err := png.Encode(w, out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ErrFileNotFound
		}
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
