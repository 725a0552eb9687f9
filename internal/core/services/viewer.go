package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

// Ensure DocumentViewer implements the interface.
var _ driving.DocumentViewer = (*DocumentViewer)(nil)

// Placeholder text shown for CAD drawings.
const (
	cadTitlePrefix = "CAD Document: "
	cadMessage     = "CAD file viewing requires additional libraries.\nShowing placeholder for now."
)

// DocumentViewer loads documents for display. Neither PDF nor CAD content
// is parsed: PDFs render as a blank letter page sized for annotation and CAD
// drawings produce a placeholder.
type DocumentViewer struct {
	settings driving.SettingsService
}

// NewDocumentViewer creates a new document viewer. settings may be nil.
func NewDocumentViewer(settings driving.SettingsService) *DocumentViewer {
	return &DocumentViewer{settings: settings}
}

// CanView reports whether path exists and has a viewable extension.
func (v *DocumentViewer) CanView(path string) bool {
	if !domain.FileTypeFromPath(path).IsViewable() {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load describes how the file should be displayed.
func (v *DocumentViewer) Load(ctx context.Context, path string) (*domain.DocumentView, error) {
	if err := v.check(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileType := domain.FileTypeFromPath(path)
	view := &domain.DocumentView{
		Path:     path,
		FileName: filepath.Base(path),
		FileType: fileType,
	}

	if fileType.IsCAD() {
		view.Kind = domain.ViewPlaceholder
		view.Title = cadTitlePrefix + view.FileName
		view.Message = cadMessage
		return view, nil
	}

	view.Kind = domain.ViewPage
	view.DPI = domain.DefaultLoadDPI
	view.Width, view.Height = domain.LetterPageSize(view.DPI)
	return view, nil
}

// RenderPage renders one page of a PDF as a blank white letter sheet.
func (v *DocumentViewer) RenderPage(ctx context.Context, path string, page, dpi int) (*image.RGBA, error) {
	if err := v.check(path); err != nil {
		return nil, err
	}
	if page < 0 {
		return nil, fmt.Errorf("render page %d: %w", page, domain.ErrInvalidInput)
	}
	if domain.FileTypeFromPath(path).IsCAD() {
		return nil, fmt.Errorf("render %s: %w", filepath.Base(path), domain.ErrNotImplemented)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if dpi <= 0 {
		dpi = currentSettings(v.settings).Viewer.DPI
	}
	if dpi > domain.MaxViewerDPI {
		return nil, fmt.Errorf("render at %d dpi: %w", dpi, domain.ErrInvalidInput)
	}

	w, h := domain.LetterPageSize(dpi)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img, nil
}

func (v *DocumentViewer) check(path string) error {
	if !domain.FileTypeFromPath(path).IsViewable() {
		return fmt.Errorf("view %s: %w", path, domain.ErrUnsupportedType)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("view %s: %w", path, domain.ErrFileNotFound)
		}
		return fmt.Errorf("view %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("view %s: is a directory: %w", path, domain.ErrInvalidInput)
	}
	return nil
}
