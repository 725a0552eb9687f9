package driving

import (
	"context"
	"io"
)

// RenderOptions control PNG export.
type RenderOptions struct {
	// DPI of the rendered page. Zero uses the configured default.
	DPI int

	// Width scales the output to this many pixels wide. Zero keeps the
	// page size.
	Width int

	// Layer limits the annotations drawn. Empty draws every layer.
	Layer string
}

// ExportService copies documents and moves annotations in and out.
type ExportService interface {
	// SaveCopy copies the document file to dest and bumps the document.
	SaveCopy(ctx context.Context, documentID int64, dest string) error

	// ExportAnnotations writes the document's annotations to w.
	ExportAnnotations(ctx context.Context, documentID int64, w io.Writer) (int, error)

	// ImportAnnotations reads annotations from r and adds them to the
	// document. Returns the number imported.
	ImportAnnotations(ctx context.Context, documentID int64, r io.Reader) (int, error)

	// RenderPNG writes the page with its annotations drawn as a PNG.
	RenderPNG(ctx context.Context, documentID int64, w io.Writer, opts RenderOptions) error
}
