package driving

import (
	"context"
	"image"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// DocumentViewer loads document files for display.
type DocumentViewer interface {
	// CanView reports whether path exists and has a viewable extension.
	CanView(path string) bool

	// Load describes how the file should be displayed.
	Load(ctx context.Context, path string) (*domain.DocumentView, error)

	// RenderPage renders one page at dpi. A dpi of zero or less uses the
	// configured default. CAD files return domain.ErrNotImplemented.
	RenderPage(ctx context.Context, path string, page, dpi int) (*image.RGBA, error)
}
