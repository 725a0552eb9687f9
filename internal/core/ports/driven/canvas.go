package driven

import (
	"image"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// Canvas receives drawable elements from the annotation renderer.
type Canvas interface {
	// Clear removes every element previously added.
	Clear()

	// Add draws or records one element.
	Add(el domain.Element)
}

// RasterCanvas is a Canvas backed by a pixel buffer.
type RasterCanvas interface {
	Canvas

	// Image returns the current pixels.
	Image() *image.RGBA
}

// Rasterizer creates raster canvases over page images.
type Rasterizer interface {
	// NewCanvas wraps page so that elements are drawn onto it.
	// Element coordinates are multiplied by scale before drawing.
	NewCanvas(page *image.RGBA, scale float64) RasterCanvas

	// Thumbnail scales img to the given width, keeping the aspect ratio.
	Thumbnail(img image.Image, width int) *image.RGBA
}
