package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

func whitePage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xFFFF && g == 0xFFFF && b == 0xFFFF
}

func isRedish(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r > 0xF000 && g < 0x4000 && b < 0x4000
}

func TestRaster_RectangleStrokeAndFill(t *testing.T) {
	page := whitePage(100, 100)
	r := NewRaster(page, 1)

	r.Add(domain.Element{
		Kind:   domain.ElementRectangle,
		Left:   20,
		Top:    20,
		Width:  60,
		Height: 40,
		Stroke: domain.ColorRed, HasStroke: true,
		Fill: domain.ColorRed.WithAlpha(30), HasFill: true,
		StrokeThickness: 4,
		Opacity:         1,
	})

	img := r.Image()
	assert.True(t, isRedish(img.At(20, 40)), "left edge is stroked")
	assert.True(t, isWhite(img.At(5, 5)), "outside is untouched")

	inside := img.At(50, 40)
	assert.False(t, isWhite(inside), "interior is tinted")
	assert.False(t, isRedish(inside), "interior fill is translucent")
}

func TestRaster_Ellipse(t *testing.T) {
	r := NewRaster(whitePage(100, 100), 1)
	r.Add(domain.Element{
		Kind: domain.ElementEllipse, Left: 10, Top: 10, Width: 80, Height: 80,
		Stroke: domain.ColorRed, HasStroke: true, StrokeThickness: 4, Opacity: 1,
	})

	img := r.Image()
	assert.True(t, isRedish(img.At(10, 50)), "leftmost point of ellipse")
	assert.True(t, isWhite(img.At(50, 50)), "centre is not filled")
	assert.True(t, isWhite(img.At(12, 12)), "corner of bounding box is outside")
}

func TestRaster_Line(t *testing.T) {
	r := NewRaster(whitePage(100, 100), 1)
	r.Add(domain.Element{
		Kind: domain.ElementLine, Left: 10, Top: 50, X2: 90, Y2: 50,
		Stroke: domain.ColorRed, HasStroke: true, StrokeThickness: 4, Opacity: 1,
	})

	img := r.Image()
	assert.True(t, isRedish(img.At(50, 50)))
	assert.True(t, isWhite(img.At(50, 60)))
}

func TestRaster_ScaleMultipliesCoordinates(t *testing.T) {
	r := NewRaster(whitePage(200, 200), 2)
	r.Add(domain.Element{
		Kind: domain.ElementHighlight, Left: 10, Top: 10, Width: 20, Height: 20,
		Fill: domain.ColorRed, HasFill: true, Opacity: 1,
	})

	img := r.Image()
	assert.True(t, isRedish(img.At(40, 40)))
	assert.True(t, isWhite(img.At(15, 15)))
}

func TestRaster_Text(t *testing.T) {
	r := NewRaster(whitePage(200, 100), 1)
	r.Add(domain.Element{
		Kind: domain.ElementText, Left: 10, Top: 10, Text: "MMMM",
		FontSize: 26, Foreground: domain.ColorRed, Background: domain.ColorWhite, Opacity: 1,
	})

	found := false
	for x := 10; x < 120 && !found; x++ {
		for y := 10; y < 50; y++ {
			if isRedish(r.Image().At(x, y)) {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "text glyphs are drawn in the foreground colour")
}

func TestRaster_EmptyTextIsSkipped(t *testing.T) {
	page := whitePage(50, 50)
	r := NewRaster(page, 1)
	r.Add(domain.Element{Kind: domain.ElementText, Left: 5, Top: 5, Foreground: domain.ColorRed})
	assert.True(t, isWhite(r.Image().At(6, 6)))
}

func TestRaster_ClearRestoresPage(t *testing.T) {
	r := NewRaster(whitePage(50, 50), 1)
	r.Add(domain.Element{
		Kind: domain.ElementHighlight, Left: 0, Top: 0, Width: 50, Height: 50,
		Fill: domain.ColorRed, HasFill: true, Opacity: 1,
	})
	require.True(t, isRedish(r.Image().At(25, 25)))

	r.Clear()
	assert.True(t, isWhite(r.Image().At(25, 25)))
}

func TestRasterizer_Thumbnail(t *testing.T) {
	rz := NewRasterizer()
	thumb := rz.Thumbnail(whitePage(400, 200), 100)

	assert.Equal(t, 100, thumb.Bounds().Dx())
	assert.Equal(t, 50, thumb.Bounds().Dy())
	assert.True(t, isWhite(thumb.At(50, 25)))
}

func TestRasterizer_ThumbnailZeroWidthKeepsSize(t *testing.T) {
	thumb := NewRasterizer().Thumbnail(whitePage(40, 30), 0)
	assert.Equal(t, image.Rect(0, 0, 40, 30), thumb.Bounds())
}

func TestRasterizer_NewCanvasDrawsOnPage(t *testing.T) {
	page := whitePage(20, 20)
	c := NewRasterizer().NewCanvas(page, 1)
	c.Add(domain.Element{
		Kind: domain.ElementHighlight, Width: 20, Height: 20,
		Fill: domain.ColorRed, HasFill: true, Opacity: 1,
	})
	assert.True(t, isRedish(page.At(10, 10)))
}
