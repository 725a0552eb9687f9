package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

// ellipseSegments is the number of polygon edges approximating an ellipse.
const ellipseSegments = 96

// textPadding is the background margin around labels, in face pixels.
const textPadding = 2

// Ensure the raster types implement the interfaces.
var (
	_ driven.RasterCanvas = (*Raster)(nil)
	_ driven.Rasterizer   = (*Rasterizer)(nil)
)

// Rasterizer creates Raster canvases.
type Rasterizer struct{}

// NewRasterizer creates a new rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// NewCanvas wraps page in a Raster canvas.
func (*Rasterizer) NewCanvas(page *image.RGBA, scale float64) driven.RasterCanvas {
	return NewRaster(page, scale)
}

// Thumbnail scales img to width pixels wide with Catmull-Rom resampling.
func (*Rasterizer) Thumbnail(img image.Image, width int) *image.RGBA {
	b := img.Bounds()
	if width <= 0 || b.Dx() == 0 {
		width = b.Dx()
	}
	height := int(math.Round(float64(b.Dy()) * float64(width) / float64(b.Dx())))
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Raster draws elements onto a page image. Clear restores the page to the
// pixels it had when the canvas was created.
type Raster struct {
	dst   *image.RGBA
	base  *image.RGBA
	scale float64
}

// NewRaster creates a canvas over page. Coordinates are multiplied by scale.
func NewRaster(page *image.RGBA, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	base := image.NewRGBA(page.Bounds())
	draw.Draw(base, base.Bounds(), page, page.Bounds().Min, draw.Src)
	return &Raster{dst: page, base: base, scale: scale}
}

// Image returns the page with every element drawn so far.
func (r *Raster) Image() *image.RGBA {
	return r.dst
}

// Clear restores the original page.
func (r *Raster) Clear() {
	draw.Draw(r.dst, r.dst.Bounds(), r.base, r.base.Bounds().Min, draw.Src)
}

// Add draws el.
func (r *Raster) Add(el domain.Element) {
	opacity := el.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}

	x, y := el.Left*r.scale, el.Top*r.scale
	w, h := el.Width*r.scale, el.Height*r.scale
	stroke := math.Max(el.StrokeThickness*r.scale, 1)

	switch el.Kind {
	case domain.ElementRectangle, domain.ElementHighlight:
		x, y, w, h = normalise(x, y, w, h)
		if el.HasFill {
			r.fill(el.Fill, opacity, rectPath(x, y, w, h))
		}
		if el.HasStroke && w > 0 && h > 0 {
			outer := rectPath(x-stroke/2, y-stroke/2, w+stroke, h+stroke)
			if w <= stroke || h <= stroke {
				r.fill(el.Stroke, opacity, outer)
				break
			}
			inner := reversed(rectPath(x+stroke/2, y+stroke/2, w-stroke, h-stroke))
			r.fill(el.Stroke, opacity, outer, inner)
		}
	case domain.ElementEllipse:
		x, y, w, h = normalise(x, y, w, h)
		cx, cy, rx, ry := x+w/2, y+h/2, w/2, h/2
		if el.HasFill {
			r.fill(el.Fill, opacity, ellipsePath(cx, cy, rx, ry))
		}
		if el.HasStroke && rx > 0 && ry > 0 {
			outer := ellipsePath(cx, cy, rx+stroke/2, ry+stroke/2)
			inner := reversed(ellipsePath(cx, cy, math.Max(rx-stroke/2, 0), math.Max(ry-stroke/2, 0)))
			r.fill(el.Stroke, opacity, outer, inner)
		}
	case domain.ElementLine:
		if el.HasStroke {
			r.fill(el.Stroke, opacity, linePath(x, y, el.X2*r.scale, el.Y2*r.scale, stroke))
		}
	case domain.ElementText:
		r.text(el, x, y, opacity)
	}
}

// polygon is a closed list of points.
type polygon [][2]float64

// fill rasterises the sub-paths together. Opposite windings cancel, which is
// how outlines are cut from solid shapes.
func (r *Raster) fill(c domain.Color, opacity float64, paths ...polygon) {
	b := r.dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	ox, oy := float64(b.Min.X), float64(b.Min.Y)

	drawn := false
	for _, sub := range paths {
		if len(sub) < 3 {
			continue
		}
		z.MoveTo(float32(sub[0][0]-ox), float32(sub[0][1]-oy))
		for _, p := range sub[1:] {
			z.LineTo(float32(p[0]-ox), float32(p[1]-oy))
		}
		z.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}

	z.Draw(r.dst, b, image.NewUniform(toNRGBA(c, opacity)), image.Point{})
}

func (r *Raster) text(el domain.Element, x, y, opacity float64) {
	if el.Text == "" {
		return
	}

	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil()
	width := font.MeasureString(face, el.Text).Ceil()

	label := image.NewRGBA(image.Rect(0, 0, width+2*textPadding, lineHeight+2*textPadding))
	draw.Draw(label, label.Bounds(), image.NewUniform(toNRGBA(el.Background, 1)), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(toNRGBA(el.Foreground, 1)),
		Face: face,
		Dot:  fixed.P(textPadding, textPadding+metrics.Ascent.Ceil()),
	}
	d.DrawString(el.Text)

	factor := el.FontSize * r.scale / float64(lineHeight)
	if factor <= 0 {
		factor = 1
	}
	target := image.Rect(
		int(math.Round(x)),
		int(math.Round(y)),
		int(math.Round(x+float64(label.Bounds().Dx())*factor)),
		int(math.Round(y+float64(label.Bounds().Dy())*factor)),
	)

	var mask image.Image
	if opacity < 1 {
		mask = image.NewUniform(color.Alpha{A: uint8(math.Round(opacity * 255))})
	}
	opts := &xdraw.Options{SrcMask: mask}
	xdraw.ApproxBiLinear.Scale(r.dst, target, label, label.Bounds(), draw.Over, opts)
}

func toNRGBA(c domain.Color, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(float64(c.A) * opacity))}
}

// normalise flips negative sizes so the box runs left to right, top to bottom.
func normalise(x, y, w, h float64) (float64, float64, float64, float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return x, y, w, h
}

func rectPath(x, y, w, h float64) polygon {
	return polygon{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

func ellipsePath(cx, cy, rx, ry float64) polygon {
	p := make(polygon, ellipseSegments)
	for i := range p {
		theta := 2 * math.Pi * float64(i) / ellipseSegments
		p[i] = [2]float64{cx + rx*math.Cos(theta), cy + ry*math.Sin(theta)}
	}
	return p
}

// linePath is the quadrilateral covering a segment of the given width.
func linePath(x1, y1, x2, y2, width float64) polygon {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return rectPath(x1-width/2, y1-width/2, width, width)
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	return polygon{
		{x1 + nx, y1 + ny},
		{x2 + nx, y2 + ny},
		{x2 - nx, y2 - ny},
		{x1 - nx, y1 - ny},
	}
}

func reversed(p polygon) polygon {
	out := make(polygon, len(p))
	for i := range p {
		out[len(p)-1-i] = p[i]
	}
	return out
}
