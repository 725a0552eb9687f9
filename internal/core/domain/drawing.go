package domain

// ElementKind identifies a drawable primitive.
type ElementKind string

// Drawable primitive kinds produced by the annotation renderer.
const (
	ElementRectangle ElementKind = "rectangle"
	ElementEllipse   ElementKind = "ellipse"
	ElementText      ElementKind = "text"
	ElementLine      ElementKind = "line"
	ElementHighlight ElementKind = "highlight"
)

// Color is an 8-bit RGBA colour. A is straight (non-premultiplied) alpha.
type Color struct {
	R, G, B, A uint8
}

// Common colours.
var (
	ColorRed   = Color{R: 0xFF, A: 0xFF}
	ColorWhite = Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// WithAlpha returns the colour with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Element is a backend-neutral drawable produced from one annotation.
// Left/Top is the placement on the canvas. Lines run from (Left, Top)
// to (X2, Y2).
type Element struct {
	Kind         ElementKind
	AnnotationID int64

	Left   float64
	Top    float64
	Width  float64
	Height float64
	X2     float64
	Y2     float64

	Stroke          Color
	HasStroke       bool
	Fill            Color
	HasFill         bool
	StrokeThickness float64

	// Opacity applies to the whole element, 1 is opaque.
	Opacity float64

	// Text elements only.
	Text       string
	FontSize   float64
	Foreground Color
	Background Color
}
