package domain

import (
	"math"
	"strings"
	"time"
)

// AnnotationType identifies the shape of an annotation.
// Stored as free text; only the canonical values below are rendered.
type AnnotationType string

// Canonical annotation types.
const (
	AnnotationRectangle   AnnotationType = "Rectangle"
	AnnotationCircle      AnnotationType = "Circle"
	AnnotationText        AnnotationType = "Text"
	AnnotationArrow       AnnotationType = "Arrow"
	AnnotationHighlight   AnnotationType = "Highlight"
	AnnotationFreehand    AnnotationType = "Freehand"
	AnnotationMeasurement AnnotationType = "Measurement"
)

// AnnotationTypes lists every canonical annotation type.
func AnnotationTypes() []AnnotationType {
	return []AnnotationType{
		AnnotationRectangle,
		AnnotationCircle,
		AnnotationText,
		AnnotationArrow,
		AnnotationHighlight,
		AnnotationFreehand,
		AnnotationMeasurement,
	}
}

// ParseAnnotationType matches s case-insensitively against the canonical types.
func ParseAnnotationType(s string) (AnnotationType, bool) {
	for _, t := range AnnotationTypes() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return AnnotationType(s), false
}

// IsKnown reports whether the type is one of the canonical values.
func (t AnnotationType) IsKnown() bool {
	_, ok := ParseAnnotationType(string(t))
	return ok
}

// IsRenderable reports whether the renderer produces an element for this type.
// Freehand and Measurement are declared but not drawn.
func (t AnnotationType) IsRenderable() bool {
	switch strings.ToLower(string(t)) {
	case "rectangle", "circle", "text", "arrow", "highlight":
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t AnnotationType) String() string {
	return string(t)
}

// Well-known annotation layers.
const (
	LayerDefault      = "Default"
	LayerRedlines     = "Redlines"
	LayerNotes        = "Notes"
	LayerMarkup       = "Markup"
	LayerMeasurements = "Measurements"
)

// Layers lists the well-known layers.
func Layers() []string {
	return []string{LayerDefault, LayerRedlines, LayerNotes, LayerMarkup, LayerMeasurements}
}

// Annotation defaults applied when a value is not supplied.
const (
	DefaultAnnotationColor  = "#FF0000"
	DefaultStrokeThickness  = 2.0
	MinDrawnAnnotationWidth = 5.0
)

// Annotation is a markup shape attached to a document.
// Coordinates are in document space.
type Annotation struct {
	// ID is the store-assigned identifier.
	ID int64

	// DocumentID references the owning Document.
	DocumentID int64

	// Type is the shape tag.
	Type AnnotationType

	X      float64
	Y      float64
	Width  float64
	Height float64

	// Text is the label for Text annotations. Empty means none.
	Text string

	// Color is a hex colour string such as "#FF0000".
	Color string

	// StrokeThickness is the outline width. Text uses it to size the font.
	StrokeThickness float64

	// Layer groups annotations. Empty means none.
	Layer string

	CreatedAt    time.Time
	LastModified time.Time
}

// NewAnnotation returns an annotation with default colour and stroke.
func NewAnnotation(documentID int64, t AnnotationType) *Annotation {
	return &Annotation{
		DocumentID:      documentID,
		Type:            t,
		Color:           DefaultAnnotationColor,
		StrokeThickness: DefaultStrokeThickness,
	}
}

// ApplyDefaults fills an empty colour and a zero stroke thickness.
func (a *Annotation) ApplyDefaults() {
	if a.Color == "" {
		a.Color = DefaultAnnotationColor
	}
	if a.StrokeThickness == 0 {
		a.StrokeThickness = DefaultStrokeThickness
	}
}

// Rect is an axis-aligned box in document coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromDrag normalises a pointer drag into a rectangle with
// non-negative size, anchored at the top-left corner.
func RectFromDrag(x1, y1, x2, y2 float64) Rect {
	return Rect{
		X:      math.Min(x1, x2),
		Y:      math.Min(y1, y2),
		Width:  math.Abs(x2 - x1),
		Height: math.Abs(y2 - y1),
	}
}

// IsDrawable reports whether the rectangle exceeds the minimum drawn size
// in both dimensions.
func (r Rect) IsDrawable() bool {
	return r.Width > MinDrawnAnnotationWidth && r.Height > MinDrawnAnnotationWidth
}
