package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

// Ensure AnnotationRenderer implements the interface.
var _ driving.AnnotationRenderer = (*AnnotationRenderer)(nil)

// Rendering constants.
const (
	fillAlpha         = 30
	highlightOpacity  = 0.5
	textBackground    = 204 // 0.8 of 255
	minFontSize       = 12.0
	fontSizePerStroke = 6.0
)

// AnnotationRenderer maps annotations to drawable elements. It has no state
// and never fails: unknown types are skipped and bad colours become red.
type AnnotationRenderer struct{}

// NewAnnotationRenderer creates a new annotation renderer.
func NewAnnotationRenderer() *AnnotationRenderer {
	return &AnnotationRenderer{}
}

// RenderAnnotations clears canvas and adds one element per renderable
// annotation, in order. Returns the number of elements added.
func (r *AnnotationRenderer) RenderAnnotations(canvas driven.Canvas, annotations []domain.Annotation) int {
	canvas.Clear()

	count := 0
	for _, a := range annotations {
		el, ok := r.Element(a)
		if !ok {
			continue
		}
		canvas.Add(el)
		count++
	}
	return count
}

// Element builds the element for a single annotation.
func (r *AnnotationRenderer) Element(a domain.Annotation) (domain.Element, bool) {
	color := ParseColor(a.Color)
	fill := color.WithAlpha(fillAlpha)

	el := domain.Element{
		AnnotationID: a.ID,
		Left:         a.X,
		Top:          a.Y,
		Width:        a.Width,
		Height:       a.Height,
		Opacity:      1,
	}

	switch strings.ToLower(string(a.Type)) {
	case "rectangle":
		el.Kind = domain.ElementRectangle
		el.Stroke, el.HasStroke = color, true
		el.Fill, el.HasFill = fill, true
		el.StrokeThickness = a.StrokeThickness
	case "circle":
		el.Kind = domain.ElementEllipse
		el.Stroke, el.HasStroke = color, true
		el.Fill, el.HasFill = fill, true
		el.StrokeThickness = a.StrokeThickness
	case "text":
		el.Kind = domain.ElementText
		el.Text = a.Text
		el.Foreground = color
		el.FontSize = math.Max(a.StrokeThickness*fontSizePerStroke, minFontSize)
		el.Background = domain.ColorWhite.WithAlpha(textBackground)
	case "arrow":
		el.Kind = domain.ElementLine
		el.X2 = a.X + a.Width
		el.Y2 = a.Y + a.Height
		el.Stroke, el.HasStroke = color, true
		el.StrokeThickness = a.StrokeThickness
	case "highlight":
		el.Kind = domain.ElementHighlight
		el.Fill, el.HasFill = fill, true
		el.Opacity = highlightOpacity
	default:
		return domain.Element{}, false
	}

	return el, true
}

// ParseColor parses "#RGB", "#ARGB", "#RRGGBB" or "#AARRGGBB".
// Anything else yields opaque red.
func ParseColor(s string) domain.Color {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return domain.ColorRed
	}
	hex := s[1:]

	// Expand short forms by doubling each digit.
	if len(hex) == 3 || len(hex) == 4 {
		var b strings.Builder
		for _, c := range hex {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		hex = b.String()
	}
	if len(hex) == 6 {
		hex = "FF" + hex
	}
	if len(hex) != 8 {
		return domain.ColorRed
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return domain.ColorRed
	}
	return domain.Color{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}
