// Package draw provides the form that turns a drag gesture into an annotation.
package draw

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

// Form field positions.
const (
	fieldType = iota
	fieldStart
	fieldEnd
	fieldText
	fieldLayer
	fieldCount
)

// View collects a drag gesture and draws it on the open document.
type View struct {
	styles            *styles.Styles
	keymap            *keymap.KeyMap
	annotationService driving.AnnotationService

	document *domain.Document
	fields   [fieldCount]*input.Field
	focus    int
	err      error
	saving   bool
	width    int
	height   int
}

// NewView creates a new draw view.
func NewView(s *styles.Styles, km *keymap.KeyMap, annotationService driving.AnnotationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:            s,
		keymap:            km,
		annotationService: annotationService,
		width:             80,
		height:            24,
	}
	v.fields[fieldType] = input.NewField(s, "Type", typeHint())
	v.fields[fieldStart] = input.NewField(s, "Start", "x,y")
	v.fields[fieldEnd] = input.NewField(s, "End", "x,y")
	v.fields[fieldText] = input.NewField(s, "Text", "label for text annotations")
	v.fields[fieldLayer] = input.NewField(s, "Layer", "default layer")
	return v
}

func typeHint() string {
	types := domain.AnnotationTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDocument resets the form for a new drawing on doc.
func (v *View) SetDocument(doc *domain.Document) tea.Cmd {
	v.document = doc
	v.err = nil
	v.saving = false
	for _, f := range v.fields {
		f.Reset()
		f.Blur()
	}
	v.fields[fieldType].SetValue(domain.AnnotationRectangle.String())
	v.focus = fieldType
	return v.fields[fieldType].Focus()
}

// Update handles messages for the draw view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.AnnotationCreated:
		v.saving = false
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewAnnotations}
			}
		case msg.String() == "enter":
			return v, v.submit()
		case keymap.Matches(msg.String(), v.keymap.NextField):
			return v, v.moveFocus(1)
		case keymap.Matches(msg.String(), v.keymap.PrevField):
			return v, v.moveFocus(-1)
		}
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

func (v *View) moveFocus(delta int) tea.Cmd {
	v.fields[v.focus].Blur()
	v.focus = (v.focus + delta + fieldCount) % fieldCount
	return v.fields[v.focus].Focus()
}

// Request parses the form into a draw request.
func (v *View) Request() (driving.DrawRequest, error) {
	req := driving.DrawRequest{
		Type:  domain.AnnotationType(strings.TrimSpace(v.fields[fieldType].Value())),
		Text:  v.fields[fieldText].Value(),
		Layer: strings.TrimSpace(v.fields[fieldLayer].Value()),
	}
	if req.Type == "" {
		return req, fmt.Errorf("type is required: %w", domain.ErrInvalidInput)
	}

	var err error
	if req.StartX, req.StartY, err = parsePoint("start", v.fields[fieldStart].Value()); err != nil {
		return req, err
	}
	end := v.fields[fieldEnd].Value()
	if strings.TrimSpace(end) == "" && strings.EqualFold(string(req.Type), string(domain.AnnotationText)) {
		req.EndX, req.EndY = req.StartX, req.StartY
		return req, nil
	}
	if req.EndX, req.EndY, err = parsePoint("end", end); err != nil {
		return req, err
	}
	return req, nil
}

func (v *View) submit() tea.Cmd {
	if v.document == nil {
		v.err = errors.New("no document open")
		return nil
	}
	req, err := v.Request()
	if err != nil {
		v.err = err
		return nil
	}

	v.err = nil
	v.saving = true
	service := v.annotationService
	docID := v.document.ID
	return func() tea.Msg {
		if service == nil {
			return messages.AnnotationCreated{Err: errors.New("annotation service not available")}
		}
		a, err := service.Draw(context.Background(), docID, req)
		return messages.AnnotationCreated{Annotation: a, Err: err}
	}
}

// parsePoint parses "x,y".
func parsePoint(name, s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%s must be x,y: %w", name, domain.ErrInvalidInput)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%s x %q: %w", name, parts[0], domain.ErrInvalidInput)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%s y %q: %w", name, parts[1], domain.ErrInvalidInput)
	}
	return x, y, nil
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	title := "New Annotation"
	if v.document != nil {
		title = fmt.Sprintf("New Annotation - %s", v.document.FileName)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case v.saving:
		b.WriteString(v.styles.Muted.Render("Saving..."))
		b.WriteString("\n\n")
	case errors.Is(v.err, domain.ErrTooSmall):
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf(
			"Drag further: shapes must be larger than %.0f units.", domain.MinDrawnAnnotationWidth)))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[tab] next field  [enter] draw  [esc] cancel"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range v.fields {
		f.SetWidth(width - 4)
	}
}

// Focus returns the index of the focused field.
func (v *View) Focus() int {
	return v.focus
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
