// Package annotations provides the annotation workspace view for one document.
package annotations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/redliner/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/redliner/internal/adapters/driven/canvas"
	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

// errServiceUnavailable is returned when the view has no annotation service.
var errServiceUnavailable = errors.New("annotation service not available")

// View lists a document's annotations with their rendered elements.
type View struct {
	styles            *styles.Styles
	annotationService driving.AnnotationService
	renderer          driving.AnnotationRenderer

	document     *domain.Document
	annotations  []domain.Annotation
	elements     map[int64]domain.Element
	layers       []string
	layer        string
	selected     int
	scrollOffset int
	loading      bool
	err          error
	width        int
	height       int
}

// NewView creates a new annotations view. renderer may be nil.
func NewView(
	s *styles.Styles,
	annotationService driving.AnnotationService,
	renderer driving.AnnotationRenderer,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:            s,
		annotationService: annotationService,
		renderer:          renderer,
		elements:          map[int64]domain.Element{},
		width:             80,
		height:            24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDocument switches the workspace to doc and loads its annotations.
func (v *View) SetDocument(doc *domain.Document) tea.Cmd {
	v.document = doc
	v.annotations = nil
	v.elements = map[int64]domain.Element{}
	v.layers = nil
	v.layer = ""
	v.selected = 0
	v.scrollOffset = 0
	return v.Reload()
}

// Reload refreshes the annotation list for the current document and layer.
func (v *View) Reload() tea.Cmd {
	if v.document == nil {
		return nil
	}
	v.loading = true
	v.err = nil

	service := v.annotationService
	docID := v.document.ID
	layer := v.layer
	return func() tea.Msg {
		if service == nil {
			return messages.AnnotationsLoaded{DocumentID: docID, Err: errServiceUnavailable}
		}
		ctx := context.Background()

		var (
			list []domain.Annotation
			err  error
		)
		if layer == "" {
			list, err = service.ListForDocument(ctx, docID)
		} else {
			list, err = service.ListForDocumentAndLayer(ctx, docID, layer)
		}
		if err != nil {
			return messages.AnnotationsLoaded{DocumentID: docID, Err: err}
		}

		layers, err := service.Layers(ctx, docID)
		return messages.AnnotationsLoaded{
			DocumentID:  docID,
			Annotations: list,
			Layers:      layers,
			Err:         err,
		}
	}
}

// Update handles messages for the annotations view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnnotationsLoaded:
		if v.document == nil || msg.DocumentID != v.document.ID {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.setAnnotations(msg.Annotations, msg.Layers)
		return v, nil

	case messages.AnnotationDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.Reload()

	case messages.AnnotationCreated:
		if msg.Err == nil {
			return v, v.Reload()
		}
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.annotations)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "x":
		if a := v.SelectedAnnotation(); a != nil {
			return v, v.deleteAnnotation(a.ID)
		}
	case "l":
		v.layer = v.nextLayer()
		v.selected = 0
		v.scrollOffset = 0
		return v, v.Reload()
	case "r":
		return v, v.Reload()
	case "n":
		if v.document != nil {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewDraw}
			}
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	}
	return v, nil
}

// nextLayer cycles "" (all layers) through the document's layers.
func (v *View) nextLayer() string {
	if len(v.layers) == 0 {
		return ""
	}
	if v.layer == "" {
		return v.layers[0]
	}
	for i, l := range v.layers {
		if l == v.layer && i+1 < len(v.layers) {
			return v.layers[i+1]
		}
	}
	return ""
}

func (v *View) deleteAnnotation(id int64) tea.Cmd {
	service := v.annotationService
	return func() tea.Msg {
		if service == nil {
			return messages.AnnotationDeleted{ID: id, Err: errServiceUnavailable}
		}
		return messages.AnnotationDeleted{ID: id, Err: service.Delete(context.Background(), id)}
	}
}

// setAnnotations stores the list and renders its elements.
func (v *View) setAnnotations(list []domain.Annotation, layers []string) {
	v.annotations = list
	v.layers = layers
	v.elements = map[int64]domain.Element{}

	if v.renderer != nil {
		rec := canvas.NewRecorder()
		v.renderer.RenderAnnotations(rec, list)
		for _, el := range rec.Elements() {
			v.elements[el.AnnotationID] = el
		}
	}

	if v.selected >= len(v.annotations) {
		v.selected = max(len(v.annotations)-1, 0)
	}
	v.adjustScroll()
}

func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleItemCount() int {
	available := v.height - 9
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the workspace.
func (v *View) View() string {
	var b strings.Builder

	title := "Annotations"
	if v.document != nil {
		title = fmt.Sprintf("Annotations - %s", v.document.FileName)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	layer := "All layers"
	if v.layer != "" {
		layer = "Layer: " + v.layer
	}
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%s  (%d annotations, %d drawn)",
		layer, len(v.annotations), len(v.elements))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading annotations..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if len(v.annotations) == 0 {
		b.WriteString(v.styles.Muted.Render("No annotations yet. Press n to draw one."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.annotations) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderAnnotation(i, &v.annotations[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderAnnotation(index int, a *domain.Annotation) string {
	indicator := "  "
	style := v.styles.Normal
	if index == v.selected {
		indicator = "> "
		style = v.styles.Selected
	}

	line := fmt.Sprintf("%-11s (%.0f, %.0f) %.0fx%.0f", a.Type, a.X, a.Y, a.Width, a.Height)
	if a.Layer != "" {
		line += "  [" + a.Layer + "]"
	}
	if a.Text != "" {
		line += "  \"" + a.Text + "\""
	}

	out := indicator + v.styles.Swatch(a.Color) + " " + style.Render(line)
	if _, drawn := v.elements[a.ID]; !drawn {
		out += v.styles.Muted.Render("  (not drawn)")
	}
	return out
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[n] new  [x] delete  [l] layer  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Document returns the open document.
func (v *View) Document() *domain.Document {
	return v.document
}

// Annotations returns the loaded annotations.
func (v *View) Annotations() []domain.Annotation {
	return v.annotations
}

// SelectedAnnotation returns the highlighted annotation.
func (v *View) SelectedAnnotation() *domain.Annotation {
	if v.selected < len(v.annotations) {
		return &v.annotations[v.selected]
	}
	return nil
}

// ElementCount returns the number of rendered elements.
func (v *View) ElementCount() int {
	return len(v.elements)
}

// Layer returns the active layer filter. Empty means all layers.
func (v *View) Layer() string {
	return v.layer
}

// Layers returns the layers used on the document.
func (v *View) Layers() []string {
	return v.layers
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
