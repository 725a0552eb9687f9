package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

var annotationCmd = &cobra.Command{
	Use:     "annotation",
	Aliases: []string{"ann"},
	Short:   "Manage document annotations",
	Long:    `Add, draw, list, update, delete, export or import the annotations of a document.`,
}

var annotationAddCmd = &cobra.Command{
	Use:   "add [doc-id]",
	Short: "Add an annotation with explicit geometry",
	Long: `Adds an annotation to a document.

Types: Rectangle, Circle, Text, Arrow, Highlight, Freehand, Measurement.
Colours are hex strings such as #FF0000 or #80FF0000.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotationAdd,
}

var annotationDrawCmd = &cobra.Command{
	Use:   "draw [doc-id]",
	Short: "Add an annotation from a drag gesture",
	Long: `Adds an annotation as if it were dragged from --from to --to.

Shapes smaller than 5 units on either side are rejected. Text is placed at
the start point. Arrows keep their direction.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotationDraw,
}

var annotationListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List annotations of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationList,
}

var annotationUpdateCmd = &cobra.Command{
	Use:   "update [annotation-id]",
	Short: "Change an annotation",
	Long:  `Updates the fields given as flags. Other fields keep their values.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationUpdate,
}

var annotationDeleteCmd = &cobra.Command{
	Use:   "delete [annotation-id]",
	Short: "Delete an annotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationDelete,
}

var annotationLayersCmd = &cobra.Command{
	Use:   "layers [doc-id]",
	Short: "List the layers used on a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationLayers,
}

var annotationExportCmd = &cobra.Command{
	Use:   "export [doc-id]",
	Short: "Export annotations to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationExport,
}

var annotationImportCmd = &cobra.Command{
	Use:   "import [doc-id] [file]",
	Short: "Import annotations from a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnnotationImport,
}

// annotationFlags holds the shared shape flags.
type annotationFlags struct {
	typ    string
	x, y   float64
	width  float64
	height float64
	text   string
	color  string
	stroke float64
	layer  string
	from   string
	to     string
}

var (
	annFlags       annotationFlags
	annListLayer   string
	annListJSON    bool
	annExportOut   string
	annUpdateFlags annotationFlags
)

func init() {
	addShapeFlags := func(cmd *cobra.Command, f *annotationFlags) {
		cmd.Flags().StringVarP(&f.text, "text", "t", "", "label text")
		cmd.Flags().StringVarP(&f.color, "color", "c", "", "hex colour (default from settings)")
		cmd.Flags().Float64VarP(&f.stroke, "stroke", "s", 0, "stroke thickness (default from settings)")
		cmd.Flags().StringVarP(&f.layer, "layer", "l", "", "layer name")
	}

	annotationAddCmd.Flags().StringVar(&annFlags.typ, "type", string(domain.AnnotationRectangle), "annotation type")
	annotationAddCmd.Flags().Float64Var(&annFlags.x, "x", 0, "left edge")
	annotationAddCmd.Flags().Float64Var(&annFlags.y, "y", 0, "top edge")
	annotationAddCmd.Flags().Float64Var(&annFlags.width, "width", 0, "width")
	annotationAddCmd.Flags().Float64Var(&annFlags.height, "height", 0, "height")
	addShapeFlags(annotationAddCmd, &annFlags)

	annotationDrawCmd.Flags().StringVar(&annFlags.typ, "type", string(domain.AnnotationRectangle), "annotation type")
	annotationDrawCmd.Flags().StringVar(&annFlags.from, "from", "", "drag start as x,y")
	annotationDrawCmd.Flags().StringVar(&annFlags.to, "to", "", "drag end as x,y")
	_ = annotationDrawCmd.MarkFlagRequired("from")
	_ = annotationDrawCmd.MarkFlagRequired("to")
	addShapeFlags(annotationDrawCmd, &annFlags)

	annotationListCmd.Flags().StringVarP(&annListLayer, "layer", "l", "", "only show this layer")
	annotationListCmd.Flags().BoolVar(&annListJSON, "json", false, "output annotations as JSON")

	annotationUpdateCmd.Flags().StringVar(&annUpdateFlags.typ, "type", "", "annotation type")
	annotationUpdateCmd.Flags().Float64Var(&annUpdateFlags.x, "x", 0, "left edge")
	annotationUpdateCmd.Flags().Float64Var(&annUpdateFlags.y, "y", 0, "top edge")
	annotationUpdateCmd.Flags().Float64Var(&annUpdateFlags.width, "width", 0, "width")
	annotationUpdateCmd.Flags().Float64Var(&annUpdateFlags.height, "height", 0, "height")
	addShapeFlags(annotationUpdateCmd, &annUpdateFlags)

	annotationExportCmd.Flags().StringVarP(&annExportOut, "output", "o", "", "write to this file instead of stdout")

	annotationCmd.AddCommand(annotationAddCmd)
	annotationCmd.AddCommand(annotationDrawCmd)
	annotationCmd.AddCommand(annotationListCmd)
	annotationCmd.AddCommand(annotationUpdateCmd)
	annotationCmd.AddCommand(annotationDeleteCmd)
	annotationCmd.AddCommand(annotationLayersCmd)
	annotationCmd.AddCommand(annotationExportCmd)
	annotationCmd.AddCommand(annotationImportCmd)
	rootCmd.AddCommand(annotationCmd)
}

func runAnnotationAdd(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errNotConfigured("annotation")
	}

	docID, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	a := &domain.Annotation{
		DocumentID:      docID,
		Type:            domain.AnnotationType(annFlags.typ),
		X:               annFlags.x,
		Y:               annFlags.y,
		Width:           annFlags.width,
		Height:          annFlags.height,
		Text:            annFlags.text,
		Color:           annFlags.color,
		StrokeThickness: annFlags.stroke,
		Layer:           annFlags.layer,
	}

	created, err := annotationService.Create(cmd.Context(), a)
	if err != nil {
		return fmt.Errorf("failed to add annotation: %w", err)
	}

	cmd.Printf("Annotation %d added.\n", created.ID)
	return nil
}

func runAnnotationDraw(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errNotConfigured("annotation")
	}

	docID, err := parseID("document", args[0])
	if err != nil {
		return err
	}
	sx, sy, err := parsePoint(annFlags.from)
	if err != nil {
		return err
	}
	ex, ey, err := parsePoint(annFlags.to)
	if err != nil {
		return err
	}

	created, err := annotationService.Draw(cmd.Context(), docID, driving.DrawRequest{
		Type:   domain.AnnotationType(annFlags.typ),
		StartX: sx,
		StartY: sy,
		EndX:   ex,
		EndY:   ey,
		Text:   annFlags.text,
		Color:  annFlags.color,
		Stroke: annFlags.stroke,
		Layer:  annFlags.layer,
	})
	if err != nil {
		return fmt.Errorf("failed to draw annotation: %w", err)
	}

	cmd.Printf("Annotation %d added: %s at (%g, %g) size %g x %g\n",
		created.ID, created.Type, created.X, created.Y, created.Width, created.Height)
	return nil
}

// annotationJSON is the --json output shape.
type annotationJSON struct {
	ID              int64   `json:"id"`
	DocumentID      int64   `json:"document_id"`
	Type            string  `json:"type"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Text            string  `json:"text,omitempty"`
	Color           string  `json:"color"`
	StrokeThickness float64 `json:"stroke_thickness"`
	Layer           string  `json:"layer,omitempty"`
	CreatedAt       string  `json:"created_at"`
	LastModified    string  `json:"last_modified"`
}

func runAnnotationList(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errNotConfigured("annotation")
	}

	docID, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	var annotations []domain.Annotation
	if annListLayer != "" {
		annotations, err = annotationService.ListForDocumentAndLayer(cmd.Context(), docID, annListLayer)
	} else {
		annotations, err = annotationService.ListForDocument(cmd.Context(), docID)
	}
	if err != nil {
		return fmt.Errorf("failed to list annotations: %w", err)
	}

	if annListJSON {
		out := make([]annotationJSON, 0, len(annotations))
		for i := range annotations {
			a := &annotations[i]
			out = append(out, annotationJSON{
				ID:              a.ID,
				DocumentID:      a.DocumentID,
				Type:            string(a.Type),
				X:               a.X,
				Y:               a.Y,
				Width:           a.Width,
				Height:          a.Height,
				Text:            a.Text,
				Color:           a.Color,
				StrokeThickness: a.StrokeThickness,
				Layer:           a.Layer,
				CreatedAt:       a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
				LastModified:    a.LastModified.UTC().Format("2006-01-02T15:04:05Z"),
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode annotations: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(annotations) == 0 {
		cmd.Printf("No annotations on document %d.\n", docID)
		return nil
	}

	cmd.Printf("Annotations on document %d:\n\n", docID)
	for i := range annotations {
		a := &annotations[i]
		cmd.Printf("  %d  %-11s (%g, %g) %g x %g  %s  stroke %g", a.ID, a.Type, a.X, a.Y, a.Width, a.Height, a.Color, a.StrokeThickness)
		if a.Layer != "" {
			cmd.Printf("  [%s]", a.Layer)
		}
		if a.Text != "" {
			cmd.Printf("  %q", a.Text)
		}
		cmd.Println()
	}
	cmd.Println()
	cmd.Printf("Total: %d annotations\n", len(annotations))
	return nil
}

func runAnnotationUpdate(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errNotConfigured("annotation")
	}

	id, err := parseID("annotation", args[0])
	if err != nil {
		return err
	}

	a, err := annotationService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get annotation: %w", err)
	}

	f := cmd.Flags()
	changed := false
	apply := func(name string, set func()) {
		if f.Changed(name) {
			set()
			changed = true
		}
	}
	apply("type", func() { a.Type = domain.AnnotationType(annUpdateFlags.typ) })
	apply("x", func() { a.X = annUpdateFlags.x })
	apply("y", func() { a.Y = annUpdateFlags.y })
	apply("width", func() { a.Width = annUpdateFlags.width })
	apply("height", func() { a.Height = annUpdateFlags.height })
	apply("text", func() { a.Text = annUpdateFlags.text })
	apply("color", func() { a.Color = annUpdateFlags.color })
	apply("stroke", func() { a.StrokeThickness = annUpdateFlags.stroke })
	apply("layer", func() { a.Layer = annUpdateFlags.layer })

	if !changed {
		cmd.Println("Nothing to update.")
		return nil
	}

	if err := annotationService.Update(cmd.Context(), a); err != nil {
		return fmt.Errorf("failed to update annotation: %w", err)
	}

	cmd.Printf("Annotation %d updated.\n", id)
	return nil
}

func runAnnotationDelete(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errNotConfigured("annotation")
	}

	id, err := parseID("annotation", args[0])
	if err != nil {
		return err
	}

	if err := annotationService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete annotation: %w", err)
	}

	cmd.Printf("Annotation %d deleted.\n", id)
	return nil
}

func runAnnotationLayers(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errNotConfigured("annotation")
	}

	docID, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	layers, err := annotationService.Layers(cmd.Context(), docID)
	if err != nil {
		return fmt.Errorf("failed to list layers: %w", err)
	}

	if len(layers) == 0 {
		cmd.Println("No layers in use.")
		return nil
	}
	for _, l := range layers {
		cmd.Println(l)
	}
	return nil
}

func runAnnotationExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}

	docID, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if annExportOut != "" {
		f, err := os.Create(annExportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", annExportOut, err)
		}
		defer f.Close()
		w = f
	}

	n, err := exportService.ExportAnnotations(cmd.Context(), docID, w)
	if err != nil {
		return fmt.Errorf("failed to export annotations: %w", err)
	}

	if annExportOut != "" {
		cmd.Printf("Exported %d annotations to %s\n", n, annExportOut)
	}
	return nil
}

func runAnnotationImport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}

	docID, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[1], err)
	}
	defer f.Close()

	n, err := exportService.ImportAnnotations(cmd.Context(), docID, f)
	if err != nil {
		return fmt.Errorf("failed to import annotations: %w", err)
	}

	cmd.Printf("Imported %d annotations into document %d\n", n, docID)
	return nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q, want x,y: %w", s, domain.ErrInvalidInput)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("invalid point %q, want x,y: %w", s, domain.ErrInvalidInput)
	}
	return x, y, nil
}
