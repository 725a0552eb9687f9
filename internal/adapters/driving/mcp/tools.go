package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/redliner/internal/adapters/driven/canvas"
	"github.com/custodia-labs/redliner/internal/core/domain"
)

// DocumentOutput describes one tracked document.
type DocumentOutput struct {
	ID           int64  `json:"id"`
	FileName     string `json:"file_name"`
	FilePath     string `json:"file_path"`
	FileType     string `json:"file_type"`
	LastModified string `json:"last_modified"`
	Exists       bool   `json:"exists"`
}

// AnnotationOutput describes one annotation.
type AnnotationOutput struct {
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
}

// ListRecentInput is the input schema for list_recent_documents.
type ListRecentInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of documents (default from settings)"`
}

// ListRecentOutput is the output schema for list_recent_documents.
type ListRecentOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// OpenDocumentInput is the input schema for open_document.
type OpenDocumentInput struct {
	Path string `json:"path" jsonschema:"absolute path of a PDF, DXF or DWG file"`
}

// OpenDocumentOutput is the output schema for open_document.
type OpenDocumentOutput struct {
	Document        DocumentOutput `json:"document"`
	AnnotationCount int            `json:"annotation_count"`
}

// ListAnnotationsInput is the input schema for list_annotations.
type ListAnnotationsInput struct {
	DocumentID int64  `json:"document_id" jsonschema:"id of the document"`
	Layer      string `json:"layer,omitempty" jsonschema:"only return annotations on this layer"`
}

// ListAnnotationsOutput is the output schema for list_annotations.
type ListAnnotationsOutput struct {
	Annotations []AnnotationOutput `json:"annotations"`
	Count       int                `json:"count"`
}

// CreateAnnotationInput is the input schema for create_annotation.
type CreateAnnotationInput struct {
	DocumentID      int64   `json:"document_id" jsonschema:"id of the document"`
	Type            string  `json:"type" jsonschema:"Rectangle, Circle, Text, Arrow, Highlight, Freehand or Measurement"`
	X               float64 `json:"x" jsonschema:"left edge in document coordinates"`
	Y               float64 `json:"y" jsonschema:"top edge in document coordinates"`
	Width           float64 `json:"width,omitempty" jsonschema:"width; signed for arrows"`
	Height          float64 `json:"height,omitempty" jsonschema:"height; signed for arrows"`
	Text            string  `json:"text,omitempty" jsonschema:"label for Text annotations"`
	Color           string  `json:"color,omitempty" jsonschema:"hex colour such as #FF0000"`
	StrokeThickness float64 `json:"stroke_thickness,omitempty" jsonschema:"outline width"`
	Layer           string  `json:"layer,omitempty" jsonschema:"layer name"`
}

// CreateAnnotationOutput is the output schema for create_annotation.
type CreateAnnotationOutput struct {
	Annotation AnnotationOutput `json:"annotation"`
}

// DeleteAnnotationInput is the input schema for delete_annotation.
type DeleteAnnotationInput struct {
	AnnotationID int64 `json:"annotation_id" jsonschema:"id of the annotation to delete"`
}

// DeleteAnnotationOutput is the output schema for delete_annotation.
type DeleteAnnotationOutput struct {
	Deleted bool `json:"deleted"`
}

// RenderAnnotationsInput is the input schema for render_annotations.
type RenderAnnotationsInput struct {
	DocumentID int64  `json:"document_id" jsonschema:"id of the document"`
	Layer      string `json:"layer,omitempty" jsonschema:"only render this layer"`
}

// ElementOutput is one drawing element.
type ElementOutput struct {
	AnnotationID    int64   `json:"annotation_id"`
	Kind            string  `json:"kind"`
	Left            float64 `json:"left"`
	Top             float64 `json:"top"`
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
	X2              float64 `json:"x2,omitempty"`
	Y2              float64 `json:"y2,omitempty"`
	Stroke          string  `json:"stroke,omitempty"`
	Fill            string  `json:"fill,omitempty"`
	StrokeThickness float64 `json:"stroke_thickness,omitempty"`
	Opacity         float64 `json:"opacity"`
	Text            string  `json:"text,omitempty"`
	FontSize        float64 `json:"font_size,omitempty"`
}

// RenderAnnotationsOutput is the output schema for render_annotations.
type RenderAnnotationsOutput struct {
	Elements []ElementOutput `json:"elements"`
	Count    int             `json:"count"`
	Skipped  int             `json:"skipped"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_recent_documents",
		Description: "List recently opened documents, newest first",
	}, s.handleListRecent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_document",
		Description: "Open a PDF, DXF or DWG file, registering it on first use",
	}, s.handleOpenDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_annotations",
		Description: "List the annotations of a document, oldest first",
	}, s.handleListAnnotations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_annotation",
		Description: "Add an annotation to a document",
	}, s.handleCreateAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_annotation",
		Description: "Delete an annotation",
	}, s.handleDeleteAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_annotations",
		Description: "Describe the drawing elements produced for a document's annotations",
	}, s.handleRenderAnnotations)
}

func (s *Server) handleListRecent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRecentInput,
) (*mcp.CallToolResult, ListRecentOutput, error) {
	docs, err := s.ports.Document.Recent(ctx, input.Limit)
	if err != nil {
		return nil, ListRecentOutput{}, err
	}

	output := ListRecentOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = documentOutput(&docs[i].Document, docs[i].Exists)
	}
	return nil, output, nil
}

func (s *Server) handleOpenDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenDocumentInput,
) (*mcp.CallToolResult, OpenDocumentOutput, error) {
	doc, err := s.ports.Document.OpenOrRegister(ctx, input.Path)
	if err != nil {
		return nil, OpenDocumentOutput{}, err
	}

	annotations, err := s.ports.Annotation.ListForDocument(ctx, doc.ID)
	if err != nil {
		return nil, OpenDocumentOutput{}, err
	}

	return nil, OpenDocumentOutput{
		Document:        documentOutput(doc, true),
		AnnotationCount: len(annotations),
	}, nil
}

func (s *Server) handleListAnnotations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListAnnotationsInput,
) (*mcp.CallToolResult, ListAnnotationsOutput, error) {
	annotations, err := s.listAnnotations(ctx, input.DocumentID, input.Layer)
	if err != nil {
		return nil, ListAnnotationsOutput{}, err
	}

	output := ListAnnotationsOutput{
		Annotations: make([]AnnotationOutput, len(annotations)),
		Count:       len(annotations),
	}
	for i := range annotations {
		output.Annotations[i] = annotationOutput(&annotations[i])
	}
	return nil, output, nil
}

func (s *Server) handleCreateAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateAnnotationInput,
) (*mcp.CallToolResult, CreateAnnotationOutput, error) {
	created, err := s.ports.Annotation.Create(ctx, &domain.Annotation{
		DocumentID:      input.DocumentID,
		Type:            domain.AnnotationType(input.Type),
		X:               input.X,
		Y:               input.Y,
		Width:           input.Width,
		Height:          input.Height,
		Text:            input.Text,
		Color:           input.Color,
		StrokeThickness: input.StrokeThickness,
		Layer:           input.Layer,
	})
	if err != nil {
		return nil, CreateAnnotationOutput{}, err
	}
	return nil, CreateAnnotationOutput{Annotation: annotationOutput(created)}, nil
}

func (s *Server) handleDeleteAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteAnnotationInput,
) (*mcp.CallToolResult, DeleteAnnotationOutput, error) {
	if err := s.ports.Annotation.Delete(ctx, input.AnnotationID); err != nil {
		return nil, DeleteAnnotationOutput{}, err
	}
	return nil, DeleteAnnotationOutput{Deleted: true}, nil
}

func (s *Server) handleRenderAnnotations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderAnnotationsInput,
) (*mcp.CallToolResult, RenderAnnotationsOutput, error) {
	if s.ports.Renderer == nil {
		return nil, RenderAnnotationsOutput{}, errRendererUnavailable
	}

	annotations, err := s.listAnnotations(ctx, input.DocumentID, input.Layer)
	if err != nil {
		return nil, RenderAnnotationsOutput{}, err
	}

	rec := canvas.NewRecorder()
	n := s.ports.Renderer.RenderAnnotations(rec, annotations)

	output := RenderAnnotationsOutput{
		Elements: make([]ElementOutput, rec.Len()),
		Count:    n,
		Skipped:  len(annotations) - n,
	}
	for i, el := range rec.Elements() {
		output.Elements[i] = elementOutput(el)
	}
	return nil, output, nil
}

func (s *Server) listAnnotations(ctx context.Context, documentID int64, layer string) ([]domain.Annotation, error) {
	if layer != "" {
		return s.ports.Annotation.ListForDocumentAndLayer(ctx, documentID, layer)
	}
	return s.ports.Annotation.ListForDocument(ctx, documentID)
}

func documentOutput(d *domain.Document, exists bool) DocumentOutput {
	return DocumentOutput{
		ID:           d.ID,
		FileName:     d.FileName,
		FilePath:     d.FilePath,
		FileType:     string(d.FileType),
		LastModified: d.LastModified.UTC().Format(time.RFC3339),
		Exists:       exists,
	}
}

func annotationOutput(a *domain.Annotation) AnnotationOutput {
	return AnnotationOutput{
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
	}
}

func elementOutput(el domain.Element) ElementOutput {
	out := ElementOutput{
		AnnotationID:    el.AnnotationID,
		Kind:            string(el.Kind),
		Left:            el.Left,
		Top:             el.Top,
		Width:           el.Width,
		Height:          el.Height,
		X2:              el.X2,
		Y2:              el.Y2,
		StrokeThickness: el.StrokeThickness,
		Opacity:         el.Opacity,
		Text:            el.Text,
		FontSize:        el.FontSize,
	}
	if el.HasStroke {
		out.Stroke = colorHex(el.Stroke)
	}
	if el.HasFill {
		out.Fill = colorHex(el.Fill)
	}
	if el.Kind == domain.ElementText {
		out.Stroke = colorHex(el.Foreground)
	}
	return out
}

// colorHex formats c as #AARRGGBB.
func colorHex(c domain.Color) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}
