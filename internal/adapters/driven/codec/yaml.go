// Package codec serialises annotation sheets for export and import.
package codec

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

// Ensure YAMLCodec implements the interface.
var _ driven.AnnotationCodec = (*YAMLCodec)(nil)

// FormatVersion is written into every sheet. Sheets from a newer version
// are rejected.
const FormatVersion = 1

type sheetFile struct {
	Version     int              `yaml:"version"`
	Document    documentEntry    `yaml:"document"`
	Annotations []annotationItem `yaml:"annotations"`
}

type documentEntry struct {
	FilePath     string    `yaml:"file_path"`
	FileName     string    `yaml:"file_name"`
	FileType     string    `yaml:"file_type"`
	LastModified time.Time `yaml:"last_modified,omitempty"`
}

type annotationItem struct {
	Type            string    `yaml:"type"`
	X               float64   `yaml:"x"`
	Y               float64   `yaml:"y"`
	Width           float64   `yaml:"width"`
	Height          float64   `yaml:"height"`
	Text            string    `yaml:"text,omitempty"`
	Color           string    `yaml:"color,omitempty"`
	StrokeThickness float64   `yaml:"stroke_thickness,omitempty"`
	Layer           string    `yaml:"layer,omitempty"`
	CreatedAt       time.Time `yaml:"created_at,omitempty"`
}

// YAMLCodec reads and writes annotation sheets in YAML.
type YAMLCodec struct {
	strict bool
}

// NewYAML creates a codec. With strict set, unknown keys fail decoding.
func NewYAML(strict bool) *YAMLCodec {
	return &YAMLCodec{strict: strict}
}

// Extension returns ".yaml".
func (c *YAMLCodec) Extension() string {
	return ".yaml"
}

// Encode writes sheet to w.
func (c *YAMLCodec) Encode(w io.Writer, sheet *driven.AnnotationSheet) error {
	if sheet == nil {
		return fmt.Errorf("encode sheet: %w", domain.ErrInvalidInput)
	}

	out := sheetFile{
		Version: FormatVersion,
		Document: documentEntry{
			FilePath:     sheet.Document.FilePath,
			FileName:     sheet.Document.FileName,
			FileType:     string(sheet.Document.FileType),
			LastModified: sheet.Document.LastModified.UTC(),
		},
		Annotations: make([]annotationItem, 0, len(sheet.Annotations)),
	}
	for _, a := range sheet.Annotations {
		out.Annotations = append(out.Annotations, annotationItem{
			Type:            string(a.Type),
			X:               a.X,
			Y:               a.Y,
			Width:           a.Width,
			Height:          a.Height,
			Text:            a.Text,
			Color:           a.Color,
			StrokeThickness: a.StrokeThickness,
			Layer:           a.Layer,
			CreatedAt:       a.CreatedAt.UTC(),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode sheet: %w", err)
	}
	return enc.Close()
}

// Decode reads a sheet from r. Annotation ids and document ids are not
// carried in the file and are left zero.
func (c *YAMLCodec) Decode(r io.Reader) (*driven.AnnotationSheet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(c.strict)

	var in sheetFile
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode sheet: empty input: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("decode sheet: %w: %w", domain.ErrInvalidInput, err)
	}
	if in.Version > FormatVersion {
		return nil, fmt.Errorf("decode sheet: version %d is newer than %d: %w",
			in.Version, FormatVersion, domain.ErrInvalidInput)
	}

	sheet := &driven.AnnotationSheet{
		Document: domain.Document{
			FilePath:     in.Document.FilePath,
			FileName:     in.Document.FileName,
			FileType:     domain.FileType(in.Document.FileType),
			LastModified: in.Document.LastModified,
		},
		Annotations: make([]domain.Annotation, 0, len(in.Annotations)),
	}
	for _, item := range in.Annotations {
		sheet.Annotations = append(sheet.Annotations, domain.Annotation{
			Type:            domain.AnnotationType(item.Type),
			X:               item.X,
			Y:               item.Y,
			Width:           item.Width,
			Height:          item.Height,
			Text:            item.Text,
			Color:           item.Color,
			StrokeThickness: item.StrokeThickness,
			Layer:           item.Layer,
			CreatedAt:       item.CreatedAt,
		})
	}
	return sheet, nil
}
