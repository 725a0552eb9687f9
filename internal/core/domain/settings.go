package domain

import "strings"

// Settings defaults.
const (
	DefaultRecentLimit = 10
	DefaultViewerDPI   = 96
	DefaultLoadDPI     = 150
	MaxRecentLimit     = 500
	MaxViewerDPI       = 1200
)

// DocumentSettings holds recent-document behaviour.
type DocumentSettings struct {
	// RecentLimit is how many documents recent lists return by default.
	RecentLimit int
}

// AnnotationSettings holds defaults applied to new annotations.
type AnnotationSettings struct {
	// DefaultColor is used when a new annotation has no colour.
	DefaultColor string

	// DefaultStroke is used when a new annotation has no stroke thickness.
	DefaultStroke float64

	// DefaultLayer is used when a new annotation has no layer.
	DefaultLayer string

	// StrictTypes rejects annotation types outside the canonical set.
	// When false, any non-empty type is stored and silently not rendered.
	StrictTypes bool
}

// ViewerSettings holds rendering configuration.
type ViewerSettings struct {
	// DPI is the resolution used for page renders and exports.
	DPI int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Documents   DocumentSettings
	Annotations AnnotationSettings
	Viewer      ViewerSettings
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() AppSettings {
	return AppSettings{
		Documents: DocumentSettings{RecentLimit: DefaultRecentLimit},
		Annotations: AnnotationSettings{
			DefaultColor:  DefaultAnnotationColor,
			DefaultStroke: DefaultStrokeThickness,
			DefaultLayer:  LayerDefault,
			StrictTypes:   true,
		},
		Viewer: ViewerSettings{DPI: DefaultViewerDPI},
	}
}

// Validate checks that settings are within accepted ranges.
func (s AppSettings) Validate() error {
	if s.Documents.RecentLimit <= 0 || s.Documents.RecentLimit > MaxRecentLimit {
		return ErrInvalidInput
	}
	if s.Annotations.DefaultStroke < 0 {
		return ErrInvalidInput
	}
	if c := s.Annotations.DefaultColor; c != "" && !strings.HasPrefix(c, "#") {
		return ErrInvalidInput
	}
	if s.Viewer.DPI <= 0 || s.Viewer.DPI > MaxViewerDPI {
		return ErrInvalidInput
	}
	return nil
}
