package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyRecentLimit   = "documents.recent_limit"
	KeyDefaultColor  = "annotations.default_color"
	KeyDefaultStroke = "annotations.default_stroke"
	KeyDefaultLayer  = "annotations.default_layer"
	KeyStrictTypes   = "annotations.strict_types"
	KeyViewerDPI     = "viewer.dpi"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing keys fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.AppSettings{
		Documents: domain.DocumentSettings{
			RecentLimit: s.getInt(KeyRecentLimit, defaults.Documents.RecentLimit),
		},
		Annotations: domain.AnnotationSettings{
			DefaultColor:  s.getString(KeyDefaultColor, defaults.Annotations.DefaultColor),
			DefaultStroke: s.getFloat(KeyDefaultStroke, defaults.Annotations.DefaultStroke),
			DefaultLayer:  s.getString(KeyDefaultLayer, defaults.Annotations.DefaultLayer),
			StrictTypes:   s.getBool(KeyStrictTypes, defaults.Annotations.StrictTypes),
		},
		Viewer: domain.ViewerSettings{
			DPI: s.getInt(KeyViewerDPI, defaults.Viewer.DPI),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyRecentLimit, settings.Documents.RecentLimit},
		{KeyDefaultColor, settings.Annotations.DefaultColor},
		{KeyDefaultStroke, settings.Annotations.DefaultStroke},
		{KeyDefaultLayer, settings.Annotations.DefaultLayer},
		{KeyStrictTypes, settings.Annotations.StrictTypes},
		{KeyViewerDPI, settings.Viewer.DPI},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting, parsing value according to the key.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyRecentLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, domain.ErrInvalidInput)
		}
		settings.Documents.RecentLimit = n
	case KeyViewerDPI:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, domain.ErrInvalidInput)
		}
		settings.Viewer.DPI = n
	case KeyDefaultStroke:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, domain.ErrInvalidInput)
		}
		settings.Annotations.DefaultStroke = f
	case KeyStrictTypes:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, domain.ErrInvalidInput)
		}
		settings.Annotations.StrictTypes = b
	case KeyDefaultColor:
		settings.Annotations.DefaultColor = value
	case KeyDefaultLayer:
		settings.Annotations.DefaultLayer = value
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%s=%s: %w", key, value, err)
	}
	return s.Save(settings)
}

// Keys returns the supported setting keys.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyRecentLimit,
		KeyDefaultColor,
		KeyDefaultStroke,
		KeyDefaultLayer,
		KeyStrictTypes,
		KeyViewerDPI,
	}
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if v := s.configStore.GetInt(key); v != 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetFloat(key)
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetBool(key)
	}
	return defaultVal
}

// currentSettings returns the configured settings, or defaults when no
// settings service is wired or it fails.
func currentSettings(s driving.SettingsService) domain.AppSettings {
	if s == nil {
		return domain.DefaultSettings()
	}
	settings, err := s.Get()
	if err != nil || settings == nil {
		return domain.DefaultSettings()
	}
	return *settings
}
