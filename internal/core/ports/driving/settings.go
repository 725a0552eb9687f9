package driving

import "github.com/custodia-labs/redliner/internal/core/domain"

// SettingsService reads and writes the config.toml backed settings.
type SettingsService interface {
	// Get merges stored values over the defaults.
	Get() (*domain.AppSettings, error)
	Save(settings *domain.AppSettings) error

	// Set parses value for the type of key, e.g. Set("viewer.dpi", "200").
	Set(key, value string) error
	Keys() []string

	// Validate checks the effective settings.
	Validate() error
	GetDefaults() domain.AppSettings
}
