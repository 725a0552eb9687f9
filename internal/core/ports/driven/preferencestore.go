package driven

import (
	"context"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// PreferenceStore persists user preferences keyed by name.
type PreferenceStore interface {
	// GetPreference retrieves a preference by key.
	GetPreference(ctx context.Context, key string) (*domain.UserPreference, error)

	// SetPreference inserts or updates a preference.
	SetPreference(ctx context.Context, pref *domain.UserPreference) error

	// ListPreferences returns all preferences ordered by key.
	ListPreferences(ctx context.Context) ([]domain.UserPreference, error)

	// DeletePreference removes a preference.
	DeletePreference(ctx context.Context, key string) error
}
