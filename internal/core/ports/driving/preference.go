package driving

import (
	"context"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// PreferenceService manages persisted user preferences.
type PreferenceService interface {
	// Get returns the value for key.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key.
	Delete(ctx context.Context, key string) error

	// List returns every preference ordered by key.
	List(ctx context.Context) ([]domain.UserPreference, error)
}
