package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
	"github.com/custodia-labs/redliner/internal/core/ports/driving"
)

// Ensure PreferenceService implements the interface.
var _ driving.PreferenceService = (*PreferenceService)(nil)

// PreferenceService manages persisted user preferences.
type PreferenceService struct {
	store driven.PreferenceStore
	now   func() time.Time
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(store driven.PreferenceStore) *PreferenceService {
	return &PreferenceService{store: store, now: time.Now}
}

// Get returns the value stored under key.
func (s *PreferenceService) Get(ctx context.Context, key string) (string, error) {
	pref, err := s.store.GetPreference(ctx, key)
	if err != nil {
		return "", storeError(fmt.Sprintf("get preference %q", key), err)
	}
	return pref.Value, nil
}

// Set stores value under key, replacing any previous value.
func (s *PreferenceService) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("set preference: empty key: %w", domain.ErrInvalidInput)
	}

	pref := &domain.UserPreference{Key: key, Value: value, LastModified: s.now().UTC()}
	if err := s.store.SetPreference(ctx, pref); err != nil {
		return storeError(fmt.Sprintf("set preference %q", key), err)
	}
	return nil
}

// Delete removes key.
func (s *PreferenceService) Delete(ctx context.Context, key string) error {
	if err := s.store.DeletePreference(ctx, key); err != nil {
		return storeError(fmt.Sprintf("delete preference %q", key), err)
	}
	return nil
}

// List returns every preference ordered by key.
func (s *PreferenceService) List(ctx context.Context) ([]domain.UserPreference, error) {
	prefs, err := s.store.ListPreferences(ctx)
	if err != nil {
		return nil, storeError("list preferences", err)
	}
	if prefs == nil {
		prefs = []domain.UserPreference{}
	}
	return prefs, nil
}
