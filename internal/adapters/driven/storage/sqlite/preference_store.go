package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

// preferenceStore implements driven.PreferenceStore.
type preferenceStore struct {
	store *Store
}

var _ driven.PreferenceStore = (*preferenceStore)(nil)

// GetPreference retrieves a preference by key.
func (s *preferenceStore) GetPreference(ctx context.Context, key string) (*domain.UserPreference, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, key, value, last_modified FROM user_preferences WHERE key = ?
	`, key)
	return scanPreference(row)
}

// SetPreference inserts or updates a preference keyed by Key.
func (s *preferenceStore) SetPreference(ctx context.Context, pref *domain.UserPreference) error {
	if pref.LastModified.IsZero() {
		pref.LastModified = time.Now().UTC()
	}

	row := s.store.db.QueryRowContext(ctx, `
		INSERT INTO user_preferences (key, value, last_modified)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			last_modified = excluded.last_modified
		RETURNING id
	`, pref.Key, nullString(pref.Value), pref.LastModified.UTC())
	if err := row.Scan(&pref.ID); err != nil {
		return fmt.Errorf("saving preference: %w", err)
	}
	return nil
}

// ListPreferences returns all preferences ordered by key.
func (s *preferenceStore) ListPreferences(ctx context.Context) ([]domain.UserPreference, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, key, value, last_modified FROM user_preferences ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("querying preferences: %w", err)
	}
	defer rows.Close()

	var prefs []domain.UserPreference //nolint:prealloc // size unknown from query
	for rows.Next() {
		pref, err := scanPreference(rows)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, *pref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating preferences: %w", err)
	}

	return prefs, nil
}

// DeletePreference removes a preference.
func (s *preferenceStore) DeletePreference(ctx context.Context, key string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM user_preferences WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting preference: %w", err)
	}
	return requireAffected(res, "deleting preference")
}

func scanPreference(row scanner) (*domain.UserPreference, error) {
	var pref domain.UserPreference
	var value sql.NullString
	var lastModified sql.NullTime
	if err := row.Scan(&pref.ID, &pref.Key, &value, &lastModified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning preference: %w", err)
	}

	pref.Value = value.String
	if lastModified.Valid {
		pref.LastModified = lastModified.Time
	}
	return &pref, nil
}
