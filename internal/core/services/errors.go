package services

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/redliner/internal/core/domain"
)

// storeError wraps a store failure for op. Domain errors pass through with
// context; anything else is reported as domain.ErrStoreUnavailable so callers
// can tell a missing row from a broken database.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrStoreUnavailable):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
}
