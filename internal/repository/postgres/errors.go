package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"

	"github.com/lib/pq"
)

// mapError translates driver-level failures into the engine's error
// taxonomy so callers can branch with errors.Is.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		case "23505": // unique_violation: the partial active-assignment indexes
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		case "23514": // check_violation
			return fmt.Errorf("%w: %v", domain.ErrInvariantViolation, err)
		}
		if pqErr.Code.Class() == "08" { // connection exceptions
			return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}
	return err
}
