package domain

import "errors"

// Error taxonomy surfaced by the fleet lifecycle engine. Callers branch with
// errors.Is; lower layers wrap these with context via fmt.Errorf("...: %w").
var (
	// ErrInvalidInput marks malformed caller input (non-positive mileage,
	// missing ids). Rejected before any write; recoverable by correction.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a referenced vehicle, driver or assignment that does
	// not exist. Not retryable.
	ErrNotFound = errors.New("not found")

	// ErrConcurrencyConflict marks a competing write detected inside a store
	// transaction. Safe to retry after a fresh read.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrStoreUnavailable marks a transport or backing-store failure. Reads
	// may be retried; a failed write has an unknown outcome and needs a
	// reconciliation read before retry.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvariantViolation marks an operation the engine refuses because it
	// would corrupt stored state (e.g. a service recorded below the previous
	// baseline). The engine never silently repairs these.
	ErrInvariantViolation = errors.New("invariant violation")
)
