package models

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the store and the services wraps
// exactly one of these, so callers branch with errors.Is.
var (
	// ErrNotFound means a referenced record does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument means the request was rejected before touching the store
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransactionConflict means the store aborted the transaction because a
	// concurrent writer touched the same rows. Safe to retry.
	ErrTransactionConflict = errors.New("transaction conflict")
)

// Domain errors
var (
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)
	ErrInvalidStatus   = fmt.Errorf("%w: unknown status", ErrInvalidArgument)
	ErrInvalidPriority = fmt.Errorf("%w: unknown priority", ErrInvalidArgument)
	ErrInvalidPosition = fmt.Errorf("%w: position must be >= 0", ErrInvalidArgument)
)
