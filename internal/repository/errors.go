package repository

import "errors"

var (
	// ErrNotFound signals a scoped lookup that matched no rows.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a uniqueness violation. For the film upsert it
	// means a concurrent writer won the race; the call is retryable.
	ErrConflict = errors.New("conflict")
)
