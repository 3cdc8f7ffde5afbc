package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDateParse indicates a date string is empty or unparseable.
	// It is always recovered inside the engine into an "unknown" state
	// and never surfaced from an evaluation pass.
	ErrDateParse = errors.New("unparseable date")

	// ErrSnapshotUnavailable indicates the inbound snapshot could not be read.
	ErrSnapshotUnavailable = errors.New("snapshot unavailable")
)
