package model

import "errors"

// Storage-level errors shared by every adapter
var (
	// ErrPlayerNotFound is returned by a store when no record exists for a pseudo
	ErrPlayerNotFound = errors.New("player not found")

	// ErrWriteConflict is returned when a conditional write finds the key in the wrong state
	ErrWriteConflict = errors.New("write condition failed")
)
