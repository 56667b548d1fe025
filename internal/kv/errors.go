// ABOUTME: Sentinel errors for the record store.
// ABOUTME: Callers match these with errors.Is.
package kv

import "errors"

var (
	// ErrConstraintViolation is returned when a write would duplicate a
	// unique index value.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStorageUnavailable is returned when the underlying store fails to
	// initialize. It is fatal to the application session.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
