// ABOUTME: Sentinel errors surfaced by the domain repository.
// ABOUTME: Store-level sentinels live in the kv package.
package storage

import "errors"

// ErrInvalidFormat is returned when an import document fails shape
// validation. The store is left untouched.
var ErrInvalidFormat = errors.New("invalid format")
