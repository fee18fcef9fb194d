// Package internalerr defines sentinel errors shared across packages.
// Callers match them with errors.Is after wrapping.
package internalerr

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrBackendUnavailable = errors.New("backend unavailable")
)
