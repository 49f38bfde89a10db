package interfaces

import "github.com/cockroachdb/errors"

// Sentinel errors returned by backend implementations.
var (
	// ErrOperationUnsupported indicates the backend does not accept an
	// operation or value.
	ErrOperationUnsupported = errors.New("operation not supported by filter")

	// ErrInvalidValue indicates a value of the wrong type or out of range.
	ErrInvalidValue = errors.New("invalid operation value")

	// ErrFilterClosed indicates the binding has been destroyed.
	ErrFilterClosed = errors.New("filter binding closed")

	// ErrPoolExhausted indicates no surface could be acquired.
	ErrPoolExhausted = errors.New("surface pool exhausted")

	// ErrDisplayUnavailable indicates the acceleration context is missing.
	ErrDisplayUnavailable = errors.New("display unavailable")
)
