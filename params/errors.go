package params

import "github.com/cockroachdb/errors"

var (
	// ErrApplyFailed is returned when the binding rejects a pending value.
	// The caller treats the configuration as unsupported.
	ErrApplyFailed = errors.New("filter rejected operation")

	// ErrUnknownChannel is returned for a colour-balance label that maps to
	// no operation.
	ErrUnknownChannel = errors.New("unknown colour balance channel")
)
