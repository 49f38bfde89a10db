package vpp

import "github.com/cockroachdb/errors"

// Sentinel errors for frame processing and negotiation.
var (
	// ErrNotSupported reports a configuration the Filter Engine cannot run.
	// Transform recovers from it by falling back to a simpler path.
	ErrNotSupported = errors.New("operation not supported by filter")

	// ErrInvalidBuffer is returned for a frame without a surface.
	ErrInvalidBuffer = errors.New("invalid input buffer")

	// ErrResourceAcquisition is returned when an output surface or a
	// binding cannot be obtained.
	ErrResourceAcquisition = errors.New("failed to acquire resource")

	// ErrProcessFailed is returned when the Filter Engine fails a frame.
	ErrProcessFailed = errors.New("filter processing failed")

	// ErrNegotiation is returned when a sink/source format pair cannot be
	// accepted. The previous configuration stays active.
	ErrNegotiation = errors.New("format negotiation failed")

	// ErrNoDisplay is returned when the element has no display.
	ErrNoDisplay = errors.New("no display")
)
