package deinterlace

import "github.com/cockroachdb/errors"

var (
	// ErrMethodUnsupported is returned when even bob deinterlacing is
	// rejected by the binding.
	ErrMethodUnsupported = errors.New("no supported deinterlace method")

	// ErrNoSurface is returned when a frame without a surface is pushed to
	// the history.
	ErrNoSurface = errors.New("buffer has no surface")
)
