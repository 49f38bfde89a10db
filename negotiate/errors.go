package negotiate

import "github.com/cockroachdb/errors"

var (
	// ErrAdvancedDeinterlaceFormat is returned when motion-adaptive or
	// motion-compensated deinterlacing is requested on a format the
	// backend does not process natively.
	ErrAdvancedDeinterlaceFormat = errors.New("advanced deinterlacing requires a native format")

	// ErrNoCompatibleFormat is returned when no alternative of the peer
	// caps admits a fixated source format.
	ErrNoCompatibleFormat = errors.New("no compatible source format")
)
