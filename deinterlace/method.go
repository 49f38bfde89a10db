package deinterlace

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/interfaces"
)

// IsAdvanced reports whether m needs reference surfaces.
func IsAdvanced(m interfaces.DeinterlaceMethod) bool {
	switch m {
	case interfaces.DeinterlaceMotionAdaptive, interfaces.DeinterlaceMotionCompensated:
		return true
	default:
		return false
	}
}

// NextMethod returns the next simpler method on the fallback ladder:
// motion-compensated falls back to motion-adaptive, everything else to bob.
func NextMethod(m interfaces.DeinterlaceMethod) interfaces.DeinterlaceMethod {
	if m == interfaces.DeinterlaceMotionCompensated {
		return interfaces.DeinterlaceMotionAdaptive
	}
	return interfaces.DeinterlaceBob
}

// SelectBest configures the most advanced method not beyond method that
// the binding accepts, and returns it. The search stops at bob.
func SelectBest(filter interfaces.IFilter, method interfaces.DeinterlaceMethod, flags interfaces.DeinterlaceFlags) (interfaces.DeinterlaceMethod, error) {
	current := method
	for {
		err := filter.SetDeinterlacing(current, flags)
		if err == nil {
			if current != method {
				logrus.WithFields(logrus.Fields{
					"function":  "deinterlace.SelectBest",
					"requested": method.String(),
					"applied":   current.String(),
				}).Warn("Unsupported deinterlace method, using fallback")
			}
			return current, nil
		}
		if current == interfaces.DeinterlaceBob {
			return current, errors.Wrapf(ErrMethodUnsupported, "requested %s: %v", method, err)
		}
		current = NextMethod(current)
	}
}
