package deinterlace

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/video"
)

// Mode is the deinterlace-mode property.
type Mode int

const (
	// ModeAuto deinterlaces only streams reporting interlaced content.
	ModeAuto Mode = iota
	// ModeInterlaced forces deinterlacing of every frame.
	ModeInterlaced
	// ModeDisabled never deinterlaces.
	ModeDisabled
)

// String returns the property nick.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeInterlaced:
		return "interlaced"
	case ModeDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a property nick to a Mode.
func ParseMode(nick string) (Mode, error) {
	for m := ModeAuto; m <= ModeDisabled; m++ {
		if m.String() == nick {
			return m, nil
		}
	}
	return ModeAuto, fmt.Errorf("unknown deinterlace mode %q", nick)
}

// Enabled reports whether a stream negotiated as info needs deinterlacing
// under mode.
func Enabled(mode Mode, info video.Info) bool {
	switch mode {
	case ModeAuto:
		return info.InterlaceMode != video.InterlaceProgressive
	case ModeInterlaced:
		return true
	default:
		return false
	}
}

// State is the deinterlace activity for one frame.
type State int

const (
	StateDisabled State = iota
	// StateAutoProgressive behaves as disabled.
	StateAutoProgressive
	StateAutoInterlaced
	StateForced
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateAutoProgressive:
		return "auto-progressive"
	case StateAutoInterlaced:
		return "auto-interlaced"
	case StateForced:
		return "forced"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Active reports whether the frame must be deinterlaced.
func (s State) Active() bool {
	return s == StateAutoInterlaced || s == StateForced
}

// Decide classifies one frame. enabled is false when negotiation did not
// turn deinterlacing on for the stream.
func Decide(enabled bool, mode Mode, interlace video.InterlaceMode, buf *video.Buffer) State {
	if !enabled || mode == ModeDisabled {
		return StateDisabled
	}
	if mode == ModeInterlaced {
		return StateForced
	}

	switch interlace {
	case video.InterlaceInterleaved:
		return StateAutoInterlaced
	case video.InterlaceProgressive:
		return StateAutoProgressive
	case video.InterlaceMixed:
		if buf != nil && buf.Has(video.FlagInterlaced) {
			return StateAutoInterlaced
		}
		return StateAutoProgressive
	default:
		logrus.WithFields(logrus.Fields{
			"function":       "deinterlace.Decide",
			"interlace_mode": interlace.String(),
		}).Error("Unhandled interlace mode, disabling deinterlacing")
		return StateAutoProgressive
	}
}

// ShouldDeinterlaceBuffer reports whether buf must be deinterlaced.
func ShouldDeinterlaceBuffer(enabled bool, mode Mode, interlace video.InterlaceMode, buf *video.Buffer) bool {
	return Decide(enabled, mode, interlace, buf).Active()
}
