package interfaces

import (
	"fmt"

	"github.com/opd-ai/vpp/video"
)

// FilterOp identifies a Filter Engine operation.
type FilterOp int

const (
	OpFormat FilterOp = iota
	OpCrop
	OpDenoise
	OpSharpen
	OpHue
	OpSaturation
	OpBrightness
	OpContrast
	OpDeinterlacing
	OpScaling
	OpVideoDirection
	OpHDRToneMap
	OpSkinTone
	OpSkinToneLevel
)

var opNames = [...]string{
	"format", "crop", "denoise", "sharpen", "hue", "saturation", "brightness",
	"contrast", "deinterlacing", "scaling", "video-direction", "hdr-tone-map",
	"skin-tone", "skin-tone-level",
}

// String returns the operation name.
func (op FilterOp) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("FilterOp(%d)", int(op))
}

// Value is the typed argument of an operation.
type Value interface {
	isValue()
}

// Level is a float operation value (denoise, sharpen, colour controls).
type Level float32

// ScaleMethod selects the scaling algorithm.
type ScaleMethod int

const (
	ScaleDefault ScaleMethod = iota
	ScaleFast
	ScaleHQ
)

// Direction is a video-direction operation value.
type Direction video.Orientation

// FormatValue is an output pixel format operation value.
type FormatValue video.Format

// Toggle is a boolean operation value.
type Toggle bool

// SkinToneLevel is the skin-tone enhancement level.
type SkinToneLevel uint32

func (Level) isValue()         {}
func (ScaleMethod) isValue()   {}
func (Direction) isValue()     {}
func (FormatValue) isValue()   {}
func (Toggle) isValue()        {}
func (SkinToneLevel) isValue() {}

// String returns the nick of the scaling method.
func (m ScaleMethod) String() string {
	switch m {
	case ScaleDefault:
		return "default"
	case ScaleFast:
		return "fast"
	case ScaleHQ:
		return "hq"
	default:
		return fmt.Sprintf("ScaleMethod(%d)", int(m))
	}
}

// OpInfo describes an operation advertised by a binding.
type OpInfo struct {
	Op      FilterOp
	Min     float64
	Max     float64
	Default Value
}

// DeinterlaceMethod is a deinterlacing algorithm.
type DeinterlaceMethod int

const (
	DeinterlaceNone DeinterlaceMethod = iota
	DeinterlaceBob
	DeinterlaceWeave
	DeinterlaceMotionAdaptive
	DeinterlaceMotionCompensated
)

// String returns the property nick.
func (m DeinterlaceMethod) String() string {
	switch m {
	case DeinterlaceNone:
		return "none"
	case DeinterlaceBob:
		return "bob"
	case DeinterlaceWeave:
		return "weave"
	case DeinterlaceMotionAdaptive:
		return "motion-adaptive"
	case DeinterlaceMotionCompensated:
		return "motion-compensated"
	default:
		return fmt.Sprintf("DeinterlaceMethod(%d)", int(m))
	}
}

// ParseDeinterlaceMethod maps a property nick to a method.
func ParseDeinterlaceMethod(nick string) (DeinterlaceMethod, error) {
	for m := DeinterlaceNone; m <= DeinterlaceMotionCompensated; m++ {
		if m.String() == nick {
			return m, nil
		}
	}
	return DeinterlaceNone, fmt.Errorf("unknown deinterlace method %q", nick)
}

// DeinterlaceFlags qualify a deinterlacing request.
type DeinterlaceFlags uint32

const (
	// DeinterlaceFlagTFF marks the top field as first in time.
	DeinterlaceFlagTFF DeinterlaceFlags = 1 << iota
	// DeinterlaceFlagOneField processes a single field.
	DeinterlaceFlagOneField
	// DeinterlaceFlagTopField selects the top field for output.
	DeinterlaceFlagTopField
)

// FilterStatus is the outcome of IFilter.Process.
type FilterStatus int

const (
	StatusSuccess FilterStatus = iota
	// StatusUnsupported means the configured operations cannot be run;
	// callers fall back to a simpler path.
	StatusUnsupported
	StatusAllocationFailed
	StatusError
)

// String returns the status name.
func (s FilterStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnsupported:
		return "unsupported-operation"
	case StatusAllocationFailed:
		return "allocation-failed"
	case StatusError:
		return "operation-failed"
	default:
		return fmt.Sprintf("FilterStatus(%d)", int(s))
	}
}

// IFilter is one Filter Engine binding, bound to the display that created
// it. It is owned by a single element and destroyed on format change.
type IFilter interface {
	// Operations lists the supported operations with ranges and defaults
	Operations() ([]OpInfo, error)

	// Formats lists the supported output pixel formats
	Formats() ([]video.Format, error)

	// SetOperation applies a value; ErrOperationUnsupported if rejected
	SetOperation(op FilterOp, value Value) error

	// Default returns the backend default for op, or nil if unknown
	Default(op FilterOp) Value

	// VideoDirection returns the direction currently in effect
	VideoDirection() video.Orientation

	// SetCropRectangle sets the source region; nil selects the full surface
	SetCropRectangle(rect *video.Rectangle) error

	// SetColorimetry configures input and output colour spaces
	SetColorimetry(in, out video.Colorimetry) error

	// SetDeinterlacing selects the deinterlacing method and field flags
	SetDeinterlacing(method DeinterlaceMethod, flags DeinterlaceFlags) error

	// SetDeinterlacingReferences supplies past surfaces, most recent first
	SetDeinterlacingReferences(forward []video.Surface) error

	// SetHDRToneMap enables or disables tone mapping
	SetHDRToneMap(enable bool) error

	// SetHDRToneMapMeta forwards the stream's HDR metadata
	SetHDRToneMapMeta(mastering video.MasteringDisplayInfo, light video.ContentLightLevel) error

	// AppendCaps annotates a caps structure with backend capabilities
	AppendCaps(s *video.Structure)

	// Process runs the configured pipeline from in to out synchronously
	Process(in, out video.Surface, flags video.RenderFlags) FilterStatus

	// Close destroys the binding
	Close() error
}

// ISurfacePool hands out output surfaces of one format.
type ISurfacePool interface {
	// Acquire returns a surface reference; ErrPoolExhausted when empty
	Acquire() (*video.SurfaceProxy, error)

	// Info returns the format the pool allocates
	Info() video.Info

	// Close releases the pool; outstanding surfaces stay valid
	Close() error
}

// IDisplay is the acceleration context bindings are created from.
type IDisplay interface {
	// NewFilter creates a Filter Engine binding
	NewFilter() (IFilter, error)

	// NewSurfacePool creates a pool for the given format
	NewSurfacePool(info video.Info) (ISurfacePool, error)

	// RawFormats lists the raw formats upstream may deliver
	RawFormats() []video.Format

	// HasOpenGL reports whether GL texture upload is possible
	HasOpenGL() bool
}

// IDownstream receives output frames.
type IDownstream interface {
	// Push delivers a frame and takes ownership of it, also on error. The
	// returned error is propagated verbatim.
	Push(buf *video.Buffer) error
}
