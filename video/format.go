package video

import (
	"fmt"
	"strings"
	"time"
)

// Format identifies a pixel format.
type Format int

const (
	// FormatUnknown is the zero value and never negotiated.
	FormatUnknown Format = iota
	// FormatEncoded is the opaque sentinel meaning "keep the surface format".
	FormatEncoded
	FormatNV12
	FormatYV12
	FormatI420
	FormatYUY2
	FormatUYVY
	FormatP010
	FormatBGRA
	FormatRGBA
	FormatBGRx
	FormatRGBx
	FormatARGB
)

var formatNames = map[Format]string{
	FormatUnknown: "UNKNOWN",
	FormatEncoded: "ENCODED",
	FormatNV12:    "NV12",
	FormatYV12:    "YV12",
	FormatI420:    "I420",
	FormatYUY2:    "YUY2",
	FormatUYVY:    "UYVY",
	FormatP010:    "P010_10LE",
	FormatBGRA:    "BGRA",
	FormatRGBA:    "RGBA",
	FormatBGRx:    "BGRx",
	FormatRGBx:    "RGBx",
	FormatARGB:    "ARGB",
}

// String returns the canonical format name.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a canonical format name (case-insensitive) to a Format.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if f != FormatUnknown && strings.EqualFold(n, name) {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unknown video format %q", name)
}

// AllRawFormats lists every raw format the element can describe.
func AllRawFormats() []Format {
	return []Format{
		FormatNV12, FormatYV12, FormatI420, FormatYUY2, FormatUYVY,
		FormatP010, FormatBGRA, FormatRGBA, FormatBGRx, FormatRGBx, FormatARGB,
	}
}

// InterlaceMode describes how fields are laid out in a stream.
type InterlaceMode int

const (
	InterlaceProgressive InterlaceMode = iota
	InterlaceInterleaved
	InterlaceMixed
	// InterlaceFields is a valid caps value the element does not handle;
	// deinterlacing is disabled when it is found.
	InterlaceFields
)

// String returns the caps nick of the mode.
func (m InterlaceMode) String() string {
	switch m {
	case InterlaceProgressive:
		return "progressive"
	case InterlaceInterleaved:
		return "interleaved"
	case InterlaceMixed:
		return "mixed"
	case InterlaceFields:
		return "fields"
	default:
		return fmt.Sprintf("InterlaceMode(%d)", int(m))
	}
}

// ParseInterlaceMode maps a caps nick to an InterlaceMode.
func ParseInterlaceMode(nick string) (InterlaceMode, error) {
	for _, m := range []InterlaceMode{InterlaceProgressive, InterlaceInterleaved, InterlaceMixed, InterlaceFields} {
		if m.String() == nick {
			return m, nil
		}
	}
	return InterlaceProgressive, fmt.Errorf("unknown interlace mode %q", nick)
}

// Colorimetry describes the colour space of a stream.
type Colorimetry struct {
	Range     string
	Matrix    string
	Transfer  string
	Primaries string
}

// Chromaticity is a CIE 1931 xy coordinate in units of 0.00002.
type Chromaticity struct {
	X uint16
	Y uint16
}

// MasteringDisplayInfo is the SMPTE ST 2086 mastering display colour volume.
type MasteringDisplayInfo struct {
	DisplayPrimaries [3]Chromaticity
	WhitePoint       Chromaticity
	MaxLuminance     uint32
	MinLuminance     uint32
}

// ContentLightLevel is the CTA-861.3 content light level information.
type ContentLightLevel struct {
	MaxContentLightLevel      uint16
	MaxFrameAverageLightLevel uint16
}

// Info is the negotiated format descriptor of one side of the element.
type Info struct {
	Format        Format
	Width         int
	Height        int
	InterlaceMode InterlaceMode
	FPSN          int
	FPSD          int
	Colorimetry   Colorimetry
	// Feature is the caps feature the format was negotiated with,
	// e.g. FeatureVASurface.
	Feature string

	Mastering  *MasteringDisplayInfo
	LightLevel *ContentLightLevel
}

// IsZero reports whether the descriptor has not been negotiated yet.
func (i Info) IsZero() bool {
	return i.Format == FormatUnknown && i.Width == 0 && i.Height == 0
}

// Changed reports whether switching from i to next requires rebuilding
// format dependent resources: pixel format, size or interlace mode differ.
func (i Info) Changed(next Info) bool {
	return i.Format != next.Format ||
		i.Width != next.Width ||
		i.Height != next.Height ||
		i.InterlaceMode != next.InterlaceMode
}

// FrameDuration returns the duration of one frame, or 0 when the frame
// rate is unknown.
func (i Info) FrameDuration() time.Duration {
	if i.FPSN <= 0 || i.FPSD <= 0 {
		return 0
	}
	return time.Duration(int64(time.Second) * int64(i.FPSD) / int64(i.FPSN))
}

// WithFormat returns a copy of i with the pixel format replaced.
// FormatEncoded and FormatUnknown keep the current format.
func (i Info) WithFormat(f Format) Info {
	if f != FormatEncoded && f != FormatUnknown {
		i.Format = f
	}
	return i
}

// String renders the descriptor in a caps-like form for logging.
func (i Info) String() string {
	return fmt.Sprintf("%s %dx%d %s %d/%d", i.Format, i.Width, i.Height, i.InterlaceMode, i.FPSN, i.FPSD)
}
