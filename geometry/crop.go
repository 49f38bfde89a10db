package geometry

import (
	"github.com/cockroachdb/errors"

	"github.com/opd-ai/vpp/video"
)

// ErrInvalidCrop is returned when the margins leave no picture.
var ErrInvalidCrop = errors.New("invalid crop margins")

// ValidateMargins checks that m leaves a non-empty region of a
// width x height picture.
func ValidateMargins(m video.Margins, width, height int) error {
	if m.Left < 0 || m.Right < 0 || m.Top < 0 || m.Bottom < 0 {
		return errors.Wrapf(ErrInvalidCrop, "negative margin in %+v", m)
	}
	if m.Left+m.Right >= width {
		return errors.Wrapf(ErrInvalidCrop, "left %d + right %d >= width %d", m.Left, m.Right, width)
	}
	if m.Top+m.Bottom >= height {
		return errors.Wrapf(ErrInvalidCrop, "top %d + bottom %d >= height %d", m.Top, m.Bottom, height)
	}
	return nil
}

// UseVPPCrop reports whether the element crops frames itself. Cropping is
// left downstream only when downstream handles crop metadata and no margins
// are configured.
func UseVPPCrop(forwardCrop, marginsPending bool) bool {
	return !(forwardCrop && !marginsPending)
}

// CropRect returns the sink extent reduced by m, offset by the crop
// metadata already attached to the input frame.
func CropRect(width, height int, m video.Margins, inCrop *video.Rectangle) video.Rectangle {
	r := video.Rectangle{
		X:      m.Left,
		Y:      m.Top,
		Width:  width - (m.Left + m.Right),
		Height: height - (m.Top + m.Bottom),
	}
	if inCrop != nil {
		r.X += inCrop.X
		r.Y += inCrop.Y
	}
	return r
}
