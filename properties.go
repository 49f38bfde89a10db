package vpp

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/deinterlace"
	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/limits"
	"github.com/opd-ai/vpp/params"
	"github.com/opd-ai/vpp/video"
)

// maybeReconfigure asks the host to renegotiate when geometry changed or
// the hardware path has pending work. Must be called without e.mu held.
func (e *Element) maybeReconfigure(doReconf bool) {
	e.mu.Lock()
	need := doReconf || e.checkFilterUpdate()
	e.mu.Unlock()

	if need {
		e.notifyReconfigure()
	}
}

func (e *Element) setLevel(op interfaces.FilterOp, v float32) error {
	if err := limits.ValidateLevel(op, v); err != nil {
		return err
	}

	e.mu.Lock()
	e.state.LevelParam(op).Set(v)
	e.mu.Unlock()

	e.log("Set"+op.String()).WithField("value", v).Debug("Property updated")
	e.maybeReconfigure(false)
	return nil
}

// SetDenoise sets the noise reduction level in [0, 1].
func (e *Element) SetDenoise(v float32) error { return e.setLevel(interfaces.OpDenoise, v) }

// SetSharpen sets the sharpening level in [-1, 1].
func (e *Element) SetSharpen(v float32) error { return e.setLevel(interfaces.OpSharpen, v) }

// SetHue sets the hue rotation in degrees, [-180, 180].
func (e *Element) SetHue(v float32) error { return e.setLevel(interfaces.OpHue, v) }

// SetSaturation sets the colour saturation in [0, 2].
func (e *Element) SetSaturation(v float32) error { return e.setLevel(interfaces.OpSaturation, v) }

// SetBrightness sets the brightness offset in [-1, 1].
func (e *Element) SetBrightness(v float32) error { return e.setLevel(interfaces.OpBrightness, v) }

// SetContrast sets the contrast factor in [0, 2].
func (e *Element) SetContrast(v float32) error { return e.setLevel(interfaces.OpContrast, v) }

// SetScaleMethod selects the scaling quality.
func (e *Element) SetScaleMethod(m interfaces.ScaleMethod) error {
	if m < interfaces.ScaleDefault || m > interfaces.ScaleHQ {
		return errors.Wrapf(limits.ErrOutOfRange, "scale method %d", int(m))
	}

	e.mu.Lock()
	e.state.Scale.Set(m)
	e.mu.Unlock()

	e.maybeReconfigure(false)
	return nil
}

// SetVideoDirection sets the output orientation. OrientationAuto follows
// upstream orientation tags.
func (e *Element) SetVideoDirection(o video.Orientation) error {
	if !o.IsCanonical() && o != video.OrientationAuto {
		return errors.Wrapf(limits.ErrOutOfRange, "video direction %s", o)
	}

	e.mu.Lock()
	e.state.Direction.Set(o)
	e.mu.Unlock()

	e.maybeReconfigure(false)
	return nil
}

// SetCrop sets the crop margins in sink pixels.
func (e *Element) SetCrop(left, right, top, bottom int) error {
	for _, m := range []struct {
		name string
		v    int
	}{{"crop-left", left}, {"crop-right", right}, {"crop-top", top}, {"crop-bottom", bottom}} {
		if err := limits.ValidateDimension(m.name, m.v); err != nil {
			return err
		}
	}

	e.mu.Lock()
	e.state.Crop.Set(video.Margins{Left: left, Right: right, Top: top, Bottom: bottom})
	e.mu.Unlock()

	e.log("SetCrop").WithFields(logrus.Fields{
		"left":   left,
		"right":  right,
		"top":    top,
		"bottom": bottom,
	}).Debug("Crop margins updated")
	e.maybeReconfigure(true)
	return nil
}

// SetSkinTone toggles skin-tone enhancement.
func (e *Element) SetSkinTone(enable bool) {
	e.mu.Lock()
	e.state.SkinTone.Set(enable)
	e.mu.Unlock()

	e.maybeReconfigure(false)
}

// SetSkinToneLevel sets the skin-tone enhancement level. A pending level
// takes precedence over the boolean toggle.
func (e *Element) SetSkinToneLevel(level uint32) error {
	if err := limits.ValidateSkinToneLevel(level); err != nil {
		return err
	}

	e.mu.Lock()
	e.state.SkinToneLevel.Set(level)
	e.mu.Unlock()

	e.maybeReconfigure(false)
	return nil
}

// SetDeinterlaceMode selects when deinterlacing applies. It takes effect
// at the next caps negotiation.
func (e *Element) SetDeinterlaceMode(m deinterlace.Mode) error {
	if m < deinterlace.ModeAuto || m > deinterlace.ModeDisabled {
		return errors.Wrapf(limits.ErrOutOfRange, "deinterlace mode %d", int(m))
	}

	e.mu.Lock()
	e.state.DeinterlaceMode = m
	e.mu.Unlock()
	return nil
}

// SetDeinterlaceMethod selects the preferred deinterlacing algorithm.
func (e *Element) SetDeinterlaceMethod(m interfaces.DeinterlaceMethod) error {
	if m < interfaces.DeinterlaceNone || m > interfaces.DeinterlaceMotionCompensated {
		return errors.Wrapf(limits.ErrOutOfRange, "deinterlace method %d", int(m))
	}

	e.mu.Lock()
	e.state.DeinterlaceMethod = m
	e.mu.Unlock()
	return nil
}

// SetHDRToneMap selects the HDR tone-mapping mode.
func (e *Element) SetHDRToneMap(m params.HDRMode) error {
	if m != params.HDRAuto && m != params.HDRDisabled {
		return errors.Wrapf(limits.ErrOutOfRange, "hdr-tone-map mode %d", int(m))
	}

	e.mu.Lock()
	e.state.HDRMode = m
	e.mu.Unlock()
	return nil
}

// SetFormat requests an output pixel format. FormatEncoded keeps the
// negotiated format.
func (e *Element) SetFormat(f video.Format) error {
	if f == video.FormatUnknown {
		return errors.Wrap(limits.ErrOutOfRange, "format must not be unknown")
	}

	e.mu.Lock()
	e.state.Format.Store(f)
	e.mu.Unlock()

	e.maybeReconfigure(true)
	return nil
}

// SetSize requests an explicit output size. Zero keeps the dimension
// derived from the input.
func (e *Element) SetSize(width, height int) error {
	if err := limits.ValidateDimension("width", width); err != nil {
		return err
	}
	if err := limits.ValidateDimension("height", height); err != nil {
		return err
	}

	e.mu.Lock()
	e.state.Size.Store(params.Size{Width: width, Height: height})
	e.mu.Unlock()

	e.maybeReconfigure(true)
	return nil
}

// SetForceAspectRatio keeps the display aspect ratio when only one output
// dimension is given.
func (e *Element) SetForceAspectRatio(keep bool) {
	e.mu.Lock()
	e.state.KeepAspect = keep
	e.mu.Unlock()
}

// Parameters returns a snapshot of every property value.
func (e *Element) Parameters() params.Values {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}

// ColorBalance exposes hue, saturation, brightness and contrast as integer
// channels. It returns nil when no Filter Engine binding can be created.
func (e *Element) ColorBalance() *params.ColorBalance {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureFilterCaps(); err != nil {
		e.log("ColorBalance").WithField("error", err.Error()).Warn("Colour balance unavailable")
		return nil
	}
	channels := params.Channels(e.filterOps)
	return params.NewColorBalance(&e.mu, e.state, channels, func() {
		e.maybeReconfigure(false)
	})
}
