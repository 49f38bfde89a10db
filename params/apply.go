package params

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/interfaces"
)

// ApplyPending pushes every pending value into filter. A rejected value
// fails the whole call with ErrApplyFailed; values already pushed stay
// applied. A pushed value stays pending unless it equals the binding
// default. An unsupported video direction is only logged.
func (s *State) ApplyPending(filter interfaces.IFilter) error {
	if s.Format.Dirty() {
		if err := filter.SetOperation(interfaces.OpFormat, interfaces.FormatValue(s.Format.Value())); err != nil {
			return errors.Wrapf(ErrApplyFailed, "format %s: %v", s.Format.Value(), err)
		}
	}

	levels := []struct {
		op    interfaces.FilterOp
		param *Param[float32]
	}{
		{interfaces.OpDenoise, &s.Denoise},
		{interfaces.OpSharpen, &s.Sharpen},
		{interfaces.OpHue, &s.Hue},
		{interfaces.OpSaturation, &s.Saturation},
		{interfaces.OpBrightness, &s.Brightness},
		{interfaces.OpContrast, &s.Contrast},
	}
	for _, l := range levels {
		if !l.param.Dirty() {
			continue
		}
		v := interfaces.Level(l.param.Value())
		if err := filter.SetOperation(l.op, v); err != nil {
			return errors.Wrapf(ErrApplyFailed, "%s %v: %v", l.op, l.param.Value(), err)
		}
		if filter.Default(l.op) == interfaces.Value(v) {
			l.param.Clear()
		}
	}

	if s.Scale.Dirty() {
		v := s.Scale.Value()
		if err := filter.SetOperation(interfaces.OpScaling, v); err != nil {
			return errors.Wrapf(ErrApplyFailed, "scaling %s: %v", v, err)
		}
		if filter.Default(interfaces.OpScaling) == interfaces.Value(v) {
			s.Scale.Clear()
		}
	}

	if s.Direction.Dirty() {
		s.applyDirection(filter)
	}

	if s.Crop.Dirty() && s.Crop.Value().IsZero() {
		s.Crop.Clear()
	}

	if s.SkinToneLevel.Dirty() {
		v := interfaces.SkinToneLevel(s.SkinToneLevel.Value())
		if err := filter.SetOperation(interfaces.OpSkinToneLevel, v); err != nil {
			return errors.Wrapf(ErrApplyFailed, "skin-tone level %d: %v", v, err)
		}
		if filter.Default(interfaces.OpSkinToneLevel) == interfaces.Value(v) {
			s.SkinToneLevel.Clear()
		}
		s.SkinTone.Clear()
	} else if s.SkinTone.Dirty() {
		v := interfaces.Toggle(s.SkinTone.Value())
		if err := filter.SetOperation(interfaces.OpSkinTone, v); err != nil {
			return errors.Wrapf(ErrApplyFailed, "skin-tone %t: %v", v, err)
		}
		if filter.Default(interfaces.OpSkinTone) == interfaces.Value(v) {
			s.SkinTone.Clear()
		}
	}

	return nil
}

func (s *State) applyDirection(filter interfaces.IFilter) {
	method := s.EffectiveDirection()
	if err := filter.SetOperation(interfaces.OpVideoDirection, interfaces.Direction(method)); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":  "State.ApplyPending",
			"direction": method.String(),
			"error":     err.Error(),
		}).Warn("Unsupported video direction by driver, transformation ignored")
	}
	if filter.Default(interfaces.OpVideoDirection) == interfaces.Value(interfaces.Direction(method)) {
		s.Direction.Clear()
	}
}
