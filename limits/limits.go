package limits

import (
	"github.com/cockroachdb/errors"

	"github.com/opd-ai/vpp/interfaces"
)

const (
	// MaxDimension bounds crop margins and explicit output sizes.
	MaxDimension = 1<<31 - 1

	MinSkinToneLevel = 0
	MaxSkinToneLevel = 9
	// DefaultSkinToneLevel is used until the engine reports its own default.
	DefaultSkinToneLevel = 3
)

var (
	// ErrOutOfRange is returned when a value falls outside its property range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnknownProperty is returned for operations without a float range.
	ErrUnknownProperty = errors.New("unknown property")
)

// Range is the closed interval accepted by a float property.
type Range struct {
	Min     float32
	Max     float32
	Default float32
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

var levelRanges = map[interfaces.FilterOp]Range{
	interfaces.OpDenoise:    {Min: 0, Max: 1, Default: 0},
	interfaces.OpSharpen:    {Min: -1, Max: 1, Default: 0},
	interfaces.OpHue:        {Min: -180, Max: 180, Default: 0},
	interfaces.OpSaturation: {Min: 0, Max: 2, Default: 1},
	interfaces.OpBrightness: {Min: -1, Max: 1, Default: 0},
	interfaces.OpContrast:   {Min: 0, Max: 2, Default: 1},
}

// LevelRange returns the range of a float property.
func LevelRange(op interfaces.FilterOp) (Range, error) {
	r, ok := levelRanges[op]
	if !ok {
		return Range{}, errors.Wrapf(ErrUnknownProperty, "%s has no level range", op)
	}
	return r, nil
}

// ValidateLevel checks a float property value.
func ValidateLevel(op interfaces.FilterOp, v float32) error {
	r, err := LevelRange(op)
	if err != nil {
		return err
	}
	if !r.Contains(v) {
		return errors.Wrapf(ErrOutOfRange, "%s %v outside [%v, %v]", op, v, r.Min, r.Max)
	}
	return nil
}

// ValidateSkinToneLevel checks the skin-tone enhancement level.
func ValidateSkinToneLevel(level uint32) error {
	if level > MaxSkinToneLevel {
		return errors.Wrapf(ErrOutOfRange, "skin-tone level %d outside [%d, %d]",
			level, MinSkinToneLevel, MaxSkinToneLevel)
	}
	return nil
}

// ValidateDimension checks a crop margin or explicit size.
func ValidateDimension(name string, v int) error {
	if v < 0 || v > MaxDimension {
		return errors.Wrapf(ErrOutOfRange, "%s %d outside [0, %d]", name, v, MaxDimension)
	}
	return nil
}
