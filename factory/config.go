package factory

import (
	"github.com/cockroachdb/errors"

	"github.com/opd-ai/vpp/deinterlace"
	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/limits"
	"github.com/opd-ai/vpp/params"
	"github.com/opd-ai/vpp/video"
)

// ErrInvalidConfig is returned when a Config value cannot be applied.
var ErrInvalidConfig = errors.New("invalid element configuration")

// CropConfig holds crop margins in sink pixels.
type CropConfig struct {
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
}

// Config describes an element. Enumerations use their textual nicks.
type Config struct {
	DeinterlaceMode   string     `yaml:"deinterlace_mode"`
	DeinterlaceMethod string     `yaml:"deinterlace_method"`
	Denoise           float32    `yaml:"denoise"`
	Sharpen           float32    `yaml:"sharpen"`
	Hue               float32    `yaml:"hue"`
	Saturation        float32    `yaml:"saturation"`
	Brightness        float32    `yaml:"brightness"`
	Contrast          float32    `yaml:"contrast"`
	ScaleMethod       string     `yaml:"scale_method"`
	VideoDirection    string     `yaml:"video_direction"`
	Crop              CropConfig `yaml:"crop"`
	SkinTone          bool       `yaml:"skin_tone"`
	SkinToneLevel     uint32     `yaml:"skin_tone_level"`
	HDRToneMap        string     `yaml:"hdr_tone_map"`
	Format            string     `yaml:"format"`
	Width             int        `yaml:"width"`
	Height            int        `yaml:"height"`
	ForceAspectRatio  bool       `yaml:"force_aspect_ratio"`
	ResetHistoryOnGap bool       `yaml:"reset_history_on_gap"`
}

// createDefaultConfig returns the built-in element defaults.
func createDefaultConfig() *Config {
	return &Config{
		DeinterlaceMode:   deinterlace.ModeAuto.String(),
		DeinterlaceMethod: interfaces.DeinterlaceBob.String(),
		Denoise:           0,
		Sharpen:           0,
		Hue:               0,
		Saturation:        1,
		Brightness:        0,
		Contrast:          1,
		ScaleMethod:       interfaces.ScaleDefault.String(),
		VideoDirection:    video.OrientationIdentity.String(),
		SkinToneLevel:     limits.DefaultSkinToneLevel,
		HDRToneMap:        params.HDRAuto.String(),
		Format:            video.FormatEncoded.String(),
		ForceAspectRatio:  true,
	}
}

// DefaultConfig returns a copy of the built-in defaults.
func DefaultConfig() Config {
	return *createDefaultConfig()
}

// resolved is a Config with its enumerations parsed.
type resolved struct {
	mode      deinterlace.Mode
	method    interfaces.DeinterlaceMethod
	scale     interfaces.ScaleMethod
	direction video.Orientation
	hdr       params.HDRMode
	format    video.Format
}

func parseScaleMethod(nick string) (interfaces.ScaleMethod, error) {
	for m := interfaces.ScaleDefault; m <= interfaces.ScaleHQ; m++ {
		if m.String() == nick {
			return m, nil
		}
	}
	return interfaces.ScaleDefault, errors.Newf("unknown scale method %q", nick)
}

func (c *Config) resolve() (resolved, error) {
	var r resolved
	var err error

	if r.mode, err = deinterlace.ParseMode(c.DeinterlaceMode); err != nil {
		return r, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if r.method, err = interfaces.ParseDeinterlaceMethod(c.DeinterlaceMethod); err != nil {
		return r, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if r.scale, err = parseScaleMethod(c.ScaleMethod); err != nil {
		return r, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if r.direction, err = video.ParseOrientation(c.VideoDirection); err != nil {
		return r, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if r.direction == video.OrientationCustom {
		return r, errors.Wrap(ErrInvalidConfig, "video direction custom is not selectable")
	}
	if r.hdr, err = params.ParseHDRMode(c.HDRToneMap); err != nil {
		return r, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if r.format, err = video.ParseFormat(c.Format); err != nil {
		return r, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return r, nil
}

// Validate checks every value against its property range.
func (c *Config) Validate() error {
	if _, err := c.resolve(); err != nil {
		return err
	}

	levels := []struct {
		op interfaces.FilterOp
		v  float32
	}{
		{interfaces.OpDenoise, c.Denoise},
		{interfaces.OpSharpen, c.Sharpen},
		{interfaces.OpHue, c.Hue},
		{interfaces.OpSaturation, c.Saturation},
		{interfaces.OpBrightness, c.Brightness},
		{interfaces.OpContrast, c.Contrast},
	}
	for _, l := range levels {
		if err := limits.ValidateLevel(l.op, l.v); err != nil {
			return errors.Wrap(ErrInvalidConfig, err.Error())
		}
	}

	if err := limits.ValidateSkinToneLevel(c.SkinToneLevel); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	dims := []struct {
		name string
		v    int
	}{
		{"crop.left", c.Crop.Left},
		{"crop.right", c.Crop.Right},
		{"crop.top", c.Crop.Top},
		{"crop.bottom", c.Crop.Bottom},
		{"width", c.Width},
		{"height", c.Height},
	}
	for _, d := range dims {
		if err := limits.ValidateDimension(d.name, d.v); err != nil {
			return errors.Wrap(ErrInvalidConfig, err.Error())
		}
	}
	return nil
}
