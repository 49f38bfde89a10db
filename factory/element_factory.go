package factory

import (
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/vpp"
	"github.com/opd-ai/vpp/interfaces"
)

// ElementFactory creates postprocessing elements from its current Config.
// It is safe for concurrent use.
type ElementFactory struct {
	mu            sync.RWMutex
	defaultConfig *Config
}

// NewElementFactory creates a factory with the built-in defaults and the
// VPP_* environment overrides applied.
func NewElementFactory() *ElementFactory {
	defaultConfig := createDefaultConfig()
	applyEnvironmentOverrides(defaultConfig)
	logConfigurationInfo("NewElementFactory", defaultConfig)

	return &ElementFactory{
		defaultConfig: defaultConfig,
	}
}

func logConfigurationInfo(function string, config *Config) {
	logrus.WithFields(logrus.Fields{
		"function":           function,
		"deinterlace_mode":   config.DeinterlaceMode,
		"deinterlace_method": config.DeinterlaceMethod,
		"denoise":            config.Denoise,
		"sharpen":            config.Sharpen,
		"video_direction":    config.VideoDirection,
		"format":             config.Format,
		"width":              config.Width,
		"height":             config.Height,
		"hdr_tone_map":       config.HDRToneMap,
	}).Info("Element factory configuration")
}

// ParsePreset decodes a YAML preset on top of base. Keys absent from data
// keep the value from base. Environment overrides are applied last.
func ParsePreset(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	applyEnvironmentOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// LoadPreset reads a YAML preset file and makes it the factory default.
func (f *ElementFactory) LoadPreset(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read preset %s", path)
	}

	cfg, err := ParsePreset(data, f.GetCurrentConfig())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "LoadPreset",
			"path":     path,
			"error":    err.Error(),
		}).Warn("Rejected preset")
		return errors.Wrapf(err, "preset %s", path)
	}

	f.mu.Lock()
	f.defaultConfig = &cfg
	f.mu.Unlock()

	logConfigurationInfo("LoadPreset", &cfg)
	return nil
}

// GetCurrentConfig returns a copy of the current default configuration.
func (f *ElementFactory) GetCurrentConfig() Config {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return *f.defaultConfig
}

// UpdateConfig replaces the default configuration after validating it.
func (f *ElementFactory) UpdateConfig(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":   "UpdateConfig",
		"old_method": f.defaultConfig.DeinterlaceMethod,
		"new_method": config.DeinterlaceMethod,
		"old_format": f.defaultConfig.Format,
		"new_format": config.Format,
	}).Info("Updating factory configuration")

	f.defaultConfig = &config
	return nil
}

// CreateElement creates an element configured from the factory default.
func (f *ElementFactory) CreateElement(display interfaces.IDisplay, downstream interfaces.IDownstream, opts ...vpp.Option) (*vpp.Element, error) {
	return f.CreateElementWithConfig(display, downstream, f.GetCurrentConfig(), opts...)
}

// CreateElementWithConfig creates an element from config. Options in opts
// are applied after those derived from config.
func (f *ElementFactory) CreateElementWithConfig(display interfaces.IDisplay, downstream interfaces.IDownstream, config Config, opts ...vpp.Option) (*vpp.Element, error) {
	if display == nil {
		return nil, errors.Wrap(vpp.ErrNoDisplay, "display is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	all := append([]vpp.Option{vpp.WithResetHistoryOnGap(config.ResetHistoryOnGap)}, opts...)
	elem := vpp.New(display, downstream, all...)
	if err := Apply(elem, config); err != nil {
		_ = elem.Close()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":   "CreateElementWithConfig",
		"element_id": elem.ID(),
	}).Info("Created configured element")
	return elem, nil
}

// Apply pushes config into elem, touching only the properties whose value
// differs from the element's current one.
func Apply(elem *vpp.Element, config Config) error {
	r, err := config.resolve()
	if err != nil {
		return err
	}
	cur := elem.Parameters()

	if r.mode != cur.DeinterlaceMode {
		if err := elem.SetDeinterlaceMode(r.mode); err != nil {
			return err
		}
	}
	if r.method != cur.DeinterlaceMethod {
		if err := elem.SetDeinterlaceMethod(r.method); err != nil {
			return err
		}
	}

	levels := []struct {
		want, have float32
		set        func(float32) error
	}{
		{config.Denoise, cur.Denoise, elem.SetDenoise},
		{config.Sharpen, cur.Sharpen, elem.SetSharpen},
		{config.Hue, cur.Hue, elem.SetHue},
		{config.Saturation, cur.Saturation, elem.SetSaturation},
		{config.Brightness, cur.Brightness, elem.SetBrightness},
		{config.Contrast, cur.Contrast, elem.SetContrast},
	}
	for _, l := range levels {
		if l.want == l.have {
			continue
		}
		if err := l.set(l.want); err != nil {
			return err
		}
	}

	if r.scale != cur.ScaleMethod {
		if err := elem.SetScaleMethod(r.scale); err != nil {
			return err
		}
	}
	if r.direction != cur.VideoDirection {
		if err := elem.SetVideoDirection(r.direction); err != nil {
			return err
		}
	}

	c := config.Crop
	if c.Left != cur.Crop.Left || c.Right != cur.Crop.Right || c.Top != cur.Crop.Top || c.Bottom != cur.Crop.Bottom {
		if err := elem.SetCrop(c.Left, c.Right, c.Top, c.Bottom); err != nil {
			return err
		}
	}

	if config.SkinToneLevel != cur.SkinToneLevel {
		if err := elem.SetSkinToneLevel(config.SkinToneLevel); err != nil {
			return err
		}
	}
	if config.SkinTone != cur.SkinTone {
		elem.SetSkinTone(config.SkinTone)
	}
	if r.hdr != cur.HDRToneMap {
		if err := elem.SetHDRToneMap(r.hdr); err != nil {
			return err
		}
	}
	if r.format != cur.Format {
		if err := elem.SetFormat(r.format); err != nil {
			return err
		}
	}
	if config.Width != cur.Width || config.Height != cur.Height {
		if err := elem.SetSize(config.Width, config.Height); err != nil {
			return err
		}
	}
	if config.ForceAspectRatio != cur.ForceAspectRatio {
		elem.SetForceAspectRatio(config.ForceAspectRatio)
	}
	return nil
}
