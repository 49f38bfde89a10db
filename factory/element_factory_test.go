package factory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/vpp"
	"github.com/opd-ai/vpp/deinterlace"
	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/params"
	vpptest "github.com/opd-ai/vpp/testing"
	"github.com/opd-ai/vpp/video"
)

var envVars = []string{
	"VPP_DEINTERLACE_MODE",
	"VPP_DEINTERLACE_METHOD",
	"VPP_DENOISE",
	"VPP_SHARPEN",
	"VPP_HUE",
	"VPP_SATURATION",
	"VPP_BRIGHTNESS",
	"VPP_CONTRAST",
	"VPP_SCALE_METHOD",
	"VPP_VIDEO_DIRECTION",
	"VPP_SKIN_TONE",
	"VPP_SKIN_TONE_LEVEL",
	"VPP_HDR_TONE_MAP",
	"VPP_FORMAT",
	"VPP_WIDTH",
	"VPP_HEIGHT",
	"VPP_FORCE_ASPECT_RATIO",
	"VPP_RESET_HISTORY_ON_GAP",
}

// clearEnv blanks every VPP_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
	}
}

func TestNewElementFactory_Defaults(t *testing.T) {
	clearEnv(t)

	f := NewElementFactory()
	require.NotNil(t, f)

	cfg := f.GetCurrentConfig()
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "auto", cfg.DeinterlaceMode)
	assert.Equal(t, "bob", cfg.DeinterlaceMethod)
	assert.Equal(t, float32(1), cfg.Saturation)
	assert.Equal(t, float32(1), cfg.Contrast)
	assert.Equal(t, "default", cfg.ScaleMethod)
	assert.Equal(t, "identity", cfg.VideoDirection)
	assert.Equal(t, uint32(3), cfg.SkinToneLevel)
	assert.Equal(t, "auto", cfg.HDRToneMap)
	assert.Equal(t, "ENCODED", cfg.Format)
	assert.True(t, cfg.ForceAspectRatio)
	assert.False(t, cfg.ResetHistoryOnGap)
	assert.NoError(t, cfg.Validate())
}

func TestEnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
		check  func(t *testing.T, cfg Config)
	}{
		{
			name:   "denoise level",
			envVar: "VPP_DENOISE",
			value:  "0.5",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, float32(0.5), cfg.Denoise) },
		},
		{
			name:   "unparsable denoise keeps default",
			envVar: "VPP_DENOISE",
			value:  "lots",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, float32(0), cfg.Denoise) },
		},
		{
			name:   "out of range denoise keeps default",
			envVar: "VPP_DENOISE",
			value:  "2",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, float32(0), cfg.Denoise) },
		},
		{
			name:   "negative hue",
			envVar: "VPP_HUE",
			value:  "-90",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, float32(-90), cfg.Hue) },
		},
		{
			name:   "deinterlace method",
			envVar: "VPP_DEINTERLACE_METHOD",
			value:  "motion-adaptive",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, "motion-adaptive", cfg.DeinterlaceMethod) },
		},
		{
			name:   "unknown deinterlace method keeps default",
			envVar: "VPP_DEINTERLACE_METHOD",
			value:  "fancy",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, "bob", cfg.DeinterlaceMethod) },
		},
		{
			name:   "custom direction is not selectable",
			envVar: "VPP_VIDEO_DIRECTION",
			value:  "custom",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, "identity", cfg.VideoDirection) },
		},
		{
			name:   "rotation",
			envVar: "VPP_VIDEO_DIRECTION",
			value:  "90r",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, "90r", cfg.VideoDirection) },
		},
		{
			name:   "format name",
			envVar: "VPP_FORMAT",
			value:  "NV12",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, "NV12", cfg.Format) },
		},
		{
			name:   "skin tone level",
			envVar: "VPP_SKIN_TONE_LEVEL",
			value:  "5",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, uint32(5), cfg.SkinToneLevel) },
		},
		{
			name:   "skin tone level out of range keeps default",
			envVar: "VPP_SKIN_TONE_LEVEL",
			value:  "12",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, uint32(3), cfg.SkinToneLevel) },
		},
		{
			name:   "negative width keeps default",
			envVar: "VPP_WIDTH",
			value:  "-5",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, 0, cfg.Width) },
		},
		{
			name:   "height",
			envVar: "VPP_HEIGHT",
			value:  "720",
			check:  func(t *testing.T, cfg Config) { assert.Equal(t, 720, cfg.Height) },
		},
		{
			name:   "force aspect ratio off",
			envVar: "VPP_FORCE_ASPECT_RATIO",
			value:  "false",
			check:  func(t *testing.T, cfg Config) { assert.False(t, cfg.ForceAspectRatio) },
		},
		{
			name:   "unparsable bool keeps default",
			envVar: "VPP_FORCE_ASPECT_RATIO",
			value:  "sometimes",
			check:  func(t *testing.T, cfg Config) { assert.True(t, cfg.ForceAspectRatio) },
		},
		{
			name:   "reset history on gap",
			envVar: "VPP_RESET_HISTORY_ON_GAP",
			value:  "true",
			check:  func(t *testing.T, cfg Config) { assert.True(t, cfg.ResetHistoryOnGap) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.envVar, tt.value)

			cfg := NewElementFactory().GetCurrentConfig()
			tt.check(t, cfg)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestEnvironmentOverrides_LogsRejectedValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("VPP_SHARPEN", "7")

	hook := logtest.NewGlobal()
	defer hook.Reset()

	cfg := NewElementFactory().GetCurrentConfig()
	assert.Equal(t, float32(0), cfg.Sharpen)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["env_var"] == "VPP_SHARPEN" {
			warned = true
			assert.Equal(t, "parseLevelSetting", entry.Data["function"])
		}
	}
	assert.True(t, warned, "expected a warning for VPP_SHARPEN")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown mode", func(c *Config) { c.DeinterlaceMode = "sometimes" }, true},
		{"unknown method", func(c *Config) { c.DeinterlaceMethod = "fancy" }, true},
		{"unknown scale", func(c *Config) { c.ScaleMethod = "bicubic" }, true},
		{"custom direction", func(c *Config) { c.VideoDirection = "custom" }, true},
		{"auto direction", func(c *Config) { c.VideoDirection = "auto" }, false},
		{"unknown hdr mode", func(c *Config) { c.HDRToneMap = "on" }, true},
		{"unknown format", func(c *Config) { c.Format = "H264" }, true},
		{"denoise too high", func(c *Config) { c.Denoise = 1.5 }, true},
		{"sharpen too low", func(c *Config) { c.Sharpen = -2 }, true},
		{"hue in range", func(c *Config) { c.Hue = 180 }, false},
		{"contrast too high", func(c *Config) { c.Contrast = 3 }, true},
		{"skin tone level too high", func(c *Config) { c.SkinToneLevel = 10 }, true},
		{"negative crop", func(c *Config) { c.Crop.Top = -1 }, true},
		{"negative width", func(c *Config) { c.Width = -1 }, true},
		{"explicit size", func(c *Config) { c.Width, c.Height = 1280, 720 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	clearEnv(t)

	data := []byte(`
deinterlace_mode: interlaced
deinterlace_method: motion-adaptive
denoise: 0.25
video_direction: 90r
crop:
  left: 8
  bottom: 4
width: 1280
`)

	cfg, err := ParsePreset(data, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "interlaced", cfg.DeinterlaceMode)
	assert.Equal(t, "motion-adaptive", cfg.DeinterlaceMethod)
	assert.Equal(t, float32(0.25), cfg.Denoise)
	assert.Equal(t, "90r", cfg.VideoDirection)
	assert.Equal(t, CropConfig{Left: 8, Bottom: 4}, cfg.Crop)
	assert.Equal(t, 1280, cfg.Width)

	// Keys absent from the preset keep the base value.
	assert.Equal(t, float32(1), cfg.Saturation)
	assert.Equal(t, "ENCODED", cfg.Format)
	assert.True(t, cfg.ForceAspectRatio)
}

func TestParsePreset_EnvironmentWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("VPP_DENOISE", "0.75")

	cfg, err := ParsePreset([]byte("denoise: 0.25\n"), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, float32(0.75), cfg.Denoise)
}

func TestParsePreset_Errors(t *testing.T) {
	clearEnv(t)

	base := DefaultConfig()
	base.Sharpen = 0.5

	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "denoise: [0.1"},
		{"wrong type", "width: wide\n"},
		{"out of range level", "hue: 500\n"},
		{"unknown enum", "scale_method: bicubic\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParsePreset([]byte(tt.data), base)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Equal(t, base, cfg)
		})
	}
}

func TestLoadPreset(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "broadcast.yaml")
	require.NoError(t, os.WriteFile(good, []byte("format: NV12\nsharpen: 0.3\n"), 0o600))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("contrast: 9\n"), 0o600))

	f := NewElementFactory()
	require.NoError(t, f.LoadPreset(good))

	cfg := f.GetCurrentConfig()
	assert.Equal(t, "NV12", cfg.Format)
	assert.Equal(t, float32(0.3), cfg.Sharpen)

	t.Run("rejected preset keeps config", func(t *testing.T) {
		err := f.LoadPreset(bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
		assert.Equal(t, cfg, f.GetCurrentConfig())
	})

	t.Run("missing file", func(t *testing.T) {
		err := f.LoadPreset(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, cfg, f.GetCurrentConfig())
	})
}

func TestUpdateConfig(t *testing.T) {
	clearEnv(t)
	f := NewElementFactory()

	cfg := DefaultConfig()
	cfg.DeinterlaceMethod = "weave"
	cfg.Brightness = -0.5
	require.NoError(t, f.UpdateConfig(cfg))
	assert.Equal(t, cfg, f.GetCurrentConfig())

	invalid := cfg
	invalid.SkinToneLevel = 42
	err := f.UpdateConfig(invalid)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Equal(t, cfg, f.GetCurrentConfig())
}

func TestGetCurrentConfig_ReturnsCopy(t *testing.T) {
	clearEnv(t)
	f := NewElementFactory()

	cfg := f.GetCurrentConfig()
	cfg.Denoise = 0.9
	assert.Equal(t, float32(0), f.GetCurrentConfig().Denoise)
}

func TestCreateElement_NoDisplay(t *testing.T) {
	clearEnv(t)
	f := NewElementFactory()

	elem, err := f.CreateElement(nil, vpptest.NewRecordingDownstream())
	require.Error(t, err)
	assert.Nil(t, elem)
	assert.True(t, errors.Is(err, vpp.ErrNoDisplay))
}

func TestCreateElement_InvalidConfig(t *testing.T) {
	clearEnv(t)
	f := NewElementFactory()

	cfg := DefaultConfig()
	cfg.Format = "H264"

	elem, err := f.CreateElementWithConfig(vpptest.NewSimulatedDisplay(), vpptest.NewRecordingDownstream(), cfg)
	require.Error(t, err)
	assert.Nil(t, elem)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestCreateElementWithConfig_AppliesProperties(t *testing.T) {
	clearEnv(t)
	f := NewElementFactory()

	cfg := DefaultConfig()
	cfg.DeinterlaceMode = "interlaced"
	cfg.DeinterlaceMethod = "motion-adaptive"
	cfg.Denoise = 0.5
	cfg.Hue = 30
	cfg.ScaleMethod = "hq"
	cfg.VideoDirection = "90r"
	cfg.Crop = CropConfig{Left: 4, Right: 4, Top: 2, Bottom: 2}
	cfg.SkinTone = true
	cfg.HDRToneMap = "disabled"
	cfg.Format = "NV12"
	cfg.Width = 1280
	cfg.Height = 720
	cfg.ForceAspectRatio = false

	elem, err := f.CreateElementWithConfig(vpptest.NewSimulatedDisplay(), vpptest.NewRecordingDownstream(), cfg)
	require.NoError(t, err)
	require.NotNil(t, elem)
	defer elem.Close()

	assert.NotEmpty(t, elem.ID())

	p := elem.Parameters()
	assert.Equal(t, deinterlace.ModeInterlaced, p.DeinterlaceMode)
	assert.Equal(t, interfaces.DeinterlaceMotionAdaptive, p.DeinterlaceMethod)
	assert.Equal(t, float32(0.5), p.Denoise)
	assert.Equal(t, float32(30), p.Hue)
	assert.Equal(t, float32(1), p.Saturation)
	assert.Equal(t, interfaces.ScaleHQ, p.ScaleMethod)
	assert.Equal(t, video.Orientation90R, p.VideoDirection)
	assert.Equal(t, video.Margins{Left: 4, Right: 4, Top: 2, Bottom: 2}, p.Crop)
	assert.True(t, p.SkinTone)
	assert.Equal(t, params.HDRDisabled, p.HDRToneMap)
	assert.Equal(t, video.FormatNV12, p.Format)
	assert.Equal(t, 1280, p.Width)
	assert.Equal(t, 720, p.Height)
	assert.False(t, p.ForceAspectRatio)
}

func TestApply_OnlyDifferingProperties(t *testing.T) {
	clearEnv(t)

	var reconfigures int
	elem := vpp.New(vpptest.NewSimulatedDisplay(), vpptest.NewRecordingDownstream(),
		vpp.WithReconfigure(func() { reconfigures++ }))
	defer elem.Close()

	before := elem.Parameters()
	require.NoError(t, Apply(elem, DefaultConfig()))
	assert.Equal(t, before, elem.Parameters())
	assert.Zero(t, reconfigures)

	cfg := DefaultConfig()
	cfg.Contrast = 1.5
	require.NoError(t, Apply(elem, cfg))

	after := elem.Parameters()
	assert.Equal(t, float32(1.5), after.Contrast)
	before.Contrast = 1.5
	assert.Equal(t, before, after)
}

func TestApply_InvalidEnum(t *testing.T) {
	elem := vpp.New(vpptest.NewSimulatedDisplay(), vpptest.NewRecordingDownstream())
	defer elem.Close()

	cfg := DefaultConfig()
	cfg.HDRToneMap = "maybe"

	err := Apply(elem, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
