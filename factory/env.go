package factory

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/limits"
)

// applyEnvironmentOverrides updates configuration from VPP_* environment
// variables. A value that fails to parse or validate is logged and ignored.
func applyEnvironmentOverrides(config *Config) {
	parseEnumSetting("VPP_DEINTERLACE_MODE", &config.DeinterlaceMode, config)
	parseEnumSetting("VPP_DEINTERLACE_METHOD", &config.DeinterlaceMethod, config)
	parseLevelSetting("VPP_DENOISE", interfaces.OpDenoise, &config.Denoise)
	parseLevelSetting("VPP_SHARPEN", interfaces.OpSharpen, &config.Sharpen)
	parseLevelSetting("VPP_HUE", interfaces.OpHue, &config.Hue)
	parseLevelSetting("VPP_SATURATION", interfaces.OpSaturation, &config.Saturation)
	parseLevelSetting("VPP_BRIGHTNESS", interfaces.OpBrightness, &config.Brightness)
	parseLevelSetting("VPP_CONTRAST", interfaces.OpContrast, &config.Contrast)
	parseEnumSetting("VPP_SCALE_METHOD", &config.ScaleMethod, config)
	parseEnumSetting("VPP_VIDEO_DIRECTION", &config.VideoDirection, config)
	parseBoolSetting("VPP_SKIN_TONE", &config.SkinTone)
	parseSkinToneLevelSetting(config)
	parseEnumSetting("VPP_HDR_TONE_MAP", &config.HDRToneMap, config)
	parseEnumSetting("VPP_FORMAT", &config.Format, config)
	parseDimensionSetting("VPP_WIDTH", &config.Width)
	parseDimensionSetting("VPP_HEIGHT", &config.Height)
	parseBoolSetting("VPP_FORCE_ASPECT_RATIO", &config.ForceAspectRatio)
	parseBoolSetting("VPP_RESET_HISTORY_ON_GAP", &config.ResetHistoryOnGap)
}

// parseEnumSetting replaces *field with the variable's value when the
// resulting config still resolves.
func parseEnumSetting(envVar string, field *string, config *Config) {
	value := os.Getenv(envVar)
	if value == "" {
		return
	}

	previous := *field
	*field = value
	if _, err := config.resolve(); err != nil {
		*field = previous
		logrus.WithFields(logrus.Fields{
			"function":    "parseEnumSetting",
			"env_var":     envVar,
			"value":       value,
			"error":       err.Error(),
			"using_value": previous,
		}).Warn("Failed to parse " + envVar + " environment variable, using default")
	}
}

func parseLevelSetting(envVar string, op interfaces.FilterOp, field *float32) {
	value := os.Getenv(envVar)
	if value == "" {
		return
	}

	parsed, err := strconv.ParseFloat(value, 32)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseLevelSetting",
			"env_var":     envVar,
			"value":       value,
			"error":       err.Error(),
			"using_value": *field,
		}).Warn("Failed to parse " + envVar + " environment variable, using default")
		return
	}
	if err := limits.ValidateLevel(op, float32(parsed)); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseLevelSetting",
			"env_var":     envVar,
			"value":       parsed,
			"error":       err.Error(),
			"using_value": *field,
		}).Warn(envVar + " value out of bounds, using default")
		return
	}
	*field = float32(parsed)
}

func parseBoolSetting(envVar string, field *bool) {
	value := os.Getenv(envVar)
	if value == "" {
		return
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseBoolSetting",
			"env_var":     envVar,
			"value":       value,
			"error":       err.Error(),
			"using_value": *field,
		}).Warn("Failed to parse " + envVar + " environment variable, using default")
		return
	}
	*field = parsed
}

func parseDimensionSetting(envVar string, field *int) {
	value := os.Getenv(envVar)
	if value == "" {
		return
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseDimensionSetting",
			"env_var":     envVar,
			"value":       value,
			"error":       err.Error(),
			"using_value": *field,
		}).Warn("Failed to parse " + envVar + " environment variable, using default")
		return
	}
	if err := limits.ValidateDimension(envVar, parsed); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseDimensionSetting",
			"env_var":     envVar,
			"value":       parsed,
			"min":         0,
			"max":         limits.MaxDimension,
			"using_value": *field,
		}).Warn(envVar + " value out of bounds, using default")
		return
	}
	*field = parsed
}

func parseSkinToneLevelSetting(config *Config) {
	value := os.Getenv("VPP_SKIN_TONE_LEVEL")
	if value == "" {
		return
	}

	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseSkinToneLevelSetting",
			"env_var":     "VPP_SKIN_TONE_LEVEL",
			"value":       value,
			"error":       err.Error(),
			"using_value": config.SkinToneLevel,
		}).Warn("Failed to parse VPP_SKIN_TONE_LEVEL environment variable, using default")
		return
	}
	if err := limits.ValidateSkinToneLevel(uint32(parsed)); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseSkinToneLevelSetting",
			"env_var":     "VPP_SKIN_TONE_LEVEL",
			"value":       parsed,
			"min":         limits.MinSkinToneLevel,
			"max":         limits.MaxSkinToneLevel,
			"using_value": config.SkinToneLevel,
		}).Warn("VPP_SKIN_TONE_LEVEL value out of bounds, using default")
		return
	}
	config.SkinToneLevel = uint32(parsed)
}
