// Package factory builds postprocessing elements from a declarative
// configuration.
//
// A Config carries every element property and option. The factory starts
// from built-in defaults, layers an optional YAML preset on top and finally
// applies VPP_* environment variables. Invalid values are logged and the
// previous value is kept.
//
// # Configuration
//
// Environment variables:
//   - VPP_DEINTERLACE_MODE: "auto", "interlaced" or "disabled"
//   - VPP_DEINTERLACE_METHOD: "bob", "weave", "motion-adaptive" or "motion-compensated"
//   - VPP_DENOISE, VPP_SHARPEN, VPP_HUE, VPP_SATURATION, VPP_BRIGHTNESS, VPP_CONTRAST: float levels
//   - VPP_SCALE_METHOD: "default", "fast" or "hq"
//   - VPP_VIDEO_DIRECTION: "identity", "90r", "180", "90l", "horiz", "vert", "ul-lr", "ur-ll" or "auto"
//   - VPP_SKIN_TONE: boolean
//   - VPP_SKIN_TONE_LEVEL: integer in [0, 9]
//   - VPP_HDR_TONE_MAP: "auto" or "disabled"
//   - VPP_FORMAT: output pixel format name, "ENCODED" keeps the input format
//   - VPP_WIDTH, VPP_HEIGHT: explicit output size, 0 derives it from the input
//   - VPP_FORCE_ASPECT_RATIO: boolean
//   - VPP_RESET_HISTORY_ON_GAP: boolean
//
// # Usage
//
//	f := factory.NewElementFactory()
//	if err := f.LoadPreset("broadcast.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	elem, err := f.CreateElement(display, downstream)
//
// A preset file uses the yaml tags of Config:
//
//	deinterlace_mode: interlaced
//	deinterlace_method: motion-adaptive
//	denoise: 0.3
//	crop:
//	  top: 8
//	  bottom: 8
package factory
