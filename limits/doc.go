// Package limits provides the centralised value ranges for every host-facing
// postprocessing property and the functions that validate them.
//
// # Property Ranges
//
// Ranges match what the Filter Engine advertises:
//
//   - Denoise: 0.0 to 1.0 (default 0.0)
//   - Sharpen: -1.0 to 1.0 (default 0.0)
//   - Hue: -180.0 to 180.0 degrees (default 0.0)
//   - Saturation: 0.0 to 2.0 (default 1.0)
//   - Brightness: -1.0 to 1.0 (default 0.0)
//   - Contrast: 0.0 to 2.0 (default 1.0)
//   - Skin-tone level: 0 to 9 (default 3)
//
// Crop margins and explicit output sizes are non-negative and bounded by
// MaxDimension.
//
// # Validation Functions
//
//	if err := limits.ValidateLevel(interfaces.OpHue, 200); err != nil {
//	    // errors.Is(err, limits.ErrOutOfRange)
//	}
//
// Every function returns ErrOutOfRange wrapped with the offending value and
// the accepted bounds, or ErrUnknownProperty for operations without a range.
package limits
