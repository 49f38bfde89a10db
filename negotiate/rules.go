package negotiate

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/opd-ai/vpp/deinterlace"
	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/params"
	"github.com/opd-ai/vpp/video"
)

var nativeFormats = []video.Format{video.FormatNV12, video.FormatYV12, video.FormatI420}

// IsNativeFormat reports whether the backend processes f without an
// internal conversion.
func IsNativeFormat(f video.Format) bool {
	for _, n := range nativeFormats {
		if n == f {
			return true
		}
	}
	return false
}

// CheckAdvancedDeinterlace rejects advanced deinterlacing on non-native
// sink formats.
func CheckAdvancedDeinterlace(method interfaces.DeinterlaceMethod, f video.Format) error {
	if deinterlace.IsAdvanced(method) && !IsNativeFormat(f) {
		return errors.Wrapf(ErrAdvancedDeinterlaceFormat, "%s on %s", method, f)
	}
	return nil
}

// FieldDuration returns the duration of one output picture: the frame
// duration, halved when deinterlacing. It is 0 for an unknown frame rate.
func FieldDuration(info video.Info, deint bool) time.Duration {
	if info.FPSN <= 0 || info.FPSD <= 0 {
		return 0
	}
	div := int64(info.FPSN)
	if deint {
		div *= 2
	}
	return time.Duration(int64(time.Second) * int64(info.FPSD) / div)
}

// ShouldToneMap reports whether HDR tone mapping applies to sink.
func ShouldToneMap(mode params.HDRMode, sink video.Info) bool {
	return mode == params.HDRAuto && sink.Mastering != nil
}

// SameCaps reports whether src is sink unchanged.
func SameCaps(sink, src video.Info) bool {
	return sink.Format == src.Format &&
		sink.Width == src.Width &&
		sink.Height == src.Height &&
		sink.InterlaceMode == src.InterlaceMode &&
		sink.FPSN == src.FPSN &&
		sink.FPSD == src.FPSD &&
		sink.Feature == src.Feature
}
