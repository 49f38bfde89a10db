package negotiate

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/video"
)

// FixateParams are the element settings that shape the source format.
// Zero values follow the sink, so a zero FixateParams yields the sink
// format apart from what the peer structure pins (feature, fixed size).
type FixateParams struct {
	// Format is the requested output format; FormatEncoded keeps the
	// input format.
	Format video.Format
	// Width and Height request an explicit output size. Zero keeps the
	// cropped, rotated sink dimension.
	Width  int
	Height int
	// KeepAspect scales the free dimension with the requested one when
	// only one of Width and Height is set.
	KeepAspect bool
	// Direction is the effective video direction. Quarter turns and
	// diagonal flips swap the output width and height.
	Direction video.Orientation
	// Crop margins are removed from the sink size before scaling.
	Crop video.Margins
	// Deinterlace doubles the frame rate and makes the output progressive.
	Deinterlace bool
	// ToneMap drops the HDR metadata from the output.
	ToneMap bool
}

// FixateSrc picks the source format for sink from the alternatives in
// other, in preference order.
func FixateSrc(sink video.Info, other *video.Caps, p FixateParams) (video.Info, error) {
	if other.IsEmpty() {
		return video.Info{}, errors.Wrap(ErrNoCompatibleFormat, "empty peer caps")
	}

	for _, s := range other.Structures {
		info, ok := fixateStructure(sink, s, p)
		if ok {
			logrus.WithFields(logrus.Fields{
				"function": "negotiate.FixateSrc",
				"sink":     sink.String(),
				"src":      info.String(),
				"feature":  info.Feature,
			}).Debug("Fixated source format")
			return info, nil
		}
	}
	return video.Info{}, errors.Wrapf(ErrNoCompatibleFormat, "sink %s", sink)
}

func fixateStructure(sink video.Info, s video.Structure, p FixateParams) (video.Info, bool) {
	out := sink
	out.Feature = s.Feature
	if out.Feature == "" {
		out.Feature = sink.Feature
	}

	format, ok := fixateFormat(sink.Format, s, p.Format)
	if !ok {
		return video.Info{}, false
	}
	out.Format = format

	out.Width, out.Height = fixateSize(sink, s, p)
	if out.Width <= 0 || out.Height <= 0 {
		return video.Info{}, false
	}

	if p.Deinterlace {
		out.InterlaceMode = video.InterlaceProgressive
		out.FPSN = sink.FPSN * 2
	}
	if p.ToneMap {
		out.Mastering = nil
		out.LightLevel = nil
	}

	if !s.HasInterlaceMode(out.InterlaceMode) {
		return video.Info{}, false
	}
	return out, true
}

func fixateFormat(in video.Format, s video.Structure, requested video.Format) (video.Format, bool) {
	if requested != video.FormatEncoded && requested != video.FormatUnknown {
		return requested, s.HasFormat(requested)
	}
	if s.HasFormat(in) || s.HasFormat(video.FormatEncoded) {
		return in, true
	}
	for _, f := range s.Formats {
		if f != video.FormatEncoded {
			return f, true
		}
	}
	return video.FormatUnknown, false
}

func fixateSize(sink video.Info, s video.Structure, p FixateParams) (int, int) {
	w := sink.Width - (p.Crop.Left + p.Crop.Right)
	h := sink.Height - (p.Crop.Top + p.Crop.Bottom)
	if p.Direction.SwapsDimensions() {
		w, h = h, w
	}

	switch {
	case p.Width > 0 && p.Height > 0:
		w, h = p.Width, p.Height
	case p.Width > 0:
		if p.KeepAspect && w > 0 {
			h = scaleDim(h, p.Width, w)
		}
		w = p.Width
	case p.Height > 0:
		if p.KeepAspect && h > 0 {
			w = scaleDim(w, p.Height, h)
		}
		h = p.Height
	}

	if s.Width != 0 {
		w = s.Width
	}
	if s.Height != 0 {
		h = s.Height
	}
	return w, h
}

// scaleDim returns v*num/den rounded to nearest.
func scaleDim(v, num, den int) int {
	return int((int64(v)*int64(num) + int64(den)/2) / int64(den))
}
