package vpp

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/deinterlace"
	"github.com/opd-ai/vpp/geometry"
	"github.com/opd-ai/vpp/negotiate"
	"github.com/opd-ai/vpp/video"
)

// PadDirection names the side of the element a format applies to.
type PadDirection int

const (
	// PadSink is the upstream side.
	PadSink PadDirection = iota
	// PadSrc is the downstream side.
	PadSrc
)

func (d PadDirection) String() string {
	if d == PadSrc {
		return "src"
	}
	return "sink"
}

func (e *Element) ensureAllowedSinkCaps() bool {
	if e.allowedSink != nil {
		return true
	}
	if e.display == nil {
		return false
	}

	raw := e.display.RawFormats()
	if len(raw) == 0 {
		e.log("ensureAllowedSinkCaps").Warn("Failed to retrieve raw surface formats")
		return false
	}
	if err := e.ensureFilter(); err != nil {
		e.log("ensureAllowedSinkCaps").WithField("error", err.Error()).Debug("Sink caps without filter annotations")
	}
	e.allowedSink = negotiate.AllowedSinkCaps(e.filter, raw)
	return true
}

func (e *Element) ensureAllowedSrcCaps() *video.Caps {
	if e.allowedSrc != nil {
		return e.allowedSrc
	}
	if err := e.ensureFilterCaps(); err != nil {
		e.log("ensureAllowedSrcCaps").WithField("error", err.Error()).Debug("Using source template caps")
		return negotiate.SrcTemplate()
	}

	hasGL := e.display != nil && e.display.HasOpenGL()
	e.allowedSrc = negotiate.ExpandSrcCaps(negotiate.SrcTemplate(), e.filter, e.filterFormats, e.canDMABuf, hasGL)
	return e.allowedSrc
}

// TransformCaps returns the formats acceptable on the opposite side of dir,
// intersected with filter when given.
func (e *Element) TransformCaps(dir PadDirection, filter *video.Caps) *video.Caps {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out *video.Caps
	if dir == PadSrc {
		if e.ensureAllowedSinkCaps() {
			out = e.allowedSink.Copy()
		} else {
			out = negotiate.SinkTemplate()
		}
	} else {
		out = e.ensureAllowedSrcCaps().Copy()
	}

	if filter != nil {
		out = out.Intersect(filter)
	}

	e.log("TransformCaps").WithFields(logrus.Fields{
		"direction":  dir.String(),
		"structures": len(out.Structures),
	}).Debug("Transformed caps")
	return out
}

// FixateCaps picks the concrete format for the side opposite to dir.
// For PadSink, info is the upstream format and the result is the source
// format honouring format, size, crop, direction, deinterlace and HDR
// settings. It also updates whether the element runs in passthrough.
func (e *Element) FixateCaps(dir PadDirection, info video.Info, other *video.Caps) (video.Info, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if dir == PadSrc {
		out, err := negotiate.FixateSrc(info, other, negotiate.FixateParams{})
		if err != nil {
			return video.Info{}, errors.Wrapf(ErrNegotiation, "fixate sink: %v", err)
		}
		return out, nil
	}

	if err := e.ensureFilterCaps(); err == nil {
		e.hasVPP = true
	}
	pending := e.applyPending()

	size := e.state.Size.Value()
	p := negotiate.FixateParams{
		Format:      e.state.Format.Value(),
		Width:       size.Width,
		Height:      size.Height,
		KeepAspect:  e.state.KeepAspect,
		Direction:   e.state.EffectiveDirection(),
		Crop:        e.state.Crop.Value(),
		Deinterlace: deinterlace.Enabled(e.state.DeinterlaceMode, info),
		ToneMap:     e.hasVPP && negotiate.ShouldToneMap(e.state.HDRMode, info),
	}
	out, err := negotiate.FixateSrc(info, other, p)
	if err != nil {
		return video.Info{}, errors.Wrapf(ErrNegotiation, "fixate src: %v", err)
	}

	e.passthrough = negotiate.SameCaps(info, out) && !pending

	e.log("FixateCaps").WithFields(logrus.Fields{
		"sink":        info.String(),
		"src":         out.String(),
		"passthrough": e.passthrough,
	}).Debug("Fixated source caps")
	return out, nil
}

// SetCaps installs the negotiated formats. A pair rejected up front
// (advanced deinterlacing on a non-native format, crop margins outside the
// frame) leaves the previous configuration active. When an accepted pair
// cannot be configured on the binding or the pool, the element is left
// unnegotiated and without a binding.
func (e *Element) SetCaps(sink, src video.Info) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := negotiate.CheckAdvancedDeinterlace(e.state.DeinterlaceMethod, sink.Format); err != nil {
		e.log("SetCaps").WithField("error", err.Error()).Warn("Advanced deinterlacing requires a native video format")
		return errors.Wrap(ErrNegotiation, err.Error())
	}
	if crop := e.state.Crop.Value(); !crop.IsZero() {
		if err := geometry.ValidateMargins(crop, sink.Width, sink.Height); err != nil {
			return errors.Wrap(ErrNegotiation, err.Error())
		}
	}

	sinkChanged := e.sinkInfo.IsZero() || e.sinkInfo.Changed(sink)
	e.sinkInfo = sink
	e.generation++

	deint := deinterlace.Enabled(e.state.DeinterlaceMode, sink)
	if deint {
		e.state.Deinterlace.Set(true)
	} else {
		e.state.Deinterlace.Store(false)
		e.state.Deinterlace.Clear()
	}
	e.fieldDuration = negotiate.FieldDuration(sink, deint)
	e.getVASurfaces = sink.Feature == video.FeatureVASurface

	srcChanged := e.srcInfo.IsZero() || e.srcInfo.Changed(src)
	e.srcInfo = src

	if f := e.state.Format.Value(); f != sink.Format && f != video.FormatEncoded {
		e.state.Format.Mark()
	}
	if src.Width != sink.Width || src.Height != sink.Height {
		e.state.Size.Mark()
	}

	if sinkChanged || srcChanged {
		if err := e.destroy(); err != nil {
			e.log("SetCaps").WithField("error", err.Error()).Warn("Failed to release previous filter")
		}
		if err := e.create(); err != nil {
			e.abandonCaps()
			return errors.Wrap(ErrNegotiation, err.Error())
		}
		if e.hasVPP {
			if err := e.ensureFilterCaps(); err != nil {
				e.hasVPP = false
			}
		}
	}

	if e.hasVPP {
		if err := e.filter.SetColorimetry(sink.Colorimetry, src.Colorimetry); err != nil {
			e.log("SetCaps").WithField("error", err.Error()).Error("Filter Engine rejected colorimetry")
			e.abandonCaps()
			return errors.Wrapf(ErrNegotiation, "colorimetry: %v", err)
		}
		if err := e.configureHDR(sink); err != nil {
			e.log("SetCaps").WithField("error", err.Error()).Warn("Failed to configure HDR tone mapping, the driver may not support it")
		}
	}

	if err := e.ensureBufferPool(src); err != nil {
		e.abandonCaps()
		return err
	}

	e.sameCaps = negotiate.SameCaps(sink, src)
	pending := e.applyPending()
	e.passthrough = e.sameCaps && !pending

	e.log("SetCaps").WithFields(logrus.Fields{
		"sink":         sink.String(),
		"src":          src.String(),
		"sink_changed": sinkChanged,
		"src_changed":  srcChanged,
		"deinterlace":  deint,
		"passthrough":  e.passthrough,
	}).Info("Caps configured")
	return nil
}

// abandonCaps drops a half-applied negotiation.
func (e *Element) abandonCaps() {
	if err := e.destroy(); err != nil {
		e.log("abandonCaps").WithField("error", err.Error()).Warn("Failed to release filter")
	}
	e.resetNegotiated()
	e.passthrough = false
	e.sameCaps = false
}

func (e *Element) configureHDR(sink video.Info) error {
	enable := negotiate.ShouldToneMap(e.state.HDRMode, sink)

	if err := e.filter.SetHDRToneMap(enable); err != nil {
		e.state.HDRToneMap.Store(false)
		e.state.HDRToneMap.Clear()
		return errors.Wrap(err, "set hdr tone map")
	}
	if !enable {
		e.state.HDRToneMap.Store(false)
		e.state.HDRToneMap.Clear()
		return nil
	}

	var light video.ContentLightLevel
	if sink.LightLevel != nil {
		light = *sink.LightLevel
	}
	if err := e.filter.SetHDRToneMapMeta(*sink.Mastering, light); err != nil {
		e.state.HDRToneMap.Store(false)
		e.state.HDRToneMap.Clear()
		return errors.Wrap(err, "set hdr tone map metadata")
	}
	e.state.HDRToneMap.Set(true)
	return nil
}

// ProposeAllocation handles an upstream allocation proposal for alloc. It
// reports false when upstream should allocate its own surfaces.
func (e *Element) ProposeAllocation(alloc video.Info) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	negotiated := e.sinkInfo.Width != 0 && e.sinkInfo.Height != 0
	if negotiated && (alloc.Width != e.sinkInfo.Width || alloc.Height != e.sinkInfo.Height) {
		e.state.Size.Mark()
	}
	if e.getVASurfaces {
		return false
	}
	return true
}

// DecideAllocation records what downstream supports. Crop is forwarded as
// metadata only when downstream handles both crop and video metadata.
func (e *Element) DecideAllocation(cropMeta, videoMeta bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.forwardCrop = cropMeta && videoMeta
	e.log("DecideAllocation").WithField("forward_crop", e.forwardCrop).Debug("Allocation decided")
}

// TransformSize returns the output buffer size for an input of size bytes
// on side dir. Zero means the pool decides.
func (e *Element) TransformSize(dir PadDirection, size int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if dir == PadSink || e.getVASurfaces {
		return 0
	}
	return size
}

// IsPassthrough reports whether frames flow through untouched.
func (e *Element) IsPassthrough() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.passthrough
}

