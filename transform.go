package vpp

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/deinterlace"
	"github.com/opd-ai/vpp/geometry"
	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/video"
)

// outcome classifies the result of one processing strategy.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeUnsupported
	outcomeFatal
)

func classify(err error) outcome {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, ErrNotSupported):
		return outcomeUnsupported
	default:
		return outcomeFatal
	}
}

type strategy struct {
	name    string
	applies func() bool
	run     func(in, out *video.Buffer) error
}

// strategies lists the processing paths in the order they are tried.
func (e *Element) strategies() []strategy {
	return []strategy{
		{
			name:    "vpp",
			applies: func() bool { return e.state.Any() && e.hasVPP },
			run:     e.processVPP,
		},
		{
			name:    "basic",
			applies: func() bool { return e.state.Any() && e.state.Deinterlace.Dirty() },
			run:     e.processBasic,
		},
		{
			name:    "passthrough",
			applies: func() bool { return true },
			run:     e.processPassthrough,
		},
	}
}

func validateInput(in *video.Buffer) error {
	if in == nil || in.Surface == nil || in.Surface.Proxy == nil || in.Surface.Surface() == nil {
		return errors.Wrap(ErrInvalidBuffer, "input has no surface")
	}
	return nil
}

// Transform processes in into out. When deinterlacing, the first field is
// pushed downstream from here and out carries the second field.
func (e *Element) Transform(in, out *video.Buffer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validateInput(in); err != nil {
		e.log("Transform").WithField("error", err.Error()).Error("Failed to validate source buffer")
		return err
	}
	if out == nil {
		return errors.Wrap(ErrInvalidBuffer, "no output buffer")
	}

	for _, s := range e.strategies() {
		if !s.applies() {
			continue
		}
		err := s.run(in, out)
		switch classify(err) {
		case outcomeSuccess:
			return nil
		case outcomeFatal:
			e.log("Transform").WithFields(logrus.Fields{
				"strategy": s.name,
				"error":    err.Error(),
			}).Error("Frame processing failed")
			return err
		}
		if s.name == "vpp" {
			e.log("Transform").WithField("error", err.Error()).Warn("Unsupported VPP filters, disabling")
		}
	}
	return errors.Wrap(ErrProcessFailed, "no processing path accepted the frame")
}

func (e *Element) useVPPCrop() bool {
	return geometry.UseVPPCrop(e.forwardCrop, e.state.Crop.Dirty())
}

func (e *Element) metaCopy(flags, timestamps bool) video.MetaCopy {
	return video.MetaCopy{
		Flags:      flags,
		Timestamps: timestamps,
		Crop:       !e.useVPPCrop(),
		Parent:     !e.useVPP,
	}
}

func (e *Element) createOutputBuffer() (*video.Buffer, error) {
	if e.pool == nil {
		return nil, errors.Wrap(ErrResourceAcquisition, "no surface pool")
	}
	proxy, err := e.pool.Acquire()
	if err != nil {
		return nil, errors.Wrapf(ErrResourceAcquisition, "acquire surface: %v", err)
	}
	buf := video.NewBuffer()
	buf.Surface = &video.SurfaceMeta{Proxy: proxy}
	return buf, nil
}

func (e *Element) ensureOutputSurface(out *video.Buffer) error {
	if out.Surface == nil {
		out.Surface = &video.SurfaceMeta{}
	}
	if out.Surface.Proxy != nil {
		return nil
	}
	if e.pool == nil {
		return errors.Wrap(ErrResourceAcquisition, "no surface pool")
	}
	proxy, err := e.pool.Acquire()
	if err != nil {
		return errors.Wrapf(ErrResourceAcquisition, "acquire surface: %v", err)
	}
	out.Surface.Proxy = proxy
	return nil
}

// push hands buf downstream. Callers must not hold e.mu.
func (e *Element) push(buf *video.Buffer) error {
	if e.downstream == nil {
		return errors.Wrap(ErrProcessFailed, "no downstream")
	}
	return e.downstream.Push(buf)
}

// pushUnlocked releases e.mu around the push. Callers must re-check
// e.generation before touching the binding or the pool again.
func (e *Element) pushUnlocked(buf *video.Buffer) error {
	e.mu.Unlock()
	defer e.mu.Lock()
	return e.push(buf)
}

func statusError(status interfaces.FilterStatus) error {
	switch status {
	case interfaces.StatusSuccess:
		return nil
	case interfaces.StatusUnsupported:
		return errors.Wrapf(ErrNotSupported, "filter status %s", status)
	default:
		return errors.Wrapf(ErrProcessFailed, "filter status %s", status)
	}
}

func (e *Element) cropRectangle(in *video.Buffer) video.Rectangle {
	if e.useVPPCrop() {
		return geometry.CropRect(e.sinkInfo.Width, e.sinkInfo.Height, e.state.Crop.Value(), in.Crop)
	}
	if in.Surface.RenderRect != nil {
		return *in.Surface.RenderRect
	}
	return video.Rectangle{Width: e.sinkInfo.Width, Height: e.sinkInfo.Height}
}

func resetDeinterlacing(filter interfaces.IFilter) error {
	if err := filter.SetDeinterlacing(interfaces.DeinterlaceNone, 0); err != nil {
		return errors.Wrapf(ErrNotSupported, "reset deinterlacing: %v", err)
	}
	return nil
}

func (e *Element) render(filter interfaces.IFilter, in, out *video.Buffer, crop video.Rectangle, flags video.RenderFlags) error {
	if err := filter.SetCropRectangle(&crop); err != nil {
		e.log("render").WithFields(logrus.Fields{
			"crop":  crop.String(),
			"error": err.Error(),
		}).Warn("Failed to set crop rectangle")
	}
	return statusError(filter.Process(in.Surface.Surface(), out.Surface.Surface(), flags))
}

// secondFieldError makes a failure after the first field was pushed fatal.
// Falling back at that point would emit the first field twice.
func secondFieldError(err error) error {
	if errors.Is(err, ErrNotSupported) {
		return errors.Wrapf(ErrProcessFailed, "second field: %s", err.Error())
	}
	return err
}

func (e *Element) processVPP(in, out *video.Buffer) error {
	filter := e.filter
	if filter == nil {
		return errors.Wrap(ErrNotSupported, "no filter binding")
	}
	generation := e.generation

	crop := e.cropRectangle(in)
	ts := in.Timestamp
	tff := in.Has(video.FlagTFF)
	discont := in.Has(video.FlagDiscont)
	firstField := e.state.Deinterlace.Dirty()
	deint := deinterlace.ShouldDeinterlaceBuffer(firstField, e.state.DeinterlaceMode, e.sinkInfo.InterlaceMode, in)

	deintChanged := e.history.Observe(deint, tff)

	method := e.state.DeinterlaceMethod
	refs := deinterlace.IsAdvanced(method)
	if refs && e.resetOnGap && e.history.ResetOnGap(ts, e.fieldDuration) {
		e.log("processVPP").WithField("timestamp", ts).Debug("Timestamp discontinuity, dropped deinterlace references")
	}

	flags := in.Surface.RenderFlags &^ video.PictureStructureMask
	fail := func(err error) error { return err }

	if firstField {
		field, err := e.createOutputBuffer()
		if err != nil {
			return err
		}

		if deint {
			var dflags interfaces.DeinterlaceFlags
			if tff {
				dflags = interfaces.DeinterlaceFlagTopField | interfaces.DeinterlaceFlagTFF
			}
			applied, err := deinterlace.SelectBest(filter, method, dflags)
			if err != nil {
				field.Release()
				return errors.Wrap(ErrNotSupported, err.Error())
			}
			if applied != method {
				e.state.DeinterlaceMethod = applied
				method = applied
				refs = deinterlace.IsAdvanced(applied)
			}
			if refs {
				if err := filter.SetDeinterlacingReferences(e.history.Surfaces()); err != nil {
					field.Release()
					return errors.Wrapf(ErrNotSupported, "deinterlace references: %v", err)
				}
			}
		} else if deintChanged {
			if err := resetDeinterlacing(filter); err != nil {
				field.Release()
				return err
			}
		}

		if err := e.render(filter, in, field, crop, flags); err != nil {
			field.Release()
			return err
		}

		field.CopyMetadata(in, e.metaCopy(false, false))
		field.Timestamp = ts
		field.Duration = e.fieldDuration
		if discont {
			field.Set(video.FlagDiscont)
			discont = false
		}

		if err := e.pushUnlocked(field); err != nil {
			e.log("processVPP").WithField("error", err.Error()).Debug("Failed to push first field")
			return err
		}
		if e.generation != generation {
			e.log("processVPP").Warn("Element reconfigured while pushing first field, dropping second field")
			return errors.Wrap(ErrProcessFailed, "element reconfigured while pushing first field")
		}
		fail = secondFieldError
	}

	if err := e.ensureOutputSurface(out); err != nil {
		return fail(err)
	}

	if deint {
		dflags := interfaces.DeinterlaceFlagTopField
		if tff {
			dflags = interfaces.DeinterlaceFlagTFF
		}
		if err := filter.SetDeinterlacing(method, dflags); err != nil {
			return fail(errors.Wrapf(ErrNotSupported, "deinterlace second field: %v", err))
		}
		if refs {
			if err := filter.SetDeinterlacingReferences(e.history.Surfaces()); err != nil {
				return fail(errors.Wrapf(ErrNotSupported, "deinterlace references: %v", err))
			}
		}
	} else if deintChanged {
		if err := resetDeinterlacing(filter); err != nil {
			return fail(err)
		}
	}

	if err := e.render(filter, in, out, crop, flags); err != nil {
		return fail(err)
	}

	if !firstField {
		out.Timestamp = in.Timestamp
		out.Duration = in.Duration
	} else {
		out.Timestamp = addField(ts, e.fieldDuration)
		out.Duration = e.fieldDuration
	}
	out.CopyMetadata(in, e.metaCopy(false, false))
	if discont {
		out.Set(video.FlagDiscont)
	}

	if in.Video != nil {
		geometry.RotateCrop(filter.VideoDirection(), in.Video.Width, in.Video.Height, out.Crop)
	}

	if deint && refs {
		if err := e.history.Push(in); err != nil {
			e.log("processVPP").WithField("error", err.Error()).Warn("Failed to keep deinterlace reference")
		}
	}
	e.useVPP = true
	return nil
}

func addField(ts, fieldDuration time.Duration) time.Duration {
	if ts == video.ClockTimeNone {
		return ts
	}
	return ts + fieldDuration
}

// appendOutputMetadata makes out reference the input surface.
func (e *Element) appendOutputMetadata(out, in *video.Buffer, timestamps bool) {
	out.CopyMetadata(in, e.metaCopy(true, timestamps))

	if out.Surface == nil {
		out.Surface = &video.SurfaceMeta{}
	}
	if out.Surface.Proxy != nil && out.Surface.Proxy != in.Surface.Proxy {
		out.Surface.Proxy.Release()
	}
	out.Surface.Proxy = in.Surface.Proxy.Copy()
	out.Surface.RenderFlags = in.Surface.RenderFlags
	if in.Surface.RenderRect != nil {
		r := *in.Surface.RenderRect
		out.Surface.RenderRect = &r
	}
}

func (e *Element) processBasic(in, out *video.Buffer) error {
	ts := in.Timestamp
	tff := in.Has(video.FlagTFF)
	deint := deinterlace.ShouldDeinterlaceBuffer(e.state.Deinterlace.Dirty(), e.state.DeinterlaceMode, e.sinkInfo.InterlaceMode, in)
	flags := in.Surface.RenderFlags &^ video.PictureStructureMask

	first, second := video.PictureFrame, video.PictureFrame
	if deint {
		if tff {
			first, second = video.PictureTopField, video.PictureBottomField
		} else {
			first, second = video.PictureBottomField, video.PictureTopField
		}
	}

	field, err := e.createOutputBuffer()
	if err != nil {
		return err
	}
	e.appendOutputMetadata(field, in, false)
	field.Surface.RenderFlags = flags.WithPictureStructure(first)
	field.Timestamp = ts
	field.Duration = e.fieldDuration

	if err := e.pushUnlocked(field); err != nil {
		e.log("processBasic").WithField("error", err.Error()).Debug("Failed to push first field")
		return err
	}

	e.appendOutputMetadata(out, in, false)
	out.Surface.RenderFlags = flags.WithPictureStructure(second)
	out.Timestamp = addField(ts, e.fieldDuration)
	out.Duration = e.fieldDuration
	out.Unset(video.FlagDiscont)
	return nil
}

func (e *Element) processPassthrough(in, out *video.Buffer) error {
	e.appendOutputMetadata(out, in, true)
	return nil
}

// PrepareOutputBuffer returns the buffer Transform writes into. In
// passthrough it is in itself.
func (e *Element) PrepareOutputBuffer(in *video.Buffer) (*video.Buffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.passthrough {
		return in, nil
	}
	if in == nil {
		return nil, errors.Wrap(ErrInvalidBuffer, "nil input")
	}

	if in.Crop != nil && !e.useVPPCrop() {
		if in.Video == nil {
			return nil, errors.Wrap(ErrInvalidBuffer, "crop metadata without video metadata")
		}
		info := e.srcInfo
		info.Width = in.Video.Width
		info.Height = in.Video.Height
		if e.hasVPP && e.filter != nil && e.filter.VideoDirection().SwapsDimensions() {
			info.Width, info.Height = info.Height, info.Width
		}
		if err := e.ensureBufferPool(info); err != nil {
			e.log("PrepareOutputBuffer").WithField("error", err.Error()).Warn("Failed to resize surface pool for uncropped output")
		}
	}

	return e.createOutputBuffer()
}

// Chain runs one input frame through the element and pushes the result
// downstream. The element takes ownership of in.
func (e *Element) Chain(in *video.Buffer) error {
	if in == nil {
		return errors.Wrap(ErrInvalidBuffer, "nil input")
	}
	out, err := e.PrepareOutputBuffer(in)
	if err != nil {
		in.Release()
		return err
	}
	if out == in {
		return e.push(in)
	}

	if err := e.Transform(in, out); err != nil {
		out.Release()
		in.Release()
		return err
	}
	in.Release()
	return e.push(out)
}
