package vpp

import (
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/geometry"
)

// TagEvent carries upstream stream tags.
type TagEvent struct {
	// ImageOrientation is the textual orientation tag, such as "rotate-90".
	ImageOrientation string
}

// NavigationEvent carries a pointer position travelling upstream.
type NavigationEvent struct {
	PointerX float64
	PointerY float64
}

// HandleSinkEvent applies an orientation tag. It reports whether the tag
// was recognised; recognised tags trigger renegotiation.
func (e *Element) HandleSinkEvent(ev TagEvent) bool {
	o, ok := geometry.ParseOrientationTag(ev.ImageOrientation)
	if !ok {
		if ev.ImageOrientation != "" {
			e.log("HandleSinkEvent").WithField("tag", ev.ImageOrientation).Debug("Ignoring unknown orientation tag")
		}
		return false
	}

	e.mu.Lock()
	e.state.TagDirection = o
	e.state.Direction.Mark()
	e.mu.Unlock()

	e.log("HandleSinkEvent").WithFields(logrus.Fields{
		"tag":       ev.ImageOrientation,
		"direction": o.String(),
	}).Debug("Orientation tag received")

	e.notifyReconfigure()
	return true
}

// HandleSrcEvent maps a downstream pointer position back into upstream
// coordinates, undoing rotation, scaling and crop.
func (e *Element) HandleSrcEvent(ev NavigationEvent) NavigationEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasVPP || e.filter == nil {
		return ev
	}

	src := geometry.Extent{Width: e.srcInfo.Width, Height: e.srcInfo.Height}
	sink := geometry.Extent{Width: e.sinkInfo.Width, Height: e.sinkInfo.Height}
	x, y := geometry.TransformPointer(e.filter.VideoDirection(), ev.PointerX, ev.PointerY, src, sink, e.state.Crop.Value())

	return NavigationEvent{PointerX: x, PointerY: y}
}
