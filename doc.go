// Package vpp implements a hardware-accelerated video postprocessing stage.
//
// An Element receives decoded frames backed by opaque hardware surfaces,
// applies the configured operations through a Filter Engine binding
// (deinterlacing, denoise, sharpen, colour controls, scaling, rotation and
// flips, cropping, HDR tone mapping) and pushes the result downstream with
// its timing metadata preserved.
//
// # Getting Started
//
//	elem := vpp.New(display, downstream,
//	    vpp.WithReconfigure(func() { renegotiate() }),
//	)
//	defer elem.Close()
//
//	if err := elem.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	_ = elem.SetDenoise(0.5)
//
//	src, err := elem.FixateCaps(vpp.PadSink, sinkInfo, elem.TransformCaps(vpp.PadSink, nil))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := elem.SetCaps(sinkInfo, src); err != nil {
//	    log.Fatal(err)
//	}
//
//	for frame := range frames {
//	    if err := elem.Chain(frame); err != nil {
//	        break
//	    }
//	}
//
// # Processing Paths
//
// Each frame goes through an ordered list of strategies. The hardware path
// runs the Filter Engine once per output picture, twice for deinterlaced
// frames. When the binding reports an unsupported configuration the element
// falls back to the basic path, which only tags the picture structure of
// each field, and finally to passthrough, which forwards the surface as is.
// Configuration problems degrade quality but never stop the stream.
//
// # Deinterlacing
//
// With deinterlacing active one input frame produces two output frames.
// The first field is pushed downstream immediately; the second is the
// element's own output. Both last one field duration, half the frame
// duration.
//
// # Thread Safety
//
// All Element methods are safe for concurrent use. A single mutex guards
// the parameter state, the negotiated formats, the deinterlace history and
// the Filter Engine binding. It is released while frames are pushed
// downstream and while the reconfigure callback runs.
package vpp
