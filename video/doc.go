// Package video defines the media data model shared by the postprocessing
// packages.
//
// It contains the format descriptor ([Info]) negotiated on each side of the
// element, the capability sets ([Caps]) exchanged during negotiation, and the
// frame representation ([Buffer]) that flows through the pipeline together
// with its metadata: the backend surface reference ([SurfaceMeta]), crop
// rectangle, video extent and picture structure flags.
//
// A [Buffer] never owns pixel data. Its surface is an opaque hardware handle
// reached through a reference-counted [SurfaceProxy]; releasing the last
// reference hands the surface back to the pool it came from:
//
//	proxy := video.NewSurfaceProxy(surface, pool.Put)
//	buf := &video.Buffer{
//	    Timestamp: 40 * time.Millisecond,
//	    Surface:   &video.SurfaceMeta{Proxy: proxy},
//	}
//	defer buf.Release()
//
// Orientation values follow the eight canonical video directions plus the
// "auto" and "custom" sentinels used by the host property surface.
package video
