package testing

import (
	"time"

	"github.com/google/uuid"

	"github.com/opd-ai/vpp/video"
)

// SimulatedSurface is an in-memory stand-in for a hardware surface.
type SimulatedSurface struct {
	id     string
	width  int
	height int
	format video.Format
}

// NewSimulatedSurface creates a surface with a random identifier.
func NewSimulatedSurface(width, height int, format video.Format) *SimulatedSurface {
	return &SimulatedSurface{
		id:     uuid.NewString(),
		width:  width,
		height: height,
		format: format,
	}
}

func (s *SimulatedSurface) ID() string           { return s.id }
func (s *SimulatedSurface) Width() int           { return s.width }
func (s *SimulatedSurface) Height() int          { return s.height }
func (s *SimulatedSurface) Format() video.Format { return s.format }

// NewSurfaceBuffer returns an upstream frame backed by a fresh surface that
// matches info, stamped with ts and flags.
func NewSurfaceBuffer(info video.Info, ts time.Duration, flags video.BufferFlags) *video.Buffer {
	surface := NewSimulatedSurface(info.Width, info.Height, info.Format)
	buf := video.NewBuffer()
	buf.Timestamp = ts
	buf.Duration = info.FrameDuration()
	buf.Flags = flags
	buf.Surface = &video.SurfaceMeta{
		Proxy:      video.NewSurfaceProxy(surface, nil),
		RenderRect: &video.Rectangle{Width: info.Width, Height: info.Height},
	}
	buf.Video = &video.VideoMeta{Width: info.Width, Height: info.Height}
	return buf
}
