package video

import (
	"sync"
	"sync/atomic"
	"time"
)

// ClockTimeNone marks an unset timestamp or duration.
const ClockTimeNone time.Duration = -1

// BufferFlags are per-frame flags carried by a Buffer.
type BufferFlags uint32

const (
	// FlagDiscont marks the first buffer after a discontinuity.
	FlagDiscont BufferFlags = 1 << iota
	// FlagInterlaced marks a buffer of a mixed stream as interlaced.
	FlagInterlaced
	// FlagTFF marks the top field as temporally first.
	FlagTFF
	// FlagRFF marks a repeated first field.
	FlagRFF
	// FlagOneField marks a buffer holding a single field.
	FlagOneField
)

// PictureStructure selects which part of a surface a consumer renders.
type PictureStructure uint32

const (
	PictureTopField    PictureStructure = 1
	PictureBottomField PictureStructure = 2
	PictureFrame       PictureStructure = 3
)

// String returns a short name for the structure.
func (p PictureStructure) String() string {
	switch p {
	case PictureTopField:
		return "top-field"
	case PictureBottomField:
		return "bottom-field"
	case PictureFrame:
		return "frame"
	default:
		return "none"
	}
}

// RenderFlags are the render flags attached to a surface. The low bits hold
// the PictureStructure.
type RenderFlags uint32

// PictureStructureMask selects the picture structure bits of RenderFlags.
const PictureStructureMask RenderFlags = 0x3

// Render flag bits above the picture structure.
const (
	RenderColorBT601 RenderFlags = 1 << (iota + 4)
	RenderColorBT709
	RenderColorSMPTE240M
)

// PictureStructure extracts the picture structure bits.
func (r RenderFlags) PictureStructure() PictureStructure {
	return PictureStructure(r & PictureStructureMask)
}

// WithPictureStructure replaces the picture structure bits.
func (r RenderFlags) WithPictureStructure(p PictureStructure) RenderFlags {
	return (r &^ PictureStructureMask) | RenderFlags(p)
}

// Surface is an opaque hardware image handle.
type Surface interface {
	ID() string
	Width() int
	Height() int
	Format() Format
}

// SurfaceProxy is a reference-counted handle on a Surface. Copies share the
// count; the release callback runs once, when the last reference goes.
type SurfaceProxy struct {
	surface Surface
	refs    *int32
	once    *sync.Once
	release func(Surface)
}

// NewSurfaceProxy wraps surface with a single reference. release may be nil.
func NewSurfaceProxy(surface Surface, release func(Surface)) *SurfaceProxy {
	refs := int32(1)
	return &SurfaceProxy{
		surface: surface,
		refs:    &refs,
		once:    &sync.Once{},
		release: release,
	}
}

// Surface returns the wrapped surface.
func (p *SurfaceProxy) Surface() Surface {
	if p == nil {
		return nil
	}
	return p.surface
}

// Copy takes an additional reference.
func (p *SurfaceProxy) Copy() *SurfaceProxy {
	if p == nil {
		return nil
	}
	atomic.AddInt32(p.refs, 1)
	cp := *p
	return &cp
}

// Release drops one reference.
func (p *SurfaceProxy) Release() {
	if p == nil {
		return
	}
	if atomic.AddInt32(p.refs, -1) == 0 && p.release != nil {
		p.once.Do(func() { p.release(p.surface) })
	}
}

// Refs returns the current reference count.
func (p *SurfaceProxy) Refs() int32 {
	if p == nil {
		return 0
	}
	return atomic.LoadInt32(p.refs)
}

// SurfaceMeta binds a backend surface to a Buffer.
type SurfaceMeta struct {
	Proxy       *SurfaceProxy
	RenderRect  *Rectangle
	RenderFlags RenderFlags
}

// Surface returns the bound surface, or nil.
func (m *SurfaceMeta) Surface() Surface {
	if m == nil {
		return nil
	}
	return m.Proxy.Surface()
}

// VideoMeta carries the real extent of the memory behind a Buffer, which
// may exceed the negotiated size when crop metadata is forwarded.
type VideoMeta struct {
	Width  int
	Height int
}

// Buffer is one video frame travelling through the element.
type Buffer struct {
	Timestamp time.Duration
	Duration  time.Duration
	Flags     BufferFlags

	Surface *SurfaceMeta
	Video   *VideoMeta
	Crop    *Rectangle
	// Parent is set when the buffer keeps another buffer alive.
	Parent *Buffer
}

// NewBuffer returns a buffer with unset timestamps.
func NewBuffer() *Buffer {
	return &Buffer{
		Timestamp: ClockTimeNone,
		Duration:  ClockTimeNone,
	}
}

// Has reports whether every bit in f is set.
func (b *Buffer) Has(f BufferFlags) bool {
	return b.Flags&f == f
}

// Set sets the bits in f.
func (b *Buffer) Set(f BufferFlags) {
	b.Flags |= f
}

// Unset clears the bits in f.
func (b *Buffer) Unset(f BufferFlags) {
	b.Flags &^= f
}

// MetaCopy selects which metadata CopyMetadata transfers.
type MetaCopy struct {
	Flags      bool
	Timestamps bool
	Crop       bool
	Parent     bool
}

// CopyMetadata copies the video meta and the selected metadata of src into
// b. The surface binding is never copied.
func (b *Buffer) CopyMetadata(src *Buffer, what MetaCopy) {
	if src == nil || src == b {
		return
	}
	if what.Flags {
		b.Flags = src.Flags
	}
	if what.Timestamps {
		b.Timestamp = src.Timestamp
		b.Duration = src.Duration
	}
	if src.Video != nil {
		vm := *src.Video
		b.Video = &vm
	}
	if what.Crop && src.Crop != nil {
		crop := *src.Crop
		b.Crop = &crop
	}
	if what.Parent {
		b.Parent = src.Parent
	}
}

// Release drops the surface reference held by the buffer.
func (b *Buffer) Release() {
	if b == nil || b.Surface == nil || b.Surface.Proxy == nil {
		return
	}
	b.Surface.Proxy.Release()
	b.Surface.Proxy = nil
}
