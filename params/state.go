package params

import (
	"fmt"

	"github.com/opd-ai/vpp/deinterlace"
	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/limits"
	"github.com/opd-ai/vpp/video"
)

// HDRMode is the hdr-tone-map property.
type HDRMode int

const (
	// HDRAuto enables tone mapping when the sink caps carry mastering
	// display metadata.
	HDRAuto HDRMode = iota
	HDRDisabled
)

// String returns the property nick.
func (m HDRMode) String() string {
	switch m {
	case HDRAuto:
		return "auto"
	case HDRDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("HDRMode(%d)", int(m))
	}
}

// ParseHDRMode maps a property nick to an HDRMode.
func ParseHDRMode(nick string) (HDRMode, error) {
	switch nick {
	case "auto":
		return HDRAuto, nil
	case "disabled":
		return HDRDisabled, nil
	default:
		return HDRAuto, fmt.Errorf("unknown hdr-tone-map mode %q", nick)
	}
}

// Size is an explicit output size. Zero fields follow the input.
type Size struct {
	Width  int
	Height int
}

// State is the complete parameter block of one element.
//
// The Param fields map one to one onto Filter Engine operations. Their
// pending bit is what makes an element leave passthrough; a value set
// back to the engine default is dropped at apply time instead of being
// pushed. The plain fields below are element policy and never reach the
// engine directly.
type State struct {
	Format        Param[video.Format]
	Crop          Param[video.Margins]
	Denoise       Param[float32]
	Sharpen       Param[float32]
	Hue           Param[float32]
	Saturation    Param[float32]
	Brightness    Param[float32]
	Contrast      Param[float32]
	Deinterlace   Param[bool]
	Scale         Param[interfaces.ScaleMethod]
	Direction     Param[video.Orientation]
	HDRToneMap    Param[bool]
	SkinTone      Param[bool]
	SkinToneLevel Param[uint32]
	Size          Param[Size]

	// TagDirection is the direction announced by stream orientation tags.
	// It is used when Direction is OrientationAuto.
	TagDirection video.Orientation

	DeinterlaceMode   deinterlace.Mode
	DeinterlaceMethod interfaces.DeinterlaceMethod
	HDRMode           HDRMode
	KeepAspect        bool
}

func levelDefault(op interfaces.FilterOp) float32 {
	r, err := limits.LevelRange(op)
	if err != nil {
		return 0
	}
	return r.Default
}

// NewState returns a block holding the built-in defaults with nothing
// pending.
//
// Levels start at the neutral values from limits.LevelRange so a fresh
// element changes nothing. The colour-balance levels and the skin-tone
// level are replaced by the engine defaults once a binding is available
// (see InitDefaults). Direction starts at identity rather than auto so
// orientation tags only rotate the picture when asked to. Bob is the
// default method because every engine that deinterlaces supports it.
func NewState() *State {
	s := &State{
		TagDirection:      video.OrientationAuto,
		DeinterlaceMode:   deinterlace.ModeAuto,
		DeinterlaceMethod: interfaces.DeinterlaceBob,
		HDRMode:           HDRAuto,
		KeepAspect:        true,
	}
	s.Format.Store(video.FormatEncoded)
	s.Direction.Store(video.OrientationIdentity)
	s.Scale.Store(interfaces.ScaleDefault)
	s.Denoise.Store(levelDefault(interfaces.OpDenoise))
	s.Sharpen.Store(levelDefault(interfaces.OpSharpen))
	s.Hue.Store(levelDefault(interfaces.OpHue))
	s.Saturation.Store(levelDefault(interfaces.OpSaturation))
	s.Brightness.Store(levelDefault(interfaces.OpBrightness))
	s.Contrast.Store(levelDefault(interfaces.OpContrast))
	s.SkinToneLevel.Store(limits.DefaultSkinToneLevel)
	return s
}

// InitDefaults adopts the colour-balance and skin-tone-level defaults
// advertised by a binding without marking anything pending.
func (s *State) InitDefaults(ops []interfaces.OpInfo) {
	for _, info := range ops {
		switch v := info.Default.(type) {
		case interfaces.Level:
			if p := s.colorParam(info.Op); p != nil {
				p.Store(float32(v))
			}
		case interfaces.SkinToneLevel:
			if info.Op == interfaces.OpSkinToneLevel {
				s.SkinToneLevel.Store(uint32(v))
			}
		}
	}
}

func (s *State) colorParam(op interfaces.FilterOp) *Param[float32] {
	switch op {
	case interfaces.OpHue:
		return &s.Hue
	case interfaces.OpSaturation:
		return &s.Saturation
	case interfaces.OpBrightness:
		return &s.Brightness
	case interfaces.OpContrast:
		return &s.Contrast
	default:
		return nil
	}
}

// LevelParam returns the float parameter for op, or nil.
func (s *State) LevelParam(op interfaces.FilterOp) *Param[float32] {
	switch op {
	case interfaces.OpDenoise:
		return &s.Denoise
	case interfaces.OpSharpen:
		return &s.Sharpen
	default:
		return s.colorParam(op)
	}
}

// EffectiveDirection resolves OrientationAuto to the tag direction.
func (s *State) EffectiveDirection() video.Orientation {
	d := s.Direction.Value()
	if d == video.OrientationAuto {
		return s.TagDirection
	}
	return d
}

// HasPendingWork reports whether any operation that keeps the element out
// of passthrough is still pending. Format, crop and size changes are judged
// by comparing caps instead.
func (s *State) HasPendingWork() bool {
	return s.Denoise.Dirty() || s.Sharpen.Dirty() ||
		s.Hue.Dirty() || s.Saturation.Dirty() ||
		s.Brightness.Dirty() || s.Contrast.Dirty() ||
		s.Deinterlace.Dirty() || s.Scale.Dirty() ||
		s.Direction.Dirty() || s.HDRToneMap.Dirty() ||
		s.SkinTone.Dirty() || s.SkinToneLevel.Dirty()
}

// Any reports whether any parameter at all is pending.
func (s *State) Any() bool {
	return s.HasPendingWork() || s.Format.Dirty() || s.Crop.Dirty() || s.Size.Dirty()
}

// Values is a point-in-time copy of every host-visible property.
type Values struct {
	Format            video.Format
	Width             int
	Height            int
	ForceAspectRatio  bool
	DeinterlaceMode   deinterlace.Mode
	DeinterlaceMethod interfaces.DeinterlaceMethod
	Denoise           float32
	Sharpen           float32
	Hue               float32
	Saturation        float32
	Brightness        float32
	Contrast          float32
	ScaleMethod       interfaces.ScaleMethod
	VideoDirection    video.Orientation
	Crop              video.Margins
	SkinTone          bool
	SkinToneLevel     uint32
	HDRToneMap        HDRMode
}

// Snapshot copies the current property values.
func (s *State) Snapshot() Values {
	size := s.Size.Value()
	return Values{
		Format:            s.Format.Value(),
		Width:             size.Width,
		Height:            size.Height,
		ForceAspectRatio:  s.KeepAspect,
		DeinterlaceMode:   s.DeinterlaceMode,
		DeinterlaceMethod: s.DeinterlaceMethod,
		Denoise:           s.Denoise.Value(),
		Sharpen:           s.Sharpen.Value(),
		Hue:               s.Hue.Value(),
		Saturation:        s.Saturation.Value(),
		Brightness:        s.Brightness.Value(),
		Contrast:          s.Contrast.Value(),
		ScaleMethod:       s.Scale.Value(),
		VideoDirection:    s.Direction.Value(),
		Crop:              s.Crop.Value(),
		SkinTone:          s.SkinTone.Value(),
		SkinToneLevel:     s.SkinToneLevel.Value(),
		HDRToneMap:        s.HDRMode,
	}
}
