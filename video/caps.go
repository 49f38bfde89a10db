package video

// Caps features.
const (
	FeatureVASurface       = "memory:VASurface"
	FeatureSystemMemory    = "memory:SystemMemory"
	FeatureDMABuf          = "memory:DMABuf"
	FeatureGLTextureUpload = "meta:GstVideoGLTextureUploadMeta"
)

// Structure is one alternative in a capability set. Empty lists and zero
// sizes mean "any".
type Structure struct {
	Feature        string
	Formats        []Format
	InterlaceModes []InterlaceMode
	Width          int
	Height         int
	// Annotations carries backend capability metadata appended by the
	// Filter Engine.
	Annotations map[string]string
}

// Copy returns a deep copy of the structure.
func (s Structure) Copy() Structure {
	out := s
	out.Formats = append([]Format(nil), s.Formats...)
	out.InterlaceModes = append([]InterlaceMode(nil), s.InterlaceModes...)
	if s.Annotations != nil {
		out.Annotations = make(map[string]string, len(s.Annotations))
		for k, v := range s.Annotations {
			out.Annotations[k] = v
		}
	}
	return out
}

// Annotate sets a capability annotation on the structure.
func (s *Structure) Annotate(key, value string) {
	if s.Annotations == nil {
		s.Annotations = make(map[string]string)
	}
	s.Annotations[key] = value
}

// HasFormat reports whether the structure admits f.
func (s Structure) HasFormat(f Format) bool {
	if len(s.Formats) == 0 {
		return true
	}
	for _, sf := range s.Formats {
		if sf == f {
			return true
		}
	}
	return false
}

// HasInterlaceMode reports whether the structure admits m.
func (s Structure) HasInterlaceMode(m InterlaceMode) bool {
	if len(s.InterlaceModes) == 0 {
		return true
	}
	for _, sm := range s.InterlaceModes {
		if sm == m {
			return true
		}
	}
	return false
}

// Accepts reports whether info satisfies the structure.
func (s Structure) Accepts(info Info) bool {
	if s.Feature != "" && info.Feature != "" && s.Feature != info.Feature {
		return false
	}
	if s.Width != 0 && s.Width != info.Width {
		return false
	}
	if s.Height != 0 && s.Height != info.Height {
		return false
	}
	return s.HasFormat(info.Format) && s.HasInterlaceMode(info.InterlaceMode)
}

func (s Structure) intersect(o Structure) (Structure, bool) {
	if s.Feature != o.Feature {
		return Structure{}, false
	}
	out := s.Copy()

	switch {
	case len(s.Formats) == 0:
		out.Formats = append([]Format(nil), o.Formats...)
	case len(o.Formats) != 0:
		out.Formats = out.Formats[:0]
		for _, f := range s.Formats {
			if o.HasFormat(f) {
				out.Formats = append(out.Formats, f)
			}
		}
		if len(out.Formats) == 0 {
			return Structure{}, false
		}
	}

	switch {
	case len(s.InterlaceModes) == 0:
		out.InterlaceModes = append([]InterlaceMode(nil), o.InterlaceModes...)
	case len(o.InterlaceModes) != 0:
		out.InterlaceModes = out.InterlaceModes[:0]
		for _, m := range s.InterlaceModes {
			if o.HasInterlaceMode(m) {
				out.InterlaceModes = append(out.InterlaceModes, m)
			}
		}
		if len(out.InterlaceModes) == 0 {
			return Structure{}, false
		}
	}

	var ok bool
	if out.Width, ok = intersectSize(s.Width, o.Width); !ok {
		return Structure{}, false
	}
	if out.Height, ok = intersectSize(s.Height, o.Height); !ok {
		return Structure{}, false
	}
	return out, true
}

func intersectSize(a, b int) (int, bool) {
	switch {
	case a == 0:
		return b, true
	case b == 0 || a == b:
		return a, true
	default:
		return 0, false
	}
}

// Caps is an ordered set of alternative structures, most preferred first.
type Caps struct {
	Structures []Structure
}

// NewCaps builds a capability set from structures.
func NewCaps(structures ...Structure) *Caps {
	return &Caps{Structures: structures}
}

// IsEmpty reports whether no alternative remains.
func (c *Caps) IsEmpty() bool {
	return c == nil || len(c.Structures) == 0
}

// Copy returns a deep copy of the set.
func (c *Caps) Copy() *Caps {
	if c == nil {
		return nil
	}
	out := &Caps{Structures: make([]Structure, 0, len(c.Structures))}
	for _, s := range c.Structures {
		out.Structures = append(out.Structures, s.Copy())
	}
	return out
}

// Append adds the structures of other to c.
func (c *Caps) Append(other *Caps) {
	if other == nil {
		return
	}
	for _, s := range other.Structures {
		c.Structures = append(c.Structures, s.Copy())
	}
}

// Remove drops the structure at index i.
func (c *Caps) Remove(i int) {
	if i < 0 || i >= len(c.Structures) {
		return
	}
	c.Structures = append(c.Structures[:i], c.Structures[i+1:]...)
}

// Intersect returns the alternatives admitted by both sets, keeping the
// order of c.
func (c *Caps) Intersect(filter *Caps) *Caps {
	if c == nil {
		return &Caps{}
	}
	if filter == nil {
		return c.Copy()
	}
	out := &Caps{}
	for _, s := range c.Structures {
		for _, f := range filter.Structures {
			if is, ok := s.intersect(f); ok {
				out.Structures = append(out.Structures, is)
			}
		}
	}
	return out
}

// Accepts reports whether any alternative admits info.
func (c *Caps) Accepts(info Info) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Structures {
		if s.Accepts(info) {
			return true
		}
	}
	return false
}
