package negotiate

import (
	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/video"
)

var interlaceModes = []video.InterlaceMode{
	video.InterlaceProgressive,
	video.InterlaceInterleaved,
	video.InterlaceMixed,
}

// SinkTemplate is the static sink capability set: backend surfaces or any
// raw format in system memory.
func SinkTemplate() *video.Caps {
	return video.NewCaps(
		video.Structure{Feature: video.FeatureVASurface, InterlaceModes: interlaceModes},
		video.Structure{Feature: video.FeatureSystemMemory, Formats: video.AllRawFormats(), InterlaceModes: interlaceModes},
	)
}

// SrcTemplate is the static source capability set before the backend
// formats are known.
func SrcTemplate() *video.Caps {
	return video.NewCaps(
		video.Structure{Feature: video.FeatureVASurface},
		video.Structure{Feature: video.FeatureGLTextureUpload, Formats: []video.Format{video.FormatRGBA, video.FormatBGRA}},
		video.Structure{Feature: video.FeatureSystemMemory, Formats: video.AllRawFormats()},
		video.Structure{Feature: video.FeatureDMABuf, Formats: video.AllRawFormats()},
	)
}

// AllowedSinkCaps returns backend surfaces with every interlace mode
// followed by the raw formats upstream may deliver, each annotated by
// filter when one is bound.
func AllowedSinkCaps(filter interfaces.IFilter, raw []video.Format) *video.Caps {
	caps := video.NewCaps(
		video.Structure{Feature: video.FeatureVASurface, InterlaceModes: interlaceModes},
	)
	if len(raw) > 0 {
		caps.Structures = append(caps.Structures, video.Structure{
			Feature:        video.FeatureSystemMemory,
			Formats:        append([]video.Format(nil), raw...),
			InterlaceModes: interlaceModes,
		})
	}
	if filter != nil {
		for i := range caps.Structures {
			filter.AppendCaps(&caps.Structures[i])
		}
	}
	return caps
}

// ExpandSrcCaps replaces the format list of every template alternative by
// the backend output formats, with FormatEncoded first. The GL texture
// upload alternative keeps its formats and is dropped when downstream can
// import DMABuf or the display has no OpenGL.
func ExpandSrcCaps(tmpl *video.Caps, filter interfaces.IFilter, formats []video.Format, canDMABuf, hasGL bool) *video.Caps {
	caps := tmpl.Copy()
	if filter == nil {
		return caps
	}

	list := append([]video.Format{video.FormatEncoded}, formats...)
	glIdx := -1
	for i := range caps.Structures {
		s := &caps.Structures[i]
		filter.AppendCaps(s)
		if s.Feature == video.FeatureGLTextureUpload {
			glIdx = i
			continue
		}
		s.Formats = append([]video.Format(nil), list...)
	}

	if glIdx >= 0 && (canDMABuf || !hasGL) {
		caps.Remove(glIdx)
	}
	return caps
}
