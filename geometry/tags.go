package geometry

import "github.com/opd-ai/vpp/video"

var orientationTags = map[string]video.Orientation{
	"rotate-0":        video.OrientationIdentity,
	"rotate-90":       video.Orientation90R,
	"rotate-180":      video.Orientation180,
	"rotate-270":      video.Orientation90L,
	"flip-rotate-0":   video.OrientationHoriz,
	"flip-rotate-90":  video.OrientationULLR,
	"flip-rotate-180": video.OrientationVert,
	"flip-rotate-270": video.OrientationURLL,
}

// ParseOrientationTag maps an image-orientation tag value to a direction.
// ok is false for unrecognised values.
func ParseOrientationTag(tag string) (video.Orientation, bool) {
	o, ok := orientationTags[tag]
	return o, ok
}
