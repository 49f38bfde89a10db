package geometry

import "github.com/opd-ai/vpp/video"

// Extent is a frame size.
type Extent struct {
	Width  int
	Height int
}

// TransformPointer maps a pointer position on the output picture back to
// input coordinates: it undoes direction o using the output extent src,
// scales by the cropped sink extent over the source extent and adds the
// crop origin.
func TransformPointer(o video.Orientation, x, y float64, src, sink Extent, m video.Margins) (float64, float64) {
	srcW := float64(src.Width)
	srcH := float64(src.Height)

	var nx, ny float64
	switch o {
	case video.Orientation90R:
		nx, ny = y, srcW-1-x
	case video.Orientation90L:
		nx, ny = srcH-1-y, x
	case video.OrientationURLL:
		nx, ny = srcH-1-y, srcW-1-x
	case video.OrientationULLR:
		nx, ny = y, x
	case video.Orientation180:
		nx, ny = srcW-1-x, srcH-1-y
	case video.OrientationHoriz:
		nx, ny = srcW-1-x, y
	case video.OrientationVert:
		nx, ny = x, srcH-1-y
	default:
		nx, ny = x, y
	}

	wd, hd := srcW, srcH
	if o.SwapsDimensions() {
		wd, hd = hd, wd
	}
	if wd > 0 {
		nx *= float64(sink.Width-(m.Left+m.Right)) / wd
	}
	if hd > 0 {
		ny *= float64(sink.Height-(m.Top+m.Bottom)) / hd
	}

	return nx + float64(m.Left), ny + float64(m.Top)
}
