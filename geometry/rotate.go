package geometry

import "github.com/opd-ai/vpp/video"

// RotateCrop maps crop, expressed in the input frame of width x height,
// into the output frame produced by direction o. Quarter turns and diagonal
// flips swap the rectangle extent.
func RotateCrop(o video.Orientation, width, height int, crop *video.Rectangle) {
	if crop == nil {
		return
	}

	x, y, w, h := crop.X, crop.Y, crop.Width, crop.Height
	switch o {
	case video.OrientationHoriz:
		crop.X = width - w - x
	case video.OrientationVert:
		crop.Y = height - h - y
	case video.Orientation90R:
		crop.X = height - h - y
		crop.Y = x
		crop.Width, crop.Height = h, w
	case video.Orientation180:
		crop.X = width - w - x
		crop.Y = height - h - y
	case video.Orientation90L:
		crop.X = y
		crop.Y = width - w - x
		crop.Width, crop.Height = h, w
	case video.OrientationURLL:
		crop.X = height - h - y
		crop.Y = width - w - x
		crop.Width, crop.Height = h, w
	case video.OrientationULLR:
		crop.X, crop.Y = y, x
		crop.Width, crop.Height = h, w
	}
}
