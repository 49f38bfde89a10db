// Package geometry computes the per-frame crop rectangle of the
// postprocessing element and the coordinate transforms that compensate for
// the configured video direction.
//
// Crop metadata travelling downstream is mapped through the inverse of the
// video direction with RotateCrop. Pointer coordinates travelling upstream
// go the other way with TransformPointer: rotate, scale from source to
// cropped sink extent, then offset by the crop origin.
package geometry
