// Package preview maps between a full-resolution image and the fixed-size
// viewport it is displayed in.
//
// Compute derives a Geometry from the source and viewport sizes. The
// geometry converts source pixels to viewport positions (ToPreview) and
// viewport clicks back to source pixels (ToSource); for points inside the
// source the round trip is exact to within one pixel. Render produces the
// letterboxed preview image itself.
//
// A Geometry is only valid for the source dimensions it was computed from
// and must be recomputed whenever the displayed image changes size.
package preview
