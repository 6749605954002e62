// Package filter implements the numeric kernels used by the enhancement
// pipeline: 3x3 convolution, Gaussian blur, bilateral smoothing, tile-local
// adaptive histogram equalization and per-pixel tone curves.
//
// All filters are pure. They read an imaging.Buffer or imaging.Plane and
// return a newly allocated result of the same dimensions, never modifying
// their input. Identical input always yields identical output.
//
// # Border Handling
//
// Neighbourhood filters replicate edge pixels: a sample outside the image
// takes the value of the nearest pixel inside it.
//
// # Saturation
//
// Results are rounded and clamped to [0,255]; arithmetic never wraps.
//
// # Empty Input
//
// Filters return an empty result for empty input instead of failing. Stages
// that need a non-empty image check for imaging.ErrEmptyImage themselves.
package filter
