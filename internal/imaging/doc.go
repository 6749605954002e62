// Package imaging provides the image buffer type and colour-space conversions
// used by the enhancement pipeline and the crop session.
//
// Images are held as Buffer values: fixed-size grids of 8-bit R,G,B triples.
// Every transformation returns a new Buffer; nothing in this package writes
// to a Buffer it was given. Single channels are carried as Plane values.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive and Max is exclusive
//
// # Colour Spaces
//
//   - HSV: hue in degrees (0-360), saturation and value on the 0-255 scale
//   - LAB: CIE L*a*b* against D65, L in 0-100; Lightness exports L as 0-255
//
// Converting RGB -> HSV -> RGB or RGB -> LAB -> RGB reproduces the original
// pixels within one unit per channel.
//
// SampleColor reports a single pixel in all three spaces, which is how the
// effect of an enhancement on a particular region is inspected.
//
// # Error Handling
//
// Sentinel errors classify failures for callers using errors.Is:
//   - ErrDecode: a path could not be opened or decoded
//   - ErrInvalidSelection: a region or crop selection is unusable
//   - ErrEmptyImage: a buffer has zero width or height (an ErrInvalidSelection)
//
// # Thread Safety
//
// Functions are stateless and may be called concurrently on different
// buffers. Buffers are not synchronized; share them only read-only.
package imaging
