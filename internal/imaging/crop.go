package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts the sub-rectangle r from buf.
//
// r follows the usual image convention: Min is inclusive, Max is exclusive.
// Each axis is clipped to the buffer bounds on its own, so a selection with
// zero width keeps its clipped height (and vice versa). A rectangle with zero
// width or height after clipping yields an empty Buffer rather than an error,
// so callers that cannot handle empty images must check Empty.
func Crop(buf *Buffer, r image.Rectangle) *Buffer {
	r = r.Canon()
	x0, x1 := clamp(r.Min.X, 0, buf.Width), clamp(r.Max.X, 0, buf.Width)
	y0, y1 := clamp(r.Min.Y, 0, buf.Height), clamp(r.Max.Y, 0, buf.Height)
	if x1 <= x0 || y1 <= y0 {
		return NewBuffer(x1-x0, y1-y0)
	}
	return FromImage(imaging.Crop(buf.Image(), image.Rect(x0, y0, x1, y1)))
}

// RectFromPoints returns the rectangle spanned by two corner points, sorting
// the coordinates so the order the points were chosen in does not matter.
func RectFromPoints(a, b image.Point) image.Rectangle {
	xMin, xMax := a.X, b.X
	if xMin > xMax {
		xMin, xMax = xMax, xMin
	}
	yMin, yMax := a.Y, b.Y
	if yMin > yMax {
		yMin, yMax = yMax, yMin
	}
	return image.Rectangle{Min: image.Pt(xMin, yMin), Max: image.Pt(xMax, yMax)}
}
