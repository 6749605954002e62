package preview

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	pimaging "github.com/ironsheep/phototuner/internal/imaging"
)

// Colours used when drawing the preview.
var (
	BackgroundColor  = color.NRGBA{30, 30, 30, 255}
	PlaceholderColor = color.NRGBA{43, 43, 43, 255}
	OutlineColor     = color.NRGBA{136, 136, 136, 255}
	MarkerColor      = color.NRGBA{0, 255, 255, 255}
	SelectionColor   = color.NRGBA{0, 128, 255, 255}
)

const (
	markerRadius       = 5
	selectionThickness = 2
)

// Render draws buf into a viewport-sized image according to g.
//
// The scaled image is centered on a dark background. Each point in marks
// (source coordinates) is drawn as a filled dot; when exactly two marks are
// given, the rectangle they span is outlined as well.
func Render(buf *pimaging.Buffer, g Geometry, marks []image.Point) *image.NRGBA {
	if g.ViewportWidth <= 0 || g.ViewportHeight <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := imaging.New(g.ViewportWidth, g.ViewportHeight, BackgroundColor)
	if buf.Empty() || g.ScaledWidth <= 0 || g.ScaledHeight <= 0 {
		return dst
	}

	scaled := imaging.Resize(buf.Image(), g.ScaledWidth, g.ScaledHeight, imaging.Box)
	dst = imaging.Paste(dst, scaled, image.Pt(g.OffsetX, g.OffsetY))

	for _, m := range marks {
		fillCircle(dst, g.ToPreview(m), markerRadius, MarkerColor)
	}
	if len(marks) == 2 {
		strokeRect(dst, g.ToPreview(marks[0]), g.ToPreview(marks[1]), selectionThickness, SelectionColor)
	}
	return dst
}

// Placeholder returns the empty-state viewport: a flat panel with an inset
// outline, shown before any image is loaded.
func Placeholder(width, height int) *image.NRGBA {
	dst := imaging.New(width, height, PlaceholderColor)
	if width > 20 && height > 20 {
		strokeRect(dst, image.Pt(10, 10), image.Pt(width-10, height-10), 2, OutlineColor)
	}
	return dst
}

// fillCircle draws a filled disc centered on c.
func fillCircle(img *image.NRGBA, c image.Point, r int, col color.NRGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPixel(img, c.X+dx, c.Y+dy, col)
			}
		}
	}
}

// strokeRect outlines the rectangle with corners a and b, growing the
// stroke inward by thickness pixels.
func strokeRect(img *image.NRGBA, a, b image.Point, thickness int, col color.NRGBA) {
	r := image.Rectangle{Min: a, Max: b}.Canon()
	for t := 0; t < thickness; t++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			setPixel(img, x, r.Min.Y+t, col)
			setPixel(img, x, r.Max.Y-t, col)
		}
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			setPixel(img, r.Min.X+t, y, col)
			setPixel(img, r.Max.X-t, y, col)
		}
	}
}

func setPixel(img *image.NRGBA, x, y int, col color.NRGBA) {
	if (image.Point{x, y}).In(img.Rect) {
		img.SetNRGBA(x, y, col)
	}
}
