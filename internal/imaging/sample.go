package imaging

import (
	"fmt"
	"image"
)

// RGBColor is an 8-bit RGB triple.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSVColor uses the same scales as the HSV image form: hue in degrees,
// saturation and value on 0-255.
type HSVColor struct {
	H float64 `json:"h"`
	S uint8   `json:"s"`
	V uint8   `json:"v"`
}

// LabColor is a CIE L*a*b* (D65) colour.
type LabColor struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// ColorSample describes one pixel in every colour space the enhancement
// stages work in.
type ColorSample struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"` // "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSV HSVColor `json:"hsv"`
	Lab LabColor `json:"lab"`
}

// SampleColor reads the pixel at p.
//
// Points outside the buffer fail with ErrInvalidSelection, so an empty
// buffer can never be sampled.
func SampleColor(buf *Buffer, p image.Point) (*ColorSample, error) {
	if !p.In(buf.Bounds()) {
		return nil, fmt.Errorf("%w: (%d,%d) outside %dx%d image", ErrInvalidSelection, p.X, p.Y, buf.Width, buf.Height)
	}

	px := buf.Pix[buf.PixOffset(p.X, p.Y):]
	c := rgbColor(px)
	h, s, v := c.Hsv()
	l, a, b := c.Lab()

	return &ColorSample{
		X:   p.X,
		Y:   p.Y,
		Hex: fmt.Sprintf("#%02X%02X%02X", px[0], px[1], px[2]),
		RGB: RGBColor{R: px[0], G: px[1], B: px[2]},
		HSV: HSVColor{H: h, S: unit8(s), V: unit8(v)},
		Lab: LabColor{L: l * 100, A: a * 100, B: b * 100},
	}, nil
}

// SampleColors samples several points, stopping at the first that is out
// of bounds.
func SampleColors(buf *Buffer, points []image.Point) ([]ColorSample, error) {
	out := make([]ColorSample, 0, len(points))
	for _, p := range points {
		cs, err := SampleColor(buf, p)
		if err != nil {
			return nil, err
		}
		out = append(out, *cs)
	}
	return out, nil
}
