package imaging

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV holds an image in hue/saturation/value form.
//
// Hue is kept at full precision so that converting back to RGB does not
// drift; saturation and value use the 8-bit 0-255 scale so they can be
// adjusted with the same saturating channel arithmetic as RGB planes.
type HSV struct {
	// H is the hue in degrees, 0 <= H < 360, one entry per pixel.
	H []float64

	// S is the saturation plane (0 = gray, 255 = fully saturated).
	S Plane

	// V is the value plane (the largest of R, G and B).
	V Plane

	Width  int
	Height int
}

// ToHSV converts an RGB buffer to HSV.
func ToHSV(buf *Buffer) *HSV {
	out := &HSV{
		H:      make([]float64, buf.Width*buf.Height),
		S:      NewPlane(buf.Width, buf.Height),
		V:      NewPlane(buf.Width, buf.Height),
		Width:  buf.Width,
		Height: buf.Height,
	}
	for i := range out.H {
		h, s, v := rgbColor(buf.Pix[i*3:]).Hsv()
		out.H[i] = h
		out.S.Pix[i] = unit8(s)
		out.V.Pix[i] = unit8(v)
	}
	return out
}

// FromHSV converts an HSV image back to RGB.
func FromHSV(hsv *HSV) *Buffer {
	buf := NewBuffer(hsv.Width, hsv.Height)
	for i := range hsv.H {
		c := colorful.Hsv(hsv.H[i], float64(hsv.S.Pix[i])/255, float64(hsv.V.Pix[i])/255)
		r, g, b := c.Clamped().RGB255()
		buf.Pix[i*3], buf.Pix[i*3+1], buf.Pix[i*3+2] = r, g, b
	}
	return buf
}

// WithChannels returns a copy of hsv with its saturation and value planes
// replaced.
func (hsv *HSV) WithChannels(s, v Plane) (*HSV, error) {
	if len(s.Pix) != len(hsv.H) || len(v.Pix) != len(hsv.H) {
		return nil, fmt.Errorf("channel size mismatch: want %dx%d", hsv.Width, hsv.Height)
	}
	h := make([]float64, len(hsv.H))
	copy(h, hsv.H)
	return &HSV{H: h, S: s.Clone(), V: v.Clone(), Width: hsv.Width, Height: hsv.Height}, nil
}

// LAB holds an image in CIE L*a*b* (D65) form.
//
// Components use the conventional units: L in [0,100], a and b roughly in
// [-128,127]. The lightness channel can be exported as an 8-bit plane with
// Lightness and replaced with WithLightness.
type LAB struct {
	L []float64
	A []float64
	B []float64

	Width  int
	Height int
}

// ToLAB converts an RGB buffer to L*a*b*.
func ToLAB(buf *Buffer) *LAB {
	n := buf.Width * buf.Height
	out := &LAB{
		L:      make([]float64, n),
		A:      make([]float64, n),
		B:      make([]float64, n),
		Width:  buf.Width,
		Height: buf.Height,
	}
	for i := 0; i < n; i++ {
		l, a, b := rgbColor(buf.Pix[i*3:]).Lab()
		out.L[i], out.A[i], out.B[i] = l*100, a*100, b*100
	}
	return out
}

// FromLAB converts an L*a*b* image back to RGB. Colours outside the sRGB
// gamut are clamped.
func FromLAB(lab *LAB) *Buffer {
	buf := NewBuffer(lab.Width, lab.Height)
	for i := range lab.L {
		c := colorful.Lab(lab.L[i]/100, lab.A[i]/100, lab.B[i]/100)
		r, g, b := c.Clamped().RGB255()
		buf.Pix[i*3], buf.Pix[i*3+1], buf.Pix[i*3+2] = r, g, b
	}
	return buf
}

// Lightness returns the L channel scaled to 0-255.
func (lab *LAB) Lightness() Plane {
	p := NewPlane(lab.Width, lab.Height)
	for i, l := range lab.L {
		p.Pix[i] = unit8(l / 100)
	}
	return p
}

// WithLightness returns a copy of lab whose L channel is taken from an 8-bit
// plane produced by Lightness (or a filter applied to it).
func (lab *LAB) WithLightness(p Plane) (*LAB, error) {
	if p.Width != lab.Width || p.Height != lab.Height {
		return nil, fmt.Errorf("lightness plane is %dx%d, want %dx%d", p.Width, p.Height, lab.Width, lab.Height)
	}
	out := &LAB{
		L:      make([]float64, len(lab.L)),
		A:      make([]float64, len(lab.A)),
		B:      make([]float64, len(lab.B)),
		Width:  lab.Width,
		Height: lab.Height,
	}
	copy(out.A, lab.A)
	copy(out.B, lab.B)
	for i, v := range p.Pix {
		out.L[i] = float64(v) * 100 / 255
	}
	return out, nil
}

func rgbColor(px []uint8) colorful.Color {
	return colorful.Color{
		R: float64(px[0]) / 255,
		G: float64(px[1]) / 255,
		B: float64(px[2]) / 255,
	}
}

// unit8 maps [0,1] to a rounded 0-255 value.
func unit8(f float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(f*255))))
}
