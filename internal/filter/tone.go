package filter

import (
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"

	"github.com/ironsheep/phototuner/internal/imaging"
)

// GammaLUT precomputes the 256-entry power-law curve
// out = 255 * (in/255)^gamma, rounded to the nearest integer.
func GammaLUT(gamma float64) [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = saturate(255 * math.Pow(float64(i)/255, gamma))
	}
	return lut
}

// ApplyGammaLUT remaps every channel of buf through GammaLUT(gamma).
// gamma < 1 brightens mid-tones, gamma > 1 darkens them; 0 and 255 are
// fixed points for any positive gamma.
func ApplyGammaLUT(buf *imaging.Buffer, gamma float64) *imaging.Buffer {
	lut := GammaLUT(gamma)
	return applyLUT(buf, &lut)
}

// ScaleAbs applies the linear remap out = |in*alpha + beta| to every channel,
// rounding and saturating at 255.
func ScaleAbs(buf *imaging.Buffer, alpha, beta float64) *imaging.Buffer {
	var lut [256]uint8
	for i := range lut {
		lut[i] = saturate(math.Abs(float64(i)*alpha + beta))
	}
	return applyLUT(buf, &lut)
}

// AdjustChannel adds delta to every element of p, saturating to [0,255].
func AdjustChannel(p imaging.Plane, delta int) imaging.Plane {
	out := imaging.NewPlane(p.Width, p.Height)
	for i, v := range p.Pix {
		out.Pix[i] = uint8(clamp(int(v)+delta, 0, 255))
	}
	return out
}

func applyLUT(buf *imaging.Buffer, lut *[256]uint8) *imaging.Buffer {
	if buf.Empty() {
		return buf.Clone()
	}
	out := adjust.Apply(buf.Image(), func(c color.RGBA) color.RGBA {
		return color.RGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
	})
	return imaging.FromImage(out)
}
