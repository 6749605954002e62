package filter

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/phototuner/internal/imaging"
)

// tap is one neighbour offset inside the bilateral window together with its
// spatial weight.
type tap struct {
	dx, dy int
	w      float64
}

// BilateralSmooth applies an edge-preserving bilateral filter.
//
// Each output pixel is the average of the neighbours within a circle of
// diameter pixels, weighted by both distance (sigmaSpace) and colour
// similarity (sigmaColor). Colour distance is the sum of the absolute R, G
// and B differences, so a neighbour across a strong edge contributes almost
// nothing and the edge survives.
//
// Parameters:
//   - diameter: window diameter in pixels. Values <= 0 derive the window
//     from sigmaSpace (radius = 1.5*sigmaSpace).
//   - sigmaColor: colour tolerance; larger values smooth across bigger
//     colour differences.
//   - sigmaSpace: spatial falloff; larger values give distant pixels more
//     weight.
//
// Non-positive sigmas are treated as 1.
func BilateralSmooth(buf *imaging.Buffer, diameter int, sigmaColor, sigmaSpace float64) *imaging.Buffer {
	if buf.Empty() {
		return buf.Clone()
	}
	if sigmaColor <= 0 {
		sigmaColor = 1
	}
	if sigmaSpace <= 0 {
		sigmaSpace = 1
	}

	radius := diameter / 2
	if diameter <= 0 {
		radius = int(math.Round(sigmaSpace * 1.5))
	}
	if radius < 1 {
		return buf.Clone()
	}

	spaceCoeff := -0.5 / (sigmaSpace * sigmaSpace)
	colorCoeff := -0.5 / (sigmaColor * sigmaColor)

	taps := make([]tap, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			if d2 > float64(radius*radius) {
				continue
			}
			taps = append(taps, tap{dx: dx, dy: dy, w: math.Exp(d2 * spaceCoeff)})
		}
	}

	var colorWeight [256 * 3]float64
	for i := range colorWeight {
		colorWeight[i] = math.Exp(float64(i*i) * colorCoeff)
	}

	w, h := buf.Width, buf.Height
	out := imaging.NewBuffer(w, h)

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				c := buf.PixOffset(x, y)
				r0, g0, b0 := int(buf.Pix[c]), int(buf.Pix[c+1]), int(buf.Pix[c+2])

				var sumR, sumG, sumB, sumW float64
				for _, t := range taps {
					n := buf.PixOffset(clamp(x+t.dx, 0, w-1), clamp(y+t.dy, 0, h-1))
					r, g, b := int(buf.Pix[n]), int(buf.Pix[n+1]), int(buf.Pix[n+2])
					wt := t.w * colorWeight[absInt(r-r0)+absInt(g-g0)+absInt(b-b0)]
					sumR += float64(r) * wt
					sumG += float64(g) * wt
					sumB += float64(b) * wt
					sumW += wt
				}

				out.Pix[c] = saturate(sumR / sumW)
				out.Pix[c+1] = saturate(sumG / sumW)
				out.Pix[c+2] = saturate(sumB / sumW)
			}
		}
	})

	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in neighbourhood operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// saturate rounds f and clamps it to the 8-bit range.
func saturate(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f + 0.5)
}
