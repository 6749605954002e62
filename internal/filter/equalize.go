package filter

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/phototuner/internal/imaging"
)

// AdaptiveEqualize performs contrast-limited, tile-local histogram
// equalization on a single-channel plane (typically LAB lightness).
//
// The plane is split into a tilesX x tilesY grid. Each tile gets its own
// equalization curve, built from a histogram whose bins are clipped at
// clipLimit times the average bin height; the clipped excess is spread
// evenly over all bins, which keeps flat regions from turning into amplified
// noise. Output pixels blend the curves of the four nearest tile centers
// bilinearly so tile seams do not show.
//
// A clipLimit <= 0 disables clipping (plain tile-local equalization). Grid
// sizes are limited to the plane dimensions and raised to at least 1.
func AdaptiveEqualize(p imaging.Plane, clipLimit float64, tilesX, tilesY int) imaging.Plane {
	w, h := p.Width, p.Height
	if w <= 0 || h <= 0 {
		return p.Clone()
	}
	tilesX = clamp(tilesX, 1, w)
	tilesY = clamp(tilesY, 1, h)

	tileW := (w + tilesX - 1) / tilesX
	tileH := (h + tilesY - 1) / tilesY
	tilesX = (w + tileW - 1) / tileW
	tilesY = (h + tileH - 1) / tileH

	luts := make([][256]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := min(x0+tileW, w), min(y0+tileH, h)
			luts[ty*tilesX+tx] = tileLUT(p, x0, y0, x1, y1, clipLimit)
		}
	}

	out := imaging.NewPlane(w, h)
	invW, invH := 1/float64(tileW), 1/float64(tileH)

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			fy := float64(y)*invH - 0.5
			ty1 := int(math.Floor(fy))
			wy := fy - float64(ty1)
			ty2 := clamp(ty1+1, 0, tilesY-1)
			ty1 = clamp(ty1, 0, tilesY-1)

			for x := 0; x < w; x++ {
				fx := float64(x)*invW - 0.5
				tx1 := int(math.Floor(fx))
				wx := fx - float64(tx1)
				tx2 := clamp(tx1+1, 0, tilesX-1)
				tx1 = clamp(tx1, 0, tilesX-1)

				v := p.Pix[y*w+x]
				top := (1-wx)*float64(luts[ty1*tilesX+tx1][v]) + wx*float64(luts[ty1*tilesX+tx2][v])
				bottom := (1-wx)*float64(luts[ty2*tilesX+tx1][v]) + wx*float64(luts[ty2*tilesX+tx2][v])
				out.Pix[y*w+x] = saturate((1-wy)*top + wy*bottom)
			}
		}
	})

	return out
}

// tileLUT builds the clipped equalization curve for the tile [x0,x1)x[y0,y1).
func tileLUT(p imaging.Plane, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var hist [256]int
	for y := y0; y < y1; y++ {
		for _, v := range p.Pix[y*p.Width+x0 : y*p.Width+x1] {
			hist[v]++
		}
	}
	area := (x1 - x0) * (y1 - y0)

	if clipLimit > 0 {
		limit := max(1, int(clipLimit*float64(area)/256))
		excess := 0
		for i := range hist {
			if hist[i] > limit {
				excess += hist[i] - limit
				hist[i] = limit
			}
		}

		batch := excess / 256
		residual := excess - batch*256
		for i := range hist {
			hist[i] += batch
		}
		if residual > 0 {
			step := max(1, 256/residual)
			for i := 0; i < 256 && residual > 0; i += step {
				hist[i]++
				residual--
			}
		}
	}

	var lut [256]uint8
	scale := 255 / float64(area)
	sum := 0
	for i := range hist {
		sum += hist[i]
		lut[i] = saturate(float64(sum) * scale)
	}
	return lut
}
