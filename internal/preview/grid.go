package preview

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
)

// DefaultGridColor is a semi-transparent red.
var DefaultGridColor = color.NRGBA{255, 0, 0, 128}

// Grid describes a coordinate grid drawn over the preview. Spacing is in
// source pixels, so the labels read as source coordinates that can be passed
// straight to a crop.
type Grid struct {
	Spacing int
	Labels  bool
	Color   color.NRGBA
}

// DrawGrid overlays grid lines at every multiple of grid.Spacing source
// pixels, restricted to the image content area of dst. A zero Color means
// DefaultGridColor. Spacings that would put lines closer than 4 viewport
// pixels apart are widened to keep the grid legible.
func DrawGrid(dst *image.NRGBA, g Geometry, grid Grid) {
	if grid.Spacing <= 0 || g.Scale <= 0 {
		return
	}
	col := grid.Color
	if col == (color.NRGBA{}) {
		col = DefaultGridColor
	}
	spacing := grid.Spacing
	for float64(spacing)*g.Scale < 4 {
		spacing *= 2
	}

	content := g.Content().Intersect(dst.Rect)

	// Vertical lines
	for sx := spacing; sx < g.SourceWidth; sx += spacing {
		x := g.ToPreview(image.Pt(sx, 0)).X
		for y := content.Min.Y; y < content.Max.Y; y++ {
			blendPixel(dst, x, y, col)
		}
	}

	// Horizontal lines
	for sy := spacing; sy < g.SourceHeight; sy += spacing {
		y := g.ToPreview(image.Pt(0, sy)).Y
		for x := content.Min.X; x < content.Max.X; x++ {
			blendPixel(dst, x, y, col)
		}
	}

	if grid.Labels {
		labelColor := color.NRGBA{255, 255, 255, 255}
		bgColor := color.NRGBA{0, 0, 0, 180}

		for sy := spacing; sy < g.SourceHeight; sy += spacing {
			for sx := spacing; sx < g.SourceWidth; sx += spacing {
				p := g.ToPreview(image.Pt(sx, sy))
				drawLabel(dst, p.X+2, p.Y+2, fmt.Sprintf("%d,%d", sx, sy), labelColor, bgColor)
			}
		}
	}
}

// ParseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func ParseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// 3x5 pixel font for digits and comma
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

// drawLabel draws text with its top-left corner at (x, y) on a padded
// background box. Characters without a glyph leave a gap.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	const (
		charWidth   = 4
		labelHeight = 7
	)
	labelWidth := len(text) * charWidth

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			blendPixel(img, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					setPixel(img, cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}

// blendPixel composites col over the opaque pixel at (x, y).
func blendPixel(img *image.NRGBA, x, y int, col color.NRGBA) {
	if !(image.Point{x, y}).In(img.Rect) {
		return
	}
	if col.A == 255 {
		img.SetNRGBA(x, y, col)
		return
	}
	i := img.PixOffset(x, y)
	a := uint32(col.A)
	mix := func(dst uint8, src uint8) uint8 {
		return uint8((uint32(src)*a + uint32(dst)*(255-a) + 127) / 255)
	}
	img.Pix[i] = mix(img.Pix[i], col.R)
	img.Pix[i+1] = mix(img.Pix[i+1], col.G)
	img.Pix[i+2] = mix(img.Pix[i+2], col.B)
	img.Pix[i+3] = 255
}
