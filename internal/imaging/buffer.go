package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var (
	// ErrDecode is returned when a path does not resolve to a readable image.
	ErrDecode = errors.New("image decode failed")

	// ErrInvalidSelection is the class of errors for unusable regions: a crop
	// without exactly two points, or a buffer with a degenerate dimension.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrEmptyImage is returned by stages that detect a zero width or height.
	ErrEmptyImage = fmt.Errorf("%w: image has zero width or height", ErrInvalidSelection)
)

// Buffer is an 8-bit RGB image with fixed dimensions.
//
// Pixels are stored as packed R,G,B triples in row-major order, so the
// pixel at (x, y) starts at Pix[(y*Width+x)*3].
//
// Every operation in this module treats a Buffer as a value: functions that
// transform an image return a new Buffer and never write to their input.
// Callers holding a Buffer must not modify Pix once it has been handed to
// another stage.
type Buffer struct {
	// Pix holds Width*Height*3 bytes of RGB data.
	Pix []uint8

	// Width is the number of pixel columns.
	Width int

	// Height is the number of pixel rows.
	Height int
}

// NewBuffer allocates a black buffer. Negative dimensions are treated as zero.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Pix:    make([]uint8, width*height*3),
		Width:  width,
		Height: height,
	}
}

// FromImage copies any image.Image into a Buffer, dropping the alpha channel.
//
// The source is first normalized to non-premultiplied RGBA at origin (0,0),
// so the resulting coordinates are always 0-based regardless of the source
// bounds.
func FromImage(img image.Image) *Buffer {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	buf := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		out := buf.Pix[y*w*3 : (y+1)*w*3]
		for x := 0; x < w; x++ {
			out[x*3+0] = row[x*4+0]
			out[x*3+1] = row[x*4+1]
			out[x*3+2] = row[x*4+2]
		}
	}
	return buf
}

// Image returns an opaque *image.NRGBA copy of the buffer for use with the
// standard image libraries.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, j := 0, 0; i < len(b.Pix); i, j = i+3, j+4 {
		img.Pix[j+0] = b.Pix[i+0]
		img.Pix[j+1] = b.Pix[i+1]
		img.Pix[j+2] = b.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// Empty reports whether the buffer has no pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0
}

// Bounds returns the buffer rectangle, always anchored at (0,0).
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.Width + x) * 3
}

// RGBAt returns the pixel at (x, y). Out-of-range coordinates return black.
func (b *Buffer) RGBAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return color.RGBA{A: 0xff}
	}
	i := b.PixOffset(x, y)
	return color.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: 0xff}
}

// SetRGB writes the pixel at (x, y). Out-of-range coordinates are ignored.
func (b *Buffer) SetRGB(x, y int, r, g, bl uint8) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i := b.PixOffset(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = r, g, bl
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{Pix: make([]uint8, len(b.Pix)), Width: b.Width, Height: b.Height}
	copy(out.Pix, b.Pix)
	return out
}

// Equal reports whether two buffers have identical dimensions and pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width != o.Width || b.Height != o.Height || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Channel extracts one colour channel (0=R, 1=G, 2=B) as a Plane.
func (b *Buffer) Channel(c int) Plane {
	p := NewPlane(b.Width, b.Height)
	for i := range p.Pix {
		p.Pix[i] = b.Pix[i*3+c]
	}
	return p
}

// Merge assembles a buffer from three planes of equal size.
func Merge(r, g, bl Plane) (*Buffer, error) {
	if r.Width != g.Width || r.Width != bl.Width || r.Height != g.Height || r.Height != bl.Height {
		return nil, fmt.Errorf("plane sizes differ: %dx%d, %dx%d, %dx%d",
			r.Width, r.Height, g.Width, g.Height, bl.Width, bl.Height)
	}
	buf := NewBuffer(r.Width, r.Height)
	for i := range r.Pix {
		buf.Pix[i*3+0] = r.Pix[i]
		buf.Pix[i*3+1] = g.Pix[i]
		buf.Pix[i*3+2] = bl.Pix[i]
	}
	return buf, nil
}

// Plane is a single 8-bit channel, such as a saturation or lightness plane.
type Plane struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) Plane {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Plane{Pix: make([]uint8, width*height), Width: width, Height: height}
}

// At returns the value at (x, y) with coordinates clamped to the plane edges.
func (p Plane) At(x, y int) uint8 {
	return p.Pix[clamp(y, 0, p.Height-1)*p.Width+clamp(x, 0, p.Width-1)]
}

// Clone returns a deep copy.
func (p Plane) Clone() Plane {
	out := Plane{Pix: make([]uint8, len(p.Pix)), Width: p.Width, Height: p.Height}
	copy(out.Pix, p.Pix)
	return out
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
