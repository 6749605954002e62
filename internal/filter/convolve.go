package filter

import (
	"math"

	"github.com/anthonynsimon/bild/convolution"

	"github.com/ironsheep/phototuner/internal/imaging"
)

// Kernel is a square convolution kernel stored in row-major order.
type Kernel struct {
	Size   int
	Values []float64
}

// SharpenKernel returns the 3x3 Laplacian sharpening kernel with the given
// center weight:
//
//	 0 -1  0
//	-1  c -1
//	 0 -1  0
//
// A center weight of 5 preserves overall brightness; larger weights both
// sharpen and brighten.
func SharpenKernel(center float64) Kernel {
	return Kernel{
		Size: 3,
		Values: []float64{
			0, -1, 0,
			-1, center, -1,
			0, -1, 0,
		},
	}
}

// GaussianKernel returns a normalized size x size Gaussian kernel.
//
// Even sizes are rounded up to the next odd size. The standard deviation is
// derived from the size the same way common imaging toolkits do when none is
// given: sigma = 0.3*((size-1)*0.5 - 1) + 0.8.
func GaussianKernel(size int) Kernel {
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	r := size / 2

	row := make([]float64, size)
	var sum float64
	for i := range row {
		d := float64(i - r)
		row[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += row[i]
	}
	for i := range row {
		row[i] /= sum
	}

	k := Kernel{Size: size, Values: make([]float64, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			k.Values[y*size+x] = row[y] * row[x]
		}
	}
	return k
}

// Convolve applies k to every pixel of buf with edge replication at the
// borders. Output intensities saturate at 0 and 255.
func Convolve(buf *imaging.Buffer, k Kernel) *imaging.Buffer {
	if buf.Empty() || k.Size < 1 {
		return buf.Clone()
	}

	ck := convolution.NewKernel(k.Size, k.Size)
	copy(ck.Matrix, k.Values)

	out := convolution.Convolve(buf.Image(), ck, &convolution.Options{
		Wrap:      false,
		KeepAlpha: true,
	})
	return imaging.FromImage(out)
}

// GaussianBlur blurs buf with an isotropic size x size Gaussian kernel.
// A size of 1 or less returns a copy.
func GaussianBlur(buf *imaging.Buffer, size int) *imaging.Buffer {
	if size <= 1 {
		return buf.Clone()
	}
	return Convolve(buf, GaussianKernel(size))
}
