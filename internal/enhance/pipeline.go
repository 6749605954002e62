package enhance

import (
	"fmt"

	"github.com/ironsheep/phototuner/internal/filter"
	"github.com/ironsheep/phototuner/internal/imaging"
)

// Step is one stage of an enhancement pipeline. Apply must not modify its
// input.
type Step struct {
	Name  string
	Apply func(*imaging.Buffer) (*imaging.Buffer, error)
}

// Steps returns the ordered stages of a preset. Unknown modes use the
// Standard sequence.
//
//	standard: gaussian blur 3x3 -> sharpen(5)
//	natural:  bilateral(5, 50, 50) -> linear lift (x1.05 + 5)
//	vivid:    sharpen(5.5) -> HSV saturation +40, value +10
//	pro:      LAB lightness equalization (clip 2.5, 8x8) -> bilateral(9, 75, 75) -> sharpen(5)
func Steps(mode Mode) []Step {
	switch mode {
	case Natural:
		return []Step{
			bilateralStep(5, 50, 50),
			linearStep(1.05, 5),
		}
	case Vivid:
		return []Step{
			sharpenStep(5.5),
			hsvStep(40, 10),
		}
	case Pro:
		return []Step{
			equalizeStep(2.5, 8, 8),
			bilateralStep(9, 75, 75),
			sharpenStep(5),
		}
	default:
		return []Step{
			blurStep(3),
			sharpenStep(5),
		}
	}
}

// AccurateSteps returns the stages EnhanceAccurate runs for p after
// clamping: a gamma curve of 1/Contrast, a saturation boost, and, when the
// strength is positive, a sharpen with center weight 5+SharpenStrength.
func AccurateSteps(p Params) []Step {
	p = p.Clamped()
	steps := []Step{
		gammaStep(1 / p.Contrast),
		hsvStep(int(p.ColorBoost), 0),
	}
	if p.SharpenStrength > 0 {
		steps = append(steps, sharpenStep(5+p.SharpenStrength))
	}
	return steps
}

// Enhance applies the preset for mode to buf and returns a new buffer of the
// same dimensions. buf is not modified.
//
// # Errors
//
// Returns imaging.ErrEmptyImage if buf has zero width or height.
func Enhance(buf *imaging.Buffer, mode Mode) (*imaging.Buffer, error) {
	return Run(buf, Steps(mode))
}

// EnhanceAccurate applies the continuous adjustment described by p. Out of
// range parameters are clamped; with SharpenStrength 0 the sharpening stage
// is skipped entirely. buf is not modified.
//
// # Errors
//
// Returns imaging.ErrEmptyImage if buf has zero width or height.
func EnhanceAccurate(buf *imaging.Buffer, p Params) (*imaging.Buffer, error) {
	return Run(buf, AccurateSteps(p))
}

// Run feeds buf through steps in order, each stage consuming the output of
// the previous one.
func Run(buf *imaging.Buffer, steps []Step) (*imaging.Buffer, error) {
	if buf.Empty() {
		return nil, imaging.ErrEmptyImage
	}
	out := buf
	for _, s := range steps {
		next, err := s.Apply(out)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", s.Name, err)
		}
		out = next
	}
	if out == buf {
		out = buf.Clone()
	}
	return out, nil
}

func blurStep(size int) Step {
	return Step{
		Name: fmt.Sprintf("gaussian_blur(%d)", size),
		Apply: func(b *imaging.Buffer) (*imaging.Buffer, error) {
			return filter.GaussianBlur(b, size), nil
		},
	}
}

func sharpenStep(center float64) Step {
	return Step{
		Name: fmt.Sprintf("sharpen(%g)", center),
		Apply: func(b *imaging.Buffer) (*imaging.Buffer, error) {
			return filter.Convolve(b, filter.SharpenKernel(center)), nil
		},
	}
}

func bilateralStep(diameter int, sigmaColor, sigmaSpace float64) Step {
	return Step{
		Name: fmt.Sprintf("bilateral(%d,%g,%g)", diameter, sigmaColor, sigmaSpace),
		Apply: func(b *imaging.Buffer) (*imaging.Buffer, error) {
			return filter.BilateralSmooth(b, diameter, sigmaColor, sigmaSpace), nil
		},
	}
}

func linearStep(alpha, beta float64) Step {
	return Step{
		Name: fmt.Sprintf("linear(%g,%g)", alpha, beta),
		Apply: func(b *imaging.Buffer) (*imaging.Buffer, error) {
			return filter.ScaleAbs(b, alpha, beta), nil
		},
	}
}

func gammaStep(gamma float64) Step {
	return Step{
		Name: fmt.Sprintf("gamma(%.3f)", gamma),
		Apply: func(b *imaging.Buffer) (*imaging.Buffer, error) {
			return filter.ApplyGammaLUT(b, gamma), nil
		},
	}
}

// hsvStep adds saturation and value offsets in HSV space.
func hsvStep(dSat, dVal int) Step {
	return Step{
		Name: fmt.Sprintf("hsv(s%+d,v%+d)", dSat, dVal),
		Apply: func(b *imaging.Buffer) (*imaging.Buffer, error) {
			hsv := imaging.ToHSV(b)
			adjusted, err := hsv.WithChannels(
				filter.AdjustChannel(hsv.S, dSat),
				filter.AdjustChannel(hsv.V, dVal),
			)
			if err != nil {
				return nil, err
			}
			return imaging.FromHSV(adjusted), nil
		},
	}
}

// equalizeStep equalizes LAB lightness and leaves the chroma channels as is.
func equalizeStep(clipLimit float64, tilesX, tilesY int) Step {
	return Step{
		Name: fmt.Sprintf("lab_equalize(%g,%dx%d)", clipLimit, tilesX, tilesY),
		Apply: func(b *imaging.Buffer) (*imaging.Buffer, error) {
			lab := imaging.ToLAB(b)
			equalized, err := lab.WithLightness(filter.AdaptiveEqualize(lab.Lightness(), clipLimit, tilesX, tilesY))
			if err != nil {
				return nil, err
			}
			return imaging.FromLAB(equalized), nil
		},
	}
}
