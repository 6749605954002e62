package enhance

import "math"

// Range is an inclusive numeric interval used to clamp a parameter.
type Range struct {
	Min float64
	Max float64
}

// Clamp limits v to the range. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Accepted ranges for Params. Values outside a range are clamped, never
// rejected.
var (
	SharpenRange  = Range{Min: 0, Max: 5}
	ContrastRange = Range{Min: 0.5, Max: 2.0}
	ColorRange    = Range{Min: 0, Max: 100}
)

// Params is the continuous parameter set for EnhanceAccurate.
type Params struct {
	// SharpenStrength adds to the center weight of the sharpening kernel.
	// 0 disables sharpening.
	SharpenStrength float64 `json:"sharpen_strength"`

	// Contrast sets the tone curve gamma to 1/Contrast. Values above 1
	// brighten mid-tones, values below 1 darken them.
	Contrast float64 `json:"contrast"`

	// ColorBoost is added to the 0-255 HSV saturation of every pixel.
	ColorBoost float64 `json:"color_boost"`
}

// DefaultParams returns moderate sharpening with a neutral tone curve and no
// colour boost.
func DefaultParams() Params {
	return Params{SharpenStrength: 1.0, Contrast: 1.0, ColorBoost: 0}
}

// Clamped returns p with every field limited to its documented range.
func (p Params) Clamped() Params {
	return Params{
		SharpenStrength: SharpenRange.Clamp(p.SharpenStrength),
		Contrast:        ContrastRange.Clamp(p.Contrast),
		ColorBoost:      ColorRange.Clamp(p.ColorBoost),
	}
}

// Slider defaults for the three 0-100 controls of an interactive editor.
const (
	DefaultSharpenSlider  = 30
	DefaultContrastSlider = 50
	DefaultColorSlider    = 10
)

// FromSliders converts three 0-100 slider positions into Params:
//
//	sharpen  -> sharpen/100           (0 .. 1)
//	contrast -> 0.7 + contrast/100*0.6 (0.7 .. 1.3)
//	color    -> color                  (0 .. 100)
//
// Slider values are clamped to 0-100 first, and the result is clamped.
func FromSliders(sharpen, contrast, color float64) Params {
	slider := Range{Min: 0, Max: 100}
	return Params{
		SharpenStrength: slider.Clamp(sharpen) / 100,
		Contrast:        0.7 + slider.Clamp(contrast)/100*0.6,
		ColorBoost:      slider.Clamp(color),
	}.Clamped()
}
