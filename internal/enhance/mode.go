package enhance

import (
	"fmt"
	"strings"
)

// Mode selects one of the fixed enhancement presets.
type Mode int

const (
	// Standard: light Gaussian blur, then sharpen.
	Standard Mode = iota
	// Natural: bilateral smoothing, then a gentle contrast/brightness lift.
	Natural
	// Vivid: strong sharpen, then a saturation and value boost.
	Vivid
	// Pro: adaptive lightness equalization, bilateral smoothing, sharpen.
	Pro
)

var modeNames = map[Mode]string{
	Standard: "standard",
	Natural:  "natural",
	Vivid:    "vivid",
	Pro:      "pro",
}

// Modes lists every preset in declaration order.
func Modes() []Mode {
	return []Mode{Standard, Natural, Vivid, Pro}
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a preset name (case-insensitive) to its Mode.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return Standard, fmt.Errorf("unknown enhancement mode %q (want standard, natural, vivid or pro)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
