// Package oklch implements the OKLCH color model used as the canonical internal
// representation of every generated theme color.
package oklch

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MaxChroma is the upper bound every transform clamps chroma to.
	MaxChroma = 0.4
)

// ErrInvalidColor is the sentinel wrapped by every FormatError.
var ErrInvalidColor = errors.New("invalid color")

// FormatError reports a color string that could not be parsed.
type FormatError struct {
	Input string
	Kind  string
}

func (e *FormatError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("unrecognized color format: %q", e.Input)
	}
	return fmt.Sprintf("invalid %s color: %q", e.Kind, e.Input)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidColor
}

// Color is a color in OKLCH space. L is in [0,1], C in [0,MaxChroma] and H in
// [0,360). A is nil for fully opaque colors.
type Color struct {
	L float64  `json:"l"`
	C float64  `json:"c"`
	H float64  `json:"h"`
	A *float64 `json:"a,omitempty"`
}

// New returns an opaque color with normalized components.
func New(l, c, h float64) Color {
	return Color{L: clampUnit(l), C: clampChroma(c), H: NormalizeHue(h)}
}

// WithAlpha returns a copy of c with the given alpha, clamped to [0,1].
func (c Color) WithAlpha(alpha float64) Color {
	a := clampUnit(alpha)
	c.A = &a
	return c
}

// Alpha returns the alpha channel, 1 when unset.
func (c Color) Alpha() float64 {
	if c.A == nil {
		return 1
	}
	return *c.A
}

// NormalizeHue maps any real angle into [0,360).
func NormalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// -1e-15 + 360 rounds to 360.
	if h >= 360 {
		h = 0
	}
	return h
}

func clampUnit(v float64) float64 {
	return clamp(v, 0, 1)
}

func clampChroma(v float64) float64 {
	return clamp(v, 0, MaxChroma)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
