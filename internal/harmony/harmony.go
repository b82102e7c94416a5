// Package harmony derives secondary and accent hues from a base color.
package harmony

import (
	"math"
	"strings"

	"github.com/codr1/themesmith/internal/oklch"
)

// Kind names a hue-harmony strategy.
type Kind string

const (
	Complementary      Kind = "complementary"
	Analogous          Kind = "analogous"
	Triadic            Kind = "triadic"
	SplitComplementary Kind = "split-complementary"
)

const (
	accentRotation  = 90.0
	accentLightness = 0.65
	accentChroma    = 0.8
)

// Kinds lists every supported strategy.
var Kinds = []Kind{Complementary, Analogous, Triadic, SplitComplementary}

// ParseKind maps a user-supplied name onto a Kind. ok is false for unknown
// names, in which case Complementary is returned.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case Complementary:
		return Complementary, true
	case Analogous:
		return Analogous, true
	case Triadic:
		return Triadic, true
	case SplitComplementary:
		return SplitComplementary, true
	default:
		return Complementary, false
	}
}

// Secondary derives the harmonic secondary color for primary. Unrecognized
// kinds fall back to complementary.
func Secondary(primary oklch.Color, kind Kind) oklch.Color {
	switch kind {
	case Analogous:
		return oklch.Analogous(primary, 30)[1]
	case Triadic:
		return oklch.Triadic(primary)[0]
	case SplitComplementary:
		return oklch.SplitComplementary(primary)[0]
	default:
		return oklch.Complementary(primary)
	}
}

// Accent sits a quarter turn away from the shortest-arc midpoint of the
// primary and secondary hues.
func Accent(primary, secondary oklch.Color) oklch.Color {
	mid := oklch.HueMidpoint(primary.H, secondary.H)
	return oklch.New(
		accentLightness,
		math.Max(primary.C, secondary.C)*accentChroma,
		mid+accentRotation,
	)
}
