// Package contrast applies WCAG 2.x contrast rules to OKLCH colors. Ratios are
// computed from an approximate sRGB rendition and are advisory, not a
// certified compliance result.
package contrast

import (
	"github.com/codr1/themesmith/internal/oklch"
)

const (
	// MinRatioNormalText is the WCAG AA threshold for body text.
	MinRatioNormalText = 4.5
	// MinRatioLargeText is the WCAG AA threshold for large text and UI components.
	MinRatioLargeText = 3.0

	foregroundThreshold = 0.6
)

var (
	NearBlack = oklch.New(0.15, 0, 0)
	NearWhite = oklch.New(0.98, 0, 0)
)

// MeetsAA reports whether fg on bg reaches the AA threshold.
func MeetsAA(fg, bg oklch.Color, largeText bool) bool {
	threshold := MinRatioNormalText
	if largeText {
		threshold = MinRatioLargeText
	}
	return oklch.ContrastRatio(fg, bg) >= threshold
}

// AccessibleForeground picks near-black for light backgrounds and near-white
// otherwise. It is a lightness threshold, not a contrast search; see
// BestForeground for the contrast-maximizing variant.
func AccessibleForeground(background oklch.Color) oklch.Color {
	if background.L > foregroundThreshold {
		return NearBlack
	}
	return NearWhite
}

// BestForeground returns whichever of NearBlack and NearWhite has the higher
// contrast ratio against background.
func BestForeground(background oklch.Color) oklch.Color {
	if oklch.ContrastRatio(NearBlack, background) >= oklch.ContrastRatio(NearWhite, background) {
		return NearBlack
	}
	return NearWhite
}
