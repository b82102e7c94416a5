package oklch

import "math"

// RelativeLuminance returns the WCAG relative luminance of c, computed from
// its approximate sRGB rendition. Results are advisory.
func RelativeLuminance(c Color) float64 {
	r, g, b := c.ToSRGB().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between two colors, in [1,21].
func ContrastRatio(a, b Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	lightest := math.Max(la, lb)
	darkest := math.Min(la, lb)
	return (lightest + 0.05) / (darkest + 0.05)
}
