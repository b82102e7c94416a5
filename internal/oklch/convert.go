package oklch

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	hexPattern   = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)
	oklchPattern = regexp.MustCompile(`(?i)^oklch\(\s*(-?[\d.]+)(%?)\s+(-?[\d.]+)(%?)\s+(-?[\d.]+)(?:deg)?\s*(?:/\s*([\d.]+)(%?)\s*)?\)$`)
)

type matrix3 [3][3]float64

func (m matrix3) apply(a, b, c float64) (float64, float64, float64) {
	return m[0][0]*a + m[0][1]*b + m[0][2]*c,
		m[1][0]*a + m[1][1]*b + m[1][2]*c,
		m[2][0]*a + m[2][1]*b + m[2][2]*c
}

// Forward path: linear sRGB -> XYZ (D65) -> LMS (M1) -> cbrt -> OKLab (M2).
var (
	linearSRGBToXYZ = matrix3{
		{0.4124564, 0.3575761, 0.1804375},
		{0.2126729, 0.7151522, 0.0721750},
		{0.0193339, 0.1191920, 0.9503041},
	}
	xyzToLMS = matrix3{
		{0.8189330101, 0.3618667424, -0.1288597137},
		{0.0329845436, 0.9293118715, 0.0361456387},
		{0.0482003018, 0.2643662691, 0.6338517070},
	}
	lmsToLab = matrix3{
		{0.2104542553, 0.7936177850, -0.0040720468},
		{1.9779984951, -2.4285922050, 0.4505937099},
		{0.0259040371, 0.7827717662, -0.8086757660},
	}
)

// Inverse path used for luminance math and hex output.
var (
	labToLMS = matrix3{
		{1.0, 0.3963377774, 0.2158037573},
		{1.0, -0.1055613458, -0.0638541728},
		{1.0, -0.0894841775, -1.2914855480},
	}
	lmsToXYZ = matrix3{
		{1.2270138511, -0.5577999807, 0.2812561490},
		{-0.0405801784, 1.1122568696, -0.0716766787},
		{-0.0763812845, -0.4214819784, 1.5861632204},
	}
	xyzToLinearSRGB = matrix3{
		{3.2404542, -1.5371385, -0.4985314},
		{-0.9692660, 1.8760108, 0.0415560},
		{0.0556434, -0.2040259, 1.0572252},
	}
)

// IsHex reports whether value is a 6-digit hex color with an optional leading '#'.
func IsHex(value string) bool {
	return hexPattern.MatchString(strings.TrimSpace(value))
}

// FromHex converts a 6-digit hex string (optional '#') to OKLCH.
func FromHex(hex string) (Color, error) {
	trimmed := strings.TrimSpace(hex)
	if !hexPattern.MatchString(trimmed) {
		return Color{}, &FormatError{Input: hex, Kind: "hex"}
	}
	rgb, err := colorful.Hex("#" + strings.TrimPrefix(trimmed, "#"))
	if err != nil {
		return Color{}, &FormatError{Input: hex, Kind: "hex"}
	}
	return FromSRGB(rgb), nil
}

// FromSRGB converts a gamma-encoded sRGB color to OKLCH.
func FromSRGB(rgb colorful.Color) Color {
	r, g, b := rgb.LinearRgb()
	x, y, z := linearSRGBToXYZ.apply(r, g, b)
	l, m, s := xyzToLMS.apply(x, y, z)
	lab0, lab1, lab2 := lmsToLab.apply(math.Cbrt(l), math.Cbrt(m), math.Cbrt(s))

	return Color{
		L: clampUnit(lab0),
		C: clampChroma(math.Hypot(lab1, lab2)),
		H: NormalizeHue(math.Atan2(lab2, lab1) * 180 / math.Pi),
	}
}

// ToSRGB maps c back to gamma-encoded sRGB, clamping out-of-gamut channels.
// This is an approximation: no gamut mapping beyond the clamp is attempted.
func (c Color) ToSRGB() colorful.Color {
	rad := c.H * math.Pi / 180
	a := c.C * math.Cos(rad)
	b := c.C * math.Sin(rad)

	l, m, s := labToLMS.apply(c.L, a, b)
	x, y, z := lmsToXYZ.apply(l*l*l, m*m*m, s*s*s)
	r, g, bl := xyzToLinearSRGB.apply(x, y, z)

	return colorful.LinearRgb(clampUnit(r), clampUnit(g), clampUnit(bl)).Clamped()
}

// Hex formats c as a lowercase #rrggbb string.
func (c Color) Hex() string {
	return c.ToSRGB().Hex()
}

// String formats c as a CSS oklch() literal. The alpha segment is only
// present for translucent colors.
//
// L and C keep three decimals and H two, so the text form is lossy: a hex
// color sent through String and Parse can come back up to 3/255 off per
// channel on saturated colors (#007b78 returns as #037b78). Keep the Color
// value when an exact round trip matters.
func (c Color) String() string {
	if a := c.Alpha(); a < 1 {
		return fmt.Sprintf("oklch(%.3f %.3f %.2f / %.2f)", c.L, c.C, c.H, a)
	}
	return fmt.Sprintf("oklch(%.3f %.3f %.2f)", c.L, c.C, c.H)
}

// Parse reads an oklch(L C H[ / A]) literal. L and A accept percentages.
func Parse(value string) (Color, error) {
	match := oklchPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return Color{}, &FormatError{Input: value, Kind: "oklch"}
	}

	l, err := parseComponent(match[1], match[2] == "%", 100)
	if err != nil {
		return Color{}, &FormatError{Input: value, Kind: "oklch"}
	}
	// 100% chroma is 0.4 per CSS Color 4.
	ch, err := parseComponent(match[3], match[4] == "%", 100/MaxChroma)
	if err != nil {
		return Color{}, &FormatError{Input: value, Kind: "oklch"}
	}
	h, err := strconv.ParseFloat(match[5], 64)
	if err != nil {
		return Color{}, &FormatError{Input: value, Kind: "oklch"}
	}

	color := New(l, ch, h)
	if match[6] != "" {
		a, err := parseComponent(match[6], match[7] == "%", 100)
		if err != nil {
			return Color{}, &FormatError{Input: value, Kind: "oklch"}
		}
		color = color.WithAlpha(a)
	}
	return color, nil
}

// ParseAny sniffs the format of value and parses it as an oklch() literal or
// a hex color.
func ParseAny(value string) (Color, error) {
	trimmed := strings.TrimSpace(value)
	switch {
	case strings.HasPrefix(strings.ToLower(trimmed), "oklch("):
		return Parse(trimmed)
	case hexPattern.MatchString(trimmed):
		return FromHex(trimmed)
	default:
		return Color{}, &FormatError{Input: value}
	}
}

// MustParse is ParseAny for package-level literals. It panics on error.
func MustParse(value string) Color {
	c, err := ParseAny(value)
	if err != nil {
		panic(err)
	}
	return c
}

func parseComponent(raw string, percent bool, divisor float64) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if percent {
		v /= divisor
	}
	return v, nil
}
