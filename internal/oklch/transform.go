package oklch

// AdjustLightness shifts L by delta, clamped to [0,1].
func AdjustLightness(c Color, delta float64) Color {
	c.L = clampUnit(c.L + delta)
	return c
}

// AdjustChroma shifts C by delta, clamped to [0,MaxChroma].
func AdjustChroma(c Color, delta float64) Color {
	c.C = clampChroma(c.C + delta)
	return c
}

// RotateHue rotates the hue by degrees. The result is always in [0,360).
func RotateHue(c Color, degrees float64) Color {
	c.H = NormalizeHue(c.H + degrees)
	return c
}

func Complementary(c Color) Color {
	return RotateHue(c, 180)
}

// Analogous returns the neighbours at -angle and +angle. A non-positive angle
// falls back to 30 degrees.
func Analogous(c Color, angle float64) [2]Color {
	if angle <= 0 {
		angle = 30
	}
	return [2]Color{RotateHue(c, -angle), RotateHue(c, angle)}
}

func Triadic(c Color) [2]Color {
	return [2]Color{RotateHue(c, 120), RotateHue(c, 240)}
}

func SplitComplementary(c Color) [2]Color {
	return [2]Color{RotateHue(c, 150), RotateHue(c, 210)}
}

// HueDelta returns the signed shortest angular distance from a to b, in (-180,180].
func HueDelta(a, b float64) float64 {
	delta := b - a
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return delta
}

// HueMidpoint returns the midpoint of the shortest arc between two hues.
func HueMidpoint(a, b float64) float64 {
	return NormalizeHue(a + HueDelta(a, b)/2)
}

// Blend interpolates from a to b by ratio in [0,1]. Hue follows the shortest
// arc, so blending 350 and 10 passes through 0 rather than 180.
func Blend(a, b Color, ratio float64) Color {
	t := clampUnit(ratio)
	out := Color{
		L: clampUnit(a.L + (b.L-a.L)*t),
		C: clampChroma(a.C + (b.C-a.C)*t),
		H: NormalizeHue(a.H + HueDelta(a.H, b.H)*t),
	}
	if a.A != nil || b.A != nil {
		out = out.WithAlpha(a.Alpha() + (b.Alpha()-a.Alpha())*t)
	}
	return out
}

func Saturate(c Color, amount float64) Color {
	return AdjustChroma(c, amount)
}

func Desaturate(c Color, amount float64) Color {
	return AdjustChroma(c, -amount)
}

func Lighten(c Color, amount float64) Color {
	return AdjustLightness(c, amount)
}

func Darken(c Color, amount float64) Color {
	return AdjustLightness(c, -amount)
}
