package oklch

// ScaleSteps are the keys of every generated ramp, lightest first.
var ScaleSteps = [11]int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950}

// RampStep describes one step of a ramp. For ColorRamp, C multiplies the base
// chroma; for NeutralRamp it is the absolute chroma.
type RampStep struct {
	Step int
	L    float64
	C    float64
}

// ColorRamp shapes ColorScale.
var ColorRamp = [11]RampStep{
	{Step: 50, L: 0.97, C: 0.10},
	{Step: 100, L: 0.93, C: 0.20},
	{Step: 200, L: 0.87, C: 0.40},
	{Step: 300, L: 0.78, C: 0.60},
	{Step: 400, L: 0.68, C: 0.80},
	{Step: 500, L: 0.58, C: 1.00},
	{Step: 600, L: 0.50, C: 1.00},
	{Step: 700, L: 0.42, C: 0.90},
	{Step: 800, L: 0.34, C: 0.80},
	{Step: 900, L: 0.27, C: 0.70},
	{Step: 950, L: 0.20, C: 0.60},
}

// NeutralRamp shapes NeutralScale. Chroma stays low enough to read as gray
// while carrying a tint of the hue.
var NeutralRamp = [11]RampStep{
	{Step: 50, L: 0.985, C: 0.003},
	{Step: 100, L: 0.965, C: 0.005},
	{Step: 200, L: 0.920, C: 0.008},
	{Step: 300, L: 0.870, C: 0.010},
	{Step: 400, L: 0.710, C: 0.012},
	{Step: 500, L: 0.555, C: 0.014},
	{Step: 600, L: 0.445, C: 0.014},
	{Step: 700, L: 0.370, C: 0.012},
	{Step: 800, L: 0.270, C: 0.010},
	{Step: 900, L: 0.205, C: 0.008},
	{Step: 950, L: 0.145, C: 0.006},
}

// Scale maps a step key ("50" through "950" as ints) to its color.
type Scale map[int]Color

// ColorScale builds an 11-step ramp around base's hue and chroma.
func ColorScale(base Color) Scale {
	scale := make(Scale, len(ColorRamp))
	for _, step := range ColorRamp {
		scale[step.Step] = New(step.L, base.C*step.C, base.H)
	}
	return scale
}

// NeutralScale builds a near-gray ramp tinted by hue. It ignores any chroma
// of the source color.
func NeutralScale(hue float64) Scale {
	scale := make(Scale, len(NeutralRamp))
	for _, step := range NeutralRamp {
		scale[step.Step] = New(step.L, step.C, hue)
	}
	return scale
}
