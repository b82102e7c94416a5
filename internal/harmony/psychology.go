package harmony

import "github.com/codr1/themesmith/internal/oklch"

type hueBucket struct {
	upTo  float64
	label string
}

// Upper bounds are exclusive; the last bucket closes the circle.
var hueBuckets = []hueBucket{
	{upTo: 30, label: "Energy and urgency"},
	{upTo: 60, label: "Warmth and enthusiasm"},
	{upTo: 90, label: "Optimism and attention"},
	{upTo: 150, label: "Growth and renewal"},
	{upTo: 200, label: "Calm and freshness"},
	{upTo: 260, label: "Trust and stability"},
	{upTo: 300, label: "Creativity and imagination"},
	{upTo: 360, label: "Passion and playfulness"},
}

// PsychologyForHue returns a descriptive label for hue. It is metadata only
// and never feeds back into color math.
func PsychologyForHue(hue float64) string {
	h := oklch.NormalizeHue(hue)
	for _, bucket := range hueBuckets {
		if h < bucket.upTo {
			return bucket.label
		}
	}
	return hueBuckets[len(hueBuckets)-1].label
}
