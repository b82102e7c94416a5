package oklch

import (
	"math"
	"testing"
)

func TestContrastRatioExtremes(t *testing.T) {
	white := MustParse("#ffffff")
	black := MustParse("#000000")

	if got := ContrastRatio(white, black); math.Abs(got-21) > 0.05 {
		t.Fatalf("ContrastRatio(white, black) = %v, want 21", got)
	}
	if got := ContrastRatio(white, white); math.Abs(got-1) > 1e-9 {
		t.Fatalf("ContrastRatio(white, white) = %v, want 1", got)
	}
	if a, b := ContrastRatio(white, black), ContrastRatio(black, white); a != b {
		t.Fatalf("ContrastRatio not symmetric: %v vs %v", a, b)
	}
}

func TestContrastAgainstWhiteGrowsAsColorDarkens(t *testing.T) {
	white := New(1, 0, 0)
	prev := 0.0
	for step := 50; step >= 0; step-- {
		l := float64(step) / 50
		ratio := ContrastRatio(white, New(l, 0, 0))
		if ratio+1e-9 < prev {
			t.Fatalf("contrast dropped from %v to %v at l=%v", prev, ratio, l)
		}
		prev = ratio
	}
}

func TestRelativeLuminanceMatchesHexPath(t *testing.T) {
	// #777777 sits close to the WCAG AA boundary on white.
	gray := MustParse("#777777")
	if got := RelativeLuminance(gray); math.Abs(got-0.184) > 0.002 {
		t.Fatalf("RelativeLuminance(#777777) = %v, want ~0.184", got)
	}
}
