package contrast

import (
	"testing"

	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/oklch"
)

func TestMeetsAA(t *testing.T) {
	white := oklch.MustParse("#ffffff")
	tests := []struct {
		name      string
		fg        string
		largeText bool
		want      bool
	}{
		{name: "black_normal", fg: "#000000", want: true},
		{name: "mid_gray_normal", fg: "#777777", want: false},
		{name: "mid_gray_large", fg: "#777777", largeText: true, want: true},
		{name: "dark_gray_normal", fg: "#595959", want: true},
		{name: "light_gray_large", fg: "#cccccc", largeText: true, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := MeetsAA(oklch.MustParse(test.fg), white, test.largeText); got != test.want {
				t.Fatalf("MeetsAA(%s on white, large=%t) = %t, want %t", test.fg, test.largeText, got, test.want)
			}
		})
	}
}

func TestAccessibleForegroundThreshold(t *testing.T) {
	tests := []struct {
		l    float64
		want oklch.Color
	}{
		{l: 0.95, want: NearBlack},
		{l: 0.61, want: NearBlack},
		{l: 0.60, want: NearWhite},
		{l: 0.2, want: NearWhite},
	}
	for _, test := range tests {
		if got := AccessibleForeground(oklch.New(test.l, 0.1, 200)); got != test.want {
			t.Fatalf("AccessibleForeground(l=%v) = %v, want %v", test.l, got, test.want)
		}
	}
}

func TestBestForegroundPicksHigherContrast(t *testing.T) {
	for _, l := range []float64{0.05, 0.3, 0.55, 0.65, 0.8, 0.99} {
		bg := oklch.New(l, 0.05, 120)
		got := BestForeground(bg)
		other := NearWhite
		if got == NearWhite {
			other = NearBlack
		}
		if oklch.ContrastRatio(got, bg) < oklch.ContrastRatio(other, bg) {
			t.Fatalf("BestForeground(l=%v) picked the lower-contrast candidate", l)
		}
	}
}

func TestCheckPreset(t *testing.T) {
	text := "oklch(0.150 0.000 0.00)"
	surface := "oklch(0.985 0.003 250.00)"
	colors := models.ThemeColors{
		Primary:    models.InteractiveColors{Default: surface, Hover: surface, Active: surface, Foreground: text},
		Secondary:  models.InteractiveColors{Default: surface, Hover: surface, Active: surface, Foreground: surface},
		Accent:     models.AccentColors{Default: surface, Hover: surface, Foreground: text},
		Background: models.SurfaceColors{Default: surface, Subtle: surface, Muted: surface},
		Foreground: models.TextColors{Default: text, Muted: text, Subtle: text},
		Border:     models.BorderColors{Default: surface, Strong: surface, Muted: surface},
	}
	preset := models.ThemePreset{ID: "t", Name: "T", Light: colors, Dark: colors}

	findings, err := CheckPreset(preset)
	if err != nil {
		t.Fatalf("CheckPreset() error = %v", err)
	}
	if len(findings) != 10 {
		t.Fatalf("CheckPreset() returned %d findings, want 10", len(findings))
	}
	if findings[0].Mode != models.ModeLight || findings[5].Mode != models.ModeDark {
		t.Fatalf("findings not ordered light then dark")
	}

	failures := Failures(findings)
	if len(failures) != 2 {
		t.Fatalf("Failures() = %d, want 2 (secondary pair in each mode)", len(failures))
	}
	for _, f := range failures {
		if f.Pair != "secondary.foreground on secondary.default" {
			t.Fatalf("unexpected failure %q", f.Pair)
		}
	}
}

func TestCheckPresetRejectsUnparseableColors(t *testing.T) {
	preset := models.ThemePreset{ID: "t", Name: "T"}
	if _, err := CheckPreset(preset); err == nil {
		t.Fatalf("CheckPreset() expected error for empty colors")
	}
}
