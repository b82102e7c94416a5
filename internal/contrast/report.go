package contrast

import (
	"fmt"

	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/oklch"
)

// Finding is the contrast result for one foreground/background pair.
type Finding struct {
	Mode          models.Mode `json:"mode"`
	Pair          string      `json:"pair"`
	Foreground    string      `json:"foreground"`
	Background    string      `json:"background"`
	Ratio         float64     `json:"ratio"`
	PassesAA      bool        `json:"passesAA"`
	PassesAALarge bool        `json:"passesAALarge"`
}

type rolePair struct {
	name string
	fg   func(models.ThemeColors) string
	bg   func(models.ThemeColors) string
}

var checkedPairs = []rolePair{
	{
		name: "primary.foreground on primary.default",
		fg:   func(c models.ThemeColors) string { return c.Primary.Foreground },
		bg:   func(c models.ThemeColors) string { return c.Primary.Default },
	},
	{
		name: "secondary.foreground on secondary.default",
		fg:   func(c models.ThemeColors) string { return c.Secondary.Foreground },
		bg:   func(c models.ThemeColors) string { return c.Secondary.Default },
	},
	{
		name: "accent.foreground on accent.default",
		fg:   func(c models.ThemeColors) string { return c.Accent.Foreground },
		bg:   func(c models.ThemeColors) string { return c.Accent.Default },
	},
	{
		name: "foreground.default on background.default",
		fg:   func(c models.ThemeColors) string { return c.Foreground.Default },
		bg:   func(c models.ThemeColors) string { return c.Background.Default },
	},
	{
		name: "foreground.muted on background.default",
		fg:   func(c models.ThemeColors) string { return c.Foreground.Muted },
		bg:   func(c models.ThemeColors) string { return c.Background.Default },
	},
}

// CheckPreset evaluates the role pairs a UI renders as text, light mode first.
func CheckPreset(preset models.ThemePreset) ([]Finding, error) {
	findings := make([]Finding, 0, 2*len(checkedPairs))
	for _, mode := range []models.Mode{models.ModeLight, models.ModeDark} {
		colors := preset.Colors(mode)
		for _, pair := range checkedPairs {
			fgRaw, bgRaw := pair.fg(colors), pair.bg(colors)
			fg, err := oklch.ParseAny(fgRaw)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", mode, pair.name, err)
			}
			bg, err := oklch.ParseAny(bgRaw)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", mode, pair.name, err)
			}
			ratio := oklch.ContrastRatio(fg, bg)
			findings = append(findings, Finding{
				Mode:          mode,
				Pair:          pair.name,
				Foreground:    fgRaw,
				Background:    bgRaw,
				Ratio:         ratio,
				PassesAA:      ratio >= MinRatioNormalText,
				PassesAALarge: ratio >= MinRatioLargeText,
			})
		}
	}
	return findings, nil
}

// Failures filters findings down to pairs below the large-text threshold.
func Failures(findings []Finding) []Finding {
	var failed []Finding
	for _, f := range findings {
		if !f.PassesAALarge {
			failed = append(failed, f)
		}
	}
	return failed
}
