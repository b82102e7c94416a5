// Package generator assembles complete light and dark theme presets from a
// single seed color.
package generator

import (
	"fmt"
	"strings"

	"github.com/codr1/themesmith/internal/contrast"
	"github.com/codr1/themesmith/internal/harmony"
	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/oklch"
)

const (
	defaultIndustry = "Custom"
)

// Options describes a theme to generate. Only PrimaryColor and Name are
// required; SecondaryColor and AccentColor override the derived colors.
type Options struct {
	PrimaryColor   string       `json:"primaryColor" yaml:"primary"`
	Name           string       `json:"name" yaml:"name"`
	Description    string       `json:"description,omitempty" yaml:"description"`
	Industry       string       `json:"industry,omitempty" yaml:"industry"`
	Harmony        harmony.Kind `json:"harmony,omitempty" yaml:"harmony"`
	SecondaryColor string       `json:"secondaryColor,omitempty" yaml:"secondary"`
	AccentColor    string       `json:"accentColor,omitempty" yaml:"accent"`
}

// Fixed lightness stops for the primary family.
var (
	lightPrimaryStops = [3]float64{0.52, 0.45, 0.38}
	darkPrimaryStops  = [3]float64{0.62, 0.70, 0.78}
)

// Generate builds a preset from opts. It fails only when one of the color
// strings cannot be parsed; otherwise it is pure and deterministic.
func Generate(opts Options) (models.ThemePreset, error) {
	primary, err := oklch.ParseAny(opts.PrimaryColor)
	if err != nil {
		return models.ThemePreset{}, fmt.Errorf("primary color: %w", err)
	}

	secondary := harmony.Secondary(primary, opts.Harmony)
	if strings.TrimSpace(opts.SecondaryColor) != "" {
		secondary, err = oklch.ParseAny(opts.SecondaryColor)
		if err != nil {
			return models.ThemePreset{}, fmt.Errorf("secondary color: %w", err)
		}
	}

	accent := harmony.Accent(primary, secondary)
	if strings.TrimSpace(opts.AccentColor) != "" {
		accent, err = oklch.ParseAny(opts.AccentColor)
		if err != nil {
			return models.ThemePreset{}, fmt.Errorf("accent color: %w", err)
		}
	}

	description := strings.TrimSpace(opts.Description)
	if description == "" {
		description = fmt.Sprintf("Generated from %s", strings.TrimSpace(opts.PrimaryColor))
	}
	industry := strings.TrimSpace(opts.Industry)
	if industry == "" {
		industry = defaultIndustry
	}

	primaryLabel := harmony.PsychologyForHue(primary.H)
	secondaryLabel := harmony.PsychologyForHue(secondary.H)

	return models.ThemePreset{
		ID:          models.Slugify(opts.Name),
		Name:        strings.TrimSpace(opts.Name),
		Description: description,
		Industry:    industry,
		Psychology: models.Psychology{
			Primary:   primaryLabel,
			Secondary: secondaryLabel,
			Overall:   overallPsychology(primaryLabel, secondaryLabel),
		},
		Light: lightColors(primary, accent),
		Dark:  darkColors(primary, accent),
	}, nil
}

func overallPsychology(primary, secondary string) string {
	if primary == secondary {
		return primary
	}
	return fmt.Sprintf("%s, balanced by %s", primary, strings.ToLower(secondary))
}

// lightColors builds the light half. The secondary family is a tinted-gray ramp
// keyed on the primary hue, not the harmonic secondary color.
func lightColors(primary, accent oklch.Color) models.ThemeColors {
	neutral := oklch.NeutralScale(primary.H)
	primaryDefault := withLightness(primary, lightPrimaryStops[0])

	return models.ThemeColors{
		Primary: models.InteractiveColors{
			Default:    primaryDefault.String(),
			Hover:      withLightness(primary, lightPrimaryStops[1]).String(),
			Active:     withLightness(primary, lightPrimaryStops[2]).String(),
			Foreground: contrast.AccessibleForeground(primaryDefault).String(),
		},
		Secondary: models.InteractiveColors{
			Default:    neutral[100].String(),
			Hover:      neutral[200].String(),
			Active:     neutral[300].String(),
			Foreground: neutral[900].String(),
		},
		Accent: models.AccentColors{
			Default:    oklch.New(0.92, accent.C*0.3, accent.H).String(),
			Hover:      oklch.New(0.88, accent.C*0.4, accent.H).String(),
			Foreground: oklch.New(0.35, accent.C, accent.H).String(),
		},
		Background: models.SurfaceColors{
			Default: neutral[50].String(),
			Subtle:  neutral[100].String(),
			Muted:   neutral[200].String(),
		},
		Foreground: models.TextColors{
			Default: neutral[950].String(),
			Muted:   neutral[600].String(),
			Subtle:  neutral[500].String(),
		},
		Border: models.BorderColors{
			Default: neutral[200].String(),
			Strong:  neutral[300].String(),
			Muted:   neutral[100].String(),
		},
	}
}

// darkColors mirrors lightColors from the dark end of the neutral ramp. The
// primary gets brighter on hover here, unlike light mode.
func darkColors(primary, accent oklch.Color) models.ThemeColors {
	neutral := oklch.NeutralScale(primary.H)
	primaryDefault := withLightness(primary, darkPrimaryStops[0])

	return models.ThemeColors{
		Primary: models.InteractiveColors{
			Default:    primaryDefault.String(),
			Hover:      withLightness(primary, darkPrimaryStops[1]).String(),
			Active:     withLightness(primary, darkPrimaryStops[2]).String(),
			Foreground: contrast.AccessibleForeground(primaryDefault).String(),
		},
		Secondary: models.InteractiveColors{
			Default:    neutral[800].String(),
			Hover:      neutral[700].String(),
			Active:     neutral[600].String(),
			Foreground: neutral[100].String(),
		},
		Accent: models.AccentColors{
			Default:    oklch.New(0.30, accent.C*0.4, accent.H).String(),
			Hover:      oklch.New(0.35, accent.C*0.5, accent.H).String(),
			Foreground: oklch.New(0.88, accent.C*0.6, accent.H).String(),
		},
		Background: models.SurfaceColors{
			Default: neutral[950].String(),
			Subtle:  neutral[900].String(),
			Muted:   neutral[800].String(),
		},
		Foreground: models.TextColors{
			Default: neutral[50].String(),
			Muted:   neutral[400].String(),
			Subtle:  neutral[500].String(),
		},
		Border: models.BorderColors{
			Default: neutral[800].String(),
			Strong:  neutral[700].String(),
			Muted:   neutral[900].String(),
		},
	}
}

func withLightness(c oklch.Color, l float64) oklch.Color {
	return oklch.New(l, c.C, c.H)
}
