// internal/models/themes.go
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/codr1/themesmith/internal/oklch"
)

const maxThemeNameLength = 100
const fallbackThemeID = "custom-theme"

var themeIDRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
var slugSeparatorRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Mode selects the light or dark half of a preset.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark
}

// ParseMode accepts "light" or "dark", case-insensitively.
func ParseMode(raw string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if !mode.Valid() {
		return "", fmt.Errorf("color mode must be %q or %q, got %q", ModeLight, ModeDark, raw)
	}
	return mode, nil
}

type InteractiveColors struct {
	Default    string `json:"default"`
	Hover      string `json:"hover"`
	Active     string `json:"active"`
	Foreground string `json:"foreground"`
}

type AccentColors struct {
	Default    string `json:"default"`
	Hover      string `json:"hover"`
	Foreground string `json:"foreground"`
}

type SurfaceColors struct {
	Default string `json:"default"`
	Subtle  string `json:"subtle"`
	Muted   string `json:"muted"`
}

type TextColors struct {
	Default string `json:"default"`
	Muted   string `json:"muted"`
	Subtle  string `json:"subtle"`
}

type BorderColors struct {
	Default string `json:"default"`
	Strong  string `json:"strong"`
	Muted   string `json:"muted"`
}

// ThemeColors is the fixed role map of one color mode. Every leaf is a
// serialized color string.
type ThemeColors struct {
	Primary    InteractiveColors `json:"primary"`
	Secondary  InteractiveColors `json:"secondary"`
	Accent     AccentColors      `json:"accent"`
	Background SurfaceColors     `json:"background"`
	Foreground TextColors        `json:"foreground"`
	Border     BorderColors      `json:"border"`
}

// ColorLeaf is one role/slot pair of a ThemeColors value.
type ColorLeaf struct {
	Role  string
	Slot  string
	Value string
}

// Leaves returns every leaf in canonical role order.
func (c ThemeColors) Leaves() []ColorLeaf {
	return []ColorLeaf{
		{Role: "primary", Slot: "default", Value: c.Primary.Default},
		{Role: "primary", Slot: "hover", Value: c.Primary.Hover},
		{Role: "primary", Slot: "active", Value: c.Primary.Active},
		{Role: "primary", Slot: "foreground", Value: c.Primary.Foreground},
		{Role: "secondary", Slot: "default", Value: c.Secondary.Default},
		{Role: "secondary", Slot: "hover", Value: c.Secondary.Hover},
		{Role: "secondary", Slot: "active", Value: c.Secondary.Active},
		{Role: "secondary", Slot: "foreground", Value: c.Secondary.Foreground},
		{Role: "accent", Slot: "default", Value: c.Accent.Default},
		{Role: "accent", Slot: "hover", Value: c.Accent.Hover},
		{Role: "accent", Slot: "foreground", Value: c.Accent.Foreground},
		{Role: "background", Slot: "default", Value: c.Background.Default},
		{Role: "background", Slot: "subtle", Value: c.Background.Subtle},
		{Role: "background", Slot: "muted", Value: c.Background.Muted},
		{Role: "foreground", Slot: "default", Value: c.Foreground.Default},
		{Role: "foreground", Slot: "muted", Value: c.Foreground.Muted},
		{Role: "foreground", Slot: "subtle", Value: c.Foreground.Subtle},
		{Role: "border", Slot: "default", Value: c.Border.Default},
		{Role: "border", Slot: "strong", Value: c.Border.Strong},
		{Role: "border", Slot: "muted", Value: c.Border.Muted},
	}
}

type Psychology struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Overall   string `json:"overall"`
}

// ThemePreset is an immutable two-mode theme definition. Changes produce a new
// value; nothing mutates a preset in place.
type ThemePreset struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Industry    string      `json:"industry"`
	Psychology  Psychology  `json:"psychology"`
	Light       ThemeColors `json:"light"`
	Dark        ThemeColors `json:"dark"`
}

// Colors returns the half of the preset for mode. Anything but dark is light.
func (p ThemePreset) Colors(mode Mode) ThemeColors {
	if mode == ModeDark {
		return p.Dark
	}
	return p.Light
}

// StoredTheme wraps a preset with persistence metadata.
type StoredTheme struct {
	Theme      ThemePreset `json:"theme"`
	CreatedAt  time.Time   `json:"createdAt"`
	ModifiedAt time.Time   `json:"modifiedAt"`
	Tags       []string    `json:"tags,omitempty"`
	IsFavorite bool        `json:"isFavorite,omitempty"`
}

// Slugify lowercases name, collapses runs of anything outside [a-z0-9] into a
// single '-' and trims leading and trailing dashes.
func Slugify(name string) string {
	slug := slugSeparatorRegex.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallbackThemeID
	}
	return slug
}

// IsThemeID reports whether id is a URL and CSS safe slug.
func IsThemeID(id string) bool {
	return themeIDRegex.MatchString(id)
}

func (p ThemePreset) Validate() error {
	trimmedName := strings.TrimSpace(p.Name)
	if trimmedName == "" {
		return fmt.Errorf("name is required")
	}
	if len(trimmedName) > maxThemeNameLength {
		return fmt.Errorf("name must be %d characters or fewer", maxThemeNameLength)
	}
	if !IsThemeID(p.ID) {
		return fmt.Errorf("id %q must be lowercase letters, numbers, and single dashes", p.ID)
	}

	modes := []struct {
		mode   Mode
		colors ThemeColors
	}{
		{mode: ModeLight, colors: p.Light},
		{mode: ModeDark, colors: p.Dark},
	}
	for _, m := range modes {
		for _, leaf := range m.colors.Leaves() {
			if _, err := oklch.ParseAny(leaf.Value); err != nil {
				return fmt.Errorf("%s %s.%s: %w", m.mode, leaf.Role, leaf.Slot, err)
			}
		}
	}

	return nil
}
