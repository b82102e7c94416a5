// Package catalog holds the built-in theme presets. Presets are generated
// from embedded seeds at load time rather than stored as finished palettes.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codr1/themesmith/internal/generator"
	"github.com/codr1/themesmith/internal/harmony"
	"github.com/codr1/themesmith/internal/models"
)

//go:embed presets.yaml
var presetsYAML []byte

// Seed is one catalog entry before generation.
type Seed struct {
	generator.Options `yaml:",inline"`
	Default           bool `yaml:"default"`
}

type seedFile struct {
	Presets []Seed `yaml:"presets"`
}

type Catalog struct {
	presets   []models.ThemePreset
	byID      map[string]int
	defaultID string
}

// Load parses the embedded seeds.
func Load() (*Catalog, error) {
	return Parse(presetsYAML)
}

// Parse generates a catalog from seed YAML. Seeds must have unique ids and
// at most one may be marked default; without a marked default the first
// preset is the default.
func Parse(data []byte) (*Catalog, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("catalog has no presets")
	}

	c := &Catalog{
		presets: make([]models.ThemePreset, 0, len(file.Presets)),
		byID:    make(map[string]int, len(file.Presets)),
	}
	for i, seed := range file.Presets {
		if strings.TrimSpace(seed.Name) == "" {
			return nil, fmt.Errorf("preset %d: name is required", i+1)
		}
		if seed.Harmony != "" {
			kind, ok := harmony.ParseKind(string(seed.Harmony))
			if !ok {
				return nil, fmt.Errorf("preset %q: unknown harmony %q", seed.Name, seed.Harmony)
			}
			seed.Harmony = kind
		}

		preset, err := generator.Generate(seed.Options)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", seed.Name, err)
		}
		if _, exists := c.byID[preset.ID]; exists {
			return nil, fmt.Errorf("duplicate preset id %q", preset.ID)
		}

		if seed.Default {
			if c.defaultID != "" {
				return nil, fmt.Errorf("multiple default presets: %q and %q", c.defaultID, preset.ID)
			}
			c.defaultID = preset.ID
		}

		c.byID[preset.ID] = len(c.presets)
		c.presets = append(c.presets, preset)
	}
	if c.defaultID == "" {
		c.defaultID = c.presets[0].ID
	}
	return c, nil
}

// Presets returns the presets in file order.
func (c *Catalog) Presets() []models.ThemePreset {
	out := make([]models.ThemePreset, len(c.presets))
	copy(out, c.presets)
	return out
}

func (c *Catalog) Get(id string) (models.ThemePreset, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.ThemePreset{}, false
	}
	return c.presets[i], true
}

func (c *Catalog) Default() models.ThemePreset {
	return c.presets[c.byID[c.defaultID]]
}

func (c *Catalog) DefaultID() string {
	return c.defaultID
}
