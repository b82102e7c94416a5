package export

import (
	"encoding/json"
	"fmt"

	"github.com/codr1/themesmith/internal/models"
)

const (
	ThemeSchema        = "urn:themesmith:theme-preset"
	ThemeSchemaVersion = "1.0"
)

type themeDocument struct {
	Schema      string             `json:"$schema"`
	Version     string             `json:"version"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Industry    string             `json:"industry"`
	Psychology  models.Psychology  `json:"psychology"`
	Light       models.ThemeColors `json:"light"`
	Dark        models.ThemeColors `json:"dark"`
}

// JSON emits the portable preset document.
func JSON(preset models.ThemePreset) (string, error) {
	doc := themeDocument{
		Schema:      ThemeSchema,
		Version:     ThemeSchemaVersion,
		Name:        preset.Name,
		Description: preset.Description,
		Industry:    preset.Industry,
		Psychology:  preset.Psychology,
		Light:       preset.Light,
		Dark:        preset.Dark,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode theme document: %w", err)
	}
	return string(data) + "\n", nil
}

// ParseJSON reads a document produced by JSON back into a preset. The id is
// re-derived from the name.
func ParseJSON(data []byte) (models.ThemePreset, error) {
	var doc themeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.ThemePreset{}, fmt.Errorf("decode theme document: %w", err)
	}
	preset := models.ThemePreset{
		ID:          models.Slugify(doc.Name),
		Name:        doc.Name,
		Description: doc.Description,
		Industry:    doc.Industry,
		Psychology:  doc.Psychology,
		Light:       doc.Light,
		Dark:        doc.Dark,
	}
	if err := preset.Validate(); err != nil {
		return models.ThemePreset{}, fmt.Errorf("invalid theme document: %w", err)
	}
	return preset, nil
}
