package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codr1/themesmith/internal/models"
)

type designToken struct {
	Value       string `json:"$value"`
	Type        string `json:"$type"`
	Description string `json:"$description"`
}

// Tokens emits W3C design tokens: mode -> role -> slot -> token.
func Tokens(preset models.ThemePreset) (string, error) {
	doc := map[string]any{
		"$description": fmt.Sprintf("%s design tokens", preset.Name),
	}
	for _, mode := range []models.Mode{models.ModeLight, models.ModeDark} {
		roles := map[string]map[string]designToken{}
		for _, leaf := range preset.Colors(mode).Leaves() {
			if roles[leaf.Role] == nil {
				roles[leaf.Role] = map[string]designToken{}
			}
			roles[leaf.Role][leaf.Slot] = designToken{
				Value:       leaf.Value,
				Type:        "color",
				Description: fmt.Sprintf("%s %s (%s mode)", titleCase(leaf.Role), leaf.Slot, mode),
			}
		}
		doc[string(mode)] = roles
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode design tokens: %w", err)
	}
	return string(data) + "\n", nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
