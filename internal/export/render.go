package export

import (
	"fmt"
	"strings"

	"github.com/codr1/themesmith/internal/models"
)

// Format selects an export serialization.
type Format string

const (
	FormatCSS      Format = "css"
	FormatJSON     Format = "json"
	FormatTailwind Format = "tailwind"
	FormatTokens   Format = "tokens"
)

var Formats = []Format{FormatCSS, FormatJSON, FormatTailwind, FormatTokens}

func ParseFormat(raw string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(raw)))
	for _, f := range Formats {
		if f == format {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q (want css, json, tailwind, or tokens)", raw)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSS:
		return "text/css; charset=utf-8"
	case FormatTailwind:
		return "text/javascript; charset=utf-8"
	default:
		return "application/json"
	}
}

// FileName returns a conventional download name for a preset in this format.
func (f Format) FileName(id string) string {
	switch f {
	case FormatCSS:
		return id + ".css"
	case FormatTailwind:
		return "tailwind." + id + ".js"
	case FormatTokens:
		return id + ".tokens.json"
	default:
		return id + ".json"
	}
}

// Render serializes preset in the given format.
func Render(preset models.ThemePreset, format Format) (string, error) {
	switch format {
	case FormatCSS:
		return ThemeCSS(preset), nil
	case FormatJSON:
		return JSON(preset)
	case FormatTailwind:
		return Tailwind(preset), nil
	case FormatTokens:
		return Tokens(preset)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}
