package export

import (
	"fmt"
	"strings"

	"github.com/codr1/themesmith/internal/models"
)

type roleGroup struct {
	role  string
	decls []Declaration
}

func groupByRole(decls []Declaration) []roleGroup {
	var groups []roleGroup
	index := map[string]int{}
	for _, d := range decls {
		i, ok := index[d.Role]
		if !ok {
			i = len(groups)
			index[d.Role] = i
			groups = append(groups, roleGroup{role: d.Role})
		}
		groups[i].decls = append(groups[i].decls, d)
	}
	return groups
}

// Tailwind emits a tailwind.config.js snippet whose colors reference the CSS
// variables from ThemeCSS. The snippet is mode-agnostic; the .dark class
// switches the variables underneath it.
func Tailwind(preset models.ThemePreset) string {
	decls := append(CanonicalDeclarations(preset.Light), AliasDeclarations()...)

	var sb strings.Builder
	fmt.Fprintf(&sb, "// Tailwind configuration for the %q theme.\n", preset.Name)
	fmt.Fprintf(&sb, "// Add class %q to the root element, plus \"dark\" for dark mode.\n", ClassName(preset.ID))
	sb.WriteString("/** @type {import('tailwindcss').Config} */\n")
	sb.WriteString("module.exports = {\n")
	sb.WriteString("  darkMode: 'class',\n")
	sb.WriteString("  theme: {\n")
	sb.WriteString("    extend: {\n")
	sb.WriteString("      colors: {\n")
	for _, group := range groupByRole(decls) {
		fmt.Fprintf(&sb, "        %s: {\n", group.role)
		for _, d := range group.decls {
			key := d.Slot
			if key == "default" {
				key = "DEFAULT"
			}
			fmt.Fprintf(&sb, "          %s: 'var(%s)',\n", key, d.Name)
		}
		sb.WriteString("        },\n")
	}
	sb.WriteString("      },\n")
	sb.WriteString("    },\n")
	sb.WriteString("  },\n")
	sb.WriteString("};\n")
	return sb.String()
}
