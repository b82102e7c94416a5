package export

import (
	"fmt"
	"strings"

	"github.com/codr1/themesmith/internal/models"
)

// ClassName returns the theme class for id, without the leading dot.
func ClassName(id string) string {
	return "theme-" + id
}

// commentText makes s safe inside a /* */ comment. A "*/" in user text
// would otherwise end the comment and turn the rest into live CSS.
func commentText(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}

// ThemeCSS emits a light block keyed on .theme-{id} and a dark block matching
// both .theme-{id}.dark and a .dark descendant.
func ThemeCSS(preset models.ThemePreset) string {
	class := "." + ClassName(preset.ID)

	var sb strings.Builder
	fmt.Fprintf(&sb, "/* %s */\n", commentText(preset.Name))
	writeBlock(&sb, class, preset.Light)
	sb.WriteString("\n")
	writeBlock(&sb, fmt.Sprintf("%s.dark,\n%s .dark", class, class), preset.Dark)
	return sb.String()
}

func writeBlock(sb *strings.Builder, selector string, colors models.ThemeColors) {
	sb.WriteString(selector)
	sb.WriteString(" {\n")
	for _, d := range CanonicalDeclarations(colors) {
		fmt.Fprintf(sb, "  %s: %s;\n", d.Name, d.Value)
	}
	sb.WriteString("\n  /* Compatibility aliases */\n")
	for _, d := range AliasDeclarations() {
		fmt.Fprintf(sb, "  %s: %s;\n", d.Name, d.Value)
	}
	sb.WriteString("}\n")
}

// AllThemesCSS emits a documentation header followed by every preset's CSS,
// in slice order.
func AllThemesCSS(presets []models.ThemePreset) string {
	var sb strings.Builder
	sb.WriteString("/**\n")
	sb.WriteString(" * Generated theme styles\n")
	sb.WriteString(" *\n")
	sb.WriteString(" * Apply a theme by adding its class to a container, and add .dark for dark mode.\n")
	sb.WriteString(" *\n")
	sb.WriteString(" * Themes:\n")
	for _, p := range presets {
		fmt.Fprintf(&sb, " * - %s: %s (%s)\n", commentText(p.ID), commentText(p.Name), commentText(p.Industry))
	}
	sb.WriteString(" */\n")

	for _, p := range presets {
		sb.WriteString("\n")
		sb.WriteString(ThemeCSS(p))
	}
	return sb.String()
}
