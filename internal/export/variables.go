// Package export serializes theme presets to CSS custom properties, Tailwind
// configuration, W3C design tokens and JSON.
package export

import (
	"github.com/codr1/themesmith/internal/models"
)

// VariablePrefix starts every emitted custom property name.
const VariablePrefix = "--semantic-color-"

// Declaration is one CSS custom property.
type Declaration struct {
	Role  string
	Slot  string
	Name  string
	Value string
}

// secondary-active stays in the data model and the token/JSON exports but is
// not part of the CSS variable contract.
var omittedLeaves = map[string]bool{
	"secondary-active": true,
}

type alias struct {
	role, slot string
	sourceRole string
	sourceSlot string
}

// Compatibility aliases for component libraries that expect card/popover/
// muted/input/ring tokens.
var aliases = []alias{
	{role: "card", slot: "default", sourceRole: "background", sourceSlot: "default"},
	{role: "card", slot: "foreground", sourceRole: "foreground", sourceSlot: "default"},
	{role: "popover", slot: "default", sourceRole: "background", sourceSlot: "default"},
	{role: "popover", slot: "foreground", sourceRole: "foreground", sourceSlot: "default"},
	{role: "muted", slot: "default", sourceRole: "background", sourceSlot: "muted"},
	{role: "muted", slot: "foreground", sourceRole: "foreground", sourceSlot: "muted"},
	{role: "input", slot: "default", sourceRole: "border", sourceSlot: "default"},
	{role: "ring", slot: "default", sourceRole: "primary", sourceSlot: "default"},
}

// VariableName returns the custom property name for a role and slot.
func VariableName(role, slot string) string {
	return VariablePrefix + role + "-" + slot
}

// CanonicalDeclarations returns the canonical variables of one mode in
// contract order.
func CanonicalDeclarations(colors models.ThemeColors) []Declaration {
	leaves := colors.Leaves()
	decls := make([]Declaration, 0, len(leaves))
	for _, leaf := range leaves {
		if omittedLeaves[leaf.Role+"-"+leaf.Slot] {
			continue
		}
		decls = append(decls, Declaration{
			Role:  leaf.Role,
			Slot:  leaf.Slot,
			Name:  VariableName(leaf.Role, leaf.Slot),
			Value: leaf.Value,
		})
	}
	return decls
}

// AliasDeclarations returns the compatibility aliases. Their values reference
// the canonical variables so they follow mode switches without re-emission.
func AliasDeclarations() []Declaration {
	decls := make([]Declaration, 0, len(aliases))
	for _, a := range aliases {
		decls = append(decls, Declaration{
			Role:  a.role,
			Slot:  a.slot,
			Name:  VariableName(a.role, a.slot),
			Value: "var(" + VariableName(a.sourceRole, a.sourceSlot) + ")",
		})
	}
	return decls
}

// CanonicalVariableNames lists the canonical variable names, the stability
// contract for downstream consumers.
func CanonicalVariableNames() []string {
	decls := CanonicalDeclarations(models.ThemeColors{})
	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name)
	}
	return names
}
