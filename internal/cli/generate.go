package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codr1/themesmith/internal/contrast"
	"github.com/codr1/themesmith/internal/export"
	"github.com/codr1/themesmith/internal/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a theme from a seed color",
	Long: `Generate a complete light and dark theme from one primary color.

Examples:
  themectl generate --primary "#3B82F6" --name "Ocean Blue"
  themectl generate -p "oklch(0.6 0.15 150)" -n Meadow --harmony triadic -f css -o meadow.css
  themectl generate -p "#F97316" -n Sunset --save --tags brand,warm`,
	RunE: runGenerate,
}

// Flags
var (
	generatePrimary     string
	generateName        string
	generateHarmony     string
	generateSecondary   string
	generateAccent      string
	generateDescription string
	generateIndustry    string
	generateFormat      string
	generateOutput      string
	generateSave        bool
	generateTags        []string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generatePrimary, "primary", "p", "", "Primary color as hex or oklch() (required)")
	generateCmd.Flags().StringVarP(&generateName, "name", "n", "", "Theme name (required)")
	generateCmd.Flags().StringVar(&generateHarmony, "harmony", "complementary", "Harmony: complementary, analogous, triadic, split-complementary")
	generateCmd.Flags().StringVar(&generateSecondary, "secondary", "", "Override the derived secondary color")
	generateCmd.Flags().StringVar(&generateAccent, "accent", "", "Override the derived accent color")
	generateCmd.Flags().StringVar(&generateDescription, "description", "", "Theme description")
	generateCmd.Flags().StringVar(&generateIndustry, "industry", "", "Industry label")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "json", "Output format: css, json, tailwind, tokens")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default: stdout)")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Save the theme to the configured store")
	generateCmd.Flags().StringSliceVar(&generateTags, "tags", nil, "Tags to attach when saving")

	_ = generateCmd.MarkFlagRequired("primary")
	_ = generateCmd.MarkFlagRequired("name")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	kind, err := parseHarmony(generateHarmony)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(generateFormat)
	if err != nil {
		return err
	}

	preset, err := generator.Generate(generator.Options{
		PrimaryColor:   generatePrimary,
		Name:           generateName,
		Description:    generateDescription,
		Industry:       generateIndustry,
		Harmony:        kind,
		SecondaryColor: generateSecondary,
		AccentColor:    generateAccent,
	})
	if err != nil {
		return err
	}

	findings, err := contrast.CheckPreset(preset)
	if err != nil {
		return err
	}
	for _, f := range contrast.Failures(findings) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s %s contrast %.2f:1 is below AA\n", f.Mode, f.Pair, f.Ratio)
	}

	body, err := export.Render(preset, format)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), generateOutput, body); err != nil {
		return err
	}

	if generateSave {
		services, err := openServices()
		if err != nil {
			return err
		}
		defer services.Close()
		stored := services.Store.Save(preset, generateTags...)
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved theme %s\n", stored.Theme.ID)
	}
	return nil
}
