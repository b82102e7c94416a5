package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codr1/themesmith/internal/catalog"
	"github.com/codr1/themesmith/internal/export"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the built-in theme presets",
	Long: `List the built-in presets, or print them as one stylesheet with --css.

Examples:
  themectl catalog
  themectl catalog --css -o themes.css`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

// Flags
var (
	catalogCSS    bool
	catalogOutput string
)

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().BoolVar(&catalogCSS, "css", false, "Print every preset as CSS")
	catalogCmd.Flags().StringVarP(&catalogOutput, "output", "o", "", "Output file for --css (default: stdout)")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	if catalogCSS {
		return writeOutput(cmd.OutOrStdout(), catalogOutput, export.AllThemesCSS(cat.Presets()))
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tINDUSTRY\tPRIMARY\tDEFAULT")
	for _, p := range cat.Presets() {
		def := ""
		if p.ID == cat.DefaultID() {
			def = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Industry, p.Light.Primary.Default, def)
	}
	return w.Flush()
}
