package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codr1/themesmith/internal/contrast"
	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/oklch"
)

var previewCmd = &cobra.Command{
	Use:   "preview <color|theme-id>",
	Short: "Print terminal swatches for a theme",
	Long: `Print truecolor swatches for every color role of a theme.

The argument is a seed color, a stored theme id or a catalog preset id.

Examples:
  themectl preview "#3B82F6"
  themectl preview forest-trail --mode dark`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

var checkCmd = &cobra.Command{
	Use:   "check <color|theme-id>",
	Short: "Report WCAG contrast for a theme's role pairs",
	Long: `Report the contrast ratio of each foreground/background pair a theme
renders, in both modes. With --strict the command fails when any pair is
below WCAG AA for normal text.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// Flags
var (
	previewMode    string
	previewHarmony string
	checkStrict    bool
	checkHarmony   string
)

func init() {
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(checkCmd)

	previewCmd.Flags().StringVarP(&previewMode, "mode", "m", "both", "Mode to show: light, dark, both")
	previewCmd.Flags().StringVar(&previewHarmony, "harmony", "complementary", "Harmony used when the argument is a color")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Fail when any pair is below AA")
	checkCmd.Flags().StringVar(&checkHarmony, "harmony", "complementary", "Harmony used when the argument is a color")
}

func runPreview(cmd *cobra.Command, args []string) error {
	var modes []models.Mode
	switch strings.ToLower(previewMode) {
	case "both", "":
		modes = []models.Mode{models.ModeLight, models.ModeDark}
	default:
		mode, err := models.ParseMode(previewMode)
		if err != nil {
			return err
		}
		modes = []models.Mode{mode}
	}

	kind, err := parseHarmony(previewHarmony)
	if err != nil {
		return err
	}

	services, err := openServices()
	if err != nil {
		return err
	}
	defer services.Close()

	preset, err := resolvePreset(services, args[0], kind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	title := color.New(color.Bold)
	title.Fprintf(out, "%s", preset.Name)
	fmt.Fprintf(out, "  %s\n", preset.Psychology.Overall)

	for _, mode := range modes {
		fmt.Fprintf(out, "\n%s\n", strings.ToUpper(string(mode)))
		if err := printSwatches(out, preset.Colors(mode)); err != nil {
			return err
		}
	}
	return nil
}

func printSwatches(out io.Writer, colors models.ThemeColors) error {
	for _, leaf := range colors.Leaves() {
		c, err := oklch.ParseAny(leaf.Value)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", leaf.Role, leaf.Slot, err)
		}
		r, g, b := c.ToSRGB().RGB255()
		fr, fg, fb := contrast.AccessibleForeground(c).ToSRGB().RGB255()
		swatch := color.BgRGB(int(r), int(g), int(b)).AddRGB(int(fr), int(fg), int(fb))
		swatch.Fprintf(out, " %-8s ", c.Hex())
		fmt.Fprintf(out, " %-22s %s\n", leaf.Role+"."+leaf.Slot, leaf.Value)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	kind, err := parseHarmony(checkHarmony)
	if err != nil {
		return err
	}

	services, err := openServices()
	if err != nil {
		return err
	}
	defer services.Close()

	preset, err := resolvePreset(services, args[0], kind)
	if err != nil {
		return err
	}

	findings, err := contrast.CheckPreset(preset)
	if err != nil {
		return err
	}

	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tPAIR\tRATIO\tAA\tAA LARGE")
	for _, f := range findings {
		aa, large := fail("fail"), fail("fail")
		if f.PassesAA {
			aa = pass("pass")
		}
		if f.PassesAALarge {
			large = pass("pass")
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f:1\t%s\t%s\n", f.Mode, f.Pair, f.Ratio, aa, large)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failures := contrast.Failures(findings); checkStrict && len(failures) > 0 {
		return fmt.Errorf("%d of %d pairs fail WCAG AA", len(failures), len(findings))
	}
	return nil
}
