package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codr1/themesmith/internal/export"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage saved themes",
	Long: `Manage the saved theme collection of the configured store.

Without --config the store lives in memory and is discarded on exit, so
these commands are normally run with a sqlite configuration.`,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved themes, most recently modified first",
	Args:  cobra.NoArgs,
	RunE:  runStoreList,
}

var storeSaveCmd = &cobra.Command{
	Use:   "save <theme.json>",
	Short: "Save a theme from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreSave,
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreDelete,
}

var storeFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle the favorite flag of a saved theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreFavorite,
}

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every saved theme as a backup document",
	Args:  cobra.NoArgs,
	RunE:  runStoreExport,
}

var storeImportCmd = &cobra.Command{
	Use:   "import <backup.json>",
	Short: "Import themes from a backup document",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreImport,
}

var storeActiveCmd = &cobra.Command{
	Use:   "active [id]",
	Short: "Show or set the active theme",
	Long: `Show the active theme, or set it when an id is given.
Use --clear to unset it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStoreActive,
}

// Flags
var (
	storeFavoritesOnly bool
	storeSaveTags      []string
	storeExportOutput  string
	storeActiveClear   bool
)

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeListCmd, storeSaveCmd, storeDeleteCmd, storeFavoriteCmd,
		storeExportCmd, storeImportCmd, storeActiveCmd)

	storeListCmd.Flags().BoolVar(&storeFavoritesOnly, "favorites", false, "Only list favorites")
	storeSaveCmd.Flags().StringSliceVar(&storeSaveTags, "tags", nil, "Tags to attach")
	storeExportCmd.Flags().StringVarP(&storeExportOutput, "output", "o", "", "Output file (default: stdout)")
	storeActiveCmd.Flags().BoolVar(&storeActiveClear, "clear", false, "Clear the active theme")
}

func runStoreList(cmd *cobra.Command, args []string) error {
	services, err := openServices()
	if err != nil {
		return err
	}
	defer services.Close()

	themes := services.Store.GetAll()
	if storeFavoritesOnly {
		themes = services.Store.Favorites()
	}
	active, _ := services.Store.Active()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMODIFIED\tTAGS\tFLAGS")
	for _, t := range themes {
		var flags []string
		if t.IsFavorite {
			flags = append(flags, "favorite")
		}
		if t.Theme.ID == active {
			flags = append(flags, "active")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.Theme.ID, t.Theme.Name, t.ModifiedAt.Format("2006-01-02 15:04"),
			strings.Join(t.Tags, ","), strings.Join(flags, ","))
	}
	return w.Flush()
}

func runStoreSave(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	preset, err := export.ParseJSON(data)
	if err != nil {
		return err
	}

	services, err := openServices()
	if err != nil {
		return err
	}
	defer services.Close()

	stored := services.Store.Save(preset, storeSaveTags...)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved theme %s\n", stored.Theme.ID)
	return nil
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	services, err := openServices()
	if err != nil {
		return err
	}
	defer services.Close()

	if !services.Store.Delete(args[0]) {
		return fmt.Errorf("theme not found: %s", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted theme %s\n", args[0])
	return nil
}

func runStoreFavorite(cmd *cobra.Command, args []string) error {
	services, err := openServices()
	if err != nil {
		return err
	}
	defer services.Close()

	isFavorite, ok := services.Store.ToggleFavorite(args[0])
	if !ok {
		return fmt.Errorf("theme not found: %s", args[0])
	}
	state := "removed from"
	if isFavorite {
		state = "added to"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Theme %s %s favorites\n", args[0], state)
	return nil
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	services, err := openServices()
	if err != nil {
		return err
	}
	defer services.Close()

	data, err := services.Store.ExportAll()
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), storeExportOutput, string(data)+"\n")
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	services, err := openServices()
	if err != nil {
		return err
	}
	defer services.Close()

	n, err := services.Store.ImportAll(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d themes\n", n)
	return nil
}

func runStoreActive(cmd *cobra.Command, args []string) error {
	services, err := openServices()
	if err != nil {
		return err
	}
	defer services.Close()

	out := cmd.OutOrStdout()
	switch {
	case storeActiveClear:
		services.Store.SetActive("")
		fmt.Fprintln(out, "Active theme cleared")
	case len(args) == 1:
		if !services.Store.SetActive(args[0]) {
			return fmt.Errorf("theme not found: %s", args[0])
		}
		fmt.Fprintf(out, "Active theme set to %s\n", args[0])
	default:
		stored, ok := services.Store.ActiveTheme()
		if !ok {
			fmt.Fprintln(out, "No active theme")
			return nil
		}
		fmt.Fprintf(out, "%s\t%s\n", stored.Theme.ID, stored.Theme.Name)
	}
	return nil
}

