package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as CSV files",
	Long: `Writes the catalog database back out as the three canonical CSV
files: veterinarians.csv, specialties.csv, and states.csv.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (default <data_dir>/export)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	imp, cleanup, err := catalogImporter()
	if err != nil {
		return err
	}
	defer cleanup()

	dir := exportDir
	if dir == "" {
		if cfg == nil {
			return errNoConfig
		}
		dir = filepath.Join(cfg.Build.DataDir, "export")
	}

	if err := imp.Export(cmd.Context(), dir); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Printf("Catalog exported to %s\n", dir)
	return nil
}
