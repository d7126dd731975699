package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

var importKind string

var importCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Import a CSV file into the catalog",
	Long: `Validates a CSV file and persists it into the catalog database.

Practice rows go through the full normalize and validate pipeline:
rows with errors are rejected, rows with only warnings are accepted.
Category and region imports replace the reference data wholesale.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importKind, "kind", "k", "practices",
		"record kind: practices, categories, or regions")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	imp, cleanup, err := catalogImporter()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	var report *domain.ImportReport
	switch importKind {
	case "practices":
		report, err = imp.ImportPractices(ctx, args[0])
	case "categories":
		report, err = imp.ImportCategories(ctx, args[0])
	case "regions":
		report, err = imp.ImportRegions(ctx, args[0])
	default:
		return fmt.Errorf("unknown record kind %q", importKind)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if report.Rejected > 0 {
		printFindings(cmd, report.Validation.Errors())
	}
	if report.BatchID != "" {
		cmd.Printf("Batch %s: %d accepted, %d rejected\n",
			report.BatchID, report.Accepted, report.Rejected)
	} else {
		cmd.Printf("Replaced %s: %d records\n", importKind, report.Accepted)
	}
	if warns := len(report.Validation.Warnings()); warns > 0 {
		cmd.Printf("%d warnings recorded\n", warns)
	}
	return nil
}
