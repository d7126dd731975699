package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static site",
	Long: `Fetches records through the source fallback chain, aggregates them
into the directory, renders every page, and promotes the finished tree
into the output directory. A failed build leaves the previous site
untouched.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	b, cleanup, err := siteBuilder()
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := b.Build(cmd.Context())
	if err != nil {
		if report != nil {
			printAttempts(cmd, report.Attempts)
		}
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Site built from %s in %s\n", report.Source, report.Duration.Round(time.Millisecond))
	cmd.Printf("  %d practices, %d categories, %d regions\n",
		report.Practices, report.Categories, report.Regions)
	cmd.Printf("  %d pages and %d artifacts in %s\n",
		report.Pages, report.Artifacts, report.OutputDir)

	if verbose {
		printAttempts(cmd, report.Attempts)
	}
	return nil
}

// printAttempts lists every source attempt in chain order.
func printAttempts(cmd *cobra.Command, attempts []domain.SourceAttempt) {
	for _, a := range attempts {
		cmd.Printf("  %s\n", styled(dimStyle, a.String()))
	}
}
