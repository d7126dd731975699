package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

var (
	geocodeLimit  int
	geocodeDryRun bool
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Fill missing practice coordinates",
	Long: `Geocodes catalog practices that have an address but no coordinates.
Results are cached on disk and lookups are rate limited, so reruns only
pay for addresses not seen before.

With --dry-run the practices that would be looked up are listed and
nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runGeocode,
}

func init() {
	geocodeCmd.Flags().IntVarP(&geocodeLimit, "limit", "n", 0, "maximum lookups, 0 for no cap")
	geocodeCmd.Flags().BoolVar(&geocodeDryRun, "dry-run", false, "list candidates without geocoding")
	rootCmd.AddCommand(geocodeCmd)
}

func runGeocode(cmd *cobra.Command, _ []string) error {
	if geocodeDryRun {
		return runGeocodeDryRun(cmd)
	}

	g, cleanup, err := geocodeRunner()
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := g.Fill(cmd.Context(), geocodeLimit)
	if err != nil {
		return fmt.Errorf("geocode failed: %w", err)
	}

	cmd.Printf("Geocoded %d of %d practices (%d misses)\n",
		report.Updated, report.Scanned, report.Misses)
	return nil
}

// runGeocodeDryRun lists the practices a real run would look up.
func runGeocodeDryRun(cmd *cobra.Command) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeStore(store)()

	records, err := store.PracticesWithoutCoordinates(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan catalog: %w", err)
	}
	if geocodeLimit > 0 && len(records) > geocodeLimit {
		records = records[:geocodeLimit]
	}

	for _, r := range records {
		p := domain.PracticeFromRecord(r)
		cmd.Printf("%s: %s\n", p.Slug, p.FullAddress())
	}
	cmd.Printf("%d practices without coordinates\n", len(records))
	return nil
}
