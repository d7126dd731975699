package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Probe the configured data sources",
	Long: `Probes every source in the fallback chain and reports whether it can
serve a complete record set. The order shown is the order a build
tries them in.`,
	Args: cobra.NoArgs,
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	b, cleanup, err := siteBuilder()
	if err != nil {
		return err
	}
	defer cleanup()

	for _, status := range b.Sources(cmd.Context()) {
		marker, style := "ok", okStyle
		if !status.Available {
			marker, style = "unavailable", failStyle
		}
		cmd.Printf("%d. %-8s %s  %s\n",
			status.Position,
			status.Name,
			styled(style, fmt.Sprintf("%-11s", marker)),
			status.Detail)
	}
	return nil
}
