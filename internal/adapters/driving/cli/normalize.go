package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var normalizeOutput string

var normalizeCmd = &cobra.Command{
	Use:   "normalize <csv>",
	Short: "Write a canonicalized copy of a practices CSV",
	Long: `Normalizes every record in a practices CSV and writes the result in
the canonical column layout. The input file is never modified.

Without --output the copy lands next to the input with a _normalized
suffix.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "output file path")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	a, err := recordAuditor()
	if err != nil {
		return err
	}

	inPath := args[0]
	outPath := normalizeOutput
	if outPath == "" {
		outPath = normalizedPath(inPath)
	}

	n, err := a.Normalize(cmd.Context(), inPath, outPath)
	if err != nil {
		return fmt.Errorf("normalize failed: %w", err)
	}

	cmd.Printf("Wrote %d normalized records to %s\n", n, outPath)
	return nil
}

// normalizedPath derives the default output path: the input name with a
// _normalized suffix before the extension.
func normalizedPath(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + "_normalized" + ext
}
