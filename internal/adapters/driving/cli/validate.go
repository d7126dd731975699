package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// maxValueWidth caps the VALUE column; longer values are cut with an
// ellipsis so the table stays readable.
const maxValueWidth = 24

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate <csv>",
	Short: "Validate a practices CSV",
	Long: `Normalizes a practices CSV in memory and reports every finding
against the canonical rows. Errors mark records the import path would
reject; warnings are informational.

The command exits non-zero when errors exist. With --strict, warnings
fail the run too.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as failures")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := recordAuditor()
	if err != nil {
		return err
	}

	report, err := a.Audit(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	printFindings(cmd, report.Findings)

	errs, warns := len(report.Errors()), len(report.Warnings())
	cmd.Printf("%d rows checked: %d errors, %d warnings\n", report.Rows, errs, warns)

	if errs > 0 {
		return fmt.Errorf("%d validation errors", errs)
	}
	if validateStrict && warns > 0 {
		return fmt.Errorf("%d warnings with --strict", warns)
	}
	return nil
}

// printFindings renders findings as an aligned table. Widths follow the
// widest cell, measured in display cells so wide characters line up.
func printFindings(cmd *cobra.Command, findings []domain.Finding) {
	if len(findings) == 0 {
		return
	}

	headers := []string{"ROW", "SEVERITY", "FIELD", "VALUE", "MESSAGE"}
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{
			strconv.Itoa(f.Row),
			string(f.Severity),
			f.Field,
			runewidth.Truncate(f.Value, maxValueWidth, "..."),
			f.Message,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	printTableRow(cmd, headers, widths)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		cells[1] = styled(severityStyle(domain.Severity(row[1])), cells[1])
		cmd.Println(strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// printTableRow writes one row padded to the column widths.
func printTableRow(cmd *cobra.Command, cells []string, widths []int) {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	cmd.Println(strings.TrimRight(strings.Join(padded, "  "), " "))
}
