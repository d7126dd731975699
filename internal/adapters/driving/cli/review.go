package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/greenpaws/vetsite/internal/adapters/driving/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review <csv>",
	Short: "Browse validation findings interactively",
	Long: `Validates a practices CSV and opens the findings in an interactive
browser.

Controls:
  ↑/k, ↓/j - Move between findings
  e/w/a    - Show errors, warnings, or everything
  tab      - Cycle the severity filter
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	// Panic recovery keeps the stack trace visible once the alt screen
	// is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in review: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !stdoutIsTerminal() {
		return errors.New("review needs a terminal; use validate for plain output")
	}

	a, err := recordAuditor()
	if err != nil {
		return err
	}

	report, err := a.Audit(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	app := tui.NewApp(args[0], report)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("review UI error: %w", err)
	}
	return nil
}
