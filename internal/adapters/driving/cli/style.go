package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// Summary styles. Rendering only happens when stdout is a terminal, so
// piped output stays plain.
var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// stdoutIsTerminal is swappable for tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// styled renders s with the given style on a terminal and returns it
// unchanged otherwise.
func styled(style lipgloss.Style, s string) string {
	if !stdoutIsTerminal() {
		return s
	}
	return style.Render(s)
}

// severityStyle picks the style for a finding severity.
func severityStyle(severity domain.Severity) lipgloss.Style {
	if severity == domain.SeverityError {
		return failStyle
	}
	return warnStyle
}
