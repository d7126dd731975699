// Package tui implements the interactive findings browser behind
// `vetsite review`. It follows the Elm architecture via Bubbletea: one
// model over one validation report, filtered by severity.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/greenpaws/vetsite/internal/adapters/driving/tui/keymap"
	"github.com/greenpaws/vetsite/internal/adapters/driving/tui/styles"
	"github.com/greenpaws/vetsite/internal/core/domain"
)

// filter selects which findings are visible.
type filter int

const (
	filterAll filter = iota
	filterErrors
	filterWarnings
)

// filterCount is the number of filters Cycle steps through.
const filterCount = 3

// String names the filter for the status line.
func (f filter) String() string {
	switch f {
	case filterErrors:
		return "errors"
	case filterWarnings:
		return "warnings"
	default:
		return "all"
	}
}

// App is the findings browser. It implements tea.Model for use with
// Bubbletea.
type App struct {
	// path is the audited file, shown in the header.
	path string

	// report holds the findings being browsed.
	report *domain.ValidationReport

	// styles holds the browser styles.
	styles *styles.Styles

	// keys holds the active keybindings.
	keys *keymap.KeyMap

	// visible is the filtered finding list.
	visible []domain.Finding

	// filter is the active severity filter.
	filter filter

	// selected is the index of the highlighted finding.
	selected int

	// scroll is the index of the first finding on screen.
	scroll int

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates the first window size arrived.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a findings browser for one audited file.
func NewApp(path string, report *domain.ValidationReport) *App {
	a := &App{
		path:   path,
		report: report,
		styles: styles.DefaultStyles(),
		keys:   keymap.DefaultKeyMap(),
	}
	a.applyFilter(filterAll)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("vetsite review"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.adjustScroll()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleKey handles a single key press.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keys.Quit):
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keys.Up):
		if a.selected > 0 {
			a.selected--
			a.adjustScroll()
		}

	case keymap.Matches(keyStr, a.keys.Down):
		if a.selected < len(a.visible)-1 {
			a.selected++
			a.adjustScroll()
		}

	case keymap.Matches(keyStr, a.keys.Top):
		a.selected = 0
		a.adjustScroll()

	case keymap.Matches(keyStr, a.keys.Bottom):
		if len(a.visible) > 0 {
			a.selected = len(a.visible) - 1
		}
		a.adjustScroll()

	case keymap.Matches(keyStr, a.keys.All):
		a.applyFilter(filterAll)

	case keymap.Matches(keyStr, a.keys.Errors):
		a.applyFilter(filterErrors)

	case keymap.Matches(keyStr, a.keys.Warnings):
		a.applyFilter(filterWarnings)

	case keymap.Matches(keyStr, a.keys.Cycle):
		a.applyFilter((a.filter + 1) % filterCount)
	}

	return a, nil
}

// applyFilter switches the visible set and resets the selection.
func (a *App) applyFilter(f filter) {
	a.filter = f
	switch f {
	case filterErrors:
		a.visible = a.report.Errors()
	case filterWarnings:
		a.visible = a.report.Warnings()
	default:
		a.visible = a.report.Findings
	}
	a.selected = 0
	a.scroll = 0
}

// adjustScroll keeps the selection on screen.
func (a *App) adjustScroll() {
	rows := a.visibleRowCount()
	if a.selected < a.scroll {
		a.scroll = a.selected
	} else if a.selected >= a.scroll+rows {
		a.scroll = a.selected - rows + 1
	}
}

// visibleRowCount returns how many finding lines fit on screen.
func (a *App) visibleRowCount() int {
	// Reserve lines for the header, status, detail pane, and footer.
	reserved := 11
	available := a.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading findings..."
	}

	var b strings.Builder

	b.WriteString(a.styles.Title.Render(fmt.Sprintf("Findings: %s", a.path)))
	b.WriteString("\n")
	b.WriteString(a.styles.StatusBar.Render(a.statusLine()))
	b.WriteString("\n\n")

	if len(a.visible) == 0 {
		b.WriteString(a.styles.Muted.Render(a.emptyMessage()))
		b.WriteString("\n\n")
		b.WriteString(a.styles.Help.Render(a.helpLine()))
		return b.String()
	}

	rows := a.visibleRowCount()
	for i := a.scroll; i < len(a.visible) && i < a.scroll+rows; i++ {
		b.WriteString(a.renderFinding(i))
		b.WriteString("\n")
	}

	if len(a.visible) > rows {
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			a.scroll+1,
			min(a.scroll+rows, len(a.visible)),
			len(a.visible))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.renderDetail())
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(a.helpLine()))

	return b.String()
}

// statusLine summarizes the report and the active filter.
func (a *App) statusLine() string {
	return fmt.Sprintf("%d rows checked  %d errors  %d warnings  filter: %s",
		a.report.Rows, len(a.report.Errors()), len(a.report.Warnings()), a.filter)
}

// emptyMessage names what the active filter found nothing of.
func (a *App) emptyMessage() string {
	switch a.filter {
	case filterErrors:
		return "No errors."
	case filterWarnings:
		return "No warnings."
	default:
		return "No findings. Every record passed."
	}
}

// renderFinding renders a single finding line.
func (a *App) renderFinding(index int) string {
	f := a.visible[index]

	indicator := "  "
	if index == a.selected {
		indicator = "> "
	}

	row := fmt.Sprintf("%4d", f.Row)
	sev := runewidth.FillRight(string(f.Severity), 7)
	field := runewidth.FillRight(runewidth.Truncate(f.Field, 18, "..."), 18)

	rest := a.width - 2 - 4 - 1 - 7 - 1 - 18 - 1
	if rest < 10 {
		rest = 10
	}
	message := runewidth.Truncate(f.Message, rest, "...")

	if index == a.selected {
		return a.styles.Selected.Render(
			fmt.Sprintf("%s%s %s %s %s", indicator, row, sev, field, message))
	}

	return a.styles.Normal.Render(indicator+row+" ") +
		a.severityStyle(f.Severity).Render(sev) +
		a.styles.Normal.Render(" "+field+" ") +
		a.styles.Muted.Render(message)
}

// renderDetail shows the full value and message for the selection.
func (a *App) renderDetail() string {
	if a.selected >= len(a.visible) {
		return ""
	}
	f := a.visible[a.selected]

	width := a.width - 4
	if width < 20 {
		width = 20
	}

	value := f.Value
	if value == "" {
		value = "(empty)"
	}
	lines := []string{
		fmt.Sprintf("row %d  %s  %s", f.Row, f.Severity, f.Field),
		"value: " + value,
		f.Message,
	}
	return a.styles.Detail.Width(width).Render(strings.Join(lines, "\n"))
}

// helpLine renders the footer hints from the key map.
func (a *App) helpLine() string {
	parts := make([]string, 0, len(a.keys.ShortHelp()))
	for _, binding := range a.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}

// severityStyle picks the style for a severity.
func (a *App) severityStyle(s domain.Severity) lipgloss.Style {
	if s == domain.SeverityError {
		return a.styles.Error
	}
	return a.styles.Warning
}

// Visible returns the findings the active filter shows.
func (a *App) Visible() []domain.Finding {
	return a.visible
}

// SelectedIndex returns the index of the highlighted finding.
func (a *App) SelectedIndex() int {
	return a.selected
}

// FilterName returns the name of the active filter.
func (a *App) FilterName() string {
	return a.filter.String()
}

// Ready returns whether the first window size arrived.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
}
