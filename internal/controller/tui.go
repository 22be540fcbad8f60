package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "docvet.dev/pkg/docvet/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2)

	dimStyle = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display. It falls back
// to plain output whenever the missing-docstrings list fits on screen, so
// short reports behave exactly like SimpleUI.
type TUI struct {
	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// DisplayReport shows the coverage report, paginating the missing-docstrings
// list when it does not fit the terminal.
func (t *TUI) DisplayReport(ctx context.Context, report m.CoverageReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newMissingModel(report)

	// Get initial terminal size.
	if f, ok := t.cmd.OutOrStdout().(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	// If the list is small, just print and exit.
	if !model.needsPagination() {
		return writeReport(t.cmd.OutOrStdout(), report)
	}

	program := tea.NewProgram(model, tea.WithOutput(t.cmd.OutOrStdout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayFileCounts renders the per-file table; the table is short-lived
// summary output and is never paginated.
func (t *TUI) DisplayFileCounts(ctx context.Context, counts []FileCount) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(t.cmd.OutOrStdout(), "\n%s", renderFileCountTable(counts))

	return err
}

// missingModel is the Bubble Tea model paging through undocumented sites.
type missingModel struct {
	report   m.CoverageReport
	height   int
	width    int
	offset   int // current scroll offset
	quitting bool
}

func newMissingModel(report m.CoverageReport) missingModel {
	return missingModel{report: report}
}

func (mm missingModel) Init() tea.Cmd {
	return nil
}

func (mm missingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		mm.height = msg.Height
		mm.width = msg.Width

		return mm, nil

	case tea.KeyMsg:
		return mm.handleKeyPress(msg)
	}

	return mm, nil
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (mm missingModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		mm.quitting = true
		return mm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		mm.quitting = true
		return mm, tea.Quit

	case "down", "j":
		mm.offset = clampOffset(mm.offset+1, mm.maxOffset())
		return mm, nil

	case "up", "k":
		mm.offset = clampOffset(mm.offset-1, mm.maxOffset())
		return mm, nil

	case "g", "home":
		mm.offset = 0
		return mm, nil

	case "G", "end":
		mm.offset = mm.maxOffset()
		return mm, nil

	case "d", "pgdown":
		mm.offset = clampOffset(mm.offset+mm.itemsPerPage(), mm.maxOffset())
		return mm, nil

	case "u", "pgup":
		mm.offset = clampOffset(mm.offset-mm.itemsPerPage(), mm.maxOffset())
		return mm, nil
	}

	return mm, nil
}

func clampOffset(offset, maxOffset int) int {
	if offset < 0 {
		return 0
	}

	if offset > maxOffset {
		return maxOffset
	}

	return offset
}

// itemsPerPage calculates how many missing entries fit on screen.
func (mm missingModel) itemsPerPage() int {
	if mm.height == 0 {
		return 10 // default
	}

	// Reserve space for the header box, the three summary lines, the
	// "Missing docstrings:" title, and the footer.
	reserved := 12

	available := mm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

// maxOffset returns the maximum scroll offset.
func (mm missingModel) maxOffset() int {
	perPage := mm.itemsPerPage()
	if perPage <= 0 {
		return 0
	}

	maxOff := len(mm.report.Undocumented) - perPage
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

// needsPagination returns true if the missing list is too large to fit.
func (mm missingModel) needsPagination() bool {
	if len(mm.report.Undocumented) == 0 {
		return false
	}

	return len(mm.report.Undocumented) > mm.itemsPerPage() && mm.height > 0
}

func (mm missingModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("docvet - Docstring Coverage"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  Total exported items: %d\n", mm.report.TotalItems)
	fmt.Fprintf(&b, "  Items with docstrings: %d\n", mm.report.DocumentedItems)
	fmt.Fprintf(&b, "  Docstring coverage: %.2f%%\n\n", mm.report.Coverage())

	b.WriteString("  Missing docstrings:\n")

	start := mm.offset

	end := start + mm.itemsPerPage()
	if end > len(mm.report.Undocumented) {
		end = len(mm.report.Undocumented)
	}

	for _, site := range mm.report.Undocumented[start:end] {
		fmt.Fprintf(&b, "  %s\n", formatSite(site))
	}

	fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render(fmt.Sprintf(
		"%d-%d of %d  •  j/k scroll  d/u page  g/G jump  q quit",
		start+1, end, len(mm.report.Undocumented),
	)))

	return b.String()
}
