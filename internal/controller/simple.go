package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "docvet.dev/pkg/docvet/internal/model"
)

// SimpleUI implements UI by printing plain text to the cobra command's
// output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReport renders the coverage report: total count, documented count,
// percentage, and the missing-docstrings section. An empty corpus produces a
// single notice and no percentage.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.CoverageReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return writeReport(s.cmd.OutOrStdout(), report)
}

// DisplayFileCounts renders a per-file table of export and documented counts
// with a totals footer.
func (s *SimpleUI) DisplayFileCounts(ctx context.Context, counts []FileCount) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(s.cmd.OutOrStdout(), "\n%s", renderFileCountTable(counts))

	return err
}

// writeReport is the single definition of the report text format; both UI
// implementations go through it.
func writeReport(w io.Writer, report m.CoverageReport) error {
	if report.Empty() {
		_, err := fmt.Fprintln(w, "No exported items found.")
		return err
	}

	if _, err := fmt.Fprintf(w, "Total exported items: %d\n", report.TotalItems); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Items with docstrings: %d\n", report.DocumentedItems); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Docstring coverage: %.2f%%\n", report.Coverage()); err != nil {
		return err
	}

	if len(report.Undocumented) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nMissing docstrings:\n"); err != nil {
		return err
	}

	for _, site := range report.Undocumented {
		if _, err := fmt.Fprintln(w, formatSite(site)); err != nil {
			return err
		}
	}

	return nil
}

func formatSite(site m.ExportSite) string {
	return fmt.Sprintf("%s:%d - %s", site.File, site.Line, site.Symbol)
}

func renderFileCountTable(counts []FileCount) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Exports", "Documented"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	totalExports := 0
	totalDocumented := 0

	for _, count := range counts {
		table.Append([]string{
			count.Path,
			fmt.Sprintf("%d", count.Exports),
			fmt.Sprintf("%d", count.Documented),
		})

		totalExports += count.Exports
		totalDocumented += count.Documented
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(counts)),
		fmt.Sprintf("%d", totalExports),
		fmt.Sprintf("%d", totalDocumented),
	})

	table.Render()

	return tableBuffer.String()
}
