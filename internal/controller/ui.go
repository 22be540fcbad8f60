// Package controller provides output adapters for displaying coverage results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "docvet.dev/pkg/docvet/internal/model"
)

// FileCount holds per-file export totals for the list command.
type FileCount struct {
	Path       string
	Exports    int
	Documented int
}

// UI defines the interface for displaying coverage results. Implementations
// can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayReport(ctx context.Context, report m.CoverageReport) error
	DisplayFileCounts(ctx context.Context, counts []FileCount) error
}

// IsTTY reports whether the given file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewUI selects a UI implementation: the interactive pager when stdout is a
// terminal, plain text otherwise. Either way the report content and ordering
// are identical.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}
