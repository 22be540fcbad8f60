// Package domain implements the docstring coverage pipeline: locating
// exported declarations, classifying their documentation, and aggregating
// the verdicts into a report.
package domain

import (
	"regexp"

	m "docvet.dev/pkg/docvet/internal/model"
)

// exportPattern matches an export-introducing keyword, an optional async
// modifier, a declaration-kind keyword, and the symbol name. Only the first
// occurrence on a line is considered, so a line yields at most one site.
// Declarations whose name appears on a later line are not recognized; that
// is an accepted heuristic limitation of the line-oriented scan.
var exportPattern = regexp.MustCompile(`export\s+(?:async\s+)?(function|class|const|type|interface|enum)\s+([A-Za-z0-9_]+)`)

// LocateExports scans a file line by line and returns the export sites found,
// in ascending line order.
func LocateExports(file m.SourceFile) []m.ExportSite {
	var sites []m.ExportSite

	for n := 1; n <= file.NumLines(); n++ {
		match := exportPattern.FindStringSubmatch(file.Line(n))
		if match == nil {
			continue
		}

		sites = append(sites, m.ExportSite{
			File:   file.Path,
			Line:   n,
			Symbol: match[2],
			Kind:   m.DeclKind(match[1]),
		})
	}

	return sites
}
