package domain

import (
	"strings"

	m "docvet.dev/pkg/docvet/internal/model"
)

// lookbackLimit caps how many preceding lines the classifier inspects when
// searching for a doc comment above a declaration.
const lookbackLimit = 9

const (
	blockCommentClose = "*/"
	lineCommentPrefix = "///"
	decoratorPrefix   = "@"
)

// IsDocumented scans backward from an export site and decides whether the
// declaration carries an immediately preceding doc comment.
//
// The scan inspects at most lookbackLimit lines above the site, or fewer if
// the top of the file is reached. Blank lines are transparent. The first
// non-blank line decides:
//   - ends with a block-comment close or starts with a line-comment doc
//     prefix: documented
//   - starts with a decorator marker: transparent, keep scanning (the
//     comment check deliberately runs first, so a line satisfying both is
//     treated as documentation)
//   - anything else: undocumented, search short-circuits even if a doc
//     comment exists further above
//
// An exhausted lookback budget means undocumented.
func IsDocumented(file m.SourceFile, site m.ExportSite) bool {
	floor := site.Line - lookbackLimit
	if floor < 1 {
		floor = 1
	}

	for n := site.Line - 1; n >= floor; n-- {
		line := strings.TrimSpace(file.Line(n))
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, blockCommentClose) || strings.HasPrefix(line, lineCommentPrefix) {
			return true
		}

		if strings.HasPrefix(line, decoratorPrefix) {
			continue
		}

		return false
	}

	return false
}

// AnalyzeFile locates every export in the file and classifies each one,
// returning the verdicts in line order.
func AnalyzeFile(file m.SourceFile) m.FileAnalysis {
	sites := LocateExports(file)

	verdicts := make([]m.DocVerdict, 0, len(sites))
	for _, site := range sites {
		verdicts = append(verdicts, m.DocVerdict{
			Site:       site,
			Documented: IsDocumented(file, site),
		})
	}

	return m.FileAnalysis{File: file.Path, Verdicts: verdicts}
}
