// Package model defines the data structures for docstring coverage analysis.
package model

// ExportSite is a located exported declaration.
type ExportSite struct {
	File   Path     `yaml:"file"`
	Line   int      `yaml:"line"` // 1-indexed
	Symbol string   `yaml:"symbol"`
	Kind   DeclKind `yaml:"kind"`
}

// DocVerdict records whether a single export site carries documentation.
type DocVerdict struct {
	Site       ExportSite `yaml:"site"`
	Documented bool       `yaml:"documented"`
}

// CoverageReport aggregates the verdicts of a whole run. Undocumented holds
// the sites whose verdict was false, in discovery order (file enumeration
// order, then ascending line number).
type CoverageReport struct {
	TotalItems      int          `yaml:"total_items"`
	DocumentedItems int          `yaml:"documented_items"`
	Undocumented    []ExportSite `yaml:"undocumented,omitempty"`
}

// Coverage returns the documented percentage. Only meaningful when
// TotalItems > 0; callers must check Empty first.
func (r CoverageReport) Coverage() float64 {
	return float64(r.DocumentedItems) / float64(r.TotalItems) * 100
}

// Empty reports whether the scan found no exported items at all.
func (r CoverageReport) Empty() bool {
	return r.TotalItems == 0
}

// FileAnalysis holds the verdicts produced for one source file.
type FileAnalysis struct {
	File     Path
	Verdicts []DocVerdict
}
