package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "docvet.dev/pkg/docvet/internal/model"
)

// reportFileName is the report file written inside the reports directory.
const reportFileName = "report.yaml"

// ReportStore persists coverage reports so a scan's result can be rendered
// again later without re-reading the source tree.
type ReportStore interface {
	SaveReport(dir m.Path, report m.CoverageReport) error
	LoadReport(dir m.Path) (m.CoverageReport, error)
}

// YAMLReportStore stores reports as a YAML file in the reports directory,
// the same format the tool's configuration uses.
type YAMLReportStore struct{}

// NewReportStore returns a YAML-backed ReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport writes the report to dir/report.yaml, creating dir if needed.
func (s *YAMLReportStore) SaveReport(dir m.Path, report m.CoverageReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	target := filepath.Join(string(dir), reportFileName)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// LoadReport reads dir/report.yaml back into a CoverageReport.
func (s *YAMLReportStore) LoadReport(dir m.Path) (m.CoverageReport, error) {
	target := filepath.Join(string(dir), reportFileName)

	data, err := os.ReadFile(target)
	if err != nil {
		return m.CoverageReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.CoverageReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.CoverageReport{}, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}
