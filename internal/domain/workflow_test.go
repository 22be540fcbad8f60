package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvet.dev/pkg/docvet/internal/adapter"
	"docvet.dev/pkg/docvet/internal/controller"
	m "docvet.dev/pkg/docvet/internal/model"
)

// recordingUI captures what the workflow asks to display.
type recordingUI struct {
	reports []m.CoverageReport
	counts  [][]controller.FileCount
}

func (r *recordingUI) DisplayReport(_ context.Context, report m.CoverageReport) error {
	r.reports = append(r.reports, report)
	return nil
}

func (r *recordingUI) DisplayFileCounts(_ context.Context, counts []controller.FileCount) error {
	r.counts = append(r.counts, counts)
	return nil
}

func newTestWorkflow() (Workflow, *recordingUI) {
	ui := &recordingUI{}
	return NewWorkflow(adapter.NewLocalSourceFSAdapter(), adapter.NewReportStore(), ui), ui
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

const documentedPair = `/**
 * First.
 */
export function first() {}

/// Second.
export const second = 1;
`

const bareTriple = `export function one() {}
export class Two {}
export type Three = string;
`

func TestWorkflow_Scan_Aggregate(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.ts"), documentedPair)
	writeTestFile(t, filepath.Join(root, "nested", "b.ts"), bareTriple)

	workflow, ui := newTestWorkflow()

	report, err := workflow.Scan(context.Background(), ScanArgs{
		Paths:      []m.Path{m.Path(root)},
		Extensions: []string{".ts", ".tsx"},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, report.TotalItems)
	assert.Equal(t, 2, report.DocumentedItems)
	assert.InDelta(t, 40.0, report.Coverage(), 0.0001)

	require.Len(t, report.Undocumented, 3)
	assert.Equal(t, "one", report.Undocumented[0].Symbol)
	assert.Equal(t, 1, report.Undocumented[0].Line)
	assert.Equal(t, "Two", report.Undocumented[1].Symbol)
	assert.Equal(t, 2, report.Undocumented[1].Line)
	assert.Equal(t, "Three", report.Undocumented[2].Symbol)
	assert.Equal(t, 3, report.Undocumented[2].Line)

	require.Len(t, ui.reports, 1)
	assert.Equal(t, report, ui.reports[0])
}

func TestWorkflow_Scan_ExtensionAllowlist(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.ts"), bareTriple)
	writeTestFile(t, filepath.Join(root, "b.tsx"), "export function view() {}\n")
	writeTestFile(t, filepath.Join(root, "c.js"), "export function skipped() {}\n")
	writeTestFile(t, filepath.Join(root, "d.txt"), "export function skipped() {}\n")

	workflow, _ := newTestWorkflow()

	report, err := workflow.Scan(context.Background(), ScanArgs{
		Paths:      []m.Path{m.Path(root)},
		Extensions: []string{".ts", ".tsx"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalItems)
}

func TestWorkflow_Scan_ExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.ts"), bareTriple)
	writeTestFile(t, filepath.Join(root, "a.test.ts"), bareTriple)

	workflow, _ := newTestWorkflow()

	report, err := workflow.Scan(context.Background(), ScanArgs{
		Paths:      []m.Path{m.Path(root)},
		Extensions: []string{".ts"},
		Exclude:    []string{`\.test\.ts$`},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalItems)
}

func TestWorkflow_Scan_EmptyCorpus(t *testing.T) {
	workflow, ui := newTestWorkflow()

	report, err := workflow.Scan(context.Background(), ScanArgs{
		Paths:      []m.Path{m.Path(t.TempDir())},
		Extensions: []string{".ts", ".tsx"},
	})
	require.NoError(t, err)

	assert.True(t, report.Empty())
	require.Len(t, ui.reports, 1)
	assert.True(t, ui.reports[0].Empty())
}

func TestWorkflow_Scan_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.ts"), documentedPair)
	writeTestFile(t, filepath.Join(root, "b.ts"), bareTriple)
	writeTestFile(t, filepath.Join(root, "sub", "c.ts"), bareTriple)

	workflow, _ := newTestWorkflow()
	args := ScanArgs{Paths: []m.Path{m.Path(root)}, Extensions: []string{".ts"}}

	first, err := workflow.Scan(context.Background(), args)
	require.NoError(t, err)

	second, err := workflow.Scan(context.Background(), args)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWorkflow_Scan_ParallelMatchesSequential(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.ts"), documentedPair)
	writeTestFile(t, filepath.Join(root, "b.ts"), bareTriple)
	writeTestFile(t, filepath.Join(root, "c.ts"), bareTriple)
	writeTestFile(t, filepath.Join(root, "d", "e.ts"), documentedPair)

	workflow, _ := newTestWorkflow()

	sequential, err := workflow.Scan(context.Background(), ScanArgs{
		Paths:      []m.Path{m.Path(root)},
		Extensions: []string{".ts"},
		Threads:    1,
	})
	require.NoError(t, err)

	parallel, err := workflow.Scan(context.Background(), ScanArgs{
		Paths:      []m.Path{m.Path(root)},
		Extensions: []string{".ts"},
		Threads:    4,
	})
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestWorkflow_Scan_MissingRoot(t *testing.T) {
	workflow, ui := newTestWorkflow()

	_, err := workflow.Scan(context.Background(), ScanArgs{
		Paths:      []m.Path{m.Path(filepath.Join(t.TempDir(), "missing"))},
		Extensions: []string{".ts"},
	})
	require.Error(t, err)
	assert.Empty(t, ui.reports)
}

func TestWorkflow_Scan_InvalidEncoding(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.ts"), []byte{0xff, 0xfe, 0x00, 0x80}, 0o600))

	workflow, _ := newTestWorkflow()

	_, err := workflow.Scan(context.Background(), ScanArgs{
		Paths:      []m.Path{m.Path(root)},
		Extensions: []string{".ts"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestWorkflow_Scan_InvalidExcludePattern(t *testing.T) {
	workflow, _ := newTestWorkflow()

	_, err := workflow.Scan(context.Background(), ScanArgs{
		Paths:      []m.Path{m.Path(t.TempDir())},
		Extensions: []string{".ts"},
		Exclude:    []string{"("},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclude pattern")
}

func TestWorkflow_SaveAndView(t *testing.T) {
	root := t.TempDir()
	reports := filepath.Join(t.TempDir(), "reports")
	writeTestFile(t, filepath.Join(root, "a.ts"), documentedPair)
	writeTestFile(t, filepath.Join(root, "b.ts"), bareTriple)

	workflow, ui := newTestWorkflow()

	saved, err := workflow.Scan(context.Background(), ScanArgs{
		Paths:      []m.Path{m.Path(root)},
		Extensions: []string{".ts"},
		Reports:    m.Path(reports),
		Save:       true,
	})
	require.NoError(t, err)

	// The verdict audit log is written next to the report.
	assert.FileExists(t, filepath.Join(reports, "verdicts.log"))
	assert.FileExists(t, filepath.Join(reports, "report.yaml"))

	require.NoError(t, workflow.View(context.Background(), ViewArgs{Reports: m.Path(reports)}))

	require.Len(t, ui.reports, 2)
	assert.Equal(t, saved, ui.reports[1])
}

func TestWorkflow_View_NoSavedReport(t *testing.T) {
	workflow, _ := newTestWorkflow()

	err := workflow.View(context.Background(), ViewArgs{Reports: m.Path(t.TempDir())})
	require.Error(t, err)
}

func TestWorkflow_List(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.ts"), documentedPair)
	writeTestFile(t, filepath.Join(root, "b.ts"), bareTriple)
	writeTestFile(t, filepath.Join(root, "empty.ts"), "const internal = 1;\n")

	workflow, ui := newTestWorkflow()

	err := workflow.List(context.Background(), ListArgs{
		Paths:      []m.Path{m.Path(root)},
		Extensions: []string{".ts"},
	})
	require.NoError(t, err)

	require.Len(t, ui.counts, 1)
	counts := ui.counts[0]
	require.Len(t, counts, 2)

	assert.Equal(t, filepath.Join(root, "a.ts"), counts[0].Path)
	assert.Equal(t, 2, counts[0].Exports)
	assert.Equal(t, 2, counts[0].Documented)

	assert.Equal(t, filepath.Join(root, "b.ts"), counts[1].Path)
	assert.Equal(t, 3, counts[1].Exports)
	assert.Equal(t, 0, counts[1].Documented)
}
