package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/sync/errgroup"

	"docvet.dev/pkg/docvet/internal/adapter"
	"docvet.dev/pkg/docvet/internal/controller"
	m "docvet.dev/pkg/docvet/internal/model"
	"docvet.dev/pkg/docvet/pkg"
)

// verdictLogName is the verdict audit log written next to a saved report.
const verdictLogName = "verdicts.log"

// ScanArgs holds the parameters for a coverage scan.
type ScanArgs struct {
	Paths      []m.Path
	Extensions []string
	Exclude    []string
	Threads    int
	Reports    m.Path
	Save       bool
}

// ListArgs holds the parameters for listing per-file export counts.
type ListArgs struct {
	Paths      []m.Path
	Extensions []string
	Exclude    []string
}

// ViewArgs holds the parameters for viewing a saved report.
type ViewArgs struct {
	Reports m.Path
}

// Workflow wires the pipeline stages together: file selection, export
// location, documentation classification, aggregation, and reporting.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) (m.CoverageReport, error)
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	fs    adapter.SourceFSAdapter
	store adapter.ReportStore
	ui    controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(fs adapter.SourceFSAdapter, store adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{fs: fs, store: store, ui: ui}
}

// Scan runs the full pipeline and displays the resulting report. The report
// is also returned so callers can apply their own policies (e.g. a CI
// coverage threshold) on top of it.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) (m.CoverageReport, error) {
	analyses, err := w.analyze(ctx, args.Paths, args.Extensions, args.Exclude, args.Threads)
	if err != nil {
		slog.Error("scan failed", "error", err)
		return m.CoverageReport{}, err
	}

	report, err := w.aggregate(analyses, args)
	if err != nil {
		slog.Error("aggregation failed", "error", err)
		return m.CoverageReport{}, err
	}

	if args.Save {
		if err := w.store.SaveReport(args.Reports, report); err != nil {
			return m.CoverageReport{}, fmt.Errorf("save report: %w", err)
		}
	}

	if err := w.ui.DisplayReport(ctx, report); err != nil {
		return m.CoverageReport{}, fmt.Errorf("display: %w", err)
	}

	return report, nil
}

// List analyzes the tree and displays per-file export counts for files that
// contain at least one export.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	analyses, err := w.analyze(ctx, args.Paths, args.Extensions, args.Exclude, 1)
	if err != nil {
		slog.Error("list failed", "error", err)
		return err
	}

	var counts []controller.FileCount

	for _, analysis := range analyses {
		if len(analysis.Verdicts) == 0 {
			continue
		}

		count := controller.FileCount{Path: string(analysis.File)}
		for _, verdict := range analysis.Verdicts {
			count.Exports++
			if verdict.Documented {
				count.Documented++
			}
		}

		counts = append(counts, count)
	}

	return w.ui.DisplayFileCounts(ctx, counts)
}

// View loads a previously saved report and displays it.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.store.LoadReport(args.Reports)
	if err != nil {
		return err
	}

	return w.ui.DisplayReport(ctx, report)
}

// analyze enumerates matching files and classifies every export. Files are
// analyzed concurrently when threads > 1, but results are kept in
// enumeration order so aggregation stays deterministic regardless of
// completion order.
func (w *workflow) analyze(ctx context.Context, paths []m.Path, extensions, exclude []string, threads int) ([]m.FileAnalysis, error) {
	files, err := w.collectFiles(paths, extensions, exclude)
	if err != nil {
		return nil, err
	}

	slog.Debug("collected source files", "count", len(files))

	if threads < 1 {
		threads = 1
	}

	analyses := make([]m.FileAnalysis, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			content, err := w.fs.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			analyses[i] = AnalyzeFile(m.NewSourceFile(path, content))

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return analyses, nil
}

// aggregate folds the per-file verdicts into a report in discovery order,
// streaming each verdict through the audit log when the scan is being saved.
func (w *workflow) aggregate(analyses []m.FileAnalysis, args ScanArgs) (m.CoverageReport, error) {
	var log pkg.Spill[m.DocVerdict]

	if args.Save {
		if err := w.fs.MkdirAll(args.Reports, 0o750); err != nil {
			return m.CoverageReport{}, fmt.Errorf("create reports dir: %w", err)
		}

		spill, err := pkg.NewSpill[m.DocVerdict](filepath.Join(string(args.Reports), verdictLogName))
		if err != nil {
			return m.CoverageReport{}, err
		}

		defer func() { _ = spill.Close() }()

		log = spill
	}

	aggregator := NewAggregator()

	for _, analysis := range analyses {
		for _, verdict := range analysis.Verdicts {
			aggregator.Add(verdict)

			if log != nil {
				if err := log.Append(verdict); err != nil {
					return m.CoverageReport{}, err
				}
			}
		}
	}

	return aggregator.Report(), nil
}

// collectFiles enumerates every file under the requested roots whose
// extension is in the allowlist and whose path matches no exclude pattern.
// Roots are visited in argument order and each walk is lexical, so the
// sequence is deterministic for an unchanged tree.
func (w *workflow) collectFiles(paths []m.Path, extensions, exclude []string) ([]m.Path, error) {
	excludePatterns, err := compilePatterns(exclude)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[ext] = true
	}

	var files []m.Path

	for _, root := range paths {
		if _, err := w.fs.FileInfo(root); err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		err := w.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || !allowed[filepath.Ext(path)] {
				return nil
			}

			for _, pattern := range excludePatterns {
				if pattern.MatchString(path) {
					return nil
				}
			}

			files = append(files, m.Path(path))

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return files, nil
}

func compilePatterns(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}
