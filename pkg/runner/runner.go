package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/docmodel/internal/logging"
	"github.com/yaklabco/docmodel/pkg/analyzer"
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/fsutil"
)

// Runner analyzes discovered files with an Analyzer.
type Runner struct {
	// Analyzer handles per-file parsing and scanning.
	Analyzer *analyzer.Analyzer
}

// New creates a new Runner with the given analyzer.
func New(a *analyzer.Analyzer) *Runner {
	return &Runner{Analyzer: a}
}

// Run discovers files under opts.Paths and analyzes them concurrently.
// Outcomes are ordered by path regardless of completion order. A file that
// cannot be read or parsed is recorded in its outcome and does not stop the
// run; cancellation does. Call Result.Close when done.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files:       make([]FileOutcome, 0, len(files)),
		Stats:       newStats(),
		MinSeverity: minSeverity(opts),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns its index.
	outcomes := make([]FileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.analyze(gctx, path)
			return nil
		})
	}
	waitErr := g.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		waitErr = err
	}
	if waitErr != nil {
		result.Close()
		return nil, fmt.Errorf("run cancelled: %w", waitErr)
	}

	logger.Debug("analyzed files",
		logging.FieldFilesScanned, result.Stats.FilesScanned,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldFeatures, result.Stats.Features)
	return result, nil
}

func (r *Runner) analyze(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Info = info

	fr, err := r.Analyzer.AnalyzeFile(ctx, path, content)
	if err != nil {
		outcome.Error = err
		logging.FromContext(ctx).Warn("analysis failed",
			logging.FieldPath, path, logging.FieldError, err)
		return outcome
	}
	outcome.Result = fr
	return outcome
}

func minSeverity(opts Options) feature.Severity {
	if opts.Config != nil {
		if sev, ok := feature.ParseSeverity(opts.Config.MinSeverity); ok {
			return sev
		}
	}
	return feature.SeverityInfo
}
