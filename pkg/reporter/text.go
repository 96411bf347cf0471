package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/docmodel/internal/ui/pretty"
	"github.com/yaklabco/docmodel/pkg/analyzer"
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to scan."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}
		path := relPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil {
			continue
		}
		total += r.reportFile(path, file.Result, result.MinSeverity)
	}

	switch {
	case !r.opts.ShowSummary:
	case r.opts.DetailedSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	default:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}

// reportFile writes one file's features and warnings. Files with neither
// are skipped.
func (r *TextReporter) reportFile(path string, fr *analyzer.FileResult, minSeverity feature.Severity) int {
	docWarnings := filterWarnings(fr.Warnings, minSeverity)
	if len(fr.Features) == 0 && len(docWarnings) == 0 {
		return 0
	}

	var lines []string
	if r.opts.ShowContext && len(fr.Documents) > 0 {
		lines = strings.Split(fr.Documents[0].Contents(), "\n")
	}
	source := func(w feature.Warning) string {
		if line := w.SourceRange.Start.Line; line >= 0 && line < len(lines) {
			return strings.TrimRight(lines[line], "\r")
		}
		return ""
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(fr.Features)))
	for _, f := range fr.Features {
		fmt.Fprint(r.bw, r.styles.FormatFeature(f, scannerLabel(r.opts, fr.ScannerID(f))))
		for _, w := range filterWarnings(f.Warnings(), minSeverity) {
			fmt.Fprint(r.bw, r.styles.FormatWarning(w, source(w)))
		}
	}
	for _, w := range docWarnings {
		fmt.Fprint(r.bw, r.styles.FormatWarning(w, source(w)))
	}
	fmt.Fprintln(r.bw)

	return len(fr.Features)
}
