// Package reporter writes the features and warnings of a run in text,
// JSON, msgpack, or SCIP form.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of features reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatMsgpack:
		return NewMsgpackReporter(opts), nil
	case FormatSCIP:
		return NewSCIPReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// relPath returns path relative to workDir when possible.
func relPath(workDir, path string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// scannerLabel formats a scanner ID per the label format.
func scannerLabel(opts Options, id string) string {
	if id == "" {
		return ""
	}
	var name string
	if opts.Registry != nil {
		if s, ok := opts.Registry.GetByID(id); ok {
			name = s.Name()
		}
	}
	return config.FormatScannerID(opts.LabelFormat, id, name)
}
