// Package analyzer turns one source file into its documents and resolved
// features: it parses the file, parses the documents embedded in it, runs
// the enabled scanners over every document, and resolves each candidate
// against the document it was found in.
package analyzer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/docmodel/internal/logging"
	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/fsutil"
	"github.com/yaklabco/docmodel/pkg/markup"
	"github.com/yaklabco/docmodel/pkg/scan"
	"github.com/yaklabco/docmodel/pkg/script"
	"github.com/yaklabco/docmodel/pkg/srcrange"
	"github.com/yaklabco/docmodel/pkg/style"
)

// ErrUnsupportedType is returned for files whose type has no parser.
var ErrUnsupportedType = errors.New("unsupported document type")

// CodeParseError is the warning code for syntax errors.
const CodeParseError = "parse-error"

// Analyzer analyzes files. It is safe for concurrent use.
type Analyzer struct {
	config   *config.Config
	engine   *scan.Engine
	markdown *markup.Parser
	kinds    []string
}

// New creates an Analyzer running the scanners of registry enabled by cfg.
// A nil cfg means the defaults.
func New(cfg *config.Config, registry *scan.Registry) *Analyzer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Analyzer{
		config:   cfg,
		engine:   scan.NewEngine(registry, cfg),
		markdown: markup.NewParser(string(cfg.Flavor), cfg.DetectLanguage),
		kinds:    cfg.Kinds,
	}
}

// Engine returns the scanner engine.
func (a *Analyzer) Engine() *scan.Engine {
	return a.engine
}

// FileResult is the analysis of one file. Call Close when done with it.
type FileResult struct {
	// Path is the file path as given to AnalyzeFile.
	Path string

	// Digest is the hex SHA-256 of the file content.
	Digest string

	// Documents holds the root document followed by its inline documents
	// in document order.
	Documents []document.Document

	// Features holds the resolved features, ordered by position.
	Features []feature.Feature

	// Index indexes Features by kind and identifier.
	Index *feature.Index

	// Warnings holds the document-level warnings, such as syntax errors.
	// Feature warnings stay on their features.
	Warnings []feature.Warning

	// ScannerErrors holds the failures of individual scanners.
	ScannerErrors []*scan.ScannerError

	scannerIDs map[feature.Feature]string
}

// ScannerID returns the ID of the scanner that found f.
func (r *FileResult) ScannerID(f feature.Feature) string {
	return r.scannerIDs[f]
}

// AllWarnings returns the document-level warnings and the warnings of every
// feature at or above minSeverity, ordered by position.
func (r *FileResult) AllWarnings(minSeverity feature.Severity) []feature.Warning {
	var out []feature.Warning
	keep := func(ws []feature.Warning) {
		for _, w := range ws {
			if w.Severity.Rank() >= minSeverity.Rank() {
				out = append(out, w)
			}
		}
	}
	keep(r.Warnings)
	for _, f := range r.Features {
		keep(f.Warnings())
	}
	slices.SortStableFunc(out, func(a, b feature.Warning) int {
		return compareRanges(a.SourceRange, b.SourceRange)
	})
	return out
}

// Close releases the syntax trees of the result's documents.
func (r *FileResult) Close() {
	closeAll(r.Documents)
}

// Parse parses content as the document type configured for path, followed
// by every document embedded in it. The caller must close the returned
// documents.
func (a *Analyzer) Parse(ctx context.Context, path string, content []byte) ([]document.Document, error) {
	docType := a.config.DocumentType(path)
	if docType == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, path)
	}

	root, err := a.parseSource(ctx, docType, document.Source{URL: path, Contents: string(content)})
	if err != nil {
		return nil, err
	}
	docs := []document.Document{root}

	md, ok := root.(*markup.Document)
	if !ok {
		return docs, nil
	}
	for _, embedded := range md.Embedded() {
		inline, err := a.parseSource(ctx, embedded.Type, embedded.Source)
		if err != nil {
			closeAll(docs)
			return nil, fmt.Errorf("parse inline %s document: %w", embedded.Type, err)
		}
		docs = append(docs, inline)
	}
	return docs, nil
}

func (a *Analyzer) parseSource(ctx context.Context, docType string, src document.Source) (document.Document, error) {
	var (
		doc document.Document
		err error
	)
	switch docType {
	case markup.Type:
		doc, err = a.markdown.Parse(ctx, src)
	case script.Type:
		doc, err = script.Parse(ctx, src)
	case style.Type:
		doc, err = style.Parse(ctx, src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, docType)
	}
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped with the document URL
	}
	return doc, nil
}

// AnalyzeFile parses, scans, and resolves the file at path with the given
// content. Scanner failures are recorded in the result; parse failures and
// cancellation are returned as errors.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string, content []byte) (*FileResult, error) {
	logger := logging.FromContext(ctx)

	docs, err := a.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		Path:       path,
		Digest:     fsutil.Digest(content),
		Documents:  docs,
		Index:      feature.NewIndex(),
		scannerIDs: make(map[feature.Feature]string),
	}

	for _, doc := range docs {
		result.Warnings = append(result.Warnings, syntaxWarnings(doc)...)

		scanned, err := a.engine.Scan(ctx, doc)
		if err != nil {
			result.Close()
			return nil, fmt.Errorf("analyze %s: %w", path, err)
		}
		result.ScannerErrors = append(result.ScannerErrors, scanned.Errors...)
		for _, serr := range scanned.Errors {
			logger.Warn("scanner failed",
				logging.FieldScanner, serr.ScannerID,
				logging.FieldDocument, serr.Document,
				logging.FieldError, serr.Err)
		}

		for _, c := range scanned.Candidates {
			for _, f := range flatten(c.Scanned.Resolve(doc)) {
				if a.wanted(f) {
					result.Features = append(result.Features, f)
					result.scannerIDs[f] = c.ScannerID
				}
			}
		}
	}

	slices.SortStableFunc(result.Features, func(x, y feature.Feature) int {
		return compareRanges(x.SourceRange(), y.SourceRange())
	})
	result.Index.Add(result.Features...)

	logger.Debug("analyzed file",
		logging.FieldPath, path,
		logging.FieldDigest, result.Digest,
		logging.FieldDocument, len(docs),
		logging.FieldFeatures, len(result.Features),
		logging.FieldWarnings, len(result.Warnings))

	return result, nil
}

// wanted applies the configured kind filter.
func (a *Analyzer) wanted(f feature.Feature) bool {
	if len(a.kinds) == 0 {
		return true
	}
	kinds := f.Kinds()
	for _, k := range a.kinds {
		if kinds.Has(k) {
			return true
		}
	}
	return false
}

// flatten returns f followed by the properties it declares.
func flatten(f feature.Feature) []feature.Feature {
	out := []feature.Feature{f}
	if el, ok := f.(*feature.Element); ok {
		for _, p := range el.Properties() {
			out = append(out, p)
		}
	}
	return out
}

// syntaxErrorer is implemented by documents over error-tolerant parsers.
type syntaxErrorer interface {
	SyntaxErrors() []srcrange.SourceRange
}

func syntaxWarnings(doc document.Document) []feature.Warning {
	se, ok := doc.(syntaxErrorer)
	if !ok {
		return nil
	}
	ranges := se.SyntaxErrors()
	out := make([]feature.Warning, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, feature.Warning{
			Code:        CodeParseError,
			Message:     fmt.Sprintf("unable to parse %s", doc.Type()),
			Severity:    feature.SeverityError,
			SourceRange: r,
		})
	}
	return out
}

func closeAll(docs []document.Document) {
	for _, doc := range docs {
		if c, ok := doc.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

func compareRanges(a, b srcrange.SourceRange) int {
	return cmp.Or(
		cmp.Compare(a.Start.Line, b.Start.Line),
		cmp.Compare(a.Start.Column, b.Start.Column),
		cmp.Compare(a.End.Line, b.End.Line),
		cmp.Compare(a.End.Column, b.End.Column),
	)
}
