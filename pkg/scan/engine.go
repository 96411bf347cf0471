package scan

import (
	"context"
	"fmt"

	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/feature"
)

// Candidate is a scanned candidate with the scanner that produced it.
type Candidate struct {
	ScannerID string
	Scanned   feature.Scanned
}

// ScannerError records a scanner that failed on a document.
type ScannerError struct {
	ScannerID string
	Document  string
	Err       error
}

func (e *ScannerError) Error() string {
	return fmt.Sprintf("scanner %s failed on %s: %v", e.ScannerID, e.Document, e.Err)
}

func (e *ScannerError) Unwrap() error {
	return e.Err
}

// Result contains the results of scanning a single document.
type Result struct {
	// Document is the scanned document.
	Document document.Document

	// Candidates holds the candidates of every scanner, in scanner order.
	Candidates []Candidate

	// Errors holds the failures of individual scanners.
	Errors []*ScannerError
}

// Engine runs scanners over documents.
type Engine struct {
	// Registry holds all available scanners.
	Registry *Registry

	// Config is the configuration scanners are resolved against.
	Config *config.Config

	scanners []ResolvedScanner
}

// NewEngine creates an Engine and resolves its scanners against cfg.
func NewEngine(registry *Registry, cfg *config.Config) *Engine {
	return &Engine{
		Registry: registry,
		Config:   cfg,
		scanners: ResolveScanners(registry, cfg),
	}
}

// Scanners returns the enabled scanners.
func (e *Engine) Scanners() []ResolvedScanner {
	return e.scanners
}

// Scan runs the engine's scanners over doc.
func (e *Engine) Scan(ctx context.Context, doc document.Document) (*Result, error) {
	return e.ScanDocument(ctx, doc, e.scanners)
}

// ScanDocument runs every scanner in scanners that handles doc's type.
// A failing scanner is recorded in the result and does not stop the others.
// Cancellation is checked between scanners.
func (e *Engine) ScanDocument(
	ctx context.Context,
	doc document.Document,
	scanners []ResolvedScanner,
) (*Result, error) {
	result := &Result{Document: doc}

	for _, rs := range scanners {
		if !rs.Enabled || rs.Scanner.DocumentType() != doc.Type() {
			continue
		}

		select {
		case <-ctx.Done():
			return result, fmt.Errorf("scanning cancelled: %w", ctx.Err())
		default:
		}

		found, err := rs.Scanner.Scan(NewContext(ctx, doc, e.Config, rs.Config))
		if err != nil {
			result.Errors = append(result.Errors, &ScannerError{
				ScannerID: rs.Scanner.ID(),
				Document:  document.Describe(doc),
				Err:       err,
			})
			continue
		}

		for _, s := range found {
			if s != nil {
				result.Candidates = append(result.Candidates, Candidate{ScannerID: rs.Scanner.ID(), Scanned: s})
			}
		}
	}

	return result, nil
}
