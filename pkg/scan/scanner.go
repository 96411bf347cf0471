// Package scan provides the scanner engine, registry, and scanner context
// for docmodel. Scanners find candidate features in a single document; the
// engine runs the applicable scanners and collects their candidates.
package scan

import "github.com/yaklabco/docmodel/pkg/feature"

// Scanner defines the interface that all scanners must implement.
type Scanner interface {
	// ID returns the unique identifier for this scanner (e.g., "SCN001").
	ID() string

	// Name returns the human-readable name of the scanner.
	Name() string

	// Description returns a description of what the scanner finds.
	Description() string

	// DocumentType returns the document type the scanner understands,
	// such as "javascript" or "css".
	DocumentType() string

	// DefaultEnabled returns whether the scanner runs by default.
	DefaultEnabled() bool

	// Scan returns the candidates found in ctx.Document.
	//
	// Scanners must:
	//   - Not mutate the document.
	//   - Respect context cancellation.
	//   - Return error only for internal failures; problems in the
	//     scanned code are warnings on the candidates.
	Scan(ctx *Context) ([]feature.Scanned, error)
}
