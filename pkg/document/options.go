package document

import "github.com/yaklabco/docmodel/pkg/srcrange"

// Source is what a parser receives: everything needed to build a document
// except the AST, which the parser produces.
type Source struct {
	// URL identifies the document. Inline documents share their parent's URL.
	URL string

	// BaseURL resolves relative references. Defaults to URL.
	BaseURL string

	// Contents is the full text of the document or fragment.
	Contents string

	// LocationOffset places an inline fragment within its parent.
	// Nil for top-level documents.
	LocationOffset *srcrange.LocationOffset

	// ASTNode is the parent's AST node at the embedding point, if inline.
	ASTNode any

	// IsInline is true iff the document is embedded in a parent document.
	IsInline bool
}

// Options is the bundle a document is constructed from.
type Options[N any] struct {
	Source

	// AST is the root node produced by the parser.
	AST N
}

// WithAST pairs a parser input with the AST parsed from it.
func WithAST[N any](src Source, ast N) Options[N] {
	return Options[N]{Source: src, AST: ast}
}

// Embedded describes an inline document discovered inside a parent, before
// it has been parsed.
type Embedded struct {
	// Type is the document type the fragment should be parsed as.
	Type string

	// Source is the parser input for the fragment.
	Source Source
}
