// Package document defines the parsed document contract shared by every
// syntax: the text, the AST root, the embedding descriptor for inline
// fragments, and the coordinate translation between them.
package document

import (
	"errors"
	"fmt"

	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// ErrInlineDocumentNotFound is returned by Stringify when an inline document
// does not correspond to any embedding in the AST.
var ErrInlineDocumentNotFound = errors.New("inline document not found in parent")

// Document is the syntax-independent view of a parsed document.
type Document interface {
	// Type names the syntax, such as "markdown", "javascript", or "css".
	Type() string

	URL() string
	BaseURL() string
	Contents() string
	IsInline() bool
	ASTNode() any
	SourceRange() srcrange.SourceRange
	LocationOffset() (srcrange.LocationOffset, bool)
	NewlineIndexes() []int

	OffsetToSourcePosition(offset int) srcrange.SourcePosition
	OffsetsToSourceRange(start, end int) srcrange.SourceRange
	SourcePositionToOffset(pos srcrange.SourcePosition) (int, bool)
	SourceRangeToOffsets(r srcrange.SourceRange) (int, int, bool)
	RelativeToAbsoluteSourceRange(r srcrange.SourceRange) srcrange.SourceRange
	AbsoluteToRelativeSourceRange(r srcrange.SourceRange) srcrange.SourceRange

	// Stringify serializes the AST back to text. It depends only on the AST
	// and opts.
	Stringify(opts StringifyOptions) (string, error)
}

// Parsed is a Document over a concrete node type N walked by visitors of type V.
type Parsed[N, V any] interface {
	Document

	AST() N

	// Visit runs every visitor over the AST in a single pass. Nodes are
	// visited in document order and each visitor sees each node exactly once.
	Visit(visitors ...V) error

	// ForEachNode calls fn for every node in document order.
	ForEachNode(fn func(node N))

	// SourceRangeForNode returns the absolute range of node, or false if the
	// node cannot be located.
	SourceRangeForNode(node N) (srcrange.SourceRange, bool)
}

// StringifyOptions controls Stringify.
type StringifyOptions struct {
	// Indent is the number of spaces to re-indent the output at.
	// Zero leaves indentation as parsed.
	Indent int

	// InlineDocuments are parsed, possibly modified, documents embedded in
	// this one. Their stringified text replaces what the AST holds.
	InlineDocuments []Document
}

// Describe returns a short human label for doc.
func Describe(doc Document) string {
	if doc.IsInline() {
		return fmt.Sprintf("inline %s document at line %d of %s",
			doc.Type(), doc.SourceRange().Start.Line+1, doc.URL())
	}
	return fmt.Sprintf("%s document at %s", doc.Type(), doc.URL())
}

// InlineNotFoundError wraps ErrInlineDocumentNotFound with the offending document.
func InlineNotFoundError(inline Document, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInlineDocumentNotFound, Describe(inline), reason)
}
