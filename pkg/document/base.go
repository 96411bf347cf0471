package document

import (
	"slices"

	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// LocateFunc returns a node's range in the document's local coordinates.
// It reports false for nodes with no source position, such as synthetic ones.
type LocateFunc[N any] func(node N) (srcrange.SourceRange, bool)

// Base holds the state and coordinate logic shared by every syntax. Concrete
// documents embed a *Base and supply a LocateFunc for their node type.
//
// A Base is read-only after construction. The AST it points to may be
// annotated in place by callers that serialize their own access.
type Base[N any] struct {
	url      string
	baseURL  string
	contents string
	ast      N
	isInline bool
	astNode  any

	locationOffset *srcrange.LocationOffset
	newlineIndexes srcrange.NewlineIndex
	sourceRange    srcrange.SourceRange
	locate         LocateFunc[N]
}

// NewBase builds the newline index and whole-document range for opts.
// The range is expressed in parent coordinates when opts describes an inline
// document.
func NewBase[N any](opts Options[N], locate LocateFunc[N]) *Base[N] {
	base := &Base[N]{
		url:            opts.URL,
		baseURL:        opts.BaseURL,
		contents:       opts.Contents,
		ast:            opts.AST,
		isInline:       opts.IsInline,
		astNode:        opts.ASTNode,
		newlineIndexes: srcrange.BuildNewlineIndex(opts.Contents),
		locate:         locate,
	}
	if base.baseURL == "" {
		base.baseURL = base.url
	}
	if opts.LocationOffset != nil {
		offset := *opts.LocationOffset
		base.locationOffset = &offset
	}

	local := srcrange.SourceRange{
		File:  base.url,
		Start: srcrange.SourcePosition{},
		End:   base.newlineIndexes.End(len(base.contents)),
	}
	base.sourceRange = srcrange.Correct(local, base.locationOffset)

	return base
}

// URL returns the document URL.
func (b *Base[N]) URL() string { return b.url }

// BaseURL returns the URL relative references resolve against.
func (b *Base[N]) BaseURL() string { return b.baseURL }

// Contents returns the full text of the document.
func (b *Base[N]) Contents() string { return b.contents }

// AST returns the root node.
func (b *Base[N]) AST() N { return b.ast }

// IsInline reports whether the document is embedded in a parent.
func (b *Base[N]) IsInline() bool { return b.isInline }

// ASTNode returns the parent's node at the embedding point, or nil.
func (b *Base[N]) ASTNode() any { return b.astNode }

// SourceRange returns the range spanning the whole document, in parent
// coordinates if inline.
func (b *Base[N]) SourceRange() srcrange.SourceRange { return b.sourceRange }

// LocationOffset returns the offset placing this document in its parent.
func (b *Base[N]) LocationOffset() (srcrange.LocationOffset, bool) {
	if b.locationOffset == nil {
		return srcrange.LocationOffset{}, false
	}
	return *b.locationOffset, true
}

// NewlineIndexes returns a copy of the offsets of every '\n' in Contents.
func (b *Base[N]) NewlineIndexes() []int {
	return slices.Clone([]int(b.newlineIndexes))
}

// OffsetToSourcePosition converts a byte offset into a local position.
func (b *Base[N]) OffsetToSourcePosition(offset int) srcrange.SourcePosition {
	return b.newlineIndexes.Position(offset)
}

// OffsetsToSourceRange converts a pair of byte offsets into a local range.
func (b *Base[N]) OffsetsToSourceRange(start, end int) srcrange.SourceRange {
	return srcrange.SourceRange{
		File:  b.url,
		Start: b.OffsetToSourcePosition(start),
		End:   b.OffsetToSourcePosition(end),
	}
}

// SourcePositionToOffset converts a local position into a byte offset.
// It reports false if the position lies outside Contents; such positions are
// clamped to the end of the text.
func (b *Base[N]) SourcePositionToOffset(pos srcrange.SourcePosition) (int, bool) {
	return b.newlineIndexes.Offset(pos, len(b.contents))
}

// SourceRangeToOffsets converts a local range into byte offsets.
func (b *Base[N]) SourceRangeToOffsets(r srcrange.SourceRange) (int, int, bool) {
	start, startOK := b.SourcePositionToOffset(r.Start)
	end, endOK := b.SourcePositionToOffset(r.End)
	return start, end, startOK && endOK
}

// RelativeToAbsoluteSourceRange maps a local range into the coordinates of
// the outermost file. Top-level documents return r unchanged.
func (b *Base[N]) RelativeToAbsoluteSourceRange(r srcrange.SourceRange) srcrange.SourceRange {
	return srcrange.Correct(r, b.locationOffset)
}

// AbsoluteToRelativeSourceRange inverts RelativeToAbsoluteSourceRange for
// ranges this document produced.
func (b *Base[N]) AbsoluteToRelativeSourceRange(r srcrange.SourceRange) srcrange.SourceRange {
	return srcrange.Uncorrect(r, b.locationOffset, b.url)
}

// SourceRangeForNode returns node's range in absolute coordinates, or false
// if the node cannot be located. Absence is a normal outcome.
func (b *Base[N]) SourceRangeForNode(node N) (srcrange.SourceRange, bool) {
	if b.locate == nil {
		return srcrange.SourceRange{}, false
	}
	local, ok := b.locate(node)
	if !ok {
		return srcrange.SourceRange{}, false
	}
	return b.RelativeToAbsoluteSourceRange(local), true
}
