package feature

import (
	"slices"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// Kind tags the feature variants.
type Kind string

// Feature kinds.
const (
	KindFunction       Kind = "function"
	KindProperty       Kind = "property"
	KindElement        Kind = "element"
	KindCustomProperty Kind = "css-custom-property"
)

// AllKinds lists every variant tag.
func AllKinds() []Kind {
	return []Kind{KindFunction, KindProperty, KindElement, KindCustomProperty}
}

// Scanned is a candidate produced by a scanner. It knows only what was
// visible at the scan site.
type Scanned interface {
	Kind() Kind

	// Resolve produces the feature for this candidate in doc. It never
	// fails and never mutates the candidate or doc: inconsistencies are
	// recorded as warnings on the result, and every call returns a new
	// value.
	Resolve(doc document.Document) Feature
}

// Feature is a resolved, immutable feature. The set of implementations is
// closed to this package.
type Feature interface {
	Kind() Kind
	Name() string

	// Kinds is the set of kind strings the feature answers to in queries.
	// It always contains Kind.
	Kinds() Set

	// Identifiers is the set of names the feature may be looked up by.
	Identifiers() Set

	SourceRange() srcrange.SourceRange
	Warnings() []Warning
	String() string

	sealed()
}

// base carries the state shared by every feature variant.
type base struct {
	name        string
	kinds       Set
	identifiers Set
	sourceRange srcrange.SourceRange
	astNode     any
	warnings    []Warning
}

func (b *base) Name() string                      { return b.name }
func (b *base) Kinds() Set                        { return b.kinds }
func (b *base) Identifiers() Set                  { return b.identifiers }
func (b *base) SourceRange() srcrange.SourceRange { return b.sourceRange }

// ASTNode returns the syntax node the feature was scanned from.
func (b *base) ASTNode() any { return b.astNode }

// Warnings returns a copy of the feature's warnings.
func (b *base) Warnings() []Warning { return slices.Clone(b.warnings) }

func (b *base) sealed() {}

// resolveRange returns r, or the range of doc when r was never set.
func resolveRange(r srcrange.SourceRange, doc document.Document) srcrange.SourceRange {
	if r == (srcrange.SourceRange{}) && doc != nil {
		return doc.SourceRange()
	}
	return r
}

func warning(code, message string, r srcrange.SourceRange) Warning {
	return Warning{Code: code, Message: message, Severity: SeverityWarning, SourceRange: r}
}
