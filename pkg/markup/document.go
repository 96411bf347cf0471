// Package markup implements markdown documents: parsing through goldmark,
// node locations, discovery of embedded script and style fragments, and
// serialization with edited fragments substituted back in.
package markup

import (
	"context"
	"fmt"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/mdast"
	"github.com/yaklabco/docmodel/pkg/parser/goldmark"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// Type is the document type of markdown documents.
const Type = "markdown"

// Visitor receives markdown nodes during Document.Visit.
type Visitor = document.Visitor[*mdast.Node]

// Parser produces markdown documents. A Parser is safe for concurrent use.
type Parser struct {
	md             *goldmark.Parser
	detectLanguage bool
}

// NewParser returns a parser for the given goldmark flavor. When
// detectLanguage is set, unlabeled fenced code blocks are classified by
// content.
func NewParser(flavor string, detectLanguage bool) *Parser {
	return &Parser{md: goldmark.New(flavor), detectLanguage: detectLanguage}
}

// Parse parses src into a Document.
func (p *Parser) Parse(ctx context.Context, src document.Source) (*Document, error) {
	root, err := p.md.Parse(ctx, []byte(src.Contents))
	if err != nil {
		return nil, fmt.Errorf("parse markdown %s: %w", src.URL, err)
	}

	doc := &Document{detectLanguage: p.detectLanguage}
	doc.Base = document.NewBase(document.WithAST(src, root), doc.locate)
	return doc, nil
}

// Document is a parsed markdown document.
type Document struct {
	*document.Base[*mdast.Node]

	detectLanguage bool
}

var _ document.Parsed[*mdast.Node, Visitor] = (*Document)(nil)

// Type returns "markdown".
func (d *Document) Type() string { return Type }

// Visit runs visitors over the AST in one pre-order pass.
func (d *Document) Visit(visitors ...Visitor) error {
	return document.Visit(d.walk, visitors)
}

// ForEachNode calls fn for every node in document order.
func (d *Document) ForEachNode(fn func(node *mdast.Node)) {
	//nolint:errcheck,revive // the callback never fails
	mdast.Walk(d.AST(), func(n *mdast.Node) error {
		fn(n)
		return nil
	})
}

func (d *Document) walk(enter, leave func(*mdast.Node) error) error {
	return mdast.WalkWithContext(d.AST(), enter, leave)
}

func (d *Document) locate(node *mdast.Node) (srcrange.SourceRange, bool) {
	if !node.HasRange() || node.End > len(d.Contents()) {
		return srcrange.SourceRange{}, false
	}
	return d.OffsetsToSourceRange(node.Start, node.End), true
}
