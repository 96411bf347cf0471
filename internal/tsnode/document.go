package tsnode

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// Visitor receives tree-sitter nodes during Document.Visit.
type Visitor = document.Visitor[*sitter.Node]

// Document is a document over a tree-sitter syntax tree. Node pointers are
// stable for the life of the tree, so they may be used as map keys and for
// identity comparison.
type Document struct {
	*document.Base[*sitter.Node]

	docType string
	tree    *sitter.Tree
	src     []byte
}

// Parse parses src with lang. Syntax errors do not fail the parse; they are
// reported by SyntaxErrors.
func Parse(ctx context.Context, lang *sitter.Language, docType string, src document.Source) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	content := []byte(src.Contents)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s %s: %w", docType, src.URL, err)
	}

	doc := &Document{docType: docType, tree: tree, src: content}
	doc.Base = document.NewBase(document.WithAST(src, tree.RootNode()), doc.locate)
	return doc, nil
}

// Type returns the document type given to Parse.
func (d *Document) Type() string { return d.docType }

// Visit runs visitors over every node in one pre-order pass.
func (d *Document) Visit(visitors ...Visitor) error {
	return document.Visit(func(enter, leave func(*sitter.Node) error) error {
		return Walk(d.AST(), enter, leave)
	}, visitors)
}

// ForEachNode calls fn for every node in document order.
func (d *Document) ForEachNode(fn func(node *sitter.Node)) {
	//nolint:errcheck,revive // the callback never fails
	Walk(d.AST(), func(n *sitter.Node) error {
		fn(n)
		return nil
	}, nil)
}

// NodeText returns the source text spanned by node.
func (d *Document) NodeText(node *sitter.Node) string {
	return Text(node, d.src)
}

// SyntaxErrors returns the absolute ranges of ERROR and missing nodes.
func (d *Document) SyntaxErrors() []srcrange.SourceRange {
	nodes := Errors(d.AST())
	out := make([]srcrange.SourceRange, 0, len(nodes))
	for _, n := range nodes {
		if r, ok := d.SourceRangeForNode(n); ok {
			out = append(out, r)
		}
	}
	return out
}

// Stringify returns the contents re-indented by opts.Indent. Tree-sitter
// documents embed nothing, so any inline document is an error.
func (d *Document) Stringify(opts document.StringifyOptions) (string, error) {
	if len(opts.InlineDocuments) > 0 {
		return "", document.InlineNotFoundError(opts.InlineDocuments[0],
			d.docType+" documents do not embed other documents")
	}
	return document.Reindent(d.Contents(), opts.Indent), nil
}

// Close releases the syntax tree. Nodes must not be used afterwards.
func (d *Document) Close() {
	if d.tree != nil {
		d.tree.Close()
		d.tree = nil
	}
}

func (d *Document) locate(node *sitter.Node) (srcrange.SourceRange, bool) {
	if node == nil || node.IsNull() {
		return srcrange.SourceRange{}, false
	}
	return LocalRange(node, d.URL()), true
}
