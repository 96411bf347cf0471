// Package style implements CSS documents over a tree-sitter syntax tree.
package style

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"

	"github.com/yaklabco/docmodel/internal/tsnode"
	"github.com/yaklabco/docmodel/pkg/document"
)

// Type is the document type of CSS documents.
const Type = "css"

// Visitor receives syntax nodes during Document.Visit.
type Visitor = tsnode.Visitor

// Document is a parsed CSS document. Call Close when done with it.
type Document struct {
	*tsnode.Document
}

var _ document.Parsed[*sitter.Node, Visitor] = (*Document)(nil)

// Parse parses src as CSS.
func Parse(ctx context.Context, src document.Source) (*Document, error) {
	doc, err := tsnode.Parse(ctx, css.GetLanguage(), Type, src)
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped with the document URL
	}
	return &Document{Document: doc}, nil
}

// Language returns the CSS grammar, for callers compiling queries.
func Language() *sitter.Language {
	return css.GetLanguage()
}
