// Package script implements JavaScript documents over a tree-sitter syntax
// tree.
package script

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/yaklabco/docmodel/internal/tsnode"
	"github.com/yaklabco/docmodel/pkg/document"
)

// Type is the document type of JavaScript documents.
const Type = "javascript"

// Visitor receives syntax nodes during Document.Visit.
type Visitor = tsnode.Visitor

// Document is a parsed JavaScript document. Call Close when done with it.
type Document struct {
	*tsnode.Document
}

var _ document.Parsed[*sitter.Node, Visitor] = (*Document)(nil)

// Parse parses src as JavaScript.
func Parse(ctx context.Context, src document.Source) (*Document, error) {
	doc, err := tsnode.Parse(ctx, javascript.GetLanguage(), Type, src)
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped with the document URL
	}
	return &Document{Document: doc}, nil
}

// wrappers are the node types a doc comment may precede in place of the
// declaration it documents.
//
//nolint:gochecknoglobals // read-only table
var wrappers = map[string]bool{
	"export_statement":      true,
	"lexical_declaration":   true,
	"variable_declaration":  true,
	"variable_declarator":   true,
	"expression_statement":  true,
	"assignment_expression": true,
}

// bindings are the wrappers whose earlier children name the value they
// bind, so a doc comment is looked for before the wrapper instead.
//
//nolint:gochecknoglobals // read-only table
var bindings = map[string]bool{
	"variable_declarator":   true,
	"assignment_expression": true,
}

// LeadingComment returns the /** */ comment immediately preceding node, or
// preceding the declaration or export statement that wraps it. It returns ""
// when there is none.
func (d *Document) LeadingComment(node *sitter.Node) string {
	for n := node; n != nil && !n.IsNull(); {
		parent := n.Parent()
		if parent == nil || !bindings[parent.Type()] {
			if prev := n.PrevNamedSibling(); prev != nil {
				text := d.NodeText(prev)
				if prev.Type() == "comment" && strings.HasPrefix(text, "/**") && text != "/**/" {
					return text
				}
				return ""
			}
		}
		if parent == nil || !wrappers[parent.Type()] {
			return ""
		}
		n = parent
	}
	return ""
}

// StringValue returns the value of a string literal or a template string
// without substitutions.
func (d *Document) StringValue(node *sitter.Node) (string, bool) {
	if node == nil || node.IsNull() {
		return "", false
	}
	switch node.Type() {
	case "string":
		text := d.NodeText(node)
		if len(text) < 2 {
			return "", false
		}
		return unescape(text[1 : len(text)-1]), true
	case "template_string":
		for i := range tsnode.Int(node.NamedChildCount()) {
			if node.NamedChild(i).Type() == "template_substitution" {
				return "", false
			}
		}
		text := d.NodeText(node)
		if len(text) < 2 {
			return "", false
		}
		return text[1 : len(text)-1], true
	default:
		return "", false
	}
}

// unescape resolves the simple backslash escapes found in tag names and
// type names. Other escapes are kept verbatim.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			out.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case '\\', '\'', '"', '`':
			out.WriteByte(s[i])
		default:
			out.WriteByte('\\')
			out.WriteByte(s[i])
		}
	}
	return out.String()
}
