package markup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/mdast"
	"github.com/yaklabco/docmodel/pkg/textedit"
)

type substitution struct {
	start, end int
	text       string
	inline     document.Document
}

// Stringify serializes the document. Each inline document in opts replaces
// the fragment it was parsed from; it is matched by its embedding node and
// the start of its absolute range. The result is re-indented by opts.Indent.
func (d *Document) Stringify(opts document.StringifyOptions) (string, error) {
	subs := make([]substitution, 0, len(opts.InlineDocuments))
	for _, inline := range opts.InlineDocuments {
		start, end, err := d.locateInline(inline)
		if err != nil {
			return "", err
		}
		text, err := inline.Stringify(document.StringifyOptions{})
		if err != nil {
			return "", fmt.Errorf("stringify %s: %w", document.Describe(inline), err)
		}
		if strings.HasSuffix(d.Contents()[start:end], "\n") && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		subs = append(subs, substitution{start: start, end: end, text: text, inline: inline})
	}

	edits := make([]textedit.Edit, len(subs))
	for i, sub := range subs {
		edits[i] = textedit.Replace(sub.start, sub.end, sub.text)
	}
	out, err := textedit.Apply(d.Contents(), edits)
	if err != nil {
		var cerr *textedit.ConflictError
		if errors.As(err, &cerr) {
			for _, sub := range subs {
				if sub.start == cerr.Second.Start && sub.end == cerr.Second.End {
					return "", document.InlineNotFoundError(sub.inline, "overlaps another inline document")
				}
			}
		}
		return "", fmt.Errorf("substitute inline documents: %w", err)
	}

	return document.Reindent(out, opts.Indent), nil
}

// locateInline returns the byte span of d that inline was parsed from.
func (d *Document) locateInline(inline document.Document) (int, int, error) {
	node, ok := inline.ASTNode().(*mdast.Node)
	if !ok || node == nil {
		return 0, 0, document.InlineNotFoundError(inline, "not embedded in a markdown node")
	}
	if !mdast.Contains(d.AST(), node) {
		return 0, 0, document.InlineNotFoundError(inline, "embedding node is not part of "+d.URL())
	}

	local := d.AbsoluteToRelativeSourceRange(inline.SourceRange())
	offset, ok := d.SourcePositionToOffset(local.Start)
	if !ok {
		return 0, 0, document.InlineNotFoundError(inline, "starts outside "+d.URL())
	}

	for _, frag := range d.fragments(node) {
		if frag.start == offset {
			return frag.start, frag.end, nil
		}
	}
	return 0, 0, document.InlineNotFoundError(inline,
		fmt.Sprintf("no fragment of the %s node starts at line %d", node.Kind, local.Start.Line+1))
}
