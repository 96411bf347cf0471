package goldmark

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/docmodel/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast tree.
type mapper struct {
	content []byte
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	doc.SetRange(0, len(m.content))
	return doc
}

func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		node := m.mapNode(child)
		if node == nil {
			continue
		}
		mdast.AppendChild(parent, node)

		// goldmark flags a line break on the text that precedes it.
		if t, ok := child.(*ast.Text); ok {
			switch {
			case t.HardLineBreak():
				mdast.AppendChild(parent, m.breakAfter(mdast.NodeHardBreak, t))
			case t.SoftLineBreak():
				mdast.AppendChild(parent, m.breakAfter(mdast.NodeSoftBreak, t))
			}
		}
	}
}

// mapNode converts a single goldmark node, its descendants, and their spans.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Block = &mdast.BlockAttrs{HeadingLevel: gmn.Level}
		m.mapChildren(gmn, node)
		if start, end, ok := m.linesRange(gmn); ok {
			node.SetRange(lineStart(m.content, start), end)
		}

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewNode(mdast.NodeParagraph)
		m.mapChildren(gmNode, node)
		m.setLinesRange(node, gmNode)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		m.mapChildren(gmn, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmn, node)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = m.mapIndentedCodeBlock(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)
		m.setLinesRange(node, gmn)

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)
		if start, end, ok := m.linesRange(gmn); ok {
			if gmn.HasClosure() {
				end = trimEOL(m.content, start, gmn.ClosureLine.Stop)
			}
			node.SetRange(start, end)
		}

	case *ast.Text:
		node = mdast.NewNode(mdast.NodeText)
		node.Inline = &mdast.InlineAttrs{Text: gmn.Segment.Value(m.content)}
		node.SetRange(gmn.Segment.Start, gmn.Segment.Stop)

	case *ast.String:
		node = mdast.NewNode(mdast.NodeText)
		node.Inline = &mdast.InlineAttrs{Text: gmn.Value}

	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if gmn.Level == 2 {
			kind = mdast.NodeStrong
		}
		node = mdast.NewNode(kind)
		node.Inline = &mdast.InlineAttrs{EmphasisLevel: gmn.Level}
		m.mapChildren(gmn, node)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = mdast.NewNode(mdast.NodeLink)
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		}}
		m.mapChildren(gmn, node)

	case *ast.Image:
		node = mdast.NewNode(mdast.NodeImage)
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		}}
		m.mapChildren(gmn, node)

	case *ast.AutoLink:
		node = mdast.NewNode(mdast.NodeLink)
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination:    string(gmn.URL(m.content)),
			ReferenceStyle: mdast.RefStyleAutolink,
		}}
		label := mdast.NewNode(mdast.NodeText)
		label.Inline = &mdast.InlineAttrs{Text: gmn.Label(m.content)}
		mdast.AppendChild(node, label)

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)
		if gmn.Segments.Len() > 0 {
			first := gmn.Segments.At(0)
			last := gmn.Segments.At(gmn.Segments.Len() - 1)
			node.SetRange(first.Start, last.Stop)
		}

	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeEmphasis)
		node.Ext = map[string]any{"strikethrough": true}
		m.mapChildren(gmn, node)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeText)
		node.Ext = map[string]any{"taskCheckbox": true, "checked": gmn.IsChecked}

	case *east.Table:
		node = m.mapExtBlock(gmn, map[string]any{"table": true, "alignments": gmn.Alignments})

	case *east.TableHeader:
		node = m.mapExtBlock(gmn, map[string]any{"tableHeader": true})

	case *east.TableRow:
		node = m.mapExtBlock(gmn, map[string]any{"tableRow": true})

	case *east.TableCell:
		node = m.mapExtBlock(gmn, map[string]any{"tableCell": true, "alignment": gmn.Alignment})

	default:
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
		if gmNode.Type() == ast.TypeBlock {
			m.setLinesRange(node, gmNode)
		}
	}

	if !node.HasRange() {
		spanChildren(node)
	}
	return node
}

func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	attrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if list.IsOrdered() {
		attrs.Delimiter = string(list.Marker)
	} else {
		attrs.BulletMarker = string(list.Marker)
	}

	node.Block = &mdast.BlockAttrs{List: attrs}
	m.mapChildren(list, node)
	return node
}

func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var text []byte
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			text = append(text, c.Segment.Value(m.content)...)
		case *ast.String:
			text = append(text, c.Value...)
		}
	}
	node.Inline = &mdast.InlineAttrs{Text: text}

	// Children are folded into Text; the span covers their segments.
	start, end := -1, -1
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			if start < 0 {
				start = t.Segment.Start
			}
			end = t.Segment.Stop
		}
	}
	if start >= 0 {
		node.SetRange(start, end)
	}
	return node
}

func (m *mapper) mapExtBlock(gmNode ast.Node, ext map[string]any) *mdast.Node {
	node := mdast.NewNode(mdast.NodeRaw)
	node.Ext = ext
	m.mapChildren(gmNode, node)
	m.setLinesRange(node, gmNode)
	return node
}

// breakAfter returns a line break node spanning the rest of t's line, up to
// but excluding the newline.
func (m *mapper) breakAfter(kind mdast.NodeKind, t *ast.Text) *mdast.Node {
	node := mdast.NewNode(kind)
	node.SetRange(t.Segment.Stop, lineEnd(m.content, t.Segment.Stop))
	return node
}
