package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docmodel/pkg/mdast"
)

// buildTestTree returns:
//
//	Document
//	  Heading
//	    Text
//	  Paragraph
//	    Text
//	    Emphasis
//	      Text
func buildTestTree() *mdast.Node {
	doc := mdast.NewDocument()

	heading := mdast.NewNode(mdast.NodeHeading)
	mdast.AppendChild(heading, mdast.NewNode(mdast.NodeText))
	mdast.AppendChild(doc, heading)

	para := mdast.NewNode(mdast.NodeParagraph)
	mdast.AppendChild(para, mdast.NewNode(mdast.NodeText))
	emphasis := mdast.NewNode(mdast.NodeEmphasis)
	mdast.AppendChild(emphasis, mdast.NewNode(mdast.NodeText))
	mdast.AppendChild(para, emphasis)
	mdast.AppendChild(doc, para)

	return doc
}

func kinds(nodes []*mdast.Node) []mdast.NodeKind {
	out := make([]mdast.NodeKind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind)
	}
	return out
}

func TestNewNode_IsSynthetic(t *testing.T) {
	t.Parallel()

	node := mdast.NewNode(mdast.NodeParagraph)

	assert.Equal(t, mdast.NodeParagraph, node.Kind)
	assert.Equal(t, -1, node.Start)
	assert.Equal(t, -1, node.End)
	assert.False(t, node.HasRange())
	assert.Empty(t, node.Source("anything"))
}

func TestNode_Source(t *testing.T) {
	t.Parallel()

	src := "# Title\n\nBody"
	node := mdast.NewNode(mdast.NodeHeading)
	node.SetRange(2, 7)

	assert.True(t, node.HasRange())
	assert.Equal(t, "Title", node.Source(src))
	assert.Empty(t, node.Source("short"), "span past the end of src")
}

func TestNode_BlockAndInline(t *testing.T) {
	t.Parallel()

	for _, kind := range []mdast.NodeKind{
		mdast.NodeDocument, mdast.NodeParagraph, mdast.NodeHeading, mdast.NodeList,
		mdast.NodeListItem, mdast.NodeBlockquote, mdast.NodeCodeBlock,
		mdast.NodeThematicBreak, mdast.NodeHTMLBlock,
	} {
		node := &mdast.Node{Kind: kind}
		assert.True(t, node.IsBlock(), kind.String())
		assert.False(t, node.IsInline(), kind.String())
	}

	for _, kind := range []mdast.NodeKind{
		mdast.NodeText, mdast.NodeEmphasis, mdast.NodeStrong, mdast.NodeCodeSpan,
		mdast.NodeLink, mdast.NodeImage, mdast.NodeSoftBreak, mdast.NodeHardBreak,
		mdast.NodeHTMLInline,
	} {
		node := &mdast.Node{Kind: kind}
		assert.True(t, node.IsInline(), kind.String())
		assert.False(t, node.IsBlock(), kind.String())
	}

	raw := &mdast.Node{Kind: mdast.NodeRaw}
	assert.False(t, raw.IsBlock())
	assert.False(t, raw.IsInline())
}

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind mdast.NodeKind
		want string
	}{
		{mdast.NodeDocument, "Document"},
		{mdast.NodeCodeBlock, "CodeBlock"},
		{mdast.NodeHTMLBlock, "HTMLBlock"},
		{mdast.NodeHTMLInline, "HTMLInline"},
		{mdast.NodeRaw, "Raw"},
		{mdast.NodeKind(999), "Unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.kind.String())
	}
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewDocument()
	first := mdast.NewNode(mdast.NodeParagraph)
	second := mdast.NewNode(mdast.NodeHeading)

	assert.False(t, parent.HasChildren())

	mdast.AppendChild(parent, first)
	mdast.AppendChild(parent, second)

	require.True(t, parent.HasChildren())
	assert.Same(t, first, parent.FirstChild)
	assert.Same(t, second, parent.LastChild)
	assert.Same(t, second, first.Next)
	assert.Same(t, first, second.Prev)
	assert.Same(t, parent, second.Parent)
	assert.Equal(t, []*mdast.Node{first, second}, parent.Children())

	mdast.AppendChild(nil, first)
	mdast.AppendChild(parent, nil)
	assert.Len(t, parent.Children(), 2)
}

func TestAppendChild_MovesFromPreviousParent(t *testing.T) {
	t.Parallel()

	oldParent := mdast.NewDocument()
	newParent := mdast.NewNode(mdast.NodeBlockquote)
	child := mdast.NewNode(mdast.NodeParagraph)

	mdast.AppendChild(oldParent, child)
	mdast.AppendChild(newParent, child)

	assert.False(t, oldParent.HasChildren())
	assert.Nil(t, oldParent.LastChild)
	assert.Same(t, newParent, child.Parent)
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewDocument()
	a := mdast.NewNode(mdast.NodeParagraph)
	b := mdast.NewNode(mdast.NodeHeading)
	c := mdast.NewNode(mdast.NodeCodeBlock)
	mdast.AppendChild(parent, a)
	mdast.AppendChild(parent, b)
	mdast.AppendChild(parent, c)

	mdast.RemoveChild(parent, b)

	assert.Equal(t, []*mdast.Node{a, c}, parent.Children())
	assert.Same(t, c, a.Next)
	assert.Same(t, a, c.Prev)
	assert.Nil(t, b.Parent)
	assert.Nil(t, b.Prev)
	assert.Nil(t, b.Next)

	// Not a child of other: no-op.
	other := mdast.NewDocument()
	mdast.RemoveChild(other, a)
	assert.Same(t, parent, a.Parent)
}

func TestWalk_DocumentOrder(t *testing.T) {
	t.Parallel()

	var visited []mdast.NodeKind
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeading,
		mdast.NodeText,
		mdast.NodeParagraph,
		mdast.NodeText,
		mdast.NodeEmphasis,
		mdast.NodeText,
	}, visited)
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	err := mdast.Walk(nil, func(_ *mdast.Node) error {
		t.Error("callback should not be called for nil root")
		return nil
	})
	assert.NoError(t, err)
}

func TestWalk_EarlyTermination(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop here")
	count := 0

	err := mdast.Walk(buildTestTree(), func(n *mdast.Node) error {
		count++
		if n.Kind == mdast.NodeParagraph {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 4, count)
}

func TestWalkWithContext_EnterLeaveOrder(t *testing.T) {
	t.Parallel()

	var enter, leave []mdast.NodeKind
	err := mdast.WalkWithContext(buildTestTree(),
		func(n *mdast.Node) error {
			enter = append(enter, n.Kind)
			return nil
		},
		func(n *mdast.Node) error {
			leave = append(leave, n.Kind)
			return nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeDocument, mdast.NodeHeading, mdast.NodeText,
		mdast.NodeParagraph, mdast.NodeText, mdast.NodeEmphasis, mdast.NodeText,
	}, enter)
	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeText, mdast.NodeHeading, mdast.NodeText,
		mdast.NodeText, mdast.NodeEmphasis, mdast.NodeParagraph, mdast.NodeDocument,
	}, leave)
}

func TestWalkWithContext_SkipChildren(t *testing.T) {
	t.Parallel()

	var enter, leave []mdast.NodeKind
	err := mdast.WalkWithContext(buildTestTree(),
		func(n *mdast.Node) error {
			enter = append(enter, n.Kind)
			if n.Kind == mdast.NodeParagraph {
				return mdast.SkipChildren
			}
			return nil
		},
		func(n *mdast.Node) error {
			leave = append(leave, n.Kind)
			return nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeDocument, mdast.NodeHeading, mdast.NodeText, mdast.NodeParagraph,
	}, enter)
	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeText, mdast.NodeHeading, mdast.NodeParagraph, mdast.NodeDocument,
	}, leave)
}

func TestWalkWithContext_NilCallbacks(t *testing.T) {
	t.Parallel()

	assert.NoError(t, mdast.WalkWithContext(buildTestTree(), nil, nil))
}

func TestFind(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	texts := mdast.FindAll(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeText })
	assert.Len(t, texts, 3)

	para := mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeParagraph })
	require.NotNil(t, para)
	assert.Equal(t, []mdast.NodeKind{mdast.NodeText, mdast.NodeEmphasis}, kinds(para.Children()))

	assert.Nil(t, mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeCodeBlock }))
	assert.Len(t, mdast.FindByKind(doc, mdast.NodeHeading), 1)
	assert.Empty(t, mdast.FindByKind(doc, mdast.NodeCodeBlock))
}

func TestContains(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()
	para := mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeParagraph })
	emphText := para.LastChild.FirstChild

	assert.True(t, mdast.Contains(doc, emphText))
	assert.True(t, mdast.Contains(para, emphText))
	assert.True(t, mdast.Contains(para, para))
	assert.False(t, mdast.Contains(doc.FirstChild, emphText))
}

func TestCodeBlockAttrs_Language(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                 "",
		"js":               "js",
		"javascript title": "javascript",
		"css{.line}":       "css",
		"html\tlive":       "html",
	}
	for info, want := range tests {
		attrs := &mdast.CodeBlockAttrs{Info: info}
		assert.Equal(t, want, attrs.Language(), info)
	}
}
