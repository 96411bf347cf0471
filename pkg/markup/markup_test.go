package markup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/langdetect"
	"github.com/yaklabco/docmodel/pkg/markup"
	"github.com/yaklabco/docmodel/pkg/mdast"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

const fencedSource = "# Demo\n\n```js\nlet a = 1;\n```\n\n```css\n--x: 1;\n```\n\n```ts\nlet t: number;\n```\n"

func parse(t *testing.T, contents string, detect bool) *markup.Document {
	t.Helper()

	doc, err := markup.NewParser("gfm", detect).Parse(context.Background(), document.Source{
		URL:      "README.md",
		Contents: contents,
	})
	require.NoError(t, err)
	return doc
}

func pos(line, column int) srcrange.SourcePosition {
	return srcrange.SourcePosition{Line: line, Column: column}
}

func TestParse_Document(t *testing.T) {
	t.Parallel()

	doc := parse(t, fencedSource, false)

	assert.Equal(t, "markdown", doc.Type())
	assert.Equal(t, "README.md", doc.URL())
	assert.False(t, doc.IsInline())
	assert.Equal(t, mdast.NodeDocument, doc.AST().Kind)
	assert.Equal(t, "markdown document at README.md", document.Describe(doc))
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := markup.NewParser("gfm", false).Parse(ctx, document.Source{URL: "x.md", Contents: "x"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSourceRangeForNode(t *testing.T) {
	t.Parallel()

	doc := parse(t, fencedSource, false)

	heading := mdast.FindFirst(doc.AST(), func(n *mdast.Node) bool { return n.Kind == mdast.NodeHeading })
	require.NotNil(t, heading)
	r, ok := doc.SourceRangeForNode(heading)
	require.True(t, ok)
	assert.Equal(t, srcrange.SourceRange{File: "README.md", Start: pos(0, 0), End: pos(0, 6)}, r)

	code := mdast.FindFirst(doc.AST(), func(n *mdast.Node) bool { return n.Kind == mdast.NodeCodeBlock })
	require.NotNil(t, code)
	r, ok = doc.SourceRangeForNode(code)
	require.True(t, ok)
	assert.Equal(t, srcrange.SourceRange{File: "README.md", Start: pos(2, 0), End: pos(4, 3)}, r)

	_, ok = doc.SourceRangeForNode(mdast.NewNode(mdast.NodeText))
	assert.False(t, ok)
}

func TestVisitAndForEachNode_Agree(t *testing.T) {
	t.Parallel()

	doc := parse(t, fencedSource, false)

	var walked []*mdast.Node
	doc.ForEachNode(func(n *mdast.Node) { walked = append(walked, n) })

	var first, second []*mdast.Node
	require.NoError(t, doc.Visit(
		document.VisitorFuncs[*mdast.Node]{EnterFunc: func(n *mdast.Node) error {
			first = append(first, n)
			return nil
		}},
		document.VisitorFuncs[*mdast.Node]{EnterFunc: func(n *mdast.Node) error {
			second = append(second, n)
			return nil
		}},
	))

	assert.Equal(t, walked, first)
	assert.Equal(t, walked, second)
	assert.Same(t, doc.AST(), walked[0])
}

func TestEmbedded_FencedBlocks(t *testing.T) {
	t.Parallel()

	doc := parse(t, fencedSource, false)
	embedded := doc.Embedded()
	require.Len(t, embedded, 2)

	js := embedded[0]
	assert.Equal(t, langdetect.JavaScript, js.Type)
	assert.Equal(t, "let a = 1;\n", js.Source.Contents)
	assert.Equal(t, "README.md", js.Source.URL)
	assert.True(t, js.Source.IsInline)
	assert.Equal(t, &srcrange.LocationOffset{Line: 3, Col: 0}, js.Source.LocationOffset)
	node, ok := js.Source.ASTNode.(*mdast.Node)
	require.True(t, ok)
	assert.Equal(t, mdast.NodeCodeBlock, node.Kind)

	css := embedded[1]
	assert.Equal(t, langdetect.CSS, css.Type)
	assert.Equal(t, "--x: 1;\n", css.Source.Contents)
	assert.Equal(t, &srcrange.LocationOffset{Line: 7, Col: 0}, css.Source.LocationOffset)
}

func TestEmbedded_LanguageDetection(t *testing.T) {
	t.Parallel()

	src := "```\nconst f = () => 1;\n```\n"

	assert.Empty(t, parse(t, src, false).Embedded())

	embedded := parse(t, src, true).Embedded()
	require.Len(t, embedded, 1)
	assert.Equal(t, langdetect.JavaScript, embedded[0].Type)
}

func TestEmbedded_HTMLBlocks(t *testing.T) {
	t.Parallel()

	src := "Text\n\n<style>\n:host { color: red; }\n</style>\n\n" +
		"<div><script type=\"module\">run()</script><script type=\"application/json\">{}</script></div>\n"
	doc := parse(t, src, false)

	embedded := doc.Embedded()
	require.Len(t, embedded, 2)

	style := embedded[0]
	assert.Equal(t, langdetect.CSS, style.Type)
	assert.Equal(t, "\n:host { color: red; }\n", style.Source.Contents)
	assert.Equal(t, &srcrange.LocationOffset{Line: 2, Col: 7}, style.Source.LocationOffset)

	script := embedded[1]
	assert.Equal(t, langdetect.JavaScript, script.Type)
	assert.Equal(t, "run()", script.Source.Contents)
	assert.Equal(t, &srcrange.LocationOffset{Line: 6, Col: 27}, script.Source.LocationOffset)
}

func TestEmbedded_InlineRangesAreAbsolute(t *testing.T) {
	t.Parallel()

	src := "<div><script>one();\ntwo();</script></div>\n"
	doc := parse(t, src, false)

	embedded := doc.Embedded()
	require.Len(t, embedded, 1)

	inline, err := markup.NewParser("gfm", false).Parse(context.Background(), embedded[0].Source)
	require.NoError(t, err)

	assert.True(t, inline.IsInline())
	assert.Equal(t, srcrange.SourceRange{File: "README.md", Start: pos(0, 13), End: pos(1, 6)}, inline.SourceRange())
	assert.Equal(t, "inline markdown document at line 1 of README.md", document.Describe(inline))

	local := inline.OffsetsToSourceRange(0, 3)
	assert.Equal(t, srcrange.SourceRange{File: "README.md", Start: pos(0, 13), End: pos(0, 16)},
		inline.RelativeToAbsoluteSourceRange(local))
}

func reparse(t *testing.T, emb document.Embedded, contents string) *markup.Document {
	t.Helper()

	src := emb.Source
	src.Contents = contents
	doc, err := markup.NewParser("gfm", false).Parse(context.Background(), src)
	require.NoError(t, err)
	return doc
}

func TestStringify_Unchanged(t *testing.T) {
	t.Parallel()

	doc := parse(t, fencedSource, false)

	out, err := doc.Stringify(document.StringifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, fencedSource, out)
}

func TestStringify_SubstitutesInlineDocuments(t *testing.T) {
	t.Parallel()

	doc := parse(t, fencedSource, false)
	embedded := doc.Embedded()
	require.Len(t, embedded, 2)

	js := reparse(t, embedded[0], "let a = 2;")
	css := reparse(t, embedded[1], "--x: 2;\n--y: 3;\n")

	out, err := doc.Stringify(document.StringifyOptions{InlineDocuments: []document.Document{css, js}})
	require.NoError(t, err)
	assert.Equal(t,
		"# Demo\n\n```js\nlet a = 2;\n```\n\n```css\n--x: 2;\n--y: 3;\n```\n\n```ts\nlet t: number;\n```\n",
		out)
}

func TestStringify_HTMLFragment(t *testing.T) {
	t.Parallel()

	src := "<div><script>one();</script><style>a{}</style></div>\n"
	doc := parse(t, src, false)
	embedded := doc.Embedded()
	require.Len(t, embedded, 2)

	out, err := doc.Stringify(document.StringifyOptions{InlineDocuments: []document.Document{
		reparse(t, embedded[1], "b{}"),
	}})
	require.NoError(t, err)
	assert.Equal(t, "<div><script>one();</script><style>b{}</style></div>\n", out)
}

func TestStringify_Errors(t *testing.T) {
	t.Parallel()

	doc := parse(t, fencedSource, false)
	embedded := doc.Embedded()
	js := reparse(t, embedded[0], "x")

	t.Run("foreign node", func(t *testing.T) {
		t.Parallel()

		other := parse(t, fencedSource, false)
		_, err := other.Stringify(document.StringifyOptions{InlineDocuments: []document.Document{js}})
		require.ErrorIs(t, err, document.ErrInlineDocumentNotFound)
	})

	t.Run("not embedded", func(t *testing.T) {
		t.Parallel()

		loose := parse(t, "x", false)
		_, err := doc.Stringify(document.StringifyOptions{InlineDocuments: []document.Document{loose}})
		require.ErrorIs(t, err, document.ErrInlineDocumentNotFound)
	})

	t.Run("wrong position", func(t *testing.T) {
		t.Parallel()

		src := embedded[0].Source
		src.LocationOffset = &srcrange.LocationOffset{Line: 0, Col: 2}
		moved, err := markup.NewParser("gfm", false).Parse(context.Background(), src)
		require.NoError(t, err)

		_, err = doc.Stringify(document.StringifyOptions{InlineDocuments: []document.Document{moved}})
		require.ErrorIs(t, err, document.ErrInlineDocumentNotFound)
	})

	t.Run("overlap", func(t *testing.T) {
		t.Parallel()

		_, err := doc.Stringify(document.StringifyOptions{InlineDocuments: []document.Document{js, js}})
		require.ErrorIs(t, err, document.ErrInlineDocumentNotFound)
		assert.Contains(t, err.Error(), "overlaps")
	})
}

func TestStringify_Indent(t *testing.T) {
	t.Parallel()

	doc := parse(t, "a\n  b\n", false)

	out, err := doc.Stringify(document.StringifyOptions{Indent: 2})
	require.NoError(t, err)
	assert.Equal(t, "  a\n    b\n", out)
}
