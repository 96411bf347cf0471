package script_test

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/script"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

func parse(t *testing.T, src document.Source) *script.Document {
	t.Helper()

	doc, err := script.Parse(context.Background(), src)
	require.NoError(t, err)
	t.Cleanup(doc.Close)
	return doc
}

func findType(doc *script.Document, typ string) *sitter.Node {
	var found *sitter.Node
	doc.ForEachNode(func(n *sitter.Node) {
		if found == nil && n.Type() == typ {
			found = n
		}
	})
	return found
}

func findNamed(doc *script.Document, typ, name string) *sitter.Node {
	var found *sitter.Node
	doc.ForEachNode(func(n *sitter.Node) {
		if found != nil || n.Type() != typ {
			return
		}
		if id := n.ChildByFieldName("name"); id != nil && doc.NodeText(id) == name {
			found = n
		}
	})
	return found
}

func pos(line, column int) srcrange.SourcePosition {
	return srcrange.SourcePosition{Line: line, Column: column}
}

func TestParse_TopLevel(t *testing.T) {
	t.Parallel()

	doc := parse(t, document.Source{URL: "a.js", Contents: "function f(a, b) {\n  return a + b;\n}\n"})

	assert.Equal(t, "javascript", doc.Type())
	assert.Equal(t, "program", doc.AST().Type())
	assert.Empty(t, doc.SyntaxErrors())

	fn := findType(doc, "function_declaration")
	require.NotNil(t, fn)
	r, ok := doc.SourceRangeForNode(fn)
	require.True(t, ok)
	assert.Equal(t, srcrange.SourceRange{File: "a.js", Start: pos(0, 0), End: pos(2, 1)}, r)
	assert.Equal(t, "f", doc.NodeText(fn.ChildByFieldName("name")))
}

func TestParse_InlineRanges(t *testing.T) {
	t.Parallel()

	doc := parse(t, document.Source{
		URL:            "README.md",
		Contents:       "let a = 1;\nlet b = 2;\n",
		LocationOffset: &srcrange.LocationOffset{Line: 3, Col: 5},
		IsInline:       true,
	})

	var ids []srcrange.SourceRange
	doc.ForEachNode(func(n *sitter.Node) {
		if n.Type() == "identifier" {
			r, ok := doc.SourceRangeForNode(n)
			require.True(t, ok)
			ids = append(ids, r)
		}
	})

	require.Len(t, ids, 2)
	assert.Equal(t, srcrange.SourceRange{File: "README.md", Start: pos(3, 9), End: pos(3, 10)}, ids[0])
	assert.Equal(t, srcrange.SourceRange{File: "README.md", Start: pos(4, 4), End: pos(4, 5)}, ids[1])

	for _, r := range ids {
		assert.Equal(t, r, doc.RelativeToAbsoluteSourceRange(doc.AbsoluteToRelativeSourceRange(r)))
	}
}

func TestSyntaxErrors(t *testing.T) {
	t.Parallel()

	doc := parse(t, document.Source{URL: "bad.js", Contents: "let = ;\nfunction ok() {}\n"})

	errs := doc.SyntaxErrors()
	require.NotEmpty(t, errs)
	assert.Equal(t, 0, errs[0].Start.Line)
	assert.Equal(t, "bad.js", errs[0].File)
}

func TestNodeIdentityIsStable(t *testing.T) {
	t.Parallel()

	doc := parse(t, document.Source{URL: "a.js", Contents: "a(); b();"})

	var first, second []*sitter.Node
	doc.ForEachNode(func(n *sitter.Node) { first = append(first, n) })
	doc.ForEachNode(func(n *sitter.Node) { second = append(second, n) })

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestVisit_MatchesForEachNode(t *testing.T) {
	t.Parallel()

	doc := parse(t, document.Source{URL: "a.js", Contents: "class A { m() { return 1; } }"})

	var walked, visited []string
	doc.ForEachNode(func(n *sitter.Node) { walked = append(walked, n.Type()) })
	require.NoError(t, doc.Visit(document.VisitorFuncs[*sitter.Node]{
		EnterFunc: func(n *sitter.Node) error {
			visited = append(visited, n.Type())
			return nil
		},
	}))

	assert.Equal(t, walked, visited)
	assert.Equal(t, "program", visited[0])
}

func TestLeadingComment(t *testing.T) {
	t.Parallel()

	src := `/** Adds. */
function add(a, b) { return a + b; }

// Not a doc comment.
function plain() {}

/** Exported. */
export function exported() {}

/** Arrow. */
const arrow = (x) => x;

/** Assigned. */
window.assigned = function () {};

/** Far away. */
foo();
function far() {}
`
	doc := parse(t, document.Source{URL: "a.js", Contents: src})

	assert.Equal(t, "/** Adds. */", doc.LeadingComment(findNamed(doc, "function_declaration", "add")))
	assert.Empty(t, doc.LeadingComment(findNamed(doc, "function_declaration", "plain")))
	assert.Equal(t, "/** Exported. */", doc.LeadingComment(findNamed(doc, "function_declaration", "exported")))
	assert.Empty(t, doc.LeadingComment(findNamed(doc, "function_declaration", "far")))

	arrow := findType(doc, "arrow_function")
	require.NotNil(t, arrow)
	assert.Equal(t, "/** Arrow. */", doc.LeadingComment(arrow))

	assigned := findType(doc, "assignment_expression")
	require.NotNil(t, assigned)
	assert.Equal(t, "/** Assigned. */", doc.LeadingComment(assigned.ChildByFieldName("right")))
}

func TestStringValue(t *testing.T) {
	t.Parallel()

	doc := parse(t, document.Source{URL: "a.js", Contents: "f('x-a', \"b\\\"c\", `tpl`, `t${1}`, 3);"})

	args := findType(doc, "arguments")
	require.NotNil(t, args)

	var got []string
	var oks []bool
	for i := range int(args.NamedChildCount()) {
		v, ok := doc.StringValue(args.NamedChild(i))
		got = append(got, v)
		oks = append(oks, ok)
	}

	assert.Equal(t, []string{"x-a", `b"c`, "tpl", "", ""}, got)
	assert.Equal(t, []bool{true, true, true, false, false}, oks)
}

func TestStringify(t *testing.T) {
	t.Parallel()

	doc := parse(t, document.Source{URL: "a.js", Contents: "  a();\n  b();\n"})

	out, err := doc.Stringify(document.StringifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, "  a();\n  b();\n", out)

	out, err = doc.Stringify(document.StringifyOptions{Indent: 4})
	require.NoError(t, err)
	assert.Equal(t, "    a();\n    b();\n", out)

	other := parse(t, document.Source{URL: "b.js", Contents: "x"})
	_, err = doc.Stringify(document.StringifyOptions{InlineDocuments: []document.Document{other}})
	require.ErrorIs(t, err, document.ErrInlineDocumentNotFound)
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := script.Parse(ctx, document.Source{URL: "a.js", Contents: "x"})
	require.ErrorIs(t, err, context.Canceled)
}
