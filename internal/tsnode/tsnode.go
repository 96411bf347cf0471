// Package tsnode holds the tree-sitter plumbing shared by the script and
// style documents: traversal, coordinate conversion, and a document type
// over a tree-sitter syntax tree.
package tsnode

import (
	"errors"
	"math"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// SkipChildren may be returned by an enter callback to skip the node's
// descendants. The leave callback still runs for the node.
var SkipChildren = errors.New("skip children") //nolint:errname,gochecknoglobals,revive // sentinel

// Walk visits every node under root, named and anonymous, in document order.
// Either callback may be nil.
func Walk(root *sitter.Node, enter, leave func(*sitter.Node) error) error {
	if root == nil {
		return nil
	}

	descend := true
	if enter != nil {
		if err := enter(root); err != nil {
			if !errors.Is(err, SkipChildren) {
				return err
			}
			descend = false
		}
	}

	if descend {
		for i := range Int(root.ChildCount()) {
			if err := Walk(root.Child(i), enter, leave); err != nil {
				return err
			}
		}
	}

	if leave != nil {
		return leave(root)
	}
	return nil
}

// Int converts a tree-sitter count or coordinate to int.
func Int(v uint32) int {
	n, err := safecast.Conv[int](v)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// Offsets returns the node's byte span.
func Offsets(n *sitter.Node) (int, int) {
	return Int(n.StartByte()), Int(n.EndByte())
}

// LocalRange converts the node's points into a range in the coordinates of
// the text it was parsed from.
func LocalRange(n *sitter.Node, file string) srcrange.SourceRange {
	return srcrange.SourceRange{
		File:  file,
		Start: position(n.StartPoint()),
		End:   position(n.EndPoint()),
	}
}

func position(p sitter.Point) srcrange.SourcePosition {
	return srcrange.SourcePosition{Line: Int(p.Row), Column: Int(p.Column)}
}

// Text returns the source text spanned by n.
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	start, end := Offsets(n)
	if start > end || end > len(src) {
		return ""
	}
	return string(src[start:end])
}

// NamedChildren returns n's named children.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := Int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := range count {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// Errors returns the ERROR and missing nodes under root in document order.
// Descendants of an ERROR node are not reported separately.
func Errors(root *sitter.Node) []*sitter.Node {
	if root == nil || !root.HasError() {
		return nil
	}

	var out []*sitter.Node
	//nolint:errcheck,revive // the callback only returns SkipChildren
	Walk(root, func(n *sitter.Node) error {
		switch {
		case n.Type() == "ERROR":
			out = append(out, n)
			return SkipChildren
		case n.IsMissing():
			out = append(out, n)
		case !n.HasError():
			return SkipChildren
		}
		return nil
	}, nil)
	return out
}
