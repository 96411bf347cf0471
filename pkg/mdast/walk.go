package mdast

import "errors"

// SkipChildren may be returned by an enter callback to skip the node's
// descendants. The leave callback still runs for the node.
var SkipChildren = errors.New("skip children") //nolint:errname,gochecknoglobals,revive // sentinel

// errStopWalk ends a walk early without reporting an error.
var errStopWalk = errors.New("stop walk") //nolint:gochecknoglobals // sentinel

// WalkFunc is called for each node. Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// WalkWithContext traverses root pre-order, calling enter before a node's
// children and leave after them. Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkFunc) error {
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
		for child := root.FirstChild; child != nil; child = child.Next {
			if err := WalkWithContext(child, enter, leave); err != nil {
				return err
			}
		}
	}

	if leave != nil {
		return leave(root)
	}
	return nil
}

// Walk calls walkFunc for every node under root in document order.
func Walk(root *Node, walkFunc WalkFunc) error {
	return WalkWithContext(root, walkFunc, nil)
}

// FindAll returns all nodes matching the predicate.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // the callback never fails
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck,revive // errStopWalk is the only possible error
	Walk(root, func(node *Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}

// Contains reports whether descendant is root or lies beneath it.
func Contains(root, descendant *Node) bool {
	for n := descendant; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}
