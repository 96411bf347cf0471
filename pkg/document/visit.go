package document

import "errors"

// ErrSkipChildren may be returned from Visitor.Enter to skip a node's
// descendants. Leave is still called for the node.
var ErrSkipChildren = errors.New("skip children")

// Visitor receives nodes during Visit. Enter is called before a node's
// children and Leave after them. A non-nil error stops the walk.
type Visitor[N any] interface {
	Enter(node N) error
	Leave(node N) error
}

// VisitorFuncs adapts plain functions to Visitor. Nil funcs are no-ops.
type VisitorFuncs[N any] struct {
	EnterFunc func(node N) error
	LeaveFunc func(node N) error
}

// Enter implements Visitor.
func (v VisitorFuncs[N]) Enter(node N) error {
	if v.EnterFunc == nil {
		return nil
	}
	return v.EnterFunc(node)
}

// Leave implements Visitor.
func (v VisitorFuncs[N]) Leave(node N) error {
	if v.LeaveFunc == nil {
		return nil
	}
	return v.LeaveFunc(node)
}

// WalkFunc walks a tree pre-order, calling enter before a node's children
// and leave after them. If enter returns ErrSkipChildren the walker must not
// descend into that node.
type WalkFunc[N any] func(enter, leave func(node N) error) error

// Visit dispatches visitors over one walk of a tree. Each visitor's Enter
// runs in list order on every node; Leave runs in reverse order. A visitor
// that asks to skip a node's children is not shown them, while the other
// visitors are.
func Visit[N any](walk WalkFunc[N], visitors []Visitor[N]) error {
	if len(visitors) == 0 {
		return nil
	}

	// skipping[i] is the depth at which visitor i asked to skip, or -1.
	skipping := make([]int, len(visitors))
	for i := range skipping {
		skipping[i] = -1
	}
	depth := 0

	enter := func(node N) error {
		depth++
		for i, visitor := range visitors {
			if skipping[i] >= 0 {
				continue
			}
			err := visitor.Enter(node)
			switch {
			case errors.Is(err, ErrSkipChildren):
				skipping[i] = depth
			case err != nil:
				return err
			}
		}
		return nil
	}

	leave := func(node N) error {
		for i := len(visitors) - 1; i >= 0; i-- {
			if skipping[i] >= 0 && skipping[i] < depth {
				continue
			}
			if skipping[i] == depth {
				skipping[i] = -1
			}
			if err := visitors[i].Leave(node); err != nil {
				return err
			}
		}
		depth--
		return nil
	}

	return walk(enter, leave)
}
