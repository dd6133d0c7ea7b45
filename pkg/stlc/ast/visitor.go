package ast

// WalkFunc is called for each node visited by Walk with its nesting depth
// (0 for the root). Returning an error stops the walk.
type WalkFunc func(n Node, depth int) error

// Children returns the direct children of n in structural order:
// ident/body for Abstraction, left/right for Application,
// clause/then/else for Condition, operand for Arithmetic and IsZero.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Abstraction:
		return []Node{v.Ident, v.Body}
	case *Application:
		return []Node{v.Left, v.Right}
	case *Condition:
		return []Node{v.Clause, v.Then, v.Else}
	case *Arithmetic:
		return []Node{v.Operand}
	case *IsZero:
		return []Node{v.Operand}
	default:
		return nil
	}
}

// Walk traverses the tree rooted at n in pre-order and calls fn for each node.
// It returns the first error returned by fn, or nil if traversal completes.
func Walk(n Node, fn WalkFunc) error {
	return walk(n, 0, fn)
}

func walk(n Node, depth int, fn WalkFunc) error {
	if n == nil {
		return nil
	}
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, child := range Children(n) {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	count := 0
	_ = Walk(n, func(Node, int) error {
		count++
		return nil
	})
	return count
}

// Depth returns the height of the tree rooted at n (1 for a single leaf).
func Depth(n Node) int {
	height := 0
	_ = Walk(n, func(_ Node, depth int) error {
		if depth+1 > height {
			height = depth + 1
		}
		return nil
	})
	return height
}
