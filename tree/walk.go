package tree

import "errors"

// ErrEmptyTree is returned if a walk is started with an empty tree.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// Action is a function called for nodes during a walk. depth is the distance
// to the node the walk started from.
type Action[T comparable] func(node *Node[T], depth int) error

// TopDown walks a (sub-)tree depth first, calling action for a node before
// calling it for its children. The first error returned by action ends the walk
// and is returned to the caller.
func TopDown[T comparable](initial *Node[T], action Action[T]) error {
	if initial == nil {
		return ErrEmptyTree
	}
	return topDown(initial, 0, action)
}

func topDown[T comparable](node *Node[T], depth int, action Action[T]) error {
	if err := action(node, depth); err != nil {
		return err
	}
	for _, ch := range node.Children() {
		if err := topDown(ch, depth+1, action); err != nil {
			return err
		}
	}
	return nil
}

// BottomUp walks a (sub-)tree depth first, calling action for the children
// of a node before calling it for the node itself. Actions may isolate the
// node they are called for.
func BottomUp[T comparable](initial *Node[T], action Action[T]) error {
	if initial == nil {
		return ErrEmptyTree
	}
	return bottomUp(initial, 0, action)
}

func bottomUp[T comparable](node *Node[T], depth int, action Action[T]) error {
	for _, ch := range node.Children() {
		if err := bottomUp(ch, depth+1, action); err != nil {
			return err
		}
	}
	return action(node, depth)
}

// Ancestors returns the chain of ancestors of a node, starting with its parent
// and ending at the root of the tree.
func Ancestors[T comparable](node *Node[T]) []*Node[T] {
	var chain []*Node[T]
	for p := node.Parent(); p != nil; p = p.Parent() {
		chain = append(chain, p)
	}
	return chain
}
