package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
)

/*
We manage a tree of mutable nodes. Each node carries a payload of type parameter T.
Nodes maintain a slice of children, ordered by insertion.

Layout resolution is single-threaded and cooperative, therefore nodes are not
protected by locks. Clients sharing a tree between goroutines have to synchronize
on their own.
*/

// Node is the base type our tree is built of.
type Node[T comparable] struct {
	parent   *Node[T]   // parent node of this node
	children []*Node[T] // children nodes, in insertion order
	Payload  T          // nodes may carry a payload of arbitrary type
}

func (node *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v)", node.ChildCount(), node.Payload)
}

// AddChild inserts a new child node into the tree.
// The newly inserted node is connected to this node as its parent.
// If ch is already attached to another parent, it is isolated first.
// It returns the parent node to allow for chaining.
func (node *Node[T]) AddChild(ch *Node[T]) *Node[T] {
	if ch == nil || ch == node {
		return node
	}
	if ch.parent != nil {
		ch.Isolate()
	}
	node.children = append(node.children, ch)
	ch.parent = node
	return node
}

// Parent returns the parent node or nil (for the root of the tree).
func (node *Node[T]) Parent() *Node[T] {
	if node == nil {
		return nil
	}
	return node.parent
}

// Isolate removes a node from its parent.
// Isolate returns the isolated node.
func (node *Node[T]) Isolate() *Node[T] {
	if node == nil || node.parent == nil {
		return node
	}
	p := node.parent
	for i, ch := range p.children {
		if ch == node {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	node.parent = nil
	return node
}

// ChildCount returns the number of children-nodes for a node.
func (node *Node[T]) ChildCount() int {
	if node == nil {
		return 0
	}
	return len(node.children)
}

// Children returns a copy of the slice of children of a node.
func (node *Node[T]) Children() []*Node[T] {
	if node == nil {
		return nil
	}
	children := make([]*Node[T], len(node.children))
	copy(children, node.children)
	return children
}
