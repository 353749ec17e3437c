package tree

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func node[T comparable](payload T) *Node[T] {
	return &Node[T]{Payload: payload}
}

func TestAddAndIsolate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.tree")
	defer teardown()
	//
	root := node("root")
	a, b := node("a"), node("b")
	root.AddChild(a).AddChild(b)
	if root.ChildCount() != 2 {
		t.Fatalf("expected root to have 2 children, has %d", root.ChildCount())
	}
	if a.Parent() != root {
		t.Errorf("expected parent of a to be root, is %v", a.Parent())
	}
	a.Isolate()
	if root.ChildCount() != 1 || a.Parent() != nil {
		t.Errorf("expected a to be isolated, root has %d children", root.ChildCount())
	}
	if root.Children()[0] != b {
		t.Errorf("expected b to move to index 0, children are %v", root.Children())
	}
}

func TestReparent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.tree")
	defer teardown()
	//
	r1, r2, ch := node(1), node(2), node(3)
	r1.AddChild(ch)
	r2.AddChild(ch)
	if r1.ChildCount() != 0 {
		t.Errorf("expected child to be removed from previous parent")
	}
	if ch.Parent() != r2 {
		t.Errorf("expected child to be attached to new parent")
	}
}

func sample() *Node[string] {
	root := node("r")
	a := node("a")
	root.AddChild(a).AddChild(node("b"))
	a.AddChild(node("a1"))
	return root
}

func TestTopDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.tree")
	defer teardown()
	//
	var order []string
	var depths []int
	err := TopDown(sample(), func(n *Node[string], depth int) error {
		order = append(order, n.Payload)
		depths = append(depths, depth)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"r", "a", "a1", "b"}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("expected walk order %v, is %v", expected, order)
		}
	}
	if depths[2] != 2 || depths[3] != 1 {
		t.Errorf("expected depths [0 1 2 1], are %v", depths)
	}
	stop := errors.New("stop")
	count := 0
	err = TopDown(sample(), func(n *Node[string], depth int) error {
		count++
		if n.Payload == "a" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || count != 2 {
		t.Errorf("expected walk to stop after 2 nodes, count=%d, err=%v", count, err)
	}
	if err = TopDown[string](nil, nil); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("expected ErrEmptyTree for empty walk, have %v", err)
	}
}

func TestBottomUpIsolating(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.tree")
	defer teardown()
	//
	root := sample()
	var order []string
	err := BottomUp(root, func(n *Node[string], depth int) error {
		order = append(order, n.Payload)
		n.Isolate()
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"a1", "a", "b", "r"}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("expected walk order %v, is %v", expected, order)
		}
	}
	if root.ChildCount() != 0 {
		t.Errorf("expected all children to be isolated, root has %d", root.ChildCount())
	}
}

func TestAncestors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.tree")
	defer teardown()
	//
	root, mid, leaf := node("root"), node("mid"), node("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	chain := Ancestors(leaf)
	if len(chain) != 2 || chain[0] != mid || chain[1] != root {
		t.Errorf("expected ancestors [mid root], are %v", chain)
	}
	if len(Ancestors(root)) != 0 {
		t.Errorf("expected root to have no ancestors")
	}
}
