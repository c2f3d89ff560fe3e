package bsp

import "testing"

func TestNewTreeIsSingleLeaf(t *testing.T) {
	tr := New[float64, string]()

	root := tr.Root()
	if root == nil {
		t.Fatal("expected non-nil root")
	}
	if !root.IsLeaf() {
		t.Error("new tree root should be a leaf")
	}
	if root.Parent() != nil {
		t.Error("root should have no parent")
	}
	if root.Depth() != 0 {
		t.Errorf("root depth: expected 0, got %d", root.Depth())
	}
	if tr.Count() != 1 {
		t.Errorf("expected count 1, got %d", tr.Count())
	}
	if tr.Height() != 0 {
		t.Errorf("expected height 0, got %d", tr.Height())
	}
	if root.Attr() != "" {
		t.Errorf("expected zero attribute, got %q", root.Attr())
	}
}

func TestLeafInternalDuality(t *testing.T) {
	tr := New[float64, string]()
	cutAt(tr, tr.Root(), 0)
	cutAt(tr, tr.Root().Minus(), -2)
	cutAt(tr, tr.Root().Plus(), 3)

	it := tr.Root().Iterator()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		hasCut := n.Cut() != nil
		hasChildren := n.Minus() != nil && n.Plus() != nil

		if n.IsLeaf() == hasCut {
			t.Errorf("node %v: IsLeaf=%v but cut present=%v", n, n.IsLeaf(), hasCut)
		}
		if hasCut != hasChildren {
			t.Errorf("node %v: cut present=%v but children present=%v", n, hasCut, hasChildren)
		}
		if n.IsLeaf() == n.IsInternal() {
			t.Errorf("node %v: IsLeaf and IsInternal must disagree", n)
		}
	}
}

func TestNodeChildRoles(t *testing.T) {
	tr := New[float64, string]()
	cutAt(tr, tr.Root(), 0)

	root := tr.Root()
	minus, plus := root.Minus(), root.Plus()

	if !minus.IsMinus() || minus.IsPlus() {
		t.Error("minus child role flags wrong")
	}
	if !plus.IsPlus() || plus.IsMinus() {
		t.Error("plus child role flags wrong")
	}
	if root.IsMinus() || root.IsPlus() {
		t.Error("root should be neither minus nor plus")
	}
	if minus.Parent() != root || plus.Parent() != root {
		t.Error("children should point back at the root")
	}
	if minus.Tree() != tr || plus.Tree() != tr {
		t.Error("children should belong to the tree")
	}
}

func TestNodeDepth(t *testing.T) {
	tr := New[float64, string]()
	cutAt(tr, tr.Root(), 0)
	cutAt(tr, tr.Root().Minus(), -2)

	if d := tr.Root().Depth(); d != 0 {
		t.Errorf("root depth: expected 0, got %d", d)
	}
	if d := tr.Root().Minus().Depth(); d != 1 {
		t.Errorf("minus depth: expected 1, got %d", d)
	}
	if d := tr.Root().Minus().Minus().Depth(); d != 2 {
		t.Errorf("grandchild depth: expected 2, got %d", d)
	}
	if d := tr.Root().Plus().Depth(); d != 1 {
		t.Errorf("plus depth: expected 1, got %d", d)
	}
}

func TestNodeAttrSurvivesCut(t *testing.T) {
	tr := New[float64, string]()
	tr.Root().SetAttr("cell")

	cutAt(tr, tr.Root(), 0)

	// The node keeps its attribute when it becomes internal; the new
	// leaves start zero-valued.
	if got := tr.Root().Attr(); got != "cell" {
		t.Errorf("root attr: expected %q, got %q", "cell", got)
	}
	if got := tr.Root().Minus().Attr(); got != "" {
		t.Errorf("minus attr: expected empty, got %q", got)
	}
	if got := tr.Root().Plus().Attr(); got != "" {
		t.Errorf("plus attr: expected empty, got %q", got)
	}
}

func TestCountAndHeightCaching(t *testing.T) {
	tr := New[float64, string]()
	cutAt(tr, tr.Root(), 0)

	// Two reads of an unchanged tree return the same values.
	if c1, c2 := tr.Count(), tr.Count(); c1 != c2 || c1 != 3 {
		t.Errorf("expected stable count 3, got %d then %d", c1, c2)
	}
	if h1, h2 := tr.Height(), tr.Height(); h1 != h2 || h1 != 1 {
		t.Errorf("expected stable height 1, got %d then %d", h1, h2)
	}

	// The cached values refresh after a mutation.
	cutAt(tr, tr.Root().Minus(), -2)
	if c := tr.Count(); c != 5 {
		t.Errorf("expected count 5 after second cut, got %d", c)
	}
	if h := tr.Height(); h != 2 {
		t.Errorf("expected height 2 after second cut, got %d", h)
	}
}

func TestNodeString(t *testing.T) {
	tr := New[float64, string]()
	tr.Root().SetAttr("x")

	if got := tr.Root().String(); got != "leaf[attr=x]" {
		t.Errorf("leaf string: got %q", got)
	}

	cutAt(tr, tr.Root(), 0)
	if got := tr.Root().String(); got == "" || got == "leaf[attr=x]" {
		t.Errorf("internal string should mention the cut, got %q", got)
	}
}
