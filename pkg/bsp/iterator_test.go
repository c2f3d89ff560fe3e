package bsp

import (
	"strings"
	"testing"
)

func TestIteratorPreOrder(t *testing.T) {
	tr := labeledTree(t)

	// Deepen the minus side so pre-order and minus-first are both
	// observable: root, m, a, b, p.
	minus := tr.Root().Minus()
	cutAt(tr, minus, -2)
	minus.Minus().SetAttr("a")
	minus.Plus().SetAttr("b")

	var visits []string
	it := tr.Root().Iterator()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		visits = append(visits, n.Attr())
	}

	if got := strings.Join(visits, ","); got != "root,m,a,b,p" {
		t.Errorf("expected pre-order %q, got %q", "root,m,a,b,p", got)
	}
}

func TestIteratorSubtree(t *testing.T) {
	tr := buildCells(t)

	// Iterating a child subtree stays within it.
	var visits []string
	it := tr.Root().Minus().Iterator()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if n.IsLeaf() {
			visits = append(visits, n.Attr())
		}
	}

	if got := strings.Join(visits, ","); got != "A,B" {
		t.Errorf("expected leaves %q, got %q", "A,B", got)
	}
}

func TestIteratorExhaustion(t *testing.T) {
	tr := New[float64, string]()

	it := tr.Root().Iterator()
	if _, ok := it.Next(); !ok {
		t.Fatal("expected the single leaf")
	}
	if _, ok := it.Next(); ok {
		t.Fatal("expected exhaustion after the leaf")
	}
	// Exhaustion is stable.
	if _, ok := it.Next(); ok {
		t.Fatal("expected exhaustion to persist")
	}
}
