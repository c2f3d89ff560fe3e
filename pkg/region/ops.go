package region

import (
	"github.com/chazu/froe/pkg/bsp"
)

// ---------------------------------------------------------------------------
// Boolean set operations
//
// Each operation merges another region into the receiver with a leaf
// rule derived from the operation's truth table, then condenses the
// result. The other region is never modified.
// ---------------------------------------------------------------------------

// Union makes the receiver the union of itself and other.
func (t *Tree[P]) Union(other *Tree[P]) {
	t.bt.Merge(t.bt, other.bt, t.unionLeaf)
	t.Condense()
}

// Intersection makes the receiver the intersection of itself and
// other.
func (t *Tree[P]) Intersection(other *Tree[P]) {
	t.bt.Merge(t.bt, other.bt, t.intersectionLeaf)
	t.Condense()
}

// Difference makes the receiver the difference of itself and other,
// keeping the points inside the receiver but not inside other.
func (t *Tree[P]) Difference(other *Tree[P]) {
	t.bt.Merge(t.bt, other.bt, t.differenceLeaf)
	t.Condense()
}

// Xor makes the receiver the symmetric difference of itself and
// other, keeping the points inside exactly one of the two.
func (t *Tree[P]) Xor(other *Tree[P]) {
	t.bt.Merge(t.bt, other.bt, t.xorLeaf)
	t.Condense()
}

// Complement flips the region in place. Inside cells become outside
// and vice versa; the cut structure is untouched.
func (t *Tree[P]) Complement() {
	complementSubtree(t.bt.Root())
}

func (t *Tree[P]) unionLeaf(n1, n2 *bsp.Node[P, Location]) *bsp.Node[P, Location] {
	if n1.IsLeaf() {
		if n1.Attr() == Inside {
			return n1
		}
		return n2
	}
	if n2.Attr() == Inside {
		return n2
	}
	return n1
}

func (t *Tree[P]) intersectionLeaf(n1, n2 *bsp.Node[P, Location]) *bsp.Node[P, Location] {
	if n1.IsLeaf() {
		if n1.Attr() == Inside {
			return n2
		}
		return n1
	}
	if n2.Attr() == Inside {
		return n1
	}
	return n2
}

func (t *Tree[P]) differenceLeaf(n1, n2 *bsp.Node[P, Location]) *bsp.Node[P, Location] {
	if n1.IsLeaf() {
		if n1.Attr() == Inside {
			return t.complementImport(n2)
		}
		return n1
	}
	if n2.Attr() == Inside {
		return t.complementImport(n2)
	}
	return n1
}

func (t *Tree[P]) xorLeaf(n1, n2 *bsp.Node[P, Location]) *bsp.Node[P, Location] {
	if n1.IsLeaf() {
		if n1.Attr() == Inside {
			return t.complementImport(n2)
		}
		return n2
	}
	if n2.Attr() == Inside {
		return t.complementImport(n1)
	}
	return n1
}

// complementImport copies the node's subtree into the receiver's tree
// and flips the locations of the copy's leaves.
func (t *Tree[P]) complementImport(n *bsp.Node[P, Location]) *bsp.Node[P, Location] {
	imp := t.bt.ImportSubtree(n)
	complementSubtree(imp)
	return imp
}

func complementSubtree[P any](n *bsp.Node[P, Location]) {
	it := n.Iterator()
	for cur, ok := it.Next(); ok; cur, ok = it.Next() {
		if cur.IsLeaf() {
			cur.SetAttr(flipLocation(cur.Attr()))
		}
	}
}

func flipLocation(loc Location) Location {
	switch loc {
	case Inside:
		return Outside
	case Outside:
		return Inside
	default:
		return loc
	}
}

// Condense collapses internal nodes whose leaves all share one
// location, cascading bottom-up. The merges above can leave redundant
// cuts, for example when two inside cells meet across one; they
// condense automatically, so explicit calls are only needed after
// direct edits of the underlying tree. Returns true iff the tree
// changed.
func (t *Tree[P]) Condense() bool {
	return t.bt.Condense(func(minus, plus *bsp.Node[P, Location]) (Location, bool) {
		if minus.Attr() == plus.Attr() {
			return minus.Attr(), true
		}
		return Outside, false
	})
}

// ---------------------------------------------------------------------------
// Splitting
// ---------------------------------------------------------------------------

// Split divides the region by the splitter hyperplane, returning the
// parts of the region on its minus and plus sides as independent
// trees. The receiver is unchanged. A half with no inside cells comes
// back as an empty region.
func (t *Tree[P]) Split(splitter bsp.Hyperplane[P]) (minus, plus *Tree[P]) {
	minus = NewEmpty[P]()
	plus = NewEmpty[P]()
	t.bt.SplitIntoTrees(splitter, minus.bt, plus.bt)

	// Each half's root is the splitter cut with a fresh leaf on the
	// far side; that leaf lies outside the half by definition.
	minus.bt.Root().Plus().SetAttr(Outside)
	plus.bt.Root().Minus().SetAttr(Outside)

	minus.Condense()
	plus.Condense()
	return minus, plus
}
