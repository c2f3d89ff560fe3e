// Package region layers inside/outside semantics onto bsp trees. A
// region tree's leaf cells carry a Location attribute; the boolean
// set operations (union, intersection, difference, xor, complement)
// are built from the generic tree's merge primitives.
package region

import (
	"fmt"

	"github.com/chazu/froe/pkg/bsp"
)

// Location classifies a point or a leaf cell relative to a region.
// The zero value is Outside, so freshly created leaves default to
// containing nothing.
type Location int

const (
	Outside  Location = iota // not part of the region
	Inside                   // part of the region
	Boundary                 // on the region's boundary
)

func (l Location) String() string {
	switch l {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case Boundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// CutRule controls the locations assigned to the leaves created by an
// insert.
type CutRule int

const (
	MinusInside CutRule = iota // minus side inside, plus side outside
	PlusInside                 // plus side inside, minus side outside
	Inherit                    // both sides keep the parent cell's location
)

func (r CutRule) String() string {
	switch r {
	case MinusInside:
		return "minus-inside"
	case PlusInside:
		return "plus-inside"
	case Inherit:
		return "inherit"
	default:
		return "unknown"
	}
}

// Tree represents a region of the space as a BSP tree whose leaf
// cells are inside or outside. Regions may be unbounded.
type Tree[P any] struct {
	bt *bsp.Tree[P, Location]
}

// NewEmpty returns a region containing nothing.
func NewEmpty[P any]() *Tree[P] {
	return &Tree[P]{bt: bsp.New[P, Location]()}
}

// NewFull returns a region covering the whole space.
func NewFull[P any]() *Tree[P] {
	t := NewEmpty[P]()
	t.bt.Root().SetAttr(Inside)
	return t
}

// BSP returns the underlying generic tree.
func (t *Tree[P]) BSP() *bsp.Tree[P, Location] { return t.bt }

// Root returns the root node of the underlying tree.
func (t *Tree[P]) Root() *bsp.Node[P, Location] { return t.bt.Root() }

// Count returns the number of nodes in the underlying tree.
func (t *Tree[P]) Count() int { return t.bt.Count() }

// Height returns the height of the underlying tree.
func (t *Tree[P]) Height() int { return t.bt.Height() }

// Insert carves the convex subset into the region with the
// MinusInside rule.
func (t *Tree[P]) Insert(sub bsp.ConvexSubset[P]) {
	t.InsertRule(sub, MinusInside)
}

// InsertRule carves the convex subset into the region, assigning the
// locations of the new leaves per the rule.
func (t *Tree[P]) InsertRule(sub bsp.ConvexSubset[P], rule CutRule) {
	t.bt.Insert(sub, subtreeInit[P](rule))
}

// subtreeInit maps a cut rule onto the generic tree's initializer
// hook. The freshly cut node still carries its old leaf location, so
// Inherit can read it before the children overwrite anything.
func subtreeInit[P any](rule CutRule) bsp.SubtreeInit[P, Location] {
	switch rule {
	case PlusInside:
		return func(n *bsp.Node[P, Location]) {
			n.Minus().SetAttr(Outside)
			n.Plus().SetAttr(Inside)
		}
	case Inherit:
		return func(n *bsp.Node[P, Location]) {
			loc := n.Attr()
			n.Minus().SetAttr(loc)
			n.Plus().SetAttr(loc)
		}
	default:
		return func(n *bsp.Node[P, Location]) {
			n.Minus().SetAttr(Inside)
			n.Plus().SetAttr(Outside)
		}
	}
}

// Classify locates the point relative to the region. Points exactly
// on a cut recurse into both children: agreement yields the shared
// location, disagreement yields Boundary.
func (t *Tree[P]) Classify(pt P) Location {
	return classifyNode(t.bt.Root(), pt)
}

func classifyNode[P any](n *bsp.Node[P, Location], pt P) Location {
	if n.IsLeaf() {
		return n.Attr()
	}

	switch n.CutHyperplane().Classify(pt) {
	case bsp.SideMinus:
		return classifyNode(n.Minus(), pt)
	case bsp.SidePlus:
		return classifyNode(n.Plus(), pt)
	default:
		minusLoc := classifyNode(n.Minus(), pt)
		plusLoc := classifyNode(n.Plus(), pt)
		if minusLoc == plusLoc {
			return minusLoc
		}
		return Boundary
	}
}

// Contains reports whether the point is inside the region or on its
// boundary.
func (t *Tree[P]) Contains(pt P) bool {
	return t.Classify(pt) != Outside
}

// FindNode locates the tree node for a point; see bsp.Tree.FindNode.
func (t *Tree[P]) FindNode(pt P, rule bsp.CutRule) *bsp.Node[P, Location] {
	return t.bt.FindNode(pt, rule)
}

// IsEmpty reports whether no cell of the region is inside.
func (t *Tree[P]) IsEmpty() bool { return !t.hasLeafLocation(Inside) }

// IsFull reports whether the region covers the whole space.
func (t *Tree[P]) IsFull() bool { return !t.hasLeafLocation(Outside) }

func (t *Tree[P]) hasLeafLocation(loc Location) bool {
	found := false
	t.bt.Accept(bsp.VisitFunc[P, Location](func(n *bsp.Node[P, Location]) bsp.VisitResult {
		if n.IsLeaf() && n.Attr() == loc {
			found = true
			return bsp.VisitStop
		}
		return bsp.VisitContinue
	}))
	return found
}

// Copy returns an independent copy of the region.
func (t *Tree[P]) Copy() *Tree[P] {
	cp := NewEmpty[P]()
	cp.bt.Copy(t.bt)
	return cp
}

// Transform applies the transform to the region in place.
func (t *Tree[P]) Transform(tr bsp.Transform[P]) {
	t.bt.Transform(tr)
}

// TreeString renders the underlying tree; see bsp.Tree.TreeString.
func (t *Tree[P]) TreeString(maxDepth int) string {
	return t.bt.TreeString(maxDepth)
}

func (t *Tree[P]) String() string {
	return fmt.Sprintf("Region[count=%d, height=%d]", t.Count(), t.Height())
}
