package bsp

import "fmt"

// CutRule determines how FindNode resolves a query point lying
// directly on an internal node's cut hyperplane.
type CutRule int

const (
	CutRuleMinus CutRule = iota // descend into the minus child
	CutRulePlus                 // descend into the plus child
	CutRuleNode                 // stop and return the internal node
)

func (r CutRule) String() string {
	switch r {
	case CutRuleMinus:
		return "minus"
	case CutRulePlus:
		return "plus"
	case CutRuleNode:
		return "node"
	default:
		return "unknown"
	}
}

// SubtreeInit initializes attributes on a freshly cut subtree. It
// receives the node that was just given a cut, after its two new leaf
// children are attached. The node's own attribute still holds the
// value it had as a leaf, so initializers can derive child attributes
// from it.
type SubtreeInit[P, A any] func(n *Node[P, A])

// MergeLeafFunc resolves one step of a tree-tree merge once either
// input bottoms out in a leaf. n1 comes from the first input, n2 from
// the second; at least one of them is a leaf. The returned node may
// belong to either input tree or to the output tree and must not be
// nil; the merge imports it into the output tree as needed.
type MergeLeafFunc[P, A any] func(n1, n2 *Node[P, A]) *Node[P, A]

// Tree is a binary space partitioning tree over points of type P,
// with node attributes of type A for use by higher layers. A new tree
// is a single leaf covering the whole space; cuts carve it into
// convex cells.
//
// Structural mutations bump the tree's version counter, which lazily
// invalidates per-node cached counts and heights. See the package
// documentation for the concurrency contract.
type Tree[P, A any] struct {
	root    *Node[P, A]
	version uint64

	// CopyAttr, when non-nil, copies attribute values during
	// structural copies between nodes. The default copies by
	// assignment, which suits value-type attributes.
	CopyAttr func(A) A

	// SwapsChildren, when non-nil, overrides the policy deciding
	// whether Transform swaps minus and plus child roles. The default
	// swaps when the transform does not preserve orientation; the
	// correct policy can be dimension-specific, so backends may
	// replace it.
	SwapsChildren func(Transform[P]) bool
}

// New creates a tree consisting of a single root leaf covering the
// entire space, with a zero-valued attribute.
func New[P, A any]() *Tree[P, A] {
	t := &Tree[P, A]{}
	t.root = t.newNode()
	t.root.makeRoot()
	return t
}

// Root returns the root node. Never nil.
func (t *Tree[P, A]) Root() *Node[P, A] { return t.root }

// Count returns the total number of nodes in the tree.
func (t *Tree[P, A]) Count() int { return t.root.Count() }

// Height returns the height of the root node.
func (t *Tree[P, A]) Height() int { return t.root.Height() }

// Version returns the tree's structural version counter. Every
// structural mutation strictly increases it; read-only queries never
// change it.
func (t *Tree[P, A]) Version() uint64 { return t.version }

// Accept runs the visitor over the whole tree.
func (t *Tree[P, A]) Accept(v Visitor[P, A]) {
	visitSubtree(t.root, v)
}

func (t *Tree[P, A]) String() string {
	return fmt.Sprintf("Tree[count=%d, height=%d]", t.Count(), t.Height())
}

// ---------------------------------------------------------------------------
// Point location
// ---------------------------------------------------------------------------

// FindNode locates the node whose cell contains the given point,
// descending from the root by classifying the point against each cut.
// Points on a cut hyperplane follow the cut rule: CutRuleMinus and
// CutRulePlus descend into the respective child, CutRuleNode stops
// and returns the internal node itself.
func (t *Tree[P, A]) FindNode(pt P, rule CutRule) *Node[P, A] {
	return findNode(t.root, pt, rule)
}

func findNode[P, A any](n *Node[P, A], pt P, rule CutRule) *Node[P, A] {
	if n.IsLeaf() {
		return n
	}

	side := n.CutHyperplane().Classify(pt)

	if side == SideMinus || (side == SideOn && rule == CutRuleMinus) {
		return findNode(n.minus, pt, rule)
	}
	if side == SidePlus || (side == SideOn && rule == CutRulePlus) {
		return findNode(n.plus, pt, rule)
	}
	return n
}

// ---------------------------------------------------------------------------
// Cut and trim
// ---------------------------------------------------------------------------

// CutNode cuts the node's cell with the given hyperplane. The
// hyperplane's span is first trimmed to the node's cell; if nothing
// remains the node cannot be cut, any existing cut is removed and
// CutNode returns false. Otherwise the node receives the trimmed cut
// and two fresh leaf children, and the initializer (if non-nil) runs
// on the new subtree. The tree version is bumped in both outcomes.
func (t *Tree[P, A]) CutNode(n *Node[P, A], cutter Hyperplane[P], init SubtreeInit[P, A]) bool {
	cut := t.TrimToNode(n, cutter.Span())
	if cut == nil || cut.IsEmpty() {
		n.setSubtree(nil, nil, nil)
		t.invalidate()
		return false
	}

	t.setNodeCut(n, cut, init)
	return true
}

// TrimToNode restricts a convex subset to the cell of the given node
// by splitting it against every ancestor cut from the node up to the
// root. When the candidate turns out to be coincident with an
// ancestor's cut hyperplane, orientation decides: same orientation
// means the candidate adds nothing and is discarded (nil result);
// opposite orientation means it lies within the cell and trimming
// continues. This asymmetry is what makes zero-thickness cells
// representable. Returns nil when nothing of the subset lies in the
// node's cell.
func (t *Tree[P, A]) TrimToNode(n *Node[P, A], sub ConvexSubset[P]) ConvexSubset[P] {
	result := sub

	child := n
	parent := n.parent
	for parent != nil && result != nil {
		split := result.Split(parent.CutHyperplane())

		if split.Location() == SplitNeither {
			if result.Hyperplane().SimilarOrientation(parent.CutHyperplane()) {
				result = nil
			}
		} else if child.IsPlus() {
			result = split.Plus()
		} else {
			result = split.Minus()
		}

		child = parent
		parent = parent.parent
	}

	return result
}

// RemoveCut clears the node's cut and children, demoting it to a
// leaf. Returns true and bumps the tree version iff the node had a
// cut; removing the cut of a leaf is not a mutation.
func (t *Tree[P, A]) RemoveCut(n *Node[P, A]) bool {
	if n.cut == nil {
		return false
	}
	n.setSubtree(nil, nil, nil)
	t.invalidate()
	return true
}

// Insert carves the convex subset into the tree starting at the root.
// The descent splits the inserted piece by each internal cut and
// recurses into the sides with remaining parts; alongside it carries
// the subset's whole-hyperplane span trimmed by the same cuts, and
// installs that trimmed span as the cut when a leaf is reached. The
// initializer (if non-nil) runs on every subtree the insert creates.
func (t *Tree[P, A]) Insert(sub ConvexSubset[P], init SubtreeInit[P, A]) {
	t.insertRecursive(t.root, sub, sub.Hyperplane().Span(), init)
}

func (t *Tree[P, A]) insertRecursive(n *Node[P, A], insert, trimmed ConvexSubset[P], init SubtreeInit[P, A]) {
	if n.IsLeaf() {
		t.setNodeCut(n, trimmed, init)
		return
	}

	insertSplit := insert.Split(n.CutHyperplane())
	minus := insertSplit.Minus()
	plus := insertSplit.Plus()

	if minus == nil && plus == nil {
		// Coincident with this node's cut; nothing new to insert.
		return
	}

	trimmedSplit := trimmed.Split(n.CutHyperplane())

	if minus != nil && trimmedSplit.Minus() != nil {
		t.insertRecursive(n.minus, minus, trimmedSplit.Minus(), init)
	}
	if plus != nil && trimmedSplit.Plus() != nil {
		t.insertRecursive(n.plus, plus, trimmedSplit.Plus(), init)
	}
}

// setNodeCut installs a cut and two fresh leaf children on the node,
// runs the initializer, and bumps the tree version.
func (t *Tree[P, A]) setNodeCut(n *Node[P, A], cut ConvexSubset[P], init SubtreeInit[P, A]) {
	n.setSubtree(cut, t.newNode(), t.newNode())
	if init != nil {
		init(n)
	}
	t.invalidate()
}

// ---------------------------------------------------------------------------
// Copy, import, extract
// ---------------------------------------------------------------------------

// Copy makes this tree a structural copy of src, including node
// attributes. The two trees remain fully independent afterwards.
// Copying a tree into itself is a no-op.
func (t *Tree[P, A]) Copy(src *Tree[P, A]) {
	if src == t {
		return
	}
	t.CopySubtree(src.root, t.root)
	t.invalidate()
}

// CopySubtree recursively copies structure and attributes from src
// into dst, replacing whatever dst held. The two nodes may belong to
// different trees; new nodes are created in dst's tree. A src equal
// to dst is a no-op. Callers are responsible for invalidating dst's
// tree afterwards.
func (t *Tree[P, A]) CopySubtree(src, dst *Node[P, A]) {
	if src == dst {
		return
	}

	dstTree := dst.tree
	if src.IsInternal() {
		minus := dstTree.newNode()
		dstTree.CopySubtree(src.minus, minus)
		plus := dstTree.newNode()
		dstTree.CopySubtree(src.plus, plus)
		dst.setSubtree(src.cut, minus, plus)
	} else {
		dst.setSubtree(nil, nil, nil)
	}
	dst.attr = dstTree.copyAttr(src.attr)
}

// ImportSubtree returns a node owned by this tree carrying the given
// node's subtree: the node itself if it already belongs to this tree,
// otherwise a fresh deep copy. The source tree is never mutated,
// which is what lets split and merge mix nodes from several trees.
func (t *Tree[P, A]) ImportSubtree(n *Node[P, A]) *Node[P, A] {
	if n.tree == t {
		return n
	}
	cp := t.newNode()
	t.CopySubtree(n, cp)
	return cp
}

// Extract reshapes this tree around the given node: the node's
// subtree is imported as-is, its ancestor chain is rebuilt above it
// with each ancestor's cut preserved, and every off-path sibling
// subtree is replaced by a fresh zero-attribute leaf. The result
// becomes this tree's root. Point classification inside the node's
// cell is preserved; information outside it is discarded. The node
// may belong to this tree or to another one.
func (t *Tree[P, A]) Extract(src *Node[P, A]) {
	extracted := t.ImportSubtree(src)
	newRoot := t.extractParentPath(src, extracted)

	t.root = newRoot
	t.root.makeRoot()
	t.invalidate()
}

// extractParentPath rebuilds src's ancestor chain on top of dst,
// copying each ancestor's cut and attributes and placing a fresh leaf
// on the side the path does not descend into.
func (t *Tree[P, A]) extractParentPath(src, dst *Node[P, A]) *Node[P, A] {
	dstParent := dst

	child := src
	parent := src.parent
	for parent != nil {
		out := t.newNode()
		if child.IsPlus() {
			out.setSubtree(parent.cut, t.newNode(), dstParent)
		} else {
			out.setSubtree(parent.cut, dstParent, t.newNode())
		}
		out.attr = t.copyAttr(parent.attr)

		dstParent = out
		child = parent
		parent = child.parent
	}

	return dstParent
}

// ---------------------------------------------------------------------------
// Split
// ---------------------------------------------------------------------------

// SplitSubtree splits the subtree rooted at the given node by a
// convex-subset partitioner defined on the node's cell, returning a
// new node in this tree whose cut is the partitioner and whose minus
// and plus children hold the two halves of the original subtree. The
// source node may belong to another tree and is never mutated.
//
// The case analysis must be exhaustive: a wrong branch here produces
// a structurally valid tree describing the wrong region, with no
// crash to flag it.
func (t *Tree[P, A]) SplitSubtree(n *Node[P, A], partitioner ConvexSubset[P]) *Node[P, A] {
	if n.IsLeaf() {
		return t.splitLeaf(n, partitioner)
	}
	return t.splitInternal(n, partitioner)
}

// splitLeaf splits a leaf: both halves of the cell keep the leaf's
// attributes, under a new parent cut by the partitioner.
func (t *Tree[P, A]) splitLeaf(n *Node[P, A], partitioner ConvexSubset[P]) *Node[P, A] {
	parent := t.newNode()
	parent.setSubtree(partitioner, t.copyNode(n), t.copyNode(n))
	return parent
}

// splitInternal splits an internal node by the partitioner. The
// partitioner and the node's cut are split against each other's
// hyperplanes to determine their relative configuration.
func (t *Tree[P, A]) splitInternal(n *Node[P, A], partitioner ConvexSubset[P]) *Node[P, A] {
	partitionerSplit := partitioner.Split(n.CutHyperplane())
	cutSplit := n.cut.Split(partitioner.Hyperplane())

	result := t.newNode()

	var resultMinus, resultPlus *Node[P, A]

	switch partitionerSplit.Location() {
	case SplitPlus:
		if cutSplit.Location() == SplitPlus {
			// Partitioner on the cut's plus side, cut on the
			// partitioner's plus side.
			plusSplit := t.SplitSubtree(n.plus, partitioner)

			resultMinus = plusSplit.minus

			resultPlus = t.copyNode(n)
			resultPlus.setSubtree(n.cut, t.ImportSubtree(n.minus), plusSplit.plus)
		} else {
			// Partitioner on the cut's plus side, cut on the
			// partitioner's minus side.
			plusSplit := t.SplitSubtree(n.plus, partitioner)

			resultMinus = t.copyNode(n)
			resultMinus.setSubtree(n.cut, t.ImportSubtree(n.minus), plusSplit.minus)

			resultPlus = plusSplit.plus
		}

	case SplitMinus:
		if cutSplit.Location() == SplitMinus {
			// Partitioner on the cut's minus side, cut on the
			// partitioner's minus side.
			minusSplit := t.SplitSubtree(n.minus, partitioner)

			resultMinus = t.copyNode(n)
			resultMinus.setSubtree(n.cut, minusSplit.minus, t.ImportSubtree(n.plus))

			resultPlus = minusSplit.plus
		} else {
			// Partitioner on the cut's minus side, cut on the
			// partitioner's plus side.
			minusSplit := t.SplitSubtree(n.minus, partitioner)

			resultMinus = minusSplit.minus

			resultPlus = t.copyNode(n)
			resultPlus.setSubtree(n.cut, minusSplit.plus, t.ImportSubtree(n.plus))
		}

	case SplitBoth:
		// Partitioner and cut split each other; recurse into both
		// children with the matching partitioner halves and rebuild
		// with the two halves of the node's cut.
		minusSplit := t.SplitSubtree(n.minus, partitionerSplit.minus)
		plusSplit := t.SplitSubtree(n.plus, partitionerSplit.plus)

		resultMinus = t.copyNode(n)
		resultMinus.setSubtree(cutSplit.minus, minusSplit.minus, plusSplit.minus)

		resultPlus = t.copyNode(n)
		resultPlus.setSubtree(cutSplit.plus, minusSplit.plus, plusSplit.plus)

	default:
		// Coincident hyperplanes: no transverse split anywhere.
		// Orientation decides which child maps to which side.
		sameOrientation := partitioner.Hyperplane().SimilarOrientation(n.CutHyperplane())

		if sameOrientation {
			resultMinus = t.ImportSubtree(n.minus)
			resultPlus = t.ImportSubtree(n.plus)
		} else {
			resultMinus = t.ImportSubtree(n.plus)
			resultPlus = t.ImportSubtree(n.minus)
		}
	}

	result.setSubtree(partitioner, resultMinus, resultPlus)
	return result
}

// SplitIntoTrees splits the whole tree by a hyperplane and extracts
// the two halves into the destination trees. Either destination may
// be nil, meaning that side is not wanted. With both destinations nil
// there is nothing to do.
func (t *Tree[P, A]) SplitIntoTrees(splitter Hyperplane[P], minusDst, plusDst *Tree[P, A]) {
	if minusDst == nil && plusDst == nil {
		return
	}

	splitTree := minusDst
	if splitTree == nil {
		splitTree = plusDst
	}
	splitRoot := splitTree.SplitSubtree(t.root, splitter.Span())

	if minusDst != nil {
		if plusDst != nil {
			plusDst.Extract(splitRoot.plus)
		}
		minusDst.Extract(splitRoot.minus)
	} else {
		plusDst.Extract(splitRoot.plus)
	}
}

// ---------------------------------------------------------------------------
// Merge
// ---------------------------------------------------------------------------

// Merge makes this tree the result of merging trees a and b, with the
// merge-leaf callback supplying the set semantics. Both inputs cover
// the whole space; the recursion keeps the two walks aligned on the
// same cell, splitting b's subtrees by a's cuts on the way down. The
// output tree may be one of the inputs (in-place merge); input nodes
// that end up in the result are then reused rather than copied. A
// tree passed only as an input is never mutated.
func (t *Tree[P, A]) Merge(a, b *Tree[P, A], mergeLeaf MergeLeafFunc[P, A]) {
	root := t.mergeRecursive(a.root, b.root, mergeLeaf)

	t.root = root
	t.root.makeRoot()
	t.invalidate()
}

func (t *Tree[P, A]) mergeRecursive(n1, n2 *Node[P, A], mergeLeaf MergeLeafFunc[P, A]) *Node[P, A] {
	if n1.IsLeaf() || n2.IsLeaf() {
		return t.ImportSubtree(mergeLeaf(n1, n2))
	}

	partitioned := t.SplitSubtree(n2, n1.cut)

	minus := t.mergeRecursive(n1.minus, partitioned.minus, mergeLeaf)
	plus := t.mergeRecursive(n1.plus, partitioned.plus, mergeLeaf)

	out := t.copyNode(n1)
	out.setSubtree(n1.cut, minus, plus)
	return out
}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// Transform applies the transform to every cut in the tree,
// bottom-up. When the swap policy reports that the transform flips
// orientation, minus and plus child roles are exchanged at every
// internal node, keeping each child on the geometrically correct side
// of its transformed cut. The tree version is bumped once at the end.
func (t *Tree[P, A]) Transform(tr Transform[P]) {
	swap := !tr.PreservesOrientation()
	if t.SwapsChildren != nil {
		swap = t.SwapsChildren(tr)
	}

	transformRecursive(t.root, tr, swap)
	t.invalidate()
}

func transformRecursive[P, A any](n *Node[P, A], tr Transform[P], swap bool) {
	if n.IsLeaf() {
		return
	}

	transformRecursive(n.minus, tr, swap)
	transformRecursive(n.plus, tr, swap)

	cut := n.cut.Transform(tr)

	minus, plus := n.minus, n.plus
	if swap {
		minus, plus = plus, minus
	}
	n.setSubtree(cut, minus, plus)
}

// ---------------------------------------------------------------------------
// Condense
// ---------------------------------------------------------------------------

// Condense collapses internal nodes whose children are both leaves
// that the merge callback agrees to unify, working bottom-up so
// collapses can cascade. The callback returns the attribute for the
// collapsed leaf and whether the pair may be merged. Returns true and
// bumps the tree version iff any node collapsed.
func (t *Tree[P, A]) Condense(merge func(minus, plus *Node[P, A]) (A, bool)) bool {
	changed := condenseRecursive(t.root, merge)
	if changed {
		t.invalidate()
	}
	return changed
}

func condenseRecursive[P, A any](n *Node[P, A], merge func(minus, plus *Node[P, A]) (A, bool)) bool {
	if n.IsLeaf() {
		return false
	}

	changed := condenseRecursive(n.minus, merge)
	if condenseRecursive(n.plus, merge) {
		changed = true
	}

	if n.minus.IsLeaf() && n.plus.IsLeaf() {
		if attr, ok := merge(n.minus, n.plus); ok {
			n.setSubtree(nil, nil, nil)
			n.attr = attr
			changed = true
		}
	}

	return changed
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

// invalidate bumps the tree version, lazily invalidating every
// node's cached count and height.
func (t *Tree[P, A]) invalidate() {
	t.version++
}

// newNode allocates a node owned by this tree with all cached
// properties unresolved.
func (t *Tree[P, A]) newNode() *Node[P, A] {
	return &Node[P, A]{
		tree:        t,
		nodeVersion: t.version,
		depth:       unknownValue,
		count:       unknownValue,
		height:      unknownValue,
	}
}

// copyNode allocates a node owned by this tree carrying a copy of the
// source node's attribute. Children are not copied.
func (t *Tree[P, A]) copyNode(src *Node[P, A]) *Node[P, A] {
	n := t.newNode()
	n.attr = t.copyAttr(src.attr)
	return n
}

func (t *Tree[P, A]) copyAttr(attr A) A {
	if t.CopyAttr != nil {
		return t.CopyAttr(attr)
	}
	return attr
}
