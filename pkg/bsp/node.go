package bsp

import "fmt"

// unknownValue marks cached node properties that have not been
// computed since the last invalidation.
const unknownValue = -1

// Node is a single node in a BSP tree. A node is either a leaf with no
// cut and no children, or an internal node with a cut and exactly two
// children; no other combination exists. Each node represents a convex
// cell of the space: the root represents the whole space, and an
// internal node's cut divides its cell into the cells of its minus and
// plus children.
//
// Nodes are created by their owning tree and belong to it for life.
// Structure moves between trees by copying, never by re-parenting.
// The attribute value A is owned by higher layers; the tree copies it
// through the tree's attribute hook and otherwise ignores it.
type Node[P, A any] struct {
	tree   *Tree[P, A]
	parent *Node[P, A]

	cut   ConvexSubset[P]
	minus *Node[P, A]
	plus  *Node[P, A]

	attr A

	// Cached structural properties. count and height are valid only
	// while nodeVersion matches the tree version; depth is resolved
	// through the parent chain and reset only by makeRoot.
	nodeVersion uint64
	depth       int
	count       int
	height      int
}

// Tree returns the tree that owns this node.
func (n *Node[P, A]) Tree() *Tree[P, A] { return n.tree }

// Parent returns the parent node, or nil for the root.
func (n *Node[P, A]) Parent() *Node[P, A] { return n.parent }

// IsLeaf reports whether the node has no cut.
func (n *Node[P, A]) IsLeaf() bool { return n.cut == nil }

// IsInternal reports whether the node has a cut and two children.
func (n *Node[P, A]) IsInternal() bool { return n.cut != nil }

// IsMinus reports whether the node is the minus child of its parent.
// False for the root.
func (n *Node[P, A]) IsMinus() bool { return n.parent != nil && n.parent.minus == n }

// IsPlus reports whether the node is the plus child of its parent.
// False for the root.
func (n *Node[P, A]) IsPlus() bool { return n.parent != nil && n.parent.plus == n }

// Cut returns the node's cut, or nil for a leaf.
func (n *Node[P, A]) Cut() ConvexSubset[P] { return n.cut }

// CutHyperplane returns the hyperplane of the node's cut, or nil for
// a leaf.
func (n *Node[P, A]) CutHyperplane() Hyperplane[P] {
	if n.cut == nil {
		return nil
	}
	return n.cut.Hyperplane()
}

// Minus returns the child on the minus side of the cut, or nil for a
// leaf.
func (n *Node[P, A]) Minus() *Node[P, A] { return n.minus }

// Plus returns the child on the plus side of the cut, or nil for a
// leaf.
func (n *Node[P, A]) Plus() *Node[P, A] { return n.plus }

// Attr returns the node's attribute value.
func (n *Node[P, A]) Attr() A { return n.attr }

// SetAttr sets the node's attribute value.
func (n *Node[P, A]) SetAttr(attr A) { n.attr = attr }

// Count returns the number of nodes in the subtree rooted here,
// including this node. The value is cached until the next structural
// mutation of the tree.
func (n *Node[P, A]) Count() int {
	n.checkValid()
	if n.count == unknownValue {
		c := 1
		if n.IsInternal() {
			c += n.minus.Count() + n.plus.Count()
		}
		n.count = c
	}
	return n.count
}

// Height returns the length of the longest downward path from this
// node to a leaf. Zero for a leaf. Cached like Count.
func (n *Node[P, A]) Height() int {
	n.checkValid()
	if n.height == unknownValue {
		h := 0
		if n.IsInternal() {
			mh := n.minus.Height()
			ph := n.plus.Height()
			if ph > mh {
				mh = ph
			}
			h = mh + 1
		}
		n.height = h
	}
	return n.height
}

// Depth returns the distance from the root to this node, zero at the
// root. Unlike Count and Height, depth is not invalidated by the tree
// version; an unresolved depth is computed lazily by walking up the
// parent chain.
func (n *Node[P, A]) Depth() int {
	if n.depth == unknownValue && n.parent != nil {
		parentDepth := n.parent.Depth()
		if parentDepth != unknownValue {
			n.depth = parentDepth + 1
		}
	}
	return n.depth
}

// Accept runs the visitor over the subtree rooted at this node.
func (n *Node[P, A]) Accept(v Visitor[P, A]) {
	visitSubtree(n, v)
}

// Iterator returns a depth-first pre-order iterator over the subtree
// rooted at this node.
func (n *Node[P, A]) Iterator() *Iterator[P, A] {
	return &Iterator[P, A]{stack: []*Node[P, A]{n}}
}

func (n *Node[P, A]) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("leaf[attr=%v]", n.attr)
	}
	return fmt.Sprintf("internal[cut=%v]", n.cut)
}

// checkValid compares the node's version stamp against the tree
// version and drops stale cached values. Every cached read goes
// through here first; this one integer comparison is what lets
// mutations skip eager invalidation of whole subtrees.
func (n *Node[P, A]) checkValid() {
	if n.nodeVersion != n.tree.version {
		n.count = unknownValue
		n.height = unknownValue
		n.nodeVersion = n.tree.version
	}
}

// setSubtree is the only structural mutator. Arguments are either all
// nil (the node becomes or stays a leaf) or all non-nil (the node
// becomes internal). The cut must already be consistent with the
// node's cell; no geometric validation happens here. Children are
// re-parented onto this node and given a depth one below this node's,
// unresolved if this node's depth is unresolved. Callers invalidate
// the tree after their batch of edits.
func (n *Node[P, A]) setSubtree(cut ConvexSubset[P], minus, plus *Node[P, A]) {
	n.cut = cut
	n.minus = minus
	n.plus = plus

	if cut != nil {
		n.attachChild(minus)
		n.attachChild(plus)
	}
}

func (n *Node[P, A]) attachChild(child *Node[P, A]) {
	child.parent = n
	if n.depth == unknownValue {
		child.depth = unknownValue
	} else {
		child.depth = n.depth + 1
	}
}

// makeRoot detaches the node from its parent and fixes its depth at
// zero. The previous parent is left untouched; callers discard it or
// rewire it themselves.
func (n *Node[P, A]) makeRoot() {
	n.parent = nil
	n.depth = 0
}
