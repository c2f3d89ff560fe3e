package bsp

import (
	"fmt"
	"math"
)

// Test geometry over the real line. Points are float64 values and
// hyperplanes are oriented points: a location plus a facing. This is
// the smallest space with a working plus/minus/on trichotomy, which
// keeps the tree tests independent of any real geometric backend.

const testEps = 1e-9

// orientedPoint is a hyperplane on the real line. Its plus side is
// the side its facing points toward.
type orientedPoint struct {
	loc      float64
	positive bool
}

func (h orientedPoint) Classify(pt float64) Side {
	delta := pt - h.loc
	if math.Abs(delta) < testEps {
		return SideOn
	}
	if (delta > 0) == h.positive {
		return SidePlus
	}
	return SideMinus
}

func (h orientedPoint) SimilarOrientation(other Hyperplane[float64]) bool {
	return h.positive == other.(orientedPoint).positive
}

func (h orientedPoint) Span() ConvexSubset[float64] {
	return pointCut{hp: h}
}

// pointCut is the convex subset of an orientedPoint hyperplane. A
// point has no proper subsets, so a pointCut is always the whole span
// and never empty.
type pointCut struct {
	hp orientedPoint
}

func (c pointCut) Hyperplane() Hyperplane[float64] { return c.hp }

func (c pointCut) IsEmpty() bool { return false }

func (c pointCut) Split(splitter Hyperplane[float64]) Split[float64] {
	switch splitter.Classify(c.hp.loc) {
	case SideMinus:
		return NewSplit[float64](c, nil)
	case SidePlus:
		return NewSplit[float64](nil, c)
	default:
		return NewSplit[float64](nil, nil)
	}
}

// Transform maps the location and keeps the facing. With that
// convention a reflection makes the tree's default child-swap policy
// geometrically correct, mirroring how higher-dimensional backends
// behave.
func (c pointCut) Transform(t Transform[float64]) ConvexSubset[float64] {
	return pointCut{hp: orientedPoint{loc: t.Apply(c.hp.loc), positive: c.hp.positive}}
}

func (c pointCut) Reverse() ConvexSubset[float64] {
	return pointCut{hp: orientedPoint{loc: c.hp.loc, positive: !c.hp.positive}}
}

func (c pointCut) String() string {
	sign := "+"
	if !c.hp.positive {
		sign = "-"
	}
	return fmt.Sprintf("%g%s", c.hp.loc, sign)
}

// scaleShift maps x to a*x + b. A negative a reverses orientation.
type scaleShift struct {
	a, b float64
}

func (s scaleShift) Apply(pt float64) float64 { return s.a*pt + s.b }

func (s scaleShift) PreservesOrientation() bool { return s.a > 0 }

// cutAt installs a positive-facing cut at loc on the given node.
func cutAt(t *Tree[float64, string], n *Node[float64, string], loc float64) bool {
	return t.CutNode(n, orientedPoint{loc: loc, positive: true}, nil)
}

// leafAttrs collects the attributes of the tree's leaves in iterator
// order.
func leafAttrs(t *Tree[float64, string]) []string {
	var attrs []string
	it := t.Root().Iterator()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if n.IsLeaf() {
			attrs = append(attrs, n.Attr())
		}
	}
	return attrs
}

// attrAt classifies a probe point down to a leaf and returns its
// attribute.
func attrAt(t *Tree[float64, string], pt float64) string {
	return t.FindNode(pt, CutRuleMinus).Attr()
}
