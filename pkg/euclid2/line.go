// Package euclid2 implements the bsp geometry capability set for the
// Euclidean plane. Points are sdfx v2 vectors, hyperplanes are
// oriented lines, and convex subsets are parameter intervals of a
// line: segments, rays and full spans.
package euclid2

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/froe/pkg/bsp"
	"github.com/chazu/froe/pkg/precision"
)

// Compile-time interface checks.
var (
	_ bsp.Hyperplane[v2.Vec]   = Line{}
	_ bsp.ConvexSubset[v2.Vec] = Section{}
	_ bsp.Transform[v2.Vec]    = AffineTransform{}
)

// Line is an oriented line in the plane, stored in normal form: the
// points p with n·p = c for a unit normal n and offset c. The plus
// side is where n·p > c, which is the left side when traveling along
// the line's direction.
type Line struct {
	normal v2.Vec // unit length
	offset float64
	prec   precision.Context
}

// NewLineFromPoints returns the line through a towards b, with the
// plus side on the left of travel. Panics if the points coincide
// under the precision context.
func NewLineFromPoints(a, b v2.Vec, prec precision.Context) Line {
	return NewLineFromPointDirection(a, b.Sub(a), prec)
}

// NewLineFromPointDirection returns the line through pt along dir,
// with the plus side on the left of dir. Panics if dir has no length
// under the precision context.
func NewLineFromPointDirection(pt, dir v2.Vec, prec precision.Context) Line {
	if prec.EqZero(dir.Length()) {
		panic(fmt.Sprintf("euclid2: degenerate line direction %v", dir))
	}
	d := dir.Normalize()
	n := v2.Vec{X: -d.Y, Y: d.X}
	return Line{normal: n, offset: n.Dot(pt), prec: prec}
}

// Normal returns the unit normal pointing into the plus side.
func (l Line) Normal() v2.Vec { return l.normal }

// Direction returns the unit direction of travel; the plus side lies
// to its left.
func (l Line) Direction() v2.Vec { return v2.Vec{X: l.normal.Y, Y: -l.normal.X} }

// Origin returns the point of the line closest to the coordinate
// origin. Line parameters are measured from here along Direction.
func (l Line) Origin() v2.Vec { return l.normal.MulScalar(l.offset) }

// Precision returns the line's precision context.
func (l Line) Precision() precision.Context { return l.prec }

// Offset returns the signed distance from the line to the point,
// positive on the plus side.
func (l Line) Offset(pt v2.Vec) float64 { return l.normal.Dot(pt) - l.offset }

// Param returns the line parameter of the point's projection.
func (l Line) Param(pt v2.Vec) float64 { return l.Direction().Dot(pt) }

// PointAt returns the point at the given line parameter.
func (l Line) PointAt(t float64) v2.Vec {
	return l.Origin().Add(l.Direction().MulScalar(t))
}

// Project returns the orthogonal projection of the point onto the
// line.
func (l Line) Project(pt v2.Vec) v2.Vec { return l.PointAt(l.Param(pt)) }

// Reverse returns the same line with plus and minus sides exchanged.
func (l Line) Reverse() Line {
	return Line{
		normal: v2.Vec{X: -l.normal.X, Y: -l.normal.Y},
		offset: -l.offset,
		prec:   l.prec,
	}
}

// Transform returns the image of the line under t, keeping the
// precision context. t must be invertible.
func (l Line) Transform(t bsp.Transform[v2.Vec]) Line {
	p0 := t.Apply(l.Origin())
	p1 := t.Apply(l.PointAt(1))
	return NewLineFromPoints(p0, p1, l.prec)
}

// Classify implements bsp.Hyperplane.
func (l Line) Classify(pt v2.Vec) bsp.Side {
	switch l.prec.Sign(l.Offset(pt)) {
	case -1:
		return bsp.SideMinus
	case 1:
		return bsp.SidePlus
	default:
		return bsp.SideOn
	}
}

// SimilarOrientation implements bsp.Hyperplane: true when the two
// normals are within a quarter turn of each other.
func (l Line) SimilarOrientation(other bsp.Hyperplane[v2.Vec]) bool {
	o := other.(Line)
	return l.normal.Dot(o.normal) > 0
}

// Span implements bsp.Hyperplane, returning the whole line.
func (l Line) Span() bsp.ConvexSubset[v2.Vec] {
	return Section{line: l, lo: math.Inf(-1), hi: math.Inf(1)}
}

func (l Line) String() string {
	return fmt.Sprintf("Line(n=[%g %g], c=%g)", l.normal.X, l.normal.Y, l.offset)
}
