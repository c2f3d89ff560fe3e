package euclid2

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/froe/pkg/bsp"
	"github.com/chazu/froe/pkg/precision"
)

// Section is a convex subset of a line: the points whose line
// parameter lies in [lo, hi]. Infinite bounds give rays and full
// spans.
type Section struct {
	line Line
	lo   float64
	hi   float64
}

// NewSpan returns the whole of the given line.
func NewSpan(l Line) Section {
	return Section{line: l, lo: math.Inf(-1), hi: math.Inf(1)}
}

// NewSegment returns the section of the line between parameters lo
// and hi. Panics if lo > hi.
func NewSegment(l Line, lo, hi float64) Section {
	if lo > hi {
		panic(fmt.Sprintf("euclid2: inverted segment bounds [%g, %g]", lo, hi))
	}
	return Section{line: l, lo: lo, hi: hi}
}

// NewSegmentFromPoints returns the bounded section from a to b on the
// line through them. Panics if the points coincide under the
// precision context.
func NewSegmentFromPoints(a, b v2.Vec, prec precision.Context) Section {
	l := NewLineFromPoints(a, b, prec)
	return Section{line: l, lo: l.Param(a), hi: l.Param(b)}
}

// NewRay returns the unbounded section of the line from parameter lo
// onward.
func NewRay(l Line, lo float64) Section {
	return Section{line: l, lo: lo, hi: math.Inf(1)}
}

// Line returns the line containing the section.
func (s Section) Line() Line { return s.line }

// Lo returns the low parameter bound, possibly -Inf.
func (s Section) Lo() float64 { return s.lo }

// Hi returns the high parameter bound, possibly +Inf.
func (s Section) Hi() float64 { return s.hi }

// Hyperplane implements bsp.ConvexSubset.
func (s Section) Hyperplane() bsp.Hyperplane[v2.Vec] { return s.line }

// IsEmpty implements bsp.ConvexSubset: a section is empty when its
// parameter interval has no extent under the precision context.
func (s Section) IsEmpty() bool {
	return s.line.prec.Gte(s.lo, s.hi)
}

// Split implements bsp.ConvexSubset. The splitter's offset varies
// linearly along the section's line; the sign of that linear function
// over [lo, hi] decides the parts. Crossings within tolerance of a
// bound collapse to the single-sided cases, so degenerate slivers are
// never produced.
func (s Section) Split(splitter bsp.Hyperplane[v2.Vec]) bsp.Split[v2.Vec] {
	sp := splitter.(Line)
	prec := s.line.prec

	// off(t) = slope*t + off0 along the section's line.
	slope := sp.normal.Dot(s.line.Direction())
	off0 := sp.Offset(s.line.Origin())

	if prec.EqZero(slope) {
		// Parallel lines: one side throughout, or coincident.
		switch prec.Sign(off0) {
		case -1:
			return bsp.NewSplit[v2.Vec](s, nil)
		case 1:
			return bsp.NewSplit[v2.Vec](nil, s)
		default:
			return bsp.NewSplit[v2.Vec](nil, nil)
		}
	}

	crossing := -off0 / slope

	// Below the crossing, off(t) carries the opposite sign of slope.
	if prec.Gte(crossing, s.hi) {
		if slope > 0 {
			return bsp.NewSplit[v2.Vec](s, nil)
		}
		return bsp.NewSplit[v2.Vec](nil, s)
	}
	if prec.Lte(crossing, s.lo) {
		if slope > 0 {
			return bsp.NewSplit[v2.Vec](nil, s)
		}
		return bsp.NewSplit[v2.Vec](s, nil)
	}

	below := Section{line: s.line, lo: s.lo, hi: crossing}
	above := Section{line: s.line, lo: crossing, hi: s.hi}
	if slope > 0 {
		return bsp.NewSplit[v2.Vec](below, above)
	}
	return bsp.NewSplit[v2.Vec](above, below)
}

// Transform implements bsp.ConvexSubset. Line parameters map linearly
// under an affine transform, anchored at the image of the old origin
// and stretched by the image of the unit direction.
func (s Section) Transform(t bsp.Transform[v2.Vec]) bsp.ConvexSubset[v2.Vec] {
	newLine := s.line.Transform(t)

	base := newLine.Param(t.Apply(s.line.Origin()))
	stretch := newLine.Param(t.Apply(s.line.PointAt(1))) - base

	return Section{
		line: newLine,
		lo:   base + stretch*s.lo,
		hi:   base + stretch*s.hi,
	}
}

// Reverse implements bsp.ConvexSubset. Reversing the line negates
// parameters, so the interval flips around zero.
func (s Section) Reverse() bsp.ConvexSubset[v2.Vec] {
	return Section{line: s.line.Reverse(), lo: -s.hi, hi: -s.lo}
}

func (s Section) String() string {
	if math.IsInf(s.lo, -1) && math.IsInf(s.hi, 1) {
		return fmt.Sprintf("Span(%v)", s.line)
	}
	return fmt.Sprintf("Section(%v, [%g, %g])", s.line, s.lo, s.hi)
}
