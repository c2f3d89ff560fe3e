package region

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/chazu/froe/pkg/euclid2"
)

// drawRect draws an axis-aligned rectangle with corners on the
// integer grid and returns the region together with its membership
// predicate.
func drawRect(t *rapid.T, label string) (*Tree[v2.Vec], func(v2.Vec) bool) {
	x0 := rapid.IntRange(0, 7).Draw(t, label+"X0")
	y0 := rapid.IntRange(0, 7).Draw(t, label+"Y0")
	x1 := rapid.IntRange(x0+1, 8).Draw(t, label+"X1")
	y1 := rapid.IntRange(y0+1, 8).Draw(t, label+"Y1")

	r := rect(float64(x0), float64(y0), float64(x1), float64(y1))
	inside := func(p v2.Vec) bool {
		return p.X > float64(x0) && p.X < float64(x1) &&
			p.Y > float64(y0) && p.Y < float64(y1)
	}
	return r, inside
}

// probeGrid visits one probe per unit cell, offset to cell centers so
// no probe ever lands on a rectangle edge.
func probeGrid(fn func(p v2.Vec)) {
	for gx := 0; gx < 10; gx++ {
		for gy := 0; gy < 10; gy++ {
			fn(v2.Vec{X: float64(gx) - 0.5, Y: float64(gy) - 0.5})
		}
	}
}

func TestBooleanOpsMatchPointwise(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r1, in1 := drawRect(t, "a")
		r2, in2 := drawRect(t, "b")

		union := r1.Copy()
		union.Union(r2)
		inter := r1.Copy()
		inter.Intersection(r2)
		diff := r1.Copy()
		diff.Difference(r2)
		xor := r1.Copy()
		xor.Xor(r2)

		probeGrid(func(p v2.Vec) {
			require.Equal(t, in1(p) || in2(p), union.Contains(p), "union at %v", p)
			require.Equal(t, in1(p) && in2(p), inter.Contains(p), "intersection at %v", p)
			require.Equal(t, in1(p) && !in2(p), diff.Contains(p), "difference at %v", p)
			require.Equal(t, in1(p) != in2(p), xor.Contains(p), "xor at %v", p)

			// The operands are never modified.
			require.Equal(t, in1(p), r1.Contains(p), "first operand at %v", p)
			require.Equal(t, in2(p), r2.Contains(p), "second operand at %v", p)
		})
	})
}

func TestComplementPointwise(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r, in := drawRect(t, "r")

		c := r.Copy()
		c.Complement()
		probeGrid(func(p v2.Vec) {
			require.Equal(t, !in(p), c.Contains(p), "complement at %v", p)
		})

		// Complement is an involution.
		c.Complement()
		probeGrid(func(p v2.Vec) {
			require.Equal(t, in(p), c.Contains(p), "double complement at %v", p)
		})
	})
}

func TestDifferenceViaComplement(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r1, _ := drawRect(t, "a")
		r2, _ := drawRect(t, "b")

		// a \ b must agree with a ∩ complement(b) everywhere.
		diff := r1.Copy()
		diff.Difference(r2)

		alt := r1.Copy()
		c2 := r2.Copy()
		c2.Complement()
		alt.Intersection(c2)

		probeGrid(func(p v2.Vec) {
			require.Equal(t, alt.Contains(p), diff.Contains(p), "at %v", p)
		})
	})
}

func TestOpsWithEmptyAndFull(t *testing.T) {
	sq := rect(1, 1, 3, 3)

	// Union with the empty region is the identity.
	u := sq.Copy()
	u.Union(NewEmpty[v2.Vec]())
	require.Equal(t, Inside, u.Classify(pt(2, 2)))
	require.Equal(t, Outside, u.Classify(pt(5, 5)))

	// Intersection with the full region is the identity.
	i := sq.Copy()
	i.Intersection(NewFull[v2.Vec]())
	require.Equal(t, Inside, i.Classify(pt(2, 2)))
	require.Equal(t, Outside, i.Classify(pt(5, 5)))

	// Intersection with the empty region empties the result.
	e := sq.Copy()
	e.Intersection(NewEmpty[v2.Vec]())
	require.True(t, e.IsEmpty())

	// Subtracting a region from itself empties it.
	d := sq.Copy()
	d.Difference(sq)
	require.True(t, d.IsEmpty())

	// As does xor with itself.
	x := sq.Copy()
	x.Xor(sq)
	require.True(t, x.IsEmpty())
}

func TestUnionDisjoint(t *testing.T) {
	left := rect(0, 0, 1, 1)
	right := rect(2, 0, 3, 1)

	u := left.Copy()
	u.Union(right)

	require.Equal(t, Inside, u.Classify(pt(0.5, 0.5)))
	require.Equal(t, Inside, u.Classify(pt(2.5, 0.5)))
	require.Equal(t, Outside, u.Classify(pt(1.5, 0.5)))
}

func TestCondenseExplicit(t *testing.T) {
	// An Inherit insert cuts without changing any location, leaving a
	// redundant cut that an explicit condense removes.
	r := NewFull[v2.Vec]()
	line := euclid2.NewLineFromPoints(pt(0, 0), pt(1, 0), testPrec)
	r.InsertRule(euclid2.NewSpan(line), Inherit)
	require.Equal(t, 3, r.Count())

	require.True(t, r.Condense())
	require.Equal(t, 1, r.Count())
	require.True(t, r.IsFull())

	require.False(t, r.Condense())
}

func TestCondenseAfterOps(t *testing.T) {
	// Uniting a region with itself changes nothing pointwise, and
	// condensing keeps the tree from accumulating redundant structure
	// beyond the aligned walk of the two identical trees.
	sq := rect(0, 0, 2, 2)
	before := sq.Count()

	u := sq.Copy()
	u.Union(sq)

	require.Equal(t, Inside, u.Classify(pt(1, 1)))
	require.Equal(t, Outside, u.Classify(pt(3, 3)))
	require.LessOrEqual(t, u.Count(), 2*before)
}
