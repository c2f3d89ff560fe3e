// Package precision supplies tolerance-based floating point
// comparison. Geometric predicates never compare floats exactly; they
// go through a Context so that values within epsilon of each other
// count as equal.
package precision

import "math"

// DefaultEpsilon is the tolerance used by Default. It suits
// coordinates in the single-digit to few-thousand range.
const DefaultEpsilon = 1e-6

// Context compares floats under a fixed absolute tolerance. The zero
// value compares exactly; use New or Default instead.
type Context struct {
	eps float64
}

// New returns a context with the given epsilon. Epsilon must be
// non-negative.
func New(eps float64) Context {
	if eps < 0 || math.IsNaN(eps) {
		panic("precision: epsilon must be non-negative")
	}
	return Context{eps: eps}
}

// Default returns a context using DefaultEpsilon.
func Default() Context {
	return Context{eps: DefaultEpsilon}
}

// Epsilon returns the context's tolerance.
func (c Context) Epsilon() float64 { return c.eps }

// EqZero reports whether v is within epsilon of zero.
func (c Context) EqZero(v float64) bool {
	return math.Abs(v) <= c.eps
}

// Eq reports whether a and b are within epsilon of each other.
func (c Context) Eq(a, b float64) bool {
	return math.Abs(a-b) <= c.eps
}

// Sign returns -1, 0 or 1 for v, treating values within epsilon of
// zero as zero.
func (c Context) Sign(v float64) int {
	if c.EqZero(v) {
		return 0
	}
	if v < 0 {
		return -1
	}
	return 1
}

// Compare returns -1, 0 or 1 ordering a against b under the
// tolerance.
func (c Context) Compare(a, b float64) int {
	return c.Sign(a - b)
}

// Lt reports a < b with b outside a's tolerance band.
func (c Context) Lt(a, b float64) bool { return c.Compare(a, b) < 0 }

// Lte reports a <= b under the tolerance.
func (c Context) Lte(a, b float64) bool { return c.Compare(a, b) <= 0 }

// Gt reports a > b with b outside a's tolerance band.
func (c Context) Gt(a, b float64) bool { return c.Compare(a, b) > 0 }

// Gte reports a >= b under the tolerance.
func (c Context) Gte(a, b float64) bool { return c.Compare(a, b) >= 0 }
