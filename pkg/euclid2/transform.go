package euclid2

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// AffineTransform is a 2D affine transform in row-major 2x3 form:
//
//	[ a b c ]
//	[ d e f ]
//
// mapping (x, y) to (a*x + b*y + c, d*x + e*y + f).
type AffineTransform struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, E: 1}
}

// Translation returns the transform moving points by (dx, dy).
func Translation(dx, dy float64) AffineTransform {
	return AffineTransform{A: 1, C: dx, E: 1, F: dy}
}

// Rotation returns the counterclockwise rotation about the origin by
// theta radians.
func Rotation(theta float64) AffineTransform {
	sin, cos := math.Sincos(theta)
	return AffineTransform{A: cos, B: -sin, D: sin, E: cos}
}

// Scaling returns the transform scaling x by sx and y by sy about the
// origin. A negative factor reflects that axis.
func Scaling(sx, sy float64) AffineTransform {
	return AffineTransform{A: sx, E: sy}
}

// Apply implements bsp.Transform.
func (t AffineTransform) Apply(p v2.Vec) v2.Vec {
	return v2.Vec{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// PreservesOrientation implements bsp.Transform: orientation is
// preserved exactly when the determinant of the linear part is
// positive.
func (t AffineTransform) PreservesOrientation() bool {
	return t.Det() > 0
}

// Det returns the determinant of the linear part.
func (t AffineTransform) Det() float64 {
	return t.A*t.E - t.B*t.D
}

// Mul composes transforms: the result applies u first, then t.
func (t AffineTransform) Mul(u AffineTransform) AffineTransform {
	return AffineTransform{
		A: t.A*u.A + t.B*u.D,
		B: t.A*u.B + t.B*u.E,
		C: t.A*u.C + t.B*u.F + t.C,
		D: t.D*u.A + t.E*u.D,
		E: t.D*u.B + t.E*u.E,
		F: t.D*u.C + t.E*u.F + t.F,
	}
}

// Inverse returns the inverse transform. Panics if the transform is
// degenerate.
func (t AffineTransform) Inverse() AffineTransform {
	det := t.Det()
	if math.Abs(det) < 1e-12 {
		panic("euclid2: affine transform is not invertible")
	}
	return AffineTransform{
		A: t.E / det, B: -t.B / det, C: (t.B*t.F - t.C*t.E) / det,
		D: -t.D / det, E: t.A / det, F: (t.C*t.D - t.A*t.F) / det,
	}
}
