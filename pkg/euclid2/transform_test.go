package euclid2

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name string
		tr   AffineTransform
		in   v2.Vec
		want v2.Vec
	}{
		{"identity", Identity(), v2.Vec{X: 3, Y: -4}, v2.Vec{X: 3, Y: -4}},
		{"translation", Translation(2, -1), v2.Vec{X: 1, Y: 1}, v2.Vec{X: 3, Y: 0}},
		{"quarter turn", Rotation(math.Pi / 2), v2.Vec{X: 1, Y: 0}, v2.Vec{X: 0, Y: 1}},
		{"half turn", Rotation(math.Pi), v2.Vec{X: 1, Y: 2}, v2.Vec{X: -1, Y: -2}},
		{"scaling", Scaling(2, 3), v2.Vec{X: 1, Y: 1}, v2.Vec{X: 2, Y: 3}},
		{"reflection", Scaling(-1, 1), v2.Vec{X: 2, Y: 3}, v2.Vec{X: -2, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Apply(tt.in); !vecNear(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOrientation(t *testing.T) {
	if !Identity().PreservesOrientation() {
		t.Error("identity should preserve orientation")
	}
	if !Rotation(1.23).PreservesOrientation() {
		t.Error("rotations should preserve orientation")
	}
	if Scaling(-1, 1).PreservesOrientation() {
		t.Error("a single-axis reflection should not preserve orientation")
	}
	// Reflecting both axes is a half turn, not a reflection.
	if !Scaling(-2, -3).PreservesOrientation() {
		t.Error("a double reflection should preserve orientation")
	}

	if got := Scaling(2, 3).Det(); math.Abs(got-6) > 1e-9 {
		t.Errorf("expected det 6, got %g", got)
	}
}

func TestMulOrder(t *testing.T) {
	move := Translation(1, 0)
	turn := Rotation(math.Pi / 2)

	// t.Mul(u) applies u first.
	if got := move.Mul(turn).Apply(v2.Vec{X: 1, Y: 0}); !vecNear(got, v2.Vec{X: 1, Y: 1}) {
		t.Errorf("turn then move: expected (1,1), got %v", got)
	}
	if got := turn.Mul(move).Apply(v2.Vec{X: 1, Y: 0}); !vecNear(got, v2.Vec{X: 0, Y: 2}) {
		t.Errorf("move then turn: expected (0,2), got %v", got)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	tr := Translation(3, -2).Mul(Rotation(0.7)).Mul(Scaling(2, 5))
	inv := tr.Inverse()

	points := []v2.Vec{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: -3.5, Y: 2.25},
	}
	for _, p := range points {
		if got := inv.Apply(tr.Apply(p)); !vecNear(got, p) {
			t.Errorf("round trip of %v gave %v", p, got)
		}
	}
}

func TestInverseSingularPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a singular transform")
		}
	}()
	Scaling(1, 0).Inverse()
}
