package curves

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	xAxis = r3.Vec{X: 1}
	yAxis = r3.Vec{Y: 1}
	zAxis = r3.Vec{Z: 1}
)

func checkVec(t *testing.T, want, got r3.Vec, tol float64) {
	t.Helper()
	if r3.Norm(r3.Sub(want, got)) > tol {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRotation(t *testing.T) {
	r := NewRotation(math.Pi/2, zAxis)
	checkVec(t, yAxis, r.Rotate(xAxis), 1e-12)
	checkVec(t, r3.Vec{X: -1}, r.Rotate(yAxis), 1e-12)
	diff(t, math.Pi/2, r.Angle(), approx(1e-12))
	checkVec(t, r3.Vec{Z: math.Pi / 2}, r.Log(), 1e-12)
	checkVec(t, zAxis, r.Inverse().Mul(r).Rotate(zAxis), 1e-12)

	// Mul applies the argument first
	rx := NewRotation(math.Pi/2, xAxis)
	checkVec(t, r.Rotate(rx.Rotate(yAxis)), r.Mul(rx).Rotate(yAxis), 1e-12)

	if !IdentityRotation().IsApprox(r.Mul(r.Inverse()), 1e-12) {
		t.Error("r·r⁻¹ is not the identity")
	}
	neg := Rotation{quat.Scale(-1, r.Quat())}
	if !r.IsApprox(neg, 1e-12) {
		t.Error("q and -q should be the same rotation")
	}
	diff(t, math.Pi/2, neg.Angle(), approx(1e-12))
	if r.IsApprox(rx, 1e-6) {
		t.Error("different rotations compare equal")
	}
}

func TestRotationExpLog(t *testing.T) {
	for _, v := range []r3.Vec{
		{},
		{X: 0.3},
		{X: 1, Y: -2, Z: 0.5},
		{Y: 3},
	} {
		r := ExpRotation(v)
		checkVec(t, v, r.Log(), 1e-12)
		if r3.Norm(v) > 0 && !r.IsApprox(NewRotation(r3.Norm(v), r3.Unit(v)), 1e-12) {
			t.Errorf("Exp(%v) differs from the axis-angle rotation", v)
		}
	}
}

func TestRotationMatrix(t *testing.T) {
	for _, r := range []Rotation{
		IdentityRotation(),
		NewRotation(math.Pi/2, zAxis),
		NewRotation(0.4, r3.Vec{X: 1, Y: 1, Z: -1}),
		NewRotation(math.Pi, xAxis),
		NewRotation(math.Pi, yAxis),
		NewRotation(math.Pi, zAxis),
		NewRotation(3, r3.Vec{X: -0.2, Y: 1, Z: 0.1}),
	} {
		m := r.Matrix()
		for _, v := range []r3.Vec{xAxis, yAxis, zAxis, {X: 1, Y: 2, Z: 3}} {
			checkVec(t, r.Rotate(v), m.MulVec(v), 1e-12)
		}
		diff(t, 1.0, m.Det(), approx(1e-12))
		if back := RotationFromMatrix(m); !back.IsApprox(r, 1e-12) {
			t.Errorf("got %v, want %v", back.Quat(), r.Quat())
		}
	}
}

func TestRotationFromQuat(t *testing.T) {
	r := must[Rotation](t)(RotationFromQuat(quat.Number{Real: 2}))
	if !r.IsApprox(IdentityRotation(), 1e-12) {
		t.Errorf("got %v, want identity", r.Quat())
	}
	if _, err := RotationFromQuat(quat.Number{}); !errors.Is(err, ErrInvalidConstruction) {
		t.Errorf("got %v, want ErrInvalidConstruction", err)
	}
}
