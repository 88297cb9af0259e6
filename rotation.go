package curves

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Rotation is a rotation in space, stored as a unit quaternion. q and -q
// describe the same rotation.
type Rotation struct {
	q quat.Number
}

func IdentityRotation() Rotation {
	return Rotation{quat.Number{Real: 1}}
}

// NewRotation returns the rotation by angle radians about axis, which must
// not be zero.
func NewRotation(angle float64, axis r3.Vec) Rotation {
	return Rotation{quat.Number(r3.NewRotation(angle, axis))}
}

// RotationFromQuat returns the rotation described by q, which is normalized.
func RotationFromQuat(q quat.Number) (Rotation, error) {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Rotation{}, fmt.Errorf("%w: quaternion %v is not a rotation", ErrInvalidConstruction, q)
	}
	return Rotation{quat.Scale(1/n, q)}, nil
}

// RotationFromMatrix returns the rotation described by an orthonormal 3×3
// matrix, using Shepperd's method.
func RotationFromMatrix(m *r3.Mat) Rotation {
	m00, m01, m02 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m10, m11, m12 := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	m20, m21, m22 := m.At(2, 0), m.At(2, 1), m.At(2, 2)
	var q quat.Number
	switch tr := m00 + m11 + m22; {
	case tr > 0:
		s := 2 * math.Sqrt(tr+1)
		q = quat.Number{Real: s / 4, Imag: (m21 - m12) / s, Jmag: (m02 - m20) / s, Kmag: (m10 - m01) / s}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = quat.Number{Real: (m21 - m12) / s, Imag: s / 4, Jmag: (m01 + m10) / s, Kmag: (m02 + m20) / s}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = quat.Number{Real: (m02 - m20) / s, Imag: (m01 + m10) / s, Jmag: s / 4, Kmag: (m12 + m21) / s}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = quat.Number{Real: (m10 - m01) / s, Imag: (m02 + m20) / s, Jmag: (m12 + m21) / s, Kmag: s / 4}
	}
	return Rotation{quat.Scale(1/quat.Abs(q), q)}
}

// ExpRotation returns the rotation about v by |v| radians.
func ExpRotation(v r3.Vec) Rotation {
	return Rotation{quat.Exp(quat.Number{Imag: v.X / 2, Jmag: v.Y / 2, Kmag: v.Z / 2})}
}

func (r Rotation) Quat() quat.Number {
	return r.q
}

// Mul returns the rotation that applies o, then r.
func (r Rotation) Mul(o Rotation) Rotation {
	return Rotation{quat.Mul(r.q, o.q)}
}

func (r Rotation) Inverse() Rotation {
	return Rotation{quat.Conj(r.q)}
}

func (r Rotation) Rotate(v r3.Vec) r3.Vec {
	return r3.Rotation(r.q).Rotate(v)
}

// Log returns the rotation vector: the axis scaled by the angle, with the
// angle in [0, π].
func (r Rotation) Log() r3.Vec {
	q := r.q
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	l := quat.Log(q)
	return r3.Vec{X: 2 * l.Imag, Y: 2 * l.Jmag, Z: 2 * l.Kmag}
}

// Angle returns the rotation angle in [0, π].
func (r Rotation) Angle() float64 {
	return r3.Norm(r.Log())
}

// Matrix returns the rotation as an orthonormal matrix.
func (r Rotation) Matrix() *r3.Mat {
	w, x, y, z := r.q.Real, r.q.Imag, r.q.Jmag, r.q.Kmag
	return r3.NewMat([]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	})
}

// IsApprox reports whether two rotations are the same within tol, comparing
// quaternions up to sign.
func (r Rotation) IsApprox(o Rotation, tol float64) bool {
	near := func(a, b quat.Number) bool {
		return quat.Abs(quat.Sub(a, b)) <= tol
	}
	return near(r.q, o.q) || near(r.q, quat.Scale(-1, o.q))
}

func quatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}
