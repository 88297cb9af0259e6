package curves

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a rigid transform: a rotation followed by a translation.
//
// Transforms compose like matrices, (A.Mul(B)).Apply(p) == A.Apply(B.Apply(p)).
type Transform struct {
	Rotation    Rotation
	Translation r3.Vec
}

func IdentityTransform() Transform {
	return Transform{Rotation: IdentityRotation()}
}

func NewTransform(r Rotation, v r3.Vec) Transform {
	return Transform{Rotation: r, Translation: v}
}

// Translate returns the transform that only translates by v.
func Translate(v r3.Vec) Transform {
	return Transform{Rotation: IdentityRotation(), Translation: v}
}

// TransformFromDualQuat returns the transform described by a unit dual
// quaternion r + ε(½ t r).
func TransformFromDualQuat(d dualquat.Number) (Transform, error) {
	n := quat.Abs(d.Real)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Transform{}, fmt.Errorf("%w: dual quaternion %v is not a rigid transform", ErrInvalidConstruction, d)
	}
	rq := quat.Scale(1/n, d.Real)
	dq := quat.Scale(1/n, d.Dual)
	t := quat.Scale(2, quat.Mul(dq, quat.Conj(rq)))
	return Transform{
		Rotation:    Rotation{rq},
		Translation: r3.Vec{X: t.Imag, Y: t.Jmag, Z: t.Kmag},
	}, nil
}

// DualQuat returns the transform as a unit dual quaternion.
func (tf Transform) DualQuat() dualquat.Number {
	r := tf.Rotation.q
	return dualquat.Number{
		Real: r,
		Dual: quat.Scale(0.5, quat.Mul(raise(tf.Translation), r)),
	}
}

func raise(v r3.Vec) quat.Number {
	return quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
}

// Mul returns the transform that applies o, then tf.
func (tf Transform) Mul(o Transform) Transform {
	out, err := TransformFromDualQuat(dualquat.Mul(tf.DualQuat(), o.DualQuat()))
	if err != nil {
		panic(err)
	}
	return out
}

// Invert returns the inverse transform.
func (tf Transform) Invert() Transform {
	inv := tf.Rotation.Inverse()
	return Transform{Rotation: inv, Translation: r3.Scale(-1, inv.Rotate(tf.Translation))}
}

// Apply transforms the point p.
func (tf Transform) Apply(p r3.Vec) r3.Vec {
	d := tf.DualQuat()
	pt := dualquat.Number{Real: quat.Number{Real: 1}, Dual: raise(p)}
	out := dualquat.Mul(dualquat.Mul(d, pt), dualquat.Conj(d))
	return r3.Vec{X: out.Dual.Imag, Y: out.Dual.Jmag, Z: out.Dual.Kmag}
}

// WithTranslation replaces the translation part of the transform.
func (tf Transform) WithTranslation(v r3.Vec) Transform {
	tf.Translation = v
	return tf
}

// Matrix returns the transform as a 4×4 homogeneous matrix.
func (tf Transform) Matrix() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	rot := tf.Rotation.Matrix()
	for i := range 3 {
		for j := range 3 {
			m.Set(i, j, rot.At(i, j))
		}
	}
	m.Set(0, 3, tf.Translation.X)
	m.Set(1, 3, tf.Translation.Y)
	m.Set(2, 3, tf.Translation.Z)
	m.Set(3, 3, 1)
	return m
}

func (tf Transform) IsApprox(o Transform, tol float64) bool {
	return tf.Rotation.IsApprox(o.Rotation, tol) &&
		r3.Norm(r3.Sub(tf.Translation, o.Translation)) <= tol
}
