package curves

import (
	"fmt"
	"math"
)

// SE3Curve is a curve of rigid transforms made of a translation curve of
// dimension 3 and a rotation curve over the same domain.
type SE3Curve struct {
	translation Curve[Point]
	rotation    RotationCurve
}

// NewSE3Curve pairs a translation curve with a rotation curve.
func NewSE3Curve(translation Curve[Point], rotation RotationCurve) (*SE3Curve, error) {
	if translation.Dim() != 3 {
		return nil, fmt.Errorf("%w: translation curve has dimension %d, want 3", ErrDimensionMismatch, translation.Dim())
	}
	if math.Abs(translation.Min()-rotation.Min()) > DefaultTolerance ||
		math.Abs(translation.Max()-rotation.Max()) > DefaultTolerance {
		return nil, fmt.Errorf("%w: translation on [%g, %g], rotation on [%g, %g]",
			ErrDomainMismatch, translation.Min(), translation.Max(), rotation.Min(), rotation.Max())
	}
	return &SE3Curve{translation: translation, rotation: rotation}, nil
}

// NewSE3Linear returns the curve from init to end, with a linear translation
// and an [SO3Linear] rotation.
func NewSE3Linear(init, end Transform, tmin, tmax float64) (*SE3Curve, error) {
	translation, err := NewBezier([]Point{
		PointFromVec3(init.Translation),
		PointFromVec3(end.Translation),
	}, tmin, tmax)
	if err != nil {
		return nil, err
	}
	rotation, err := NewSO3Linear(init.Rotation, end.Rotation, tmin, tmax)
	if err != nil {
		return nil, err
	}
	return NewSE3Curve(translation, rotation)
}

func (c *SE3Curve) Min() float64 { return c.translation.Min() }
func (c *SE3Curve) Max() float64 { return c.translation.Max() }

// Dim returns 6, the dimension of the derivatives.
func (c *SE3Curve) Dim() int { return 6 }

func (c *SE3Curve) Translation() Curve[Point] { return c.translation }
func (c *SE3Curve) Rotation() RotationCurve   { return c.rotation }

func (c *SE3Curve) Eval(t float64) (Transform, error) {
	if err := checkDomain(c, t); err != nil {
		return Transform{}, err
	}
	p, err := c.translation.Eval(t)
	if err != nil {
		return Transform{}, err
	}
	r, err := c.rotation.Eval(min(max(t, c.rotation.Min()), c.rotation.Max()))
	if err != nil {
		return Transform{}, err
	}
	return Transform{Rotation: r, Translation: p.Vec3()}, nil
}

// Derivative returns the 6-vector made of the translation's derivative
// followed by the rotation's derivative. There is no derivative of order 0.
func (c *SE3Curve) Derivative(t float64, order int) (Point, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	if order == 0 {
		return nil, fmt.Errorf("%w: transforms have no derivative of order 0, use Eval", ErrInvalidOrder)
	}
	if err := checkDomain(c, t); err != nil {
		return nil, err
	}
	lin, err := c.translation.Derivative(t, order)
	if err != nil {
		return nil, err
	}
	ang, err := c.rotation.Derivative(min(max(t, c.rotation.Min()), c.rotation.Max()), order)
	if err != nil {
		return nil, err
	}
	return append(lin.Clone(), ang...), nil
}
