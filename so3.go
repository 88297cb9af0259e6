package curves

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// RotationCurve describes a curve of rotations. Derivatives are body
// angular velocities and their derivatives, as 3-vectors; there is no
// derivative of order 0.
type RotationCurve interface {
	Eval(t float64) (Rotation, error)
	Derivative(t float64, order int) (Point, error)
	Min() float64
	Max() float64
	Dim() int
}

var _ RotationCurve = SO3Linear{}

// SO3Linear interpolates between two rotations along the shortest arc, at
// constant angular velocity.
type SO3Linear struct {
	init, end  Rotation
	tmin, tmax float64
	// rotation vector from init to end
	delta  r3.Vec
	angVel r3.Vec
}

// NewSO3Linear returns the curve from init at tmin to end at tmax. When the
// quaternions of init and end point into opposite half spaces, end is
// negated so that the shorter arc is taken; exactly opposite rotations
// (180° apart) keep the quaternions as given.
func NewSO3Linear(init, end Rotation, tmin, tmax float64) (SO3Linear, error) {
	if !(tmin <= tmax) {
		return SO3Linear{}, fmt.Errorf("%w: domain [%g, %g]", ErrInvalidConstruction, tmin, tmax)
	}
	if quatDot(init.q, end.q) < 0 {
		end = Rotation{quat.Scale(-1, end.q)}
	}
	s := SO3Linear{init: init, end: end, tmin: tmin, tmax: tmax}
	s.delta = init.Inverse().Mul(end).Log()
	if tmax > tmin {
		s.angVel = r3.Scale(1/(tmax-tmin), s.delta)
	}
	return s, nil
}

func (s SO3Linear) Min() float64 { return s.tmin }
func (s SO3Linear) Max() float64 { return s.tmax }

// Dim returns 3, the dimension of the angular velocity.
func (s SO3Linear) Dim() int { return 3 }

func (s SO3Linear) Start() Rotation { return s.init }
func (s SO3Linear) End() Rotation   { return s.end }

// AngularVelocity returns the constant body angular velocity, zero on a
// degenerate domain.
func (s SO3Linear) AngularVelocity() r3.Vec {
	return s.angVel
}

func (s SO3Linear) Eval(t float64) (Rotation, error) {
	if err := checkDomain(s, t); err != nil {
		return Rotation{}, err
	}
	switch t {
	case s.tmin:
		return s.init, nil
	case s.tmax:
		return s.end, nil
	}
	u := (t - s.tmin) / (s.tmax - s.tmin)
	q := s.init.Mul(ExpRotation(r3.Scale(u, s.delta)))
	return Rotation{quat.Scale(1/quat.Abs(q.q), q.q)}, nil
}

// Derivative returns the angular velocity for order 1 and zero for higher
// orders.
func (s SO3Linear) Derivative(t float64, order int) (Point, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	if order == 0 {
		return nil, fmt.Errorf("%w: rotations have no derivative of order 0, use Eval", ErrInvalidOrder)
	}
	if err := checkDomain(s, t); err != nil {
		return nil, err
	}
	if order > 1 {
		return Zeros(3), nil
	}
	return PointFromVec3(s.angVel), nil
}
