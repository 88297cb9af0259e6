package curves

import (
	"fmt"
	"slices"
)

var _ Curve[Point] = (*CubicHermite)(nil)

// Waypoint is a value the curve must pass through at a given time.
type Waypoint struct {
	Time  float64
	Value Point
}

// TangentWaypoint is a [Waypoint] with a prescribed first derivative.
type TangentWaypoint struct {
	Time    float64
	Value   Point
	Tangent Point
}

// hermiteTolerance is used to check C1 continuity between Hermite pieces.
// The pieces join exactly up to rounding.
const hermiteTolerance = 1e-6

// CubicHermite is a C1 spline that interpolates values and tangents. Each
// pair of consecutive waypoints is joined by the cubic matching both
// endpoint values and tangents.
type CubicHermite struct {
	points []TangentWaypoint
	curve  *Piecewise[Point]
}

// NewCubicHermite fits a cubic Hermite spline through at least two
// waypoints with strictly increasing times.
func NewCubicHermite(points []TangentWaypoint) (*CubicHermite, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 waypoints, got %d", ErrInvalidConstruction, len(points))
	}
	vals := make([]Point, 0, 2*len(points))
	for _, wp := range points {
		vals = append(vals, wp.Value, wp.Tangent)
	}
	if err := checkDims(vals); err != nil {
		return nil, err
	}
	curve := &Piecewise[Point]{opts: PiecewiseOptions{
		Tolerance:  hermiteTolerance,
		Continuity: C1,
	}}
	for i := range len(points) - 1 {
		a, b := points[i], points[i+1]
		if !(a.Time < b.Time) {
			return nil, fmt.Errorf("%w: waypoint times %g and %g are not increasing", ErrSingularSystem, a.Time, b.Time)
		}
		seg, err := NewPolynomialFromStates(
			State{Pos: a.Value, Vel: a.Tangent},
			State{Pos: b.Value, Vel: b.Tangent},
			a.Time, b.Time)
		if err != nil {
			return nil, err
		}
		if err := curve.Append(seg); err != nil {
			return nil, err
		}
	}
	return &CubicHermite{points: slices.Clone(points), curve: curve}, nil
}

func (h *CubicHermite) Eval(t float64) (Point, error) {
	return h.curve.Eval(t)
}

func (h *CubicHermite) Derivative(t float64, order int) (Point, error) {
	return h.curve.Derivative(t, order)
}

func (h *CubicHermite) Min() float64 { return h.curve.Min() }
func (h *CubicHermite) Max() float64 { return h.curve.Max() }
func (h *CubicHermite) Dim() int     { return h.curve.Dim() }

func (h *CubicHermite) Breakpoints() []float64 {
	return h.curve.Breakpoints()
}

// Piecewise returns a copy of the cubic pieces of the spline, as [Polynomial]
// segments.
func (h *CubicHermite) Piecewise() *Piecewise[Point] {
	return h.curve.Clone()
}

func (h *CubicHermite) Waypoints() []TangentWaypoint {
	return slices.Clone(h.points)
}
