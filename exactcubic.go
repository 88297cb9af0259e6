package curves

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

var _ Curve[Point] = (*ExactCubic)(nil)

// Boundary selects the end conditions of an [ExactCubic].
type Boundary int

const (
	// Natural splines have zero second derivative at both ends.
	Natural Boundary = iota
	// Clamped splines have prescribed first derivatives at both ends.
	Clamped
	// Periodic splines end in the state they start in, up to the second
	// derivative. The first and last waypoint must have the same value.
	Periodic
)

func (b Boundary) String() string {
	switch b {
	case Natural:
		return "natural"
	case Clamped:
		return "clamped"
	case Periodic:
		return "periodic"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// SplineConstraints are the end conditions of an [ExactCubic].
type SplineConstraints struct {
	Boundary Boundary
	// First derivatives at the ends, used by Clamped.
	InitVel Point
	EndVel  Point
}

// ExactCubic is a C2 cubic spline that passes exactly through its
// waypoints.
type ExactCubic struct {
	points []Waypoint
	cons   SplineConstraints
	curve  *Piecewise[Point]
}

// NewExactCubic fits a C2 cubic spline through at least two waypoints with
// strictly increasing times. It solves for the second derivative Mᵢ at
// every waypoint.
func NewExactCubic(points []Waypoint, cons SplineConstraints) (*ExactCubic, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 waypoints, got %d", ErrInvalidConstruction, len(points))
	}
	vals := make([]Point, len(points))
	for i, wp := range points {
		vals[i] = wp.Value
	}
	if cons.Boundary == Clamped {
		vals = append(vals, cons.InitVel, cons.EndVel)
	}
	if err := checkDims(vals); err != nil {
		return nil, err
	}
	if points[0].Value.Dim() == 0 {
		return nil, fmt.Errorf("%w: zero-dimensional waypoints", ErrInvalidConstruction)
	}
	n := len(points) - 1
	h := make([]float64, n)
	for i := range n {
		h[i] = points[i+1].Time - points[i].Time
		if !(h[i] > 0) {
			return nil, fmt.Errorf("%w: waypoint times %g and %g are not increasing", ErrSingularSystem, points[i].Time, points[i+1].Time)
		}
	}

	var m *mat.Dense
	var err error
	switch cons.Boundary {
	case Natural, Clamped:
		m, err = solveTridiagonal(points, h, cons)
	case Periodic:
		m, err = solvePeriodic(points, h)
	default:
		err = fmt.Errorf("%w: unknown boundary condition %v", ErrInvalidConstruction, cons.Boundary)
	}
	if err != nil {
		return nil, err
	}

	curve := &Piecewise[Point]{opts: DefaultPiecewiseOptions}
	for i := range n {
		y0, y1 := points[i].Value, points[i+1].Value
		m0, m1 := Point(m.RawRowView(i)), Point(m.RawRowView(i+1))
		b := y1.Sub(y0).Scale(1 / h[i]).Sub(m0.Scale(2).Add(m1).Scale(h[i] / 6))
		c := m0.Scale(0.5)
		d := m1.Sub(m0).Scale(1 / (6 * h[i]))
		seg := Polynomial{
			coeffs: []Point{y0.Clone(), b, c, d},
			tmin:   points[i].Time,
			tmax:   points[i+1].Time,
		}
		if err := curve.Append(seg); err != nil {
			return nil, err
		}
	}
	return &ExactCubic{points: slices.Clone(points), cons: cons, curve: curve}, nil
}

// slope returns (y[i+1] - y[i]) / h[i].
func slope(points []Waypoint, h []float64, i int) Point {
	return points[i+1].Value.Sub(points[i].Value).Scale(1 / h[i])
}

// solveTridiagonal solves for the n+1 second derivatives of natural and
// clamped splines. Rows of the result are the Mᵢ.
func solveTridiagonal(points []Waypoint, h []float64, cons SplineConstraints) (*mat.Dense, error) {
	n := len(h)
	dim := points[0].Value.Dim()
	dl := make([]float64, n)
	d := make([]float64, n+1)
	du := make([]float64, n)
	rhs := mat.NewDense(n+1, dim, nil)
	for i := 1; i < n; i++ {
		dl[i-1] = h[i-1]
		d[i] = 2 * (h[i-1] + h[i])
		du[i] = h[i]
		rhs.SetRow(i, slope(points, h, i).Sub(slope(points, h, i-1)).Scale(6))
	}
	switch cons.Boundary {
	case Natural:
		d[0], d[n] = 1, 1
	case Clamped:
		d[0], du[0] = 2*h[0], h[0]
		rhs.SetRow(0, slope(points, h, 0).Sub(cons.InitVel).Scale(6))
		dl[n-1], d[n] = h[n-1], 2*h[n-1]
		rhs.SetRow(n, cons.EndVel.Sub(slope(points, h, n-1)).Scale(6))
	}
	var m mat.Dense
	if err := mat.NewTridiag(n+1, dl, d, du).SolveTo(&m, false, rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	return &m, nil
}

// solvePeriodic solves the cyclic system of periodic splines, where
// M[n] = M[0]. The system is no longer tridiagonal, so it is solved densely.
func solvePeriodic(points []Waypoint, h []float64) (*mat.Dense, error) {
	n := len(h)
	first, last := points[0].Value, points[n].Value
	if !first.IsApprox(last, DefaultTolerance) {
		return nil, fmt.Errorf("%w: periodic spline starts at %v and ends at %v", ErrInvalidConstruction, first, last)
	}
	dim := first.Dim()
	a := mat.NewDense(n, n, nil)
	rhs := mat.NewDense(n, dim, nil)
	add := func(i, j int, v float64) {
		a.Set(i, j, a.At(i, j)+v)
	}
	for i := range n {
		prev := (i - 1 + n) % n
		add(i, prev, h[prev])
		add(i, i, 2*(h[prev]+h[i]))
		add(i, (i+1)%n, h[i])
		rhs.SetRow(i, slope(points, h, i).Sub(slope(points, h, prev)).Scale(6))
	}
	var sol mat.Dense
	if err := sol.Solve(a, rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	m := mat.NewDense(n+1, dim, nil)
	m.Slice(0, n, 0, dim).(*mat.Dense).Copy(&sol)
	m.SetRow(n, sol.RawRowView(0))
	return m, nil
}

func (e *ExactCubic) Eval(t float64) (Point, error) {
	return e.curve.Eval(t)
}

func (e *ExactCubic) Derivative(t float64, order int) (Point, error) {
	return e.curve.Derivative(t, order)
}

func (e *ExactCubic) Min() float64 { return e.curve.Min() }
func (e *ExactCubic) Max() float64 { return e.curve.Max() }
func (e *ExactCubic) Dim() int     { return e.curve.Dim() }

func (e *ExactCubic) Breakpoints() []float64 {
	return e.curve.Breakpoints()
}

// Piecewise returns a copy of the cubic pieces of the spline, as [Polynomial]
// segments.
func (e *ExactCubic) Piecewise() *Piecewise[Point] {
	return e.curve.Clone()
}

func (e *ExactCubic) Waypoints() []Waypoint {
	return slices.Clone(e.points)
}

func (e *ExactCubic) Constraints() SplineConstraints {
	return e.cons
}
