package curves

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var _ Curve[Point] = Bezier[Point]{}
var _ Curve[LinearVariable] = Bezier[LinearVariable]{}

// Bezier is a Bézier curve of arbitrary degree over the domain [Min, Max].
// The degree is one less than the number of control points.
//
// Control points are either numeric ([Point]) or symbolic
// ([LinearVariable]); every operation works the same on both.
//
// Bezier is immutable. The control points passed to [NewBezier] must not be
// modified afterwards.
type Bezier[T ControlPoint[T]] struct {
	pts        []T
	tmin, tmax float64
}

// NewBezier returns the Bézier curve with the given control points, defined
// on [tmin, tmax].
func NewBezier[T ControlPoint[T]](pts []T, tmin, tmax float64) (Bezier[T], error) {
	if len(pts) == 0 {
		return Bezier[T]{}, fmt.Errorf("%w: no control points", ErrInvalidConstruction)
	}
	if !(tmin <= tmax) {
		return Bezier[T]{}, fmt.Errorf("%w: domain [%g, %g]", ErrInvalidConstruction, tmin, tmax)
	}
	if err := checkDims(pts); err != nil {
		return Bezier[T]{}, err
	}
	if err := checkVars(pts); err != nil {
		return Bezier[T]{}, err
	}
	return Bezier[T]{pts: slices.Clone(pts), tmin: tmin, tmax: tmax}, nil
}

// NewUnitBezier is like [NewBezier] with the domain [0, 1].
func NewUnitBezier[T ControlPoint[T]](pts []T) (Bezier[T], error) {
	return NewBezier(pts, 0, 1)
}

// Symbolic control points must agree on the number of unknowns, or
// arithmetic on them panics later.
func checkVars[T any](pts []T) error {
	vars := -1
	for i, pt := range pts {
		v, ok := any(pt).(interface{ Vars() int })
		if !ok {
			return nil
		}
		n := v.Vars()
		if n == 0 {
			continue
		}
		if vars >= 0 && n != vars {
			return fmt.Errorf("%w: control point %d has %d unknowns, want %d", ErrDimensionMismatch, i, n, vars)
		}
		vars = n
	}
	return nil
}

func (b Bezier[T]) Min() float64 { return b.tmin }
func (b Bezier[T]) Max() float64 { return b.tmax }

func (b Bezier[T]) Dim() int {
	if len(b.pts) == 0 {
		return 0
	}
	return b.pts[0].Dim()
}

func (b Bezier[T]) Degree() int {
	return len(b.pts) - 1
}

// ControlPoints returns a copy of the control points.
func (b Bezier[T]) ControlPoints() []T {
	return slices.Clone(b.pts)
}

func (b Bezier[T]) Start() T {
	return b.pts[0]
}

func (b Bezier[T]) End() T {
	return b.pts[len(b.pts)-1]
}

// param maps t to [0, 1]. Degenerate domains map to 0.
func (b Bezier[T]) param(t float64) float64 {
	if b.tmax == b.tmin {
		return 0
	}
	return (t - b.tmin) / (b.tmax - b.tmin)
}

func (b Bezier[T]) Eval(t float64) (T, error) {
	if err := checkDomain(b, t); err != nil {
		return *new(T), err
	}
	return b.eval(b.param(t)), nil
}

func (b Bezier[T]) eval(u float64) T {
	n := len(b.pts) - 1
	// The ends are returned exactly.
	switch u {
	case 0:
		return b.pts[0].Scale(1)
	case 1:
		return b.pts[n].Scale(1)
	}
	out := b.pts[0].Scale(basisFunction(n, 0, u))
	for i := 1; i <= n; i++ {
		out = out.Add(b.pts[i].Scale(basisFunction(n, i, u)))
	}
	return out
}

func (b Bezier[T]) Derivative(t float64, order int) (T, error) {
	if err := checkOrder(order); err != nil {
		return *new(T), err
	}
	if err := checkDomain(b, t); err != nil {
		return *new(T), err
	}
	return b.differentiate(order).eval(b.param(t)), nil
}

// Differentiate returns the order-th derivative as a Bézier curve on the
// same domain, with control points n (P[k+1] - P[k]) / (Max - Min).
//
// Every differentiation lowers the degree by one, down to a zero curve of
// degree 0. On a degenerate domain the derivative is zero.
func (b Bezier[T]) Differentiate(order int) (Bezier[T], error) {
	if err := checkOrder(order); err != nil {
		return Bezier[T]{}, err
	}
	return b.differentiate(order), nil
}

func (b Bezier[T]) differentiate(order int) Bezier[T] {
	pts := b.pts
	span := b.tmax - b.tmin
	for range order {
		n := len(pts) - 1
		if n == 0 {
			pts = []T{pts[0].Sub(pts[0])}
			continue
		}
		next := make([]T, n)
		for k := range n {
			if span == 0 {
				next[k] = pts[k].Sub(pts[k])
			} else {
				next[k] = pts[k+1].Sub(pts[k]).Scale(float64(n) / span)
			}
		}
		pts = next
	}
	return Bezier[T]{pts: pts, tmin: b.tmin, tmax: b.tmax}
}

// Integrate returns the primitive of the curve that takes the value init at
// Min. The result has one degree more.
func (b Bezier[T]) Integrate(init T) (Bezier[T], error) {
	if init.Dim() != b.Dim() {
		return Bezier[T]{}, fmt.Errorf("%w: initial value has dimension %d, curve has %d", ErrDimensionMismatch, init.Dim(), b.Dim())
	}
	n := len(b.pts)
	step := (b.tmax - b.tmin) / float64(n)
	pts := make([]T, n+1)
	pts[0] = init
	for i, p := range b.pts {
		pts[i+1] = pts[i].Add(p.Scale(step))
	}
	return Bezier[T]{pts: pts, tmin: b.tmin, tmax: b.tmax}, nil
}

// ElevateDegree returns the same curve expressed with by more control points.
func (b Bezier[T]) ElevateDegree(by int) (Bezier[T], error) {
	if by < 0 {
		return Bezier[T]{}, fmt.Errorf("%w: cannot elevate degree by %d", ErrInvalidConstruction, by)
	}
	pts := b.pts
	for range by {
		n := len(pts) - 1
		next := make([]T, n+2)
		next[0] = pts[0]
		next[n+1] = pts[n]
		for i := 1; i <= n; i++ {
			a := float64(i) / float64(n+1)
			next[i] = pts[i-1].Scale(a).Add(pts[i].Scale(1 - a))
		}
		pts = next
	}
	out := Bezier[T]{pts: pts, tmin: b.tmin, tmax: b.tmax}
	if err := checkEndpoints(b, out); err != nil {
		return Bezier[T]{}, err
	}
	return out, nil
}

// ReduceDegree returns a curve of one degree less that keeps both end
// points. It blends the forward and backward inversions of degree
// elevation, so it is exact when the curve is an elevated lower degree
// curve, and an approximation otherwise.
func (b Bezier[T]) ReduceDegree() (Bezier[T], error) {
	n := len(b.pts) - 1
	if n < 1 {
		return Bezier[T]{}, fmt.Errorf("%w: cannot reduce a curve of degree %d", ErrInvalidConstruction, n)
	}
	m := n - 1
	fwd := make([]T, m+1)
	bwd := make([]T, m+1)
	fwd[0] = b.pts[0]
	for i := 1; i <= m; i++ {
		fwd[i] = b.pts[i].Scale(float64(n)).Sub(fwd[i-1].Scale(float64(i))).Scale(1 / float64(n-i))
	}
	bwd[m] = b.pts[n]
	for i := m; i >= 1; i-- {
		bwd[i-1] = b.pts[i].Scale(float64(n)).Sub(bwd[i].Scale(float64(n - i))).Scale(1 / float64(i))
	}
	pts := make([]T, m+1)
	for i := range pts {
		var lambda float64
		if m > 0 {
			lambda = float64(i) / float64(m)
		}
		pts[i] = fwd[i].Scale(1 - lambda).Add(bwd[i].Scale(lambda))
	}
	out := Bezier[T]{pts: pts, tmin: b.tmin, tmax: b.tmax}
	if err := checkEndpoints(b, out); err != nil {
		return Bezier[T]{}, err
	}
	return out, nil
}

func checkEndpoints[T ControlPoint[T]](want, got Bezier[T]) error {
	if !want.Start().IsApprox(got.Start(), DefaultTolerance) || !want.End().IsApprox(got.End(), DefaultTolerance) {
		return fmt.Errorf("%w: end points not preserved", ErrInvalidConstruction)
	}
	return nil
}

// Split splits the curve at t using de Casteljau's algorithm. The halves
// cover [Min, t] and [t, Max].
func (b Bezier[T]) Split(t float64) (Bezier[T], Bezier[T], error) {
	if err := checkDomain(b, t); err != nil {
		return Bezier[T]{}, Bezier[T]{}, err
	}
	u := b.param(t)
	n := len(b.pts)
	left := make([]T, n)
	right := make([]T, n)
	level := slices.Clone(b.pts)
	for k := range n {
		left[k] = level[0]
		right[n-1-k] = level[len(level)-1]
		next := make([]T, len(level)-1)
		for i := range next {
			next[i] = level[i].Scale(1 - u).Add(level[i+1].Scale(u))
		}
		level = next
	}
	return Bezier[T]{pts: left, tmin: b.tmin, tmax: t},
		Bezier[T]{pts: right, tmin: t, tmax: b.tmax},
		nil
}

// Subsegment returns the part of the curve on [t0, t1], keeping the original
// times.
func (b Bezier[T]) Subsegment(t0, t1 float64) (Bezier[T], error) {
	if t1 < t0 {
		return Bezier[T]{}, fmt.Errorf("%w: subsegment [%g, %g]", ErrInvalidConstruction, t0, t1)
	}
	if err := checkDomain(b, t0); err != nil {
		return Bezier[T]{}, err
	}
	left, _, err := b.Split(t1)
	if err != nil {
		return Bezier[T]{}, err
	}
	_, mid, err := left.Split(t0)
	return mid, err
}

// Shift returns the curve translated in time by dt.
func (b Bezier[T]) Shift(dt float64) Bezier[T] {
	return Bezier[T]{pts: b.pts, tmin: b.tmin + dt, tmax: b.tmax + dt}
}

// Waypoints pairs every control point with a time, spacing the times
// uniformly over the domain.
func (b Bezier[T]) Waypoints() ([]float64, []T) {
	times := []float64{b.tmin}
	if len(b.pts) > 1 {
		times = floats.Span(make([]float64, len(b.pts)), b.tmin, b.tmax)
	}
	return times, b.ControlPoints()
}

// ConcatBezier joins two Béziers of the same degree into a piecewise curve.
// b is shifted in time to start where a ends, and must start at a's end
// point.
func ConcatBezier[T ControlPoint[T]](a, b Bezier[T]) (*Piecewise[T], error) {
	if a.Degree() != b.Degree() {
		return nil, fmt.Errorf("%w: %d and %d", ErrDegreeMismatch, a.Degree(), b.Degree())
	}
	if a.Dim() != b.Dim() {
		return nil, fmt.Errorf("%w: %d and %d", ErrDimensionMismatch, a.Dim(), b.Dim())
	}
	if !a.End().IsApprox(b.Start(), DefaultTolerance) {
		return nil, fmt.Errorf("%w: second curve does not start at the end of the first", ErrDiscontinuous)
	}
	return NewPiecewise(DefaultPiecewiseOptions, Curve[T](a), Curve[T](b.Shift(a.Max()-b.Min())))
}

// NewLinearBezier returns a Bézier whose i-th control point is the
// expression matrices[i]·x + vectors[i]. A nil matrix makes a constant
// control point.
func NewLinearBezier(matrices []*mat.Dense, vectors []Point, tmin, tmax float64) (Bezier[LinearVariable], error) {
	if len(matrices) != len(vectors) {
		return Bezier[LinearVariable]{}, fmt.Errorf("%w: %d matrices and %d vectors", ErrInvalidConstruction, len(matrices), len(vectors))
	}
	pts := make([]LinearVariable, len(matrices))
	for i := range matrices {
		lv, err := NewLinearVariable(matrices[i], vectors[i])
		if err != nil {
			return Bezier[LinearVariable]{}, fmt.Errorf("control point %d: %w", i, err)
		}
		pts[i] = lv
	}
	return NewBezier(pts, tmin, tmax)
}

// InstantiateBezier substitutes x for the unknowns of every control point.
func InstantiateBezier(b Bezier[LinearVariable], x []float64) (Bezier[Point], error) {
	pts := make([]Point, len(b.pts))
	for i, lv := range b.pts {
		p, err := lv.Eval(x)
		if err != nil {
			return Bezier[Point]{}, fmt.Errorf("control point %d: %w", i, err)
		}
		pts[i] = p
	}
	return Bezier[Point]{pts: pts, tmin: b.tmin, tmax: b.tmax}, nil
}
