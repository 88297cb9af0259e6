package curves

import (
	"fmt"
	"math"
)

// DefaultAccuracy is a default value for functions that take an accuracy
// argument, such as [Arclen].
const DefaultAccuracy = 1e-6

// DefaultTolerance is the tolerance used when comparing times and values for
// equality, for example when checking that a segment starts where a
// piecewise curve ends.
const DefaultTolerance = 1e-9

// ControlPoint describes the values a [Bezier] can be built from. Both
// numeric points ([Point]) and affine expressions over unknowns
// ([LinearVariable]) satisfy it, so every Bézier algorithm works unchanged
// on symbolic control points.
//
// Add and Sub may panic when the operands have different dimensions.
type ControlPoint[T any] interface {
	Add(T) T
	Sub(T) T
	Scale(float64) T
	Dim() int
	IsApprox(T, float64) bool
}

// Curve describes a function of time defined on the closed domain
// [Min, Max].
//
// Eval and Derivative fail with [ErrOutOfDomain] for times outside of the
// domain, and Derivative fails with [ErrInvalidOrder] for negative orders.
// Derivative(t, 0) is Eval(t) for curves whose values are vectors.
//
// The domain may be degenerate, with Min == Max.
type Curve[T any] interface {
	Eval(t float64) (T, error)
	Derivative(t float64, order int) (T, error)
	Min() float64
	Max() float64
	// Dim returns the dimension of the curve's values.
	Dim() int
}

type domain interface {
	Min() float64
	Max() float64
}

func checkDomain(c domain, t float64) error {
	if !(t >= c.Min() && t <= c.Max()) {
		return fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfDomain, t, c.Min(), c.Max())
	}
	return nil
}

func checkOrder(order int) error {
	if order < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	return nil
}

func checkDims[T ControlPoint[T]](pts []T) error {
	if len(pts) == 0 {
		return nil
	}
	dim := pts[0].Dim()
	for i, pt := range pts[1:] {
		if pt.Dim() != dim {
			return fmt.Errorf("%w: value %d has dimension %d, want %d", ErrDimensionMismatch, i+1, pt.Dim(), dim)
		}
	}
	return nil
}

// breakpointer is implemented by curves made of several pieces, so that
// quadrature never straddles a junction.
type breakpointer interface {
	Breakpoints() []float64
}

func quadratureIntervals(c Curve[Point]) []float64 {
	if bp, ok := c.(breakpointer); ok {
		return bp.Breakpoints()
	}
	return []float64{c.Min(), c.Max()}
}

// Arclen returns the length of the curve, accurate to roughly accuracy.
//
// Each piece is integrated with Gauss-Legendre quadrature and subdivided until
// the 16 and 24 point rules agree.
func Arclen(c Curve[Point], accuracy float64) (float64, error) {
	return arclenBetween(c, c.Min(), c.Max(), accuracy)
}

func arclenBetween(c Curve[Point], t0, t1 float64, accuracy float64) (float64, error) {
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	speed := func(t float64) (float64, error) {
		d, err := c.Derivative(t, 1)
		if err != nil {
			return 0, err
		}
		return d.Norm(), nil
	}
	var sum float64
	bps := quadratureIntervals(c)
	for i := range len(bps) - 1 {
		a, b := max(bps[i], t0), min(bps[i+1], t1)
		if b <= a {
			continue
		}
		v, err := adaptiveGauss(speed, a, b, accuracy, 0)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func adaptiveGauss(f func(float64) (float64, error), a, b, accuracy float64, depth int) (float64, error) {
	est16, err := gauss(f, gaussLegendreCoeffs16[:], a, b)
	if err != nil {
		return 0, err
	}
	est24, err := gaussHalf(f, gaussLegendreCoeffs24Half[:], a, b)
	if err != nil {
		return 0, err
	}
	if math.Abs(est24-est16) < accuracy || depth >= 20 {
		return est24, nil
	}
	mid := 0.5 * (a + b)
	l, err := adaptiveGauss(f, a, mid, accuracy*0.5, depth+1)
	if err != nil {
		return 0, err
	}
	r, err := adaptiveGauss(f, mid, b, accuracy*0.5, depth+1)
	if err != nil {
		return 0, err
	}
	return l + r, nil
}

func gauss(f func(float64) (float64, error), coeffs [][2]float64, a, b float64) (float64, error) {
	h := 0.5 * (b - a)
	m := 0.5 * (a + b)
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		v, err := f(m + h*xi)
		if err != nil {
			return 0, err
		}
		sum += wi * v
	}
	return sum * h, nil
}

// Like gauss, for tables that only list the non-negative abscissae.
func gaussHalf(f func(float64) (float64, error), coeffs [][2]float64, a, b float64) (float64, error) {
	h := 0.5 * (b - a)
	m := 0.5 * (a + b)
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		v1, err := f(m + h*xi)
		if err != nil {
			return 0, err
		}
		v2, err := f(m - h*xi)
		if err != nil {
			return 0, err
		}
		sum += wi * (v1 + v2)
	}
	return sum * h, nil
}

// TimeAtArclen returns the time at which the curve has travelled the given
// arc length from its start. Lengths outside of [0, Arclen] map to the ends
// of the domain.
//
// The arc length is inverted with [SolveITP], integrating only the stretch
// between successive guesses.
func TimeAtArclen(c Curve[Point], arclen, accuracy float64) (float64, error) {
	if arclen <= 0 {
		return c.Min(), nil
	}
	total, err := Arclen(c, accuracy)
	if err != nil {
		return 0, err
	}
	if arclen >= total {
		return c.Max(), nil
	}
	tLast := c.Min()
	arclenLast := 0.0
	span := c.Max() - c.Min()
	epsilon := accuracy / total * span
	n := 1.0 - min(math.Ceil(math.Log2(accuracy/total)), 0.0)
	innerAccuracy := accuracy / n
	var ferr error
	f := func(t float64) float64 {
		if ferr != nil {
			return 0
		}
		arc, err := arclenBetween(c, tLast, t, innerAccuracy)
		if err != nil {
			ferr = err
			return 0
		}
		if t < tLast {
			arc = -arc
		}
		arclenLast += arc
		tLast = t
		return arclenLast - arclen
	}
	t := SolveITP(f, c.Min(), c.Max(), epsilon, 1, 0.2/span, -arclen, total-arclen)
	if ferr != nil {
		return 0, ferr
	}
	return t, nil
}

// SquaredNormIntegral returns the integral over the domain of the squared
// norm of the order-th derivative, computed numerically with a 16 point
// Gauss-Legendre rule per piece. That is exact for polynomial pieces of
// degree up to 15.
func SquaredNormIntegral(c Curve[Point], order int) (float64, error) {
	if err := checkOrder(order); err != nil {
		return 0, err
	}
	f := func(t float64) (float64, error) {
		d, err := c.Derivative(t, order)
		if err != nil {
			return 0, err
		}
		return d.Dot(d), nil
	}
	var sum float64
	bps := quadratureIntervals(c)
	for i := range len(bps) - 1 {
		if bps[i+1] <= bps[i] {
			continue
		}
		v, err := gauss(f, gaussLegendreCoeffs16[:], bps[i], bps[i+1])
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

// Tables of Legendre-Gauss quadrature coefficients, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs16 = [...][2]float64{
	{0.1894506104550685, -0.0950125098376374},
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, -0.2816035507792589},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, -0.4580167776572274},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, -0.6178762444026438},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, -0.7554044083550030},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, -0.8656312023878318},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, -0.9445750230732326},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, -0.9894009349916499},
	{0.0271524594117541, 0.9894009349916499},
}

var gaussLegendreCoeffs24Half = [...][2]float64{
	{0.1279381953467522, 0.0640568928626056},
	{0.1258374563468283, 0.1911188674736163},
	{0.1216704729278034, 0.3150426796961634},
	{0.1155056680537256, 0.4337935076260451},
	{0.1074442701159656, 0.5454214713888396},
	{0.0976186521041139, 0.6480936519369755},
	{0.0861901615319533, 0.7401241915785544},
	{0.0733464814110803, 0.8200019859739029},
	{0.0592985849154368, 0.8864155270044011},
	{0.0442774388174198, 0.9382745520027328},
	{0.0285313886289337, 0.9747285559713095},
	{0.0123412297999872, 0.9951872199970213},
}
