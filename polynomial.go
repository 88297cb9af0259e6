package curves

import (
	"fmt"
	"slices"
)

var _ Curve[Point] = Polynomial{}

// Polynomial is a polynomial curve
//
//	p(t) = Σ aₖ (t - Min)ᵏ
//
// with vector coefficients aₖ, defined on [Min, Max].
type Polynomial struct {
	// ascending powers of t - tmin
	coeffs     []Point
	tmin, tmax float64
}

// NewPolynomial returns the polynomial with the given coefficients, in
// ascending powers of t - tmin.
func NewPolynomial(coeffs []Point, tmin, tmax float64) (Polynomial, error) {
	if len(coeffs) == 0 {
		return Polynomial{}, fmt.Errorf("%w: no coefficients", ErrInvalidConstruction)
	}
	if !(tmin <= tmax) {
		return Polynomial{}, fmt.Errorf("%w: domain [%g, %g]", ErrInvalidConstruction, tmin, tmax)
	}
	if err := checkDims(coeffs); err != nil {
		return Polynomial{}, err
	}
	return Polynomial{coeffs: clonePoints(coeffs), tmin: tmin, tmax: tmax}, nil
}

func clonePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, pt := range pts {
		out[i] = pt.Clone()
	}
	return out
}

func (p Polynomial) Min() float64 { return p.tmin }
func (p Polynomial) Max() float64 { return p.tmax }

func (p Polynomial) Dim() int {
	if len(p.coeffs) == 0 {
		return 0
	}
	return p.coeffs[0].Dim()
}

func (p Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// Coefficients returns a copy of the coefficients.
func (p Polynomial) Coefficients() []Point {
	return clonePoints(p.coeffs)
}

func (p Polynomial) Eval(t float64) (Point, error) {
	if err := checkDomain(p, t); err != nil {
		return nil, err
	}
	return p.eval(t - p.tmin), nil
}

// Horner's method
func (p Polynomial) eval(s float64) Point {
	n := len(p.coeffs) - 1
	out := p.coeffs[n].Clone()
	for i := n - 1; i >= 0; i-- {
		out = out.Scale(s).Add(p.coeffs[i])
	}
	return out
}

func (p Polynomial) Derivative(t float64, order int) (Point, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	if err := checkDomain(p, t); err != nil {
		return nil, err
	}
	return p.differentiate(order).eval(t - p.tmin), nil
}

// Differentiate returns the order-th derivative. Past the degree it is the
// zero polynomial of degree 0.
func (p Polynomial) Differentiate(order int) (Polynomial, error) {
	if err := checkOrder(order); err != nil {
		return Polynomial{}, err
	}
	return p.differentiate(order), nil
}

func (p Polynomial) differentiate(order int) Polynomial {
	coeffs := p.coeffs
	for range order {
		if len(coeffs) == 1 {
			coeffs = []Point{Zeros(p.Dim())}
			break
		}
		next := make([]Point, len(coeffs)-1)
		for k := 1; k < len(coeffs); k++ {
			next[k-1] = coeffs[k].Scale(float64(k))
		}
		coeffs = next
	}
	return Polynomial{coeffs: coeffs, tmin: p.tmin, tmax: p.tmax}
}

// Integrate returns the primitive that takes the value init at Min.
func (p Polynomial) Integrate(init Point) (Polynomial, error) {
	if init.Dim() != p.Dim() {
		return Polynomial{}, fmt.Errorf("%w: initial value has dimension %d, curve has %d", ErrDimensionMismatch, init.Dim(), p.Dim())
	}
	coeffs := make([]Point, len(p.coeffs)+1)
	coeffs[0] = init.Clone()
	for k, a := range p.coeffs {
		coeffs[k+1] = a.Scale(1 / float64(k+1))
	}
	return Polynomial{coeffs: coeffs, tmin: p.tmin, tmax: p.tmax}, nil
}

// State is a position with optional velocity and acceleration, used as a
// boundary condition.
type State struct {
	Pos Point
	Vel Point
	Acc Point
}

// NewPolynomialFromStates returns the lowest degree polynomial on
// [tmin, tmax] that starts in state start and ends in state end. With
// positions only the result is linear; if both states have velocities it is
// cubic, and if both also have accelerations it is quintic.
func NewPolynomialFromStates(start, end State, tmin, tmax float64) (Polynomial, error) {
	if !(tmin < tmax) {
		return Polynomial{}, fmt.Errorf("%w: domain [%g, %g]", ErrInvalidConstruction, tmin, tmax)
	}
	vals := []Point{start.Pos, end.Pos}
	if start.Vel != nil && end.Vel != nil {
		vals = append(vals, start.Vel, end.Vel)
		if start.Acc != nil && end.Acc != nil {
			vals = append(vals, start.Acc, end.Acc)
		}
	}
	if err := checkDims(vals); err != nil {
		return Polynomial{}, err
	}
	p0, p1 := start.Pos, end.Pos
	dt := tmax - tmin
	dp := p1.Sub(p0)
	var coeffs []Point
	switch len(vals) {
	case 2:
		coeffs = []Point{p0.Clone(), dp.Scale(1 / dt)}
	case 4:
		v0, v1 := start.Vel, end.Vel
		a2 := dp.Scale(3).Sub(v0.Scale(2 * dt)).Sub(v1.Scale(dt)).Scale(1 / (dt * dt))
		a3 := dp.Scale(-2).Add(v0.Add(v1).Scale(dt)).Scale(1 / (dt * dt * dt))
		coeffs = []Point{p0.Clone(), v0.Clone(), a2, a3}
	case 6:
		v0, v1 := start.Vel, end.Vel
		acc0, acc1 := start.Acc, end.Acc
		dt2 := dt * dt
		a3 := dp.Scale(20).
			Sub(v1.Scale(8 * dt)).Sub(v0.Scale(12 * dt)).
			Sub(acc0.Scale(3 * dt2)).Add(acc1.Scale(dt2)).
			Scale(1 / (2 * dt2 * dt))
		a4 := dp.Scale(-30).
			Add(v1.Scale(14 * dt)).Add(v0.Scale(16 * dt)).
			Add(acc0.Scale(3 * dt2)).Sub(acc1.Scale(2 * dt2)).
			Scale(1 / (2 * dt2 * dt2))
		a5 := dp.Scale(12).
			Sub(v1.Add(v0).Scale(6 * dt)).
			Add(acc1.Sub(acc0).Scale(dt2)).
			Scale(1 / (2 * dt2 * dt2 * dt))
		coeffs = []Point{p0.Clone(), v0.Clone(), acc0.Scale(0.5), a3, a4, a5}
	}
	return Polynomial{coeffs: coeffs, tmin: tmin, tmax: tmax}, nil
}

// MinimumJerk returns the quintic from start to end with zero velocity and
// acceleration at both ends.
func MinimumJerk(start, end Point, tmin, tmax float64) (Polynomial, error) {
	zero := Zeros(start.Dim())
	return NewPolynomialFromStates(
		State{Pos: start, Vel: zero, Acc: zero},
		State{Pos: end, Vel: zero, Acc: zero},
		tmin, tmax)
}

// Extrema returns the times in the interior of the domain at which
// coordinate i of the curve has a vanishing derivative, in increasing order.
// Only polynomials up to degree 4 are supported.
func (p Polynomial) Extrema(i int) ([]float64, error) {
	if i < 0 || i >= p.Dim() {
		return nil, fmt.Errorf("%w: coordinate %d of a %d-dimensional curve", ErrDimensionMismatch, i, p.Dim())
	}
	if p.Degree() > 4 {
		return nil, fmt.Errorf("%w: extrema of a degree %d polynomial", ErrInvalidOrder, p.Degree())
	}
	var c [4]float64
	for k := 1; k < len(p.coeffs); k++ {
		c[k-1] = float64(k) * p.coeffs[k][i]
	}
	roots, n := SolveCubic(c[0], c[1], c[2], c[3])
	var out []float64
	for _, s := range roots[:n] {
		if s > 0 && s < p.tmax-p.tmin {
			out = append(out, p.tmin+s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// Bounds returns the smallest axis-aligned box containing the curve.
func (p Polynomial) Bounds() (lo, hi Point, err error) {
	lo = p.eval(0)
	hi = lo.Clone()
	end := p.eval(p.tmax - p.tmin)
	for i := range p.Dim() {
		ex, err := p.Extrema(i)
		if err != nil {
			return nil, nil, err
		}
		vals := []float64{end[i]}
		for _, t := range ex {
			vals = append(vals, p.eval(t - p.tmin)[i])
		}
		for _, v := range vals {
			lo[i] = min(lo[i], v)
			hi[i] = max(hi[i], v)
		}
	}
	return lo, hi, nil
}
