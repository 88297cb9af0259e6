package curves

import (
	"fmt"
	"math"
)

// BezierToPolynomial returns the polynomial form of a Bézier curve, with
// coefficients in powers of t - Min.
func BezierToPolynomial(b Bezier[Point]) Polynomial {
	n := b.Degree()
	span := b.tmax - b.tmin
	if span == 0 {
		coeffs := []Point{b.pts[0].Clone()}
		for range n {
			coeffs = append(coeffs, Zeros(b.Dim()))
		}
		return Polynomial{coeffs: coeffs, tmin: b.tmin, tmax: b.tmax}
	}
	coeffs := make([]Point, n+1)
	for k := range coeffs {
		// aₖ = C(n, k) Σᵢ (-1)^(k-i) C(k, i) Pᵢ, in powers of u
		sum := Zeros(b.Dim())
		for i := 0; i <= k; i++ {
			f := binomial(k, i)
			if (k-i)%2 == 1 {
				f = -f
			}
			sum = sum.Add(b.pts[i].Scale(f))
		}
		coeffs[k] = sum.Scale(binomial(n, k) / math.Pow(span, float64(k)))
	}
	return Polynomial{coeffs: coeffs, tmin: b.tmin, tmax: b.tmax}
}

// PolynomialToBezier returns the Bézier form of a polynomial, of the same
// degree and domain.
func PolynomialToBezier(p Polynomial) Bezier[Point] {
	n := p.Degree()
	span := p.tmax - p.tmin
	// coefficients in powers of u = (t - Min) / span
	a := make([]Point, n+1)
	for k, c := range p.coeffs {
		a[k] = c.Scale(math.Pow(span, float64(k)))
	}
	pts := make([]Point, n+1)
	for i := range pts {
		// Pᵢ = Σₖ C(i, k) / C(n, k) aₖ
		sum := Zeros(p.Dim())
		for k := 0; k <= i; k++ {
			sum = sum.Add(a[k].Scale(binomial(i, k) / binomial(n, k)))
		}
		pts[i] = sum
	}
	return Bezier[Point]{pts: pts, tmin: p.tmin, tmax: p.tmax}
}

// HermiteToBezier returns the cubic Bézier on [tmin, tmax] that starts at p0
// with velocity v0 and ends at p1 with velocity v1.
func HermiteToBezier(p0, v0, p1, v1 Point, tmin, tmax float64) (Bezier[Point], error) {
	scale := (tmax - tmin) / 3
	return NewBezier([]Point{
		p0,
		p0.Add(v0.Scale(scale)),
		p1.Sub(v1.Scale(scale)),
		p1,
	}, tmin, tmax)
}

// PiecewiseToBezier converts every segment of a piecewise curve to Bézier
// form. Segments must be [Bezier] or [Polynomial] curves.
func PiecewiseToBezier(pc *Piecewise[Point]) (*Piecewise[Point], error) {
	return convertSegments(pc, func(seg Curve[Point]) (Curve[Point], error) {
		switch seg := seg.(type) {
		case Bezier[Point]:
			return seg, nil
		case Polynomial:
			return PolynomialToBezier(seg), nil
		default:
			return nil, fmt.Errorf("%w: cannot convert %T to a Bézier curve", ErrInvalidConstruction, seg)
		}
	})
}

// PiecewiseToPolynomial converts every segment of a piecewise curve to
// polynomial form. Segments must be [Bezier] or [Polynomial] curves.
func PiecewiseToPolynomial(pc *Piecewise[Point]) (*Piecewise[Point], error) {
	return convertSegments(pc, func(seg Curve[Point]) (Curve[Point], error) {
		switch seg := seg.(type) {
		case Bezier[Point]:
			return BezierToPolynomial(seg), nil
		case Polynomial:
			return seg, nil
		default:
			return nil, fmt.Errorf("%w: cannot convert %T to a polynomial", ErrInvalidConstruction, seg)
		}
	})
}

func convertSegments(pc *Piecewise[Point], fn func(Curve[Point]) (Curve[Point], error)) (*Piecewise[Point], error) {
	out := &Piecewise[Point]{opts: pc.opts}
	for i, seg := range pc.All() {
		conv, err := fn(seg)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if err := out.Append(conv); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return out, nil
}

// PiecewiseFromStates returns the piecewise polynomial passing through the
// given states at the given times. Each piece has the lowest degree that
// matches the derivatives supplied at both of its ends, see
// [NewPolynomialFromStates].
func PiecewiseFromStates(states []State, times []float64) (*Piecewise[Point], error) {
	if len(states) != len(times) {
		return nil, fmt.Errorf("%w: %d states and %d times", ErrInvalidConstruction, len(states), len(times))
	}
	if len(states) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 states, got %d", ErrInvalidConstruction, len(states))
	}
	out := &Piecewise[Point]{opts: DefaultPiecewiseOptions}
	for i := range len(states) - 1 {
		if !(times[i] < times[i+1]) {
			return nil, fmt.Errorf("%w: times %g and %g are not increasing", ErrInvalidConstruction, times[i], times[i+1])
		}
		seg, err := NewPolynomialFromStates(states[i], states[i+1], times[i], times[i+1])
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if err := out.Append(seg); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return out, nil
}
