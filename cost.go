package curves

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// IntegratedSquaredNorm returns the integral over the curve's domain of the
// squared norm of its order-th derivative, as a quadratic form in the
// unknowns of the control points. With order 2, for example, minimizing the
// result minimizes the curve's acceleration.
//
// If Q₀..Qₘ are the control points of the derivative and T the length of the
// domain, the integral is
//
//	T Σᵢ Σⱼ (Qᵢ·Qⱼ) C(m, i) C(m, j) / (C(2m, i+j) (2m+1))
//
// because the product of two Bernstein polynomials of degree m is a scaled
// Bernstein polynomial of degree 2m, and those integrate to 1/(2m+1).
func IntegratedSquaredNorm(b Bezier[LinearVariable], order int) (QuadraticVariable, error) {
	if err := checkOrder(order); err != nil {
		return QuadraticVariable{}, err
	}
	vars := 0
	for _, pt := range b.pts {
		vars = max(vars, pt.Vars())
	}
	d := b.differentiate(order)
	m := d.Degree()
	span := b.tmax - b.tmin
	q := ZeroQuadratic(vars)
	if span == 0 {
		return q, nil
	}
	for i := 0; i <= m; i++ {
		for j := 0; j <= m; j++ {
			w := span * binomial(m, i) * binomial(m, j) / (binomial(2*m, i+j) * float64(2*m+1))
			dot, err := d.pts[i].Dot(d.pts[j])
			if err != nil {
				return QuadraticVariable{}, fmt.Errorf("control points %d and %d: %w", i, j, err)
			}
			q = q.Add(dot.Scale(w))
		}
	}
	return q, nil
}

// PiecewiseIntegratedSquaredNorm is [IntegratedSquaredNorm] summed over the
// segments of a piecewise curve, which must all be Béziers.
func PiecewiseIntegratedSquaredNorm(pc *Piecewise[LinearVariable], order int) (QuadraticVariable, error) {
	var total QuadraticVariable
	for i, seg := range pc.All() {
		b, ok := seg.(Bezier[LinearVariable])
		if !ok {
			return QuadraticVariable{}, fmt.Errorf("%w: segment %d is a %T, not a Bézier curve", ErrInvalidConstruction, i, seg)
		}
		q, err := IntegratedSquaredNorm(b, order)
		if err != nil {
			return QuadraticVariable{}, fmt.Errorf("segment %d: %w", i, err)
		}
		if total.Vars() != 0 && q.Vars() != 0 && total.Vars() != q.Vars() {
			return QuadraticVariable{}, fmt.Errorf("%w: segment %d has %d unknowns, want %d", ErrDimensionMismatch, i, q.Vars(), total.Vars())
		}
		total = total.Add(q)
	}
	return total, nil
}

// ExtractCost returns the matrices of xᵀAx + bᵀx + c. This triple is all an
// external quadratic program solver needs.
func ExtractCost(q QuadraticVariable) (a *mat.SymDense, b *mat.VecDense, c float64) {
	return q.Cost()
}
