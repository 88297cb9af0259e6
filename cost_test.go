package curves

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestIntegratedSquaredNormLinear(t *testing.T) {
	// x(t) goes from x0 to x1 over [0, 2], so ∫ẋ² = (x1 - x0)² / 2
	x0 := must[LinearVariable](t)(Selection(1, 2, 0))
	x1 := must[LinearVariable](t)(Selection(1, 2, 1))
	b := must[Bezier[LinearVariable]](t)(NewBezier([]LinearVariable{x0, x1}, 0, 2))
	q := must[QuadraticVariable](t)(IntegratedSquaredNorm(b, 1))
	diff(t, 4.5, must[float64](t)(q.Eval([]float64{1, 4})), approx(1e-12))

	a, lin, c := ExtractCost(q)
	want := mat.NewSymDense(2, []float64{0.5, -0.5, -0.5, 0.5})
	if !mat.EqualApprox(a, want, 1e-12) {
		t.Errorf("A = %v, want %v", mat.Formatted(a), mat.Formatted(want))
	}
	if !mat.EqualApprox(lin, mat.NewVecDense(2, nil), 1e-12) {
		t.Errorf("b = %v, want zero", mat.Formatted(lin))
	}
	diff(t, 0.0, c)
}

func TestIntegratedSquaredNormMatchesQuadrature(t *testing.T) {
	p1 := must[LinearVariable](t)(Selection(2, 4, 0))
	p2 := must[LinearVariable](t)(Selection(2, 4, 2))
	b := must[Bezier[LinearVariable]](t)(NewBezier([]LinearVariable{
		Constant(Pt(0, 1)), p1, p2, Constant(Pt(3, 0)),
	}, 0.5, 2))
	xs := [][]float64{
		{0, 0, 0, 0},
		{1, 1, 2, -1},
		{-3, 0.5, 4, 2},
	}
	for order := range 5 {
		q := must[QuadraticVariable](t)(IntegratedSquaredNorm(b, order))
		diff(t, 4, q.Vars())
		for _, x := range xs {
			num := must[Bezier[Point]](t)(InstantiateBezier(b, x))
			want := must[float64](t)(SquaredNormIntegral(num, order))
			diff(t, want, must[float64](t)(q.Eval(x)), approx(1e-9))
		}
	}

	if _, err := IntegratedSquaredNorm(b, -1); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("got %v, want ErrInvalidOrder", err)
	}
}

func TestIntegratedSquaredNormConstant(t *testing.T) {
	b := must[Bezier[LinearVariable]](t)(NewUnitBezier([]LinearVariable{Constant(Pt(1, 2)), Constant(Pt(3, 2))}))
	q := must[QuadraticVariable](t)(IntegratedSquaredNorm(b, 1))
	diff(t, 0, q.Vars())
	a, lin, c := ExtractCost(q)
	if a != nil || lin != nil {
		t.Error("constant curve has a quadratic or linear term")
	}
	diff(t, 4.0, c, approx(1e-12))

	flat := must[Bezier[LinearVariable]](t)(NewBezier([]LinearVariable{Identity(1), Constant(Pt(1))}, 1, 1))
	q = must[QuadraticVariable](t)(IntegratedSquaredNorm(flat, 0))
	diff(t, 0.0, must[float64](t)(q.Eval([]float64{5})))
}

func TestPiecewiseIntegratedSquaredNorm(t *testing.T) {
	x := func(i int) LinearVariable {
		return must[LinearVariable](t)(Selection(1, 3, i))
	}
	a := must[Bezier[LinearVariable]](t)(NewBezier([]LinearVariable{x(0), x(1)}, 0, 1))
	b := must[Bezier[LinearVariable]](t)(NewBezier([]LinearVariable{x(1), x(2)}, 0, 2))
	pc := must[*Piecewise[LinearVariable]](t)(ConcatBezier(a, b))
	diff(t, 3.0, pc.Max())

	q := must[QuadraticVariable](t)(PiecewiseIntegratedSquaredNorm(pc, 1))
	// (x1 - x0)² / 1 + (x2 - x1)² / 2
	diff(t, 1+8.0, must[float64](t)(q.Eval([]float64{0, 1, 5})), approx(1e-12))

	// the shared control point makes the symbolic curve continuous
	if !pc.IsContinuous(0) {
		t.Error("curve should be C0")
	}
}
