package curves

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLinearVariableConstruction(t *testing.T) {
	b := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if _, err := NewLinearVariable(b, Pt(1, 2, 3)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}

	lv := must[LinearVariable](t)(NewLinearVariable(b, nil))
	diff(t, 2, lv.Dim())
	diff(t, 3, lv.Vars())
	diff(t, Pt(0, 0), lv.C())

	// the matrix is copied
	b.Set(0, 0, 100)
	diff(t, 1.0, lv.B().At(0, 0))

	c := Constant(Pt(1, 2))
	if !c.IsConstant() || c.Vars() != 0 || c.B() != nil {
		t.Error("constant has unknowns")
	}
	diff(t, Pt(1, 2), must[Point](t)(c.Eval(nil)))

	if _, err := Selection(2, 3, 2); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestLinearVariableEval(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	sel := must[LinearVariable](t)(Selection(2, 4, 1))
	diff(t, Pt(2, 3), must[Point](t)(sel.Eval(x)))

	shifted := sel.Add(Constant(Pt(10, 20)))
	diff(t, Pt(12, 23), must[Point](t)(shifted.Eval(x)))
	diff(t, Pt(-8, -17), must[Point](t)(sel.Sub(Constant(Pt(10, 20))).Eval(x)))
	diff(t, Pt(6, 9), must[Point](t)(sel.Scale(3).Eval(x)))

	if _, err := sel.Eval([]float64{1, 2}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}

	m := mat.NewDense(1, 2, []float64{1, -1})
	diff(t, Pt(-1), must[Point](t)(must[LinearVariable](t)(sel.MulMatrix(m)).Eval(x)))
	if _, err := sel.MulMatrix(mat.NewDense(2, 3, nil)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestLinearVariableMismatch(t *testing.T) {
	a := Identity(2)
	b := Identity(3)
	if _, err := Sum(a, b); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
	c := must[LinearVariable](t)(Selection(2, 3, 0))
	if _, err := Sum(a, c); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
	if _, err := a.Dot(c); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("adding mismatched variables did not panic")
		}
	}()
	a.Add(c)
}

func TestLinearVariableSum(t *testing.T) {
	x := []float64{1, 2}
	s := must[LinearVariable](t)(Sum(Identity(2), Constant(Pt(1, 1)), Identity(2)))
	diff(t, Pt(3, 5), must[Point](t)(s.Eval(x)))
	if !s.IsApprox(Identity(2).Scale(2).Add(Constant(Pt(1, 1))), 1e-12) {
		t.Error("sum differs from scaled identity")
	}
	if s.IsApprox(Identity(2), 1e-12) {
		t.Error("sum should differ from identity")
	}
	if !Constant(Pt(1)).IsApprox(Constant(Pt(1)).Add(Identity(1).Scale(0)), 1e-12) {
		t.Error("zero matrix should compare equal to a constant")
	}
}

func TestLinearVariableDot(t *testing.T) {
	id := Identity(3)
	q := must[QuadraticVariable](t)(id.Dot(id))
	a, b, c := q.Cost()
	if !mat.EqualApprox(a, mat.NewDiagDense(3, []float64{1, 1, 1}), 1e-12) {
		t.Errorf("A = %v, want identity", mat.Formatted(a))
	}
	if !mat.EqualApprox(b, mat.NewVecDense(3, nil), 1e-12) {
		t.Errorf("b = %v, want zero", mat.Formatted(b))
	}
	diff(t, 0.0, c)

	// the quadratic form agrees with the dot product of the evaluations
	lv1 := must[LinearVariable](t)(NewLinearVariable(mat.NewDense(2, 3, []float64{1, 2, 0, -1, 0, 3}), Pt(1, -2)))
	lv2 := must[LinearVariable](t)(NewLinearVariable(mat.NewDense(2, 3, []float64{0, 1, 1, 2, 2, -1}), Pt(0.5, 4)))
	q = must[QuadraticVariable](t)(lv1.Dot(lv2))
	for _, x := range [][]float64{{0, 0, 0}, {1, 2, 3}, {-1, 0.5, 2}} {
		p1 := must[Point](t)(lv1.Eval(x))
		p2 := must[Point](t)(lv2.Eval(x))
		diff(t, p1.Dot(p2), must[float64](t)(q.Eval(x)), approx(1e-12))
	}

	// constants produce constants
	q = must[QuadraticVariable](t)(Constant(Pt(1, 2)).Dot(Constant(Pt(3, 4))))
	diff(t, 0, q.Vars())
	diff(t, 11.0, must[float64](t)(q.Eval(nil)))
}
