package curves

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// QuadraticVariable is a quadratic form xᵀAx + bᵀx + c over an unknown
// vector x, with A symmetric. It is what a squared-norm integral of a curve
// over [LinearVariable] control points reduces to.
type QuadraticVariable struct {
	vars int
	// nil when vars == 0
	a *mat.SymDense
	b *mat.VecDense
	c float64
}

// ZeroQuadratic returns the zero form over vars unknowns.
func ZeroQuadratic(vars int) QuadraticVariable {
	q := QuadraticVariable{vars: vars}
	if vars > 0 {
		q.a = mat.NewSymDense(vars, nil)
		q.b = mat.NewVecDense(vars, nil)
	}
	return q
}

// NewQuadraticVariable returns the form xᵀax + bᵀx + c. Either of a and b
// may be nil, standing for zero. The arguments are copied.
func NewQuadraticVariable(a *mat.SymDense, b *mat.VecDense, c float64) (QuadraticVariable, error) {
	vars := 0
	if a != nil {
		vars = a.SymmetricDim()
	}
	if b != nil {
		if a != nil && b.Len() != vars {
			return QuadraticVariable{}, fmt.Errorf("%w: %d×%d quadratic term with linear term of length %d", ErrDimensionMismatch, vars, vars, b.Len())
		}
		vars = b.Len()
	}
	q := ZeroQuadratic(vars)
	q.c = c
	if a != nil {
		q.a.CopySym(a)
	}
	if b != nil {
		q.b.CopyVec(b)
	}
	return q, nil
}

// Vars returns the number of unknowns.
func (q QuadraticVariable) Vars() int {
	return q.vars
}

// Add returns q + o. It panics if both forms have unknowns and their counts
// differ.
func (q QuadraticVariable) Add(o QuadraticVariable) QuadraticVariable {
	switch {
	case o.vars == 0:
		out := q.clone()
		out.c += o.c
		return out
	case q.vars == 0:
		out := o.clone()
		out.c += q.c
		return out
	case q.vars != o.vars:
		panic(fmt.Errorf("%w: %d and %d unknowns", ErrDimensionMismatch, q.vars, o.vars))
	}
	out := ZeroQuadratic(q.vars)
	out.a.AddSym(q.a, o.a)
	out.b.AddVec(q.b, o.b)
	out.c = q.c + o.c
	return out
}

func (q QuadraticVariable) Sub(o QuadraticVariable) QuadraticVariable {
	return q.Add(o.Scale(-1))
}

func (q QuadraticVariable) Scale(f float64) QuadraticVariable {
	out := ZeroQuadratic(q.vars)
	out.c = f * q.c
	if q.vars > 0 {
		out.a.ScaleSym(f, q.a)
		out.b.ScaleVec(f, q.b)
	}
	return out
}

func (q QuadraticVariable) clone() QuadraticVariable {
	out := ZeroQuadratic(q.vars)
	out.c = q.c
	if q.vars > 0 {
		out.a.CopySym(q.a)
		out.b.CopyVec(q.b)
	}
	return out
}

// Eval evaluates the form at x. A form without unknowns ignores x.
func (q QuadraticVariable) Eval(x []float64) (float64, error) {
	if q.vars == 0 {
		return q.c, nil
	}
	if len(x) != q.vars {
		return 0, fmt.Errorf("%w: %d values for %d unknowns", ErrDimensionMismatch, len(x), q.vars)
	}
	xv := mat.NewVecDense(len(x), x)
	return mat.Inner(xv, q.a, xv) + mat.Dot(q.b, xv) + q.c, nil
}

// Cost returns copies of the quadratic term A, the linear term b and the
// constant c. A and b are nil for forms without unknowns.
func (q QuadraticVariable) Cost() (a *mat.SymDense, b *mat.VecDense, c float64) {
	if q.vars == 0 {
		return nil, nil, q.c
	}
	out := q.clone()
	return out.a, out.b, out.c
}
