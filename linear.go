package curves

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var _ ControlPoint[LinearVariable] = LinearVariable{}

// LinearVariable is an affine expression B·x + c over an unknown vector x of
// fixed length. Used as Bézier control points, it lets curve operations run
// on curves whose control points are decision variables: every operation
// that is affine in the control points (evaluation, differentiation,
// splitting) produces another affine expression.
//
// A LinearVariable without unknowns is a constant. Constants combine with
// expressions over any number of unknowns.
type LinearVariable struct {
	// dim×vars, nil for constants
	b *mat.Dense
	c Point
}

// NewLinearVariable returns the expression b·x + c. b may be nil for a
// constant; c may be nil for a purely linear expression. b is copied.
func NewLinearVariable(b *mat.Dense, c Point) (LinearVariable, error) {
	if b == nil {
		return Constant(c), nil
	}
	rows, _ := b.Dims()
	if c == nil {
		c = Zeros(rows)
	}
	if rows != len(c) {
		return LinearVariable{}, fmt.Errorf("%w: matrix has %d rows, offset has dimension %d", ErrDimensionMismatch, rows, len(c))
	}
	return LinearVariable{b: mat.DenseCopyOf(b), c: c.Clone()}, nil
}

// Constant returns the expression with no unknowns that always evaluates
// to c.
func Constant(c Point) LinearVariable {
	return LinearVariable{c: c.Clone()}
}

// Identity returns the expression x itself, over dim unknowns.
func Identity(dim int) LinearVariable {
	if dim == 0 {
		return LinearVariable{c: Point{}}
	}
	b := mat.NewDense(dim, dim, nil)
	for i := range dim {
		b.Set(i, i, 1)
	}
	return LinearVariable{b: b, c: Zeros(dim)}
}

// Selection returns the expression x[offset:offset+dim] over vars unknowns.
// It is the usual way of making one control point out of a slice of the
// decision vector.
func Selection(dim, vars, offset int) (LinearVariable, error) {
	if dim <= 0 || offset < 0 || offset+dim > vars {
		return LinearVariable{}, fmt.Errorf("%w: cannot select %d unknowns at offset %d out of %d", ErrDimensionMismatch, dim, offset, vars)
	}
	b := mat.NewDense(dim, vars, nil)
	for i := range dim {
		b.Set(i, offset+i, 1)
	}
	return LinearVariable{b: b, c: Zeros(dim)}, nil
}

// Dim returns the dimension of the value the expression evaluates to.
func (lv LinearVariable) Dim() int {
	return len(lv.c)
}

// Vars returns the number of unknowns, zero for constants.
func (lv LinearVariable) Vars() int {
	if lv.b == nil {
		return 0
	}
	_, cols := lv.b.Dims()
	return cols
}

// IsConstant reports whether the expression has no unknowns.
func (lv LinearVariable) IsConstant() bool {
	return lv.b == nil
}

// B returns a copy of the coefficient matrix, or nil for constants.
func (lv LinearVariable) B() *mat.Dense {
	if lv.b == nil {
		return nil
	}
	return mat.DenseCopyOf(lv.b)
}

// C returns a copy of the constant term.
func (lv LinearVariable) C() Point {
	return lv.c.Clone()
}

func (lv LinearVariable) compatible(o LinearVariable) error {
	if lv.Dim() != o.Dim() {
		return fmt.Errorf("%w: dimensions %d and %d", ErrDimensionMismatch, lv.Dim(), o.Dim())
	}
	if lv.b != nil && o.b != nil && lv.Vars() != o.Vars() {
		return fmt.Errorf("%w: %d and %d unknowns", ErrDimensionMismatch, lv.Vars(), o.Vars())
	}
	return nil
}

// Add returns lv + o. It panics if the expressions have different dimensions
// or different numbers of unknowns; use [Sum] for a checked version.
func (lv LinearVariable) Add(o LinearVariable) LinearVariable {
	if err := lv.compatible(o); err != nil {
		panic(err)
	}
	out := LinearVariable{c: lv.c.Add(o.c)}
	switch {
	case lv.b == nil && o.b == nil:
	case lv.b == nil:
		out.b = mat.DenseCopyOf(o.b)
	case o.b == nil:
		out.b = mat.DenseCopyOf(lv.b)
	default:
		out.b = &mat.Dense{}
		out.b.Add(lv.b, o.b)
	}
	return out
}

// Sub returns lv - o, with the same restrictions as [LinearVariable.Add].
func (lv LinearVariable) Sub(o LinearVariable) LinearVariable {
	return lv.Add(o.Scale(-1))
}

func (lv LinearVariable) Scale(f float64) LinearVariable {
	out := LinearVariable{c: lv.c.Scale(f)}
	if lv.b != nil {
		out.b = &mat.Dense{}
		out.b.Scale(f, lv.b)
	}
	return out
}

// IsApprox reports whether two expressions have the same dimension and
// coefficients that agree within tol. A missing coefficient matrix compares
// equal to a zero one.
func (lv LinearVariable) IsApprox(o LinearVariable, tol float64) bool {
	if !lv.c.IsApprox(o.c, tol) {
		return false
	}
	switch {
	case lv.b == nil && o.b == nil:
		return true
	case lv.b == nil:
		return mat.Norm(o.b, math.Inf(1)) <= tol
	case o.b == nil:
		return mat.Norm(lv.b, math.Inf(1)) <= tol
	default:
		return mat.EqualApprox(lv.b, o.b, tol)
	}
}

// Sum adds expressions, returning [ErrDimensionMismatch] instead of
// panicking when they cannot be combined.
func Sum(vars ...LinearVariable) (LinearVariable, error) {
	if len(vars) == 0 {
		return LinearVariable{c: Point{}}, nil
	}
	out := vars[0]
	for i, v := range vars[1:] {
		if err := out.compatible(v); err != nil {
			return LinearVariable{}, fmt.Errorf("term %d: %w", i+1, err)
		}
		out = out.Add(v)
	}
	return out, nil
}

// MulMatrix returns m·(B·x + c).
func (lv LinearVariable) MulMatrix(m mat.Matrix) (LinearVariable, error) {
	rows, cols := m.Dims()
	if cols != lv.Dim() || rows == 0 || cols == 0 {
		return LinearVariable{}, fmt.Errorf("%w: %d×%d matrix applied to dimension %d", ErrDimensionMismatch, rows, cols, lv.Dim())
	}
	c := mat.NewVecDense(rows, nil)
	c.MulVec(m, mat.NewVecDense(cols, lv.c.Clone()))
	out := LinearVariable{c: Point(c.RawVector().Data)}
	if lv.b != nil {
		out.b = &mat.Dense{}
		out.b.Mul(m, lv.b)
	}
	return out, nil
}

// Eval substitutes x for the unknowns. Constants ignore x.
func (lv LinearVariable) Eval(x []float64) (Point, error) {
	if lv.b == nil {
		return lv.c.Clone(), nil
	}
	if len(x) != lv.Vars() {
		return nil, fmt.Errorf("%w: %d values for %d unknowns", ErrDimensionMismatch, len(x), lv.Vars())
	}
	out := mat.NewVecDense(lv.Dim(), nil)
	out.MulVec(lv.b, mat.NewVecDense(len(x), x))
	return Point(out.RawVector().Data).Add(lv.c), nil
}

// Dot returns the quadratic form lv·o. With lv = B1·x + c1 and o = B2·x + c2,
//
//	lv·o = xᵀ sym(B1ᵀB2) x + (B1ᵀc2 + B2ᵀc1)ᵀ x + c1ᵀc2
//
// where sym(M) = (M + Mᵀ)/2.
func (lv LinearVariable) Dot(o LinearVariable) (QuadraticVariable, error) {
	if err := lv.compatible(o); err != nil {
		return QuadraticVariable{}, err
	}
	vars := max(lv.Vars(), o.Vars())
	q := ZeroQuadratic(vars)
	q.c = lv.c.Dot(o.c)
	if vars == 0 {
		return q, nil
	}
	if lv.b != nil && o.b != nil {
		var m mat.Dense
		m.Mul(lv.b.T(), o.b)
		for i := range vars {
			for j := i; j < vars; j++ {
				q.a.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
			}
		}
	}
	if lv.b != nil {
		var v mat.VecDense
		v.MulVec(lv.b.T(), mat.NewVecDense(o.Dim(), o.c.Clone()))
		q.b.AddVec(q.b, &v)
	}
	if o.b != nil {
		var v mat.VecDense
		v.MulVec(o.b.T(), mat.NewVecDense(lv.Dim(), lv.c.Clone()))
		q.b.AddVec(q.b, &v)
	}
	return q, nil
}
