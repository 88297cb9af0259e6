package curves

import (
	"fmt"
	"math"
)

// Bern is the Bernstein polynomial of index I and degree N,
//
//	B(I, N)(u) = C(N, I) uᴵ (1-u)ᴺ⁻ᴵ
//
// on the unit interval.
type Bern struct {
	I, N  int
	binom float64
}

func NewBern(i, n int) (Bern, error) {
	if n < 0 || i < 0 || i > n {
		return Bern{}, fmt.Errorf("%w: Bernstein index %d of degree %d", ErrInvalidConstruction, i, n)
	}
	return Bern{I: i, N: n, binom: binomial(n, i)}, nil
}

func (b Bern) Eval(u float64) float64 {
	return b.binom * math.Pow(u, float64(b.I)) * math.Pow(1-u, float64(b.N-b.I))
}

// Bernstein returns the n+1 Bernstein polynomials of degree n.
func Bernstein(n int) ([]Bern, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative Bernstein degree %d", ErrInvalidConstruction, n)
	}
	out := make([]Bern, n+1)
	for i := range out {
		out[i] = Bern{I: i, N: n, binom: binomial(n, i)}
	}
	return out, nil
}

// BernsteinBasis returns the values of the n+1 Bernstein polynomials of
// degree n at u.
func BernsteinBasis(n int, u float64) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative Bernstein degree %d", ErrInvalidConstruction, n)
	}
	return basis(n, u), nil
}

// BernsteinDerivative returns the order-th derivative with respect to u of
// each of the n+1 Bernstein polynomials of degree n, evaluated at u.
//
// It uses the identity d/du B(i, n) = n (B(i-1, n-1) - B(i, n-1)). Past the
// degree, all values are zero.
func BernsteinDerivative(n, order int, u float64) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative Bernstein degree %d", ErrInvalidConstruction, n)
	}
	if order < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	if order > n {
		return make([]float64, n+1), nil
	}
	vals := basis(n-order, u)
	for d := n - order; d < n; d++ {
		next := make([]float64, d+2)
		for i := range next {
			var lo, hi float64
			if i > 0 {
				lo = vals[i-1]
			}
			if i <= d {
				hi = vals[i]
			}
			next[i] = float64(d+1) * (lo - hi)
		}
		vals = next
	}
	return vals, nil
}

func basis(n int, u float64) []float64 {
	out := make([]float64, n+1)
	for i := range out {
		out[i] = basisFunction(n, i, u)
	}
	return out
}

func basisFunction(n, i int, u float64) float64 {
	return binomial(n, i) * math.Pow(1.0-u, float64(n-i)) * math.Pow(u, float64(i))
}

// Binomial coefficient, zero outside of 0 <= k <= n. Computed in floating
// point so that high degrees don't overflow.
func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	p := 1.0
	for i := 1; i <= k; i++ {
		p = p * float64(n-k+i) / float64(i)
	}
	return math.Round(p)
}
