package curves

import (
	"errors"
	"testing"
)

func TestBern(t *testing.T) {
	b := must[Bern](t)(NewBern(1, 2))
	diff(t, 0.5, b.Eval(0.5))
	diff(t, 0.0, b.Eval(0))
	diff(t, 0.0, b.Eval(1))

	for _, tt := range [][2]int{{-1, 2}, {3, 2}, {0, -1}} {
		if _, err := NewBern(tt[0], tt[1]); !errors.Is(err, ErrInvalidConstruction) {
			t.Errorf("NewBern(%d, %d): got %v, want ErrInvalidConstruction", tt[0], tt[1], err)
		}
	}
}

func TestBernsteinPartitionOfUnity(t *testing.T) {
	for n := 0; n <= 12; n++ {
		bs := must[[]Bern](t)(Bernstein(n))
		if len(bs) != n+1 {
			t.Fatalf("got %d polynomials of degree %d", len(bs), n)
		}
		for _, u := range []float64{0, 0.1, 0.5, 0.77, 1} {
			var sum, sumBasis float64
			for _, b := range bs {
				sum += b.Eval(u)
			}
			for _, v := range must[[]float64](t)(BernsteinBasis(n, u)) {
				sumBasis += v
			}
			diff(t, 1.0, sum, approx(1e-12))
			diff(t, 1.0, sumBasis, approx(1e-12))
		}
	}
}

func TestBernsteinDerivative(t *testing.T) {
	const h = 1e-5
	for n := 1; n <= 6; n++ {
		for _, u := range []float64{0.2, 0.5, 0.9} {
			got := must[[]float64](t)(BernsteinDerivative(n, 1, u))
			lo := basis(n, u-h)
			hi := basis(n, u+h)
			want := make([]float64, n+1)
			var sum float64
			for i := range want {
				want[i] = (hi[i] - lo[i]) / (2 * h)
				sum += got[i]
			}
			diff(t, want, got, approx(1e-6))
			// the basis sums to one, so its derivatives sum to zero
			diff(t, 0.0, sum, approx(1e-9))
		}
	}

	// second derivative of u² is 2
	got := must[[]float64](t)(BernsteinDerivative(2, 2, 0.3))
	diff(t, 2.0, got[2], approx(1e-12))

	diff(t, []float64{0, 0, 0, 0}, must[[]float64](t)(BernsteinDerivative(3, 4, 0.5)))

	if _, err := BernsteinDerivative(3, -1, 0.5); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("got %v, want ErrInvalidOrder", err)
	}
}

func TestBinomial(t *testing.T) {
	tests := []struct {
		n, k int
		want float64
	}{
		{0, 0, 1},
		{5, 0, 1},
		{5, 5, 1},
		{10, 3, 120},
		{30, 15, 155117520},
		{5, 7, 0},
		{5, -1, 0},
	}
	for _, tt := range tests {
		if got := binomial(tt.n, tt.k); got != tt.want {
			t.Errorf("binomial(%d, %d) = %v, want %v", tt.n, tt.k, got, tt.want)
		}
	}
}
