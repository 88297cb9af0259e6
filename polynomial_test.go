package curves

import (
	"errors"
	"testing"
)

func TestPolynomialEval(t *testing.T) {
	// p(t) = (1, 0) + (2, 1)(t-1) + (0, 3)(t-1)²
	p := must[Polynomial](t)(NewPolynomial([]Point{Pt(1, 0), Pt(2, 1), Pt(0, 3)}, 1, 3))
	diff(t, 2, p.Degree())
	diff(t, 2, p.Dim())
	diff(t, Pt(1, 0), must[Point](t)(p.Eval(1)))
	diff(t, Pt(5, 14), must[Point](t)(p.Eval(3)))
	diff(t, Pt(2, 7), must[Point](t)(p.Derivative(2, 1)))
	diff(t, Pt(0, 6), must[Point](t)(p.Derivative(2, 2)))
	diff(t, Pt(0, 0), must[Point](t)(p.Derivative(2, 3)))

	if _, err := p.Eval(3.5); !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("got %v, want ErrOutOfDomain", err)
	}
	if _, err := p.Derivative(2, -2); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("got %v, want ErrInvalidOrder", err)
	}
	if _, err := NewPolynomial(nil, 0, 1); !errors.Is(err, ErrInvalidConstruction) {
		t.Errorf("got %v, want ErrInvalidConstruction", err)
	}
	if _, err := NewPolynomial([]Point{Pt(1), Pt(1, 2)}, 0, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestPolynomialIntegrateDifferentiate(t *testing.T) {
	for degree := 0; degree <= 5; degree++ {
		coeffs := make([]Point, degree+1)
		for k := range coeffs {
			coeffs[k] = Pt(float64(k+1), -float64(k)/2)
		}
		p := must[Polynomial](t)(NewPolynomial(coeffs, -1, 2))
		integral := must[Polynomial](t)(p.Integrate(Pt(3, 4)))
		diff(t, degree+1, integral.Degree())
		diff(t, Pt(3, 4), must[Point](t)(integral.Eval(-1)))
		back := must[Polynomial](t)(integral.Differentiate(1))
		diff(t, p.Coefficients(), back.Coefficients(), approx(1e-12))
		for _, tt := range []float64{-1, 0, 0.5, 2} {
			diff(t, must[Point](t)(p.Eval(tt)), must[Point](t)(integral.Derivative(tt, 1)), approx(1e-12))
		}
	}
}

func TestPolynomialDifferentiateIntegrate(t *testing.T) {
	for degree := 0; degree <= 5; degree++ {
		coeffs := make([]Point, degree+1)
		for k := range coeffs {
			coeffs[k] = Pt(float64(k)-1.5, float64(k*k)/3)
		}
		p := must[Polynomial](t)(NewPolynomial(coeffs, 0.5, 2))
		d := must[Polynomial](t)(p.Differentiate(1))
		back := must[Polynomial](t)(d.Integrate(must[Point](t)(p.Eval(p.Min()))))
		want := p.Coefficients()
		if degree == 0 {
			// the derivative is the zero polynomial of degree 0, whose
			// primitive has degree 1
			want = append(want, Pt(0, 0))
		}
		diff(t, want, back.Coefficients(), approx(1e-12))
		for _, tt := range []float64{0.5, 1, 1.75, 2} {
			diff(t, must[Point](t)(p.Eval(tt)), must[Point](t)(back.Eval(tt)), approx(1e-12))
		}
	}
}

func TestPolynomialFromStates(t *testing.T) {
	tests := []struct {
		name       string
		start, end State
		degree     int
	}{
		{
			"linear",
			State{Pos: Pt(0, 1)},
			State{Pos: Pt(2, -1)},
			1,
		},
		{
			"cubic",
			State{Pos: Pt(0, 1), Vel: Pt(1, 0)},
			State{Pos: Pt(2, -1), Vel: Pt(0, -2)},
			3,
		},
		{
			"quintic",
			State{Pos: Pt(0, 1), Vel: Pt(1, 0), Acc: Pt(0, 3)},
			State{Pos: Pt(2, -1), Vel: Pt(0, -2), Acc: Pt(-1, 1)},
			5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := must[Polynomial](t)(NewPolynomialFromStates(tt.start, tt.end, 0.5, 2))
			diff(t, tt.degree, p.Degree())
			check := func(s State, at float64) {
				t.Helper()
				diff(t, s.Pos, must[Point](t)(p.Eval(at)), approx(1e-9))
				if s.Vel != nil && tt.degree >= 3 {
					diff(t, s.Vel, must[Point](t)(p.Derivative(at, 1)), approx(1e-9))
				}
				if s.Acc != nil && tt.degree >= 5 {
					diff(t, s.Acc, must[Point](t)(p.Derivative(at, 2)), approx(1e-9))
				}
			}
			check(tt.start, 0.5)
			check(tt.end, 2)
		})
	}

	if _, err := NewPolynomialFromStates(State{Pos: Pt(0)}, State{Pos: Pt(1)}, 1, 1); !errors.Is(err, ErrInvalidConstruction) {
		t.Errorf("got %v, want ErrInvalidConstruction", err)
	}
	if _, err := NewPolynomialFromStates(State{Pos: Pt(0)}, State{Pos: Pt(1, 1)}, 0, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestMinimumJerk(t *testing.T) {
	p := must[Polynomial](t)(MinimumJerk(Pt(0, 0), Pt(1, 2), 0, 2))
	diff(t, 5, p.Degree())
	diff(t, Pt(0.5, 1), must[Point](t)(p.Eval(1)), approx(1e-12))
	for _, tt := range []float64{0, 2} {
		diff(t, Pt(0, 0), must[Point](t)(p.Derivative(tt, 1)), approx(1e-12))
		diff(t, Pt(0, 0), must[Point](t)(p.Derivative(tt, 2)), approx(1e-12))
	}
	// the classic profile peaks at 15/8 of the average velocity
	diff(t, Pt(15.0/16, 15.0/8), must[Point](t)(p.Derivative(1, 1)), approx(1e-12))
}

func TestPolynomialExtrema(t *testing.T) {
	// x = (t-2)² - 1 has a minimum at t = 2, y = (t-1)³ - 3(t-1) has its only
	// interior extremum there too
	p := must[Polynomial](t)(NewPolynomial([]Point{Pt(0, 0), Pt(-2, -3), Pt(1, 0), Pt(0, 1)}, 1, 4))
	diff(t, []float64{2}, must[[]float64](t)(p.Extrema(0)), approx(1e-12))
	diff(t, []float64{2}, must[[]float64](t)(p.Extrema(1)), approx(1e-12))

	lo, hi, err := p.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(-1, -2), lo, approx(1e-12))
	diff(t, Pt(3, 18), hi, approx(1e-12))

	if _, err := p.Extrema(2); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
	// derivatives of low degree, or identically zero
	flat := []struct {
		name   string
		coeffs []Point
		want   []float64
	}{
		{"constant", []Point{Pt(2)}, nil},
		{"zero cubic terms", []Point{Pt(2), Pt(0), Pt(0), Pt(0)}, nil},
		{"line", []Point{Pt(1), Pt(2)}, nil},
		{"parabola", []Point{Pt(0), Pt(-2), Pt(1)}, []float64{2}},
		{"vertex at the start", []Point{Pt(0), Pt(0), Pt(1)}, nil},
	}
	for _, tt := range flat {
		p := must[Polynomial](t)(NewPolynomial(tt.coeffs, 1, 4))
		got, err := p.Extrema(0)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("%s: got extrema %v, want %v", tt.name, got, tt.want)
			continue
		}
		if len(tt.want) > 0 {
			diff(t, tt.want, got, approx(1e-12))
		}
	}
	constant := must[Polynomial](t)(NewPolynomial([]Point{Pt(2, -1)}, 1, 4))
	lo, hi, err = constant.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(2, -1), lo)
	diff(t, Pt(2, -1), hi)

	high := must[Polynomial](t)(NewPolynomial([]Point{Pt(1), Pt(1), Pt(1), Pt(1), Pt(1), Pt(1)}, 0, 1))
	if _, err := high.Extrema(0); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("got %v, want ErrInvalidOrder", err)
	}
}
