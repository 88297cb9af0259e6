package curves_test

import (
	"fmt"
	"math"

	"github.com/proyan/curves"
	"gonum.org/v1/gonum/spatial/r3"
)

// Circle is the unit circle, traversed once over [0, 2π].
type Circle struct{}

var _ curves.Curve[curves.Point] = Circle{}

func (Circle) Min() float64 { return 0 }
func (Circle) Max() float64 { return 2 * math.Pi }
func (Circle) Dim() int     { return 2 }

func (c Circle) Eval(t float64) (curves.Point, error) {
	return c.Derivative(t, 0)
}

// Derivative implements curves.Curve. Every derivative rotates the circle by
// a quarter turn.
func (c Circle) Derivative(t float64, order int) (curves.Point, error) {
	if t < c.Min() || t > c.Max() {
		return nil, curves.ErrOutOfDomain
	}
	if order < 0 {
		return nil, curves.ErrInvalidOrder
	}
	phase := t + float64(order)*math.Pi/2
	return curves.Pt(math.Cos(phase), math.Sin(phase)), nil
}

func ExampleArclen() {
	l, err := curves.Arclen(Circle{}, curves.DefaultAccuracy)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.6f\n", l)
	// Output: 6.283185
}

func ExampleNewExactCubic() {
	points := []curves.Waypoint{
		{Time: 0, Value: curves.Pt(0)},
		{Time: 1, Value: curves.Pt(1)},
		{Time: 2, Value: curves.Pt(0)},
	}
	spline, err := curves.NewExactCubic(points, curves.SplineConstraints{Boundary: curves.Natural})
	if err != nil {
		panic(err)
	}
	for _, t := range []float64{0, 0.5, 1, 1.5, 2} {
		p, err := spline.Eval(t)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%.1f: %.4f\n", t, p[0])
	}
	// Output:
	// 0.0: 0.0000
	// 0.5: 0.6875
	// 1.0: 1.0000
	// 1.5: 0.6875
	// 2.0: 0.0000
}

func ExampleIntegratedSquaredNorm() {
	// A 1D segment from the unknown x0 to the unknown x1, over [0, 2].
	x0, _ := curves.Selection(1, 2, 0)
	x1, _ := curves.Selection(1, 2, 1)
	b, err := curves.NewBezier([]curves.LinearVariable{x0, x1}, 0, 2)
	if err != nil {
		panic(err)
	}
	// The integral of the squared velocity, (x1 - x0)² / 2.
	q, err := curves.IntegratedSquaredNorm(b, 1)
	if err != nil {
		panic(err)
	}
	a, lin, c := curves.ExtractCost(q)
	fmt.Printf("A = [[%.2f %.2f] [%.2f %.2f]]\n", a.At(0, 0), a.At(0, 1), a.At(1, 0), a.At(1, 1))
	fmt.Printf("b = [%.2f %.2f]\n", lin.AtVec(0), lin.AtVec(1))
	fmt.Printf("c = %.2f\n", c)
	// Output:
	// A = [[0.50 -0.50] [-0.50 0.50]]
	// b = [0.00 0.00]
	// c = 0.00
}

func ExampleNewSO3Linear() {
	end := curves.NewRotation(math.Pi/2, r3.Vec{Z: 1})
	s, err := curves.NewSO3Linear(curves.IdentityRotation(), end, 0, 1)
	if err != nil {
		panic(err)
	}
	mid, err := s.Eval(0.5)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.1f°\n", mid.Angle()*180/math.Pi)
	// Output: 45.0°
}
