package curves

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ ControlPoint[Point] = Point(nil)

// Point is a numeric value of arbitrary dimension. It is used both for
// positions and for derivatives.
//
// Arithmetic never modifies its operands. Combining points of different
// dimensions panics.
type Point []float64

// Pt returns the point with the given coordinates.
func Pt(xs ...float64) Point {
	return Point(xs)
}

// Zeros returns the origin in dim dimensions.
func Zeros(dim int) Point {
	return make(Point, dim)
}

// PointFromVec3 converts a 3-vector to a point.
func PointFromVec3(v r3.Vec) Point {
	return Point{v.X, v.Y, v.Z}
}

func (pt Point) Dim() int {
	return len(pt)
}

func (pt Point) Add(o Point) Point {
	return floats.AddTo(make(Point, len(pt)), pt, o)
}

func (pt Point) Sub(o Point) Point {
	return floats.SubTo(make(Point, len(pt)), pt, o)
}

func (pt Point) Scale(f float64) Point {
	return floats.ScaleTo(make(Point, len(pt)), f, pt)
}

func (pt Point) Dot(o Point) float64 {
	return floats.Dot(pt, o)
}

// Norm returns the euclidean length of the point as a vector.
func (pt Point) Norm() float64 {
	return floats.Norm(pt, 2)
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return floats.Distance(pt, o, 2)
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return pt.Add(o.Sub(pt).Scale(t))
}

// IsApprox reports whether both points have the same dimension and every
// coordinate agrees within tol, absolutely or relatively.
func (pt Point) IsApprox(o Point, tol float64) bool {
	return floats.EqualApprox(pt, o, tol)
}

func (pt Point) Clone() Point {
	if pt == nil {
		return nil
	}
	return append(Point(nil), pt...)
}

// Vec3 returns the first three coordinates as an [r3.Vec]. Missing
// coordinates are zero.
func (pt Point) Vec3() r3.Vec {
	var v [3]float64
	copy(v[:], pt)
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func (pt Point) IsInf() bool {
	for _, x := range pt {
		if math.IsInf(x, 0) {
			return true
		}
	}
	return false
}

func (pt Point) IsNaN() bool {
	return floats.HasNaN(pt)
}

func (pt Point) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, x := range pt {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	sb.WriteByte(')')
	return sb.String()
}
