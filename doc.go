// Package curves provides time-parametrized curves for trajectory
// generation: Béziers, polynomials, splines and rigid-motion curves, their
// composition into piecewise trajectories, and the extraction of quadratic
// costs over symbolic control points.
//
// # Curves
//
// [Curve] describes a function of time on a closed domain [Min, Max]. Curves
// can be evaluated and differentiated to any order; evaluating outside of
// the domain is an error ([ErrOutOfDomain]), never a silent clamp.
//
// This package includes the following curves:
//   - [Bezier], of any degree, over numeric or symbolic control points
//   - [Polynomial], in powers of t - Min
//   - [CubicHermite], a C1 spline through values and tangents
//   - [ExactCubic], a C2 spline through values, with natural, clamped or
//     periodic ends
//   - [Piecewise], segments of any of the above laid end to end
//
// Rotations are handled by [RotationCurve]s such as [SO3Linear], and rigid
// motions by [SE3Curve], which pairs a translation curve with a rotation
// curve. Their derivatives are angular velocities and twists.
//
// All curves are immutable once built, with the exception of
// [Piecewise.Append], and can be shared between goroutines.
//
// # Symbolic control points
//
// Béziers are generic over their control points, see [ControlPoint]. Besides
// numeric [Point]s, a control point can be a [LinearVariable], an affine
// expression B·x + c in an unknown vector x. Because evaluation,
// differentiation and splitting are affine in the control points, they
// produce affine expressions again, and the squared norm of a derivative
// integrates to a [QuadraticVariable] xᵀAx + bᵀx + c. See
// [IntegratedSquaredNorm] and [ExtractCost]: the resulting A, b and c can be
// handed to any quadratic program solver.
//
// # Conversions
//
// Polynomial and Bézier forms of the same curve can be converted into each
// other with [BezierToPolynomial] and [PolynomialToBezier], also for whole
// piecewise curves ([PiecewiseToBezier], [PiecewiseToPolynomial]).
// [HermiteToBezier] converts end values and tangents into a cubic Bézier.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//   - [How to solve a cubic equation, revisited] by Christoph Peters
//   - Farin, Curves and Surfaces for CAGD, for degree elevation and reduction
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
// [How to solve a cubic equation, revisited]: https://momentsingraphics.de/CubicRoots.html
package curves
