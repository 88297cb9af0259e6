package main

import (
	"fmt"

	"github.com/proyan/curves"
	"github.com/proyan/curves/internal/config"
)

var boundaries = map[string]curves.Boundary{
	"":                      curves.Natural,
	config.BoundaryNatural:  curves.Natural,
	config.BoundaryClamped:  curves.Clamped,
	config.BoundaryPeriodic: curves.Periodic,
}

// buildCurve fits the curve a problem describes through its waypoints.
func buildCurve(p *config.Problem) (curves.Curve[curves.Point], error) {
	switch p.Kind {
	case config.KindExactCubic:
		boundary, ok := boundaries[p.Boundary]
		if !ok {
			return nil, fmt.Errorf("unknown boundary %q", p.Boundary)
		}
		points := make([]curves.Waypoint, len(p.Waypoints))
		for i, wp := range p.Waypoints {
			points[i] = curves.Waypoint{Time: wp.Time, Value: curves.Pt(wp.Value...)}
		}
		return curves.NewExactCubic(points, curves.SplineConstraints{
			Boundary: boundary,
			InitVel:  curves.Pt(p.InitVel...),
			EndVel:   curves.Pt(p.EndVel...),
		})
	case config.KindHermite:
		points := make([]curves.TangentWaypoint, len(p.Waypoints))
		for i, wp := range p.Waypoints {
			points[i] = curves.TangentWaypoint{
				Time:    wp.Time,
				Value:   curves.Pt(wp.Value...),
				Tangent: curves.Pt(wp.Tangent...),
			}
		}
		return curves.NewCubicHermite(points)
	case config.KindBezier:
		// waypoint values are the control points, spread over the first and
		// last waypoint times
		pts := make([]curves.Point, len(p.Waypoints))
		for i, wp := range p.Waypoints {
			pts[i] = curves.Pt(wp.Value...)
		}
		first, last := p.Waypoints[0], p.Waypoints[len(p.Waypoints)-1]
		return curves.NewBezier(pts, first.Time, last.Time)
	default:
		return nil, fmt.Errorf("unknown kind %q", p.Kind)
	}
}

// buildCost returns the integrated squared norm of the order-th derivative
// of a Bézier that goes from Start to End and whose interior control points
// are the unknowns, dim of them per control point.
func buildCost(c config.Cost) (curves.QuadraticVariable, error) {
	free := c.Degree - 1
	vars := c.Dim * free
	pts := make([]curves.LinearVariable, 0, c.Degree+1)
	pts = append(pts, curves.Constant(curves.Pt(c.Start...)))
	for i := range free {
		lv, err := curves.Selection(c.Dim, vars, i*c.Dim)
		if err != nil {
			return curves.QuadraticVariable{}, err
		}
		pts = append(pts, lv)
	}
	pts = append(pts, curves.Constant(curves.Pt(c.End...)))
	b, err := curves.NewBezier(pts, c.TMin, c.TMax)
	if err != nil {
		return curves.QuadraticVariable{}, err
	}
	return curves.IntegratedSquaredNorm(b, c.Order)
}
