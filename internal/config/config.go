// Package config reads and writes curvetool problem files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	KindExactCubic = "exact_cubic"
	KindHermite    = "hermite"
	KindBezier     = "bezier"

	BoundaryNatural  = "natural"
	BoundaryClamped  = "clamped"
	BoundaryPeriodic = "periodic"

	DefaultSamples    = 11
	DefaultCostDegree = 4
	DefaultCostOrder  = 2
)

// ErrInvalidProblem is wrapped by every validation error.
var ErrInvalidProblem = errors.New("config: invalid problem")

// Problem describes a curve to fit through waypoints, and a cost to
// extract for a Bézier with free interior control points.
type Problem struct {
	Kind      string     `yaml:"kind"`
	Boundary  string     `yaml:"boundary,omitempty"`
	InitVel   []float64  `yaml:"init_vel,omitempty"`
	EndVel    []float64  `yaml:"end_vel,omitempty"`
	Waypoints []Waypoint `yaml:"waypoints"`
	Samples   int        `yaml:"samples"`
	Cost      Cost       `yaml:"cost"`
}

type Waypoint struct {
	Time    float64   `yaml:"time"`
	Value   []float64 `yaml:"value"`
	Tangent []float64 `yaml:"tangent,omitempty"`
}

// Cost describes a Bézier of the given degree from Start to End whose
// interior control points are unknowns, and the derivative whose squared
// norm is integrated.
type Cost struct {
	Degree int       `yaml:"degree"`
	Dim    int       `yaml:"dim"`
	Order  int       `yaml:"order"`
	TMin   float64   `yaml:"t_min"`
	TMax   float64   `yaml:"t_max"`
	Start  []float64 `yaml:"start"`
	End    []float64 `yaml:"end"`
}

func DefaultProblem() *Problem {
	return &Problem{
		Kind:     KindExactCubic,
		Boundary: BoundaryNatural,
		Waypoints: []Waypoint{
			{Time: 0, Value: []float64{0}, Tangent: []float64{0}},
			{Time: 1, Value: []float64{1}, Tangent: []float64{0}},
		},
		Samples: DefaultSamples,
		Cost: Cost{
			Degree: DefaultCostDegree,
			Dim:    1,
			Order:  DefaultCostOrder,
			TMin:   0,
			TMax:   1,
			Start:  []float64{0},
			End:    []float64{1},
		},
	}
}

// Parse decodes a problem on top of [DefaultProblem] and validates it.
// Unknown fields are rejected.
func Parse(data []byte) (*Problem, error) {
	p := DefaultProblem()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProblem, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Save(path string, p *Problem) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidProblem, fmt.Sprintf(format, args...))
}

// Validate reports every problem with p, combined into one error.
func (p *Problem) Validate() error {
	var err error
	switch p.Kind {
	case KindExactCubic, KindHermite, KindBezier:
	default:
		err = multierr.Append(err, invalid("unknown kind %q", p.Kind))
	}
	if p.Samples < 2 {
		err = multierr.Append(err, invalid("need at least 2 samples, got %d", p.Samples))
	}
	err = multierr.Append(err, p.validateWaypoints())
	err = multierr.Append(err, p.Cost.validate())
	return err
}

// Dim returns the dimension of the waypoint values.
func (p *Problem) Dim() int {
	if len(p.Waypoints) == 0 {
		return 0
	}
	return len(p.Waypoints[0].Value)
}

func (p *Problem) validateWaypoints() error {
	if len(p.Waypoints) < 2 {
		return invalid("need at least 2 waypoints, got %d", len(p.Waypoints))
	}
	var err error
	dim := p.Dim()
	if dim == 0 {
		err = multierr.Append(err, invalid("waypoint 0 has no value"))
	}
	for i, wp := range p.Waypoints {
		if len(wp.Value) != dim {
			err = multierr.Append(err, invalid("waypoint %d has dimension %d, want %d", i, len(wp.Value), dim))
		}
		if p.Kind == KindHermite && len(wp.Tangent) != dim {
			err = multierr.Append(err, invalid("waypoint %d needs a tangent of dimension %d", i, dim))
		}
		if i > 0 && !(wp.Time > p.Waypoints[i-1].Time) {
			err = multierr.Append(err, invalid("waypoint %d at time %g does not follow time %g", i, wp.Time, p.Waypoints[i-1].Time))
		}
	}
	if p.Kind != KindExactCubic {
		return err
	}
	switch p.Boundary {
	case "", BoundaryNatural, BoundaryPeriodic:
	case BoundaryClamped:
		if len(p.InitVel) != dim || len(p.EndVel) != dim {
			err = multierr.Append(err, invalid("clamped boundary needs init_vel and end_vel of dimension %d", dim))
		}
	default:
		err = multierr.Append(err, invalid("unknown boundary %q", p.Boundary))
	}
	return err
}

func (c Cost) validate() error {
	var err error
	if c.Degree < 1 {
		err = multierr.Append(err, invalid("cost degree must be at least 1, got %d", c.Degree))
	}
	if c.Dim < 1 {
		err = multierr.Append(err, invalid("cost dimension must be at least 1, got %d", c.Dim))
	}
	if c.Order < 0 {
		err = multierr.Append(err, invalid("negative cost order %d", c.Order))
	}
	if !(c.TMin < c.TMax) {
		err = multierr.Append(err, invalid("cost domain [%g, %g] is empty", c.TMin, c.TMax))
	}
	if len(c.Start) != c.Dim || len(c.End) != c.Dim {
		err = multierr.Append(err, invalid("cost start and end must have dimension %d", c.Dim))
	}
	return err
}
