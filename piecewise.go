package curves

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"sort"
	"strconv"

	"go.uber.org/multierr"
)

var _ Curve[Point] = (*Piecewise[Point])(nil)

// Continuity is the order of smoothness Append enforces at junctions.
type Continuity int

const (
	// NoContinuity only requires segments to be adjacent in time.
	NoContinuity Continuity = iota
	// C0 requires matching values.
	C0
	// C1 also requires matching first derivatives.
	C1
	// C2 also requires matching second derivatives.
	C2
)

// Order returns the highest derivative order that must match, -1 for
// NoContinuity.
func (c Continuity) Order() int {
	return int(c) - 1
}

func (c Continuity) String() string {
	if c == NoContinuity {
		return "none"
	}
	return "C" + strconv.Itoa(c.Order())
}

// PiecewiseOptions configures how a [Piecewise] accepts new segments.
type PiecewiseOptions struct {
	// Tolerance is used when comparing a new segment's start time with the
	// curve's end, and when comparing derivatives across junctions.
	Tolerance float64
	// Continuity makes Append reject segments that don't join the curve
	// smoothly enough.
	Continuity Continuity
}

// DefaultPiecewiseOptions checks domains with [DefaultTolerance] and does
// not enforce continuity.
var DefaultPiecewiseOptions = PiecewiseOptions{
	Tolerance:  DefaultTolerance,
	Continuity: NoContinuity,
}

// Piecewise is a curve made of segments laid end to end in time. Segments
// can be of different kinds.
//
// At an interior breakpoint the later segment is used; the last segment
// also covers the end of the domain.
type Piecewise[T ControlPoint[T]] struct {
	segments []Curve[T]
	// len(segments)+1 entries, or none
	breaks []float64
	opts   PiecewiseOptions
}

// NewPiecewise returns a piecewise curve made of the given segments, which
// are appended in order with [Piecewise.Append].
func NewPiecewise[T ControlPoint[T]](opts PiecewiseOptions, segments ...Curve[T]) (*Piecewise[T], error) {
	p := &Piecewise[T]{opts: opts}
	for i, seg := range segments {
		if err := p.Append(seg); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return p, nil
}

// Append adds a segment at the end of the curve. The segment must start at
// the curve's end time, end after it and have the curve's dimension. With
// [PiecewiseOptions.Continuity] set, its derivatives must also match those
// of the last segment at the junction.
//
// Only a curve's first segment may have a zero-width domain, and such a
// curve cannot be extended: breakpoints are strictly increasing.
func (p *Piecewise[T]) Append(c Curve[T]) error {
	if len(p.segments) == 0 {
		p.segments = append(p.segments, c)
		p.breaks = append(p.breaks, c.Min(), c.Max())
		return nil
	}
	if c.Dim() != p.Dim() {
		return fmt.Errorf("%w: segment has dimension %d, curve has %d", ErrDimensionMismatch, c.Dim(), p.Dim())
	}
	if math.Abs(c.Min()-p.Max()) > p.opts.Tolerance {
		return fmt.Errorf("%w: segment starts at %g, curve ends at %g", ErrDiscontinuousDomain, c.Min(), p.Max())
	}
	if !(p.Max() > p.Min()) {
		return fmt.Errorf("%w: cannot extend the zero-width curve on [%g, %g]", ErrInvalidConstruction, p.Min(), p.Max())
	}
	if !(c.Max() > p.Max()) {
		return fmt.Errorf("%w: segment on [%g, %g] does not extend the curve past %g", ErrInvalidConstruction, c.Min(), c.Max(), p.Max())
	}
	if order := p.opts.Continuity.Order(); order >= 0 {
		last := p.segments[len(p.segments)-1]
		for k := range order + 1 {
			ok, err := p.joins(last, c, k)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: derivative of order %d differs at t=%g", ErrDiscontinuous, k, p.Max())
			}
		}
	}
	p.segments = append(p.segments, c)
	p.breaks = append(p.breaks, c.Max())
	return nil
}

// Concat appends every segment of o. Either all segments are appended or
// none are.
func (p *Piecewise[T]) Concat(o *Piecewise[T]) error {
	q := p.Clone()
	for i, seg := range o.segments {
		if err := q.Append(seg); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	*p = *q
	return nil
}

// Clone returns a copy of the curve that can be appended to without
// affecting p. Segments are shared; they are immutable.
func (p *Piecewise[T]) Clone() *Piecewise[T] {
	return &Piecewise[T]{
		segments: slices.Clone(p.segments),
		breaks:   slices.Clone(p.breaks),
		opts:     p.opts,
	}
}

func (p *Piecewise[T]) joins(left, right Curve[T], order int) (bool, error) {
	l, err := left.Derivative(left.Max(), order)
	if err != nil {
		return false, err
	}
	r, err := right.Derivative(right.Min(), order)
	if err != nil {
		return false, err
	}
	return l.IsApprox(r, p.opts.Tolerance), nil
}

// Len returns the number of segments.
func (p *Piecewise[T]) Len() int {
	return len(p.segments)
}

func (p *Piecewise[T]) Segment(i int) Curve[T] {
	return p.segments[i]
}

// All iterates over the segments in time order.
func (p *Piecewise[T]) All() iter.Seq2[int, Curve[T]] {
	return slices.All(p.segments)
}

// Breakpoints returns the segment boundaries, from Min to Max.
func (p *Piecewise[T]) Breakpoints() []float64 {
	return slices.Clone(p.breaks)
}

func (p *Piecewise[T]) Min() float64 {
	if len(p.breaks) == 0 {
		return math.NaN()
	}
	return p.breaks[0]
}

func (p *Piecewise[T]) Max() float64 {
	if len(p.breaks) == 0 {
		return math.NaN()
	}
	return p.breaks[len(p.breaks)-1]
}

func (p *Piecewise[T]) Dim() int {
	if len(p.segments) == 0 {
		return 0
	}
	return p.segments[0].Dim()
}

// SegmentIndex returns the index of the segment that is used at time t. t
// is assumed to be within the domain.
func (p *Piecewise[T]) SegmentIndex(t float64) int {
	i := sort.Search(len(p.breaks), func(i int) bool { return p.breaks[i] > t }) - 1
	return min(max(i, 0), len(p.segments)-1)
}

// locate returns the segment for t and t clamped to that segment's own
// domain, which may differ from the breakpoints within the tolerance.
func (p *Piecewise[T]) locate(t float64) (Curve[T], float64, error) {
	if len(p.segments) == 0 {
		return nil, 0, fmt.Errorf("%w: empty piecewise curve", ErrOutOfDomain)
	}
	if err := checkDomain(p, t); err != nil {
		return nil, 0, err
	}
	seg := p.segments[p.SegmentIndex(t)]
	return seg, min(max(t, seg.Min()), seg.Max()), nil
}

func (p *Piecewise[T]) Eval(t float64) (T, error) {
	seg, t, err := p.locate(t)
	if err != nil {
		return *new(T), err
	}
	return seg.Eval(t)
}

func (p *Piecewise[T]) Derivative(t float64, order int) (T, error) {
	if err := checkOrder(order); err != nil {
		return *new(T), err
	}
	seg, t, err := p.locate(t)
	if err != nil {
		return *new(T), err
	}
	return seg.Derivative(t, order)
}

type violation struct {
	t     float64
	order int
}

func (p *Piecewise[T]) violations(order int) ([]violation, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	var out []violation
	for i := 1; i < len(p.segments); i++ {
		for k := 0; k <= order; k++ {
			ok, err := p.joins(p.segments[i-1], p.segments[i], k)
			if err != nil {
				return nil, err
			}
			if !ok {
				out = append(out, violation{t: p.breaks[i], order: k})
				break
			}
		}
	}
	return out, nil
}

// CheckContinuity returns the interior breakpoints at which any derivative
// up to the given order differs between the segments meeting there. An
// empty result means the curve is C^order.
func (p *Piecewise[T]) CheckContinuity(order int) ([]float64, error) {
	vs, err := p.violations(order)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.t
	}
	return out, nil
}

// IsContinuous reports whether the curve is C^order. Evaluation errors count
// as discontinuities.
func (p *Piecewise[T]) IsContinuous(order int) bool {
	vs, err := p.violations(order)
	return err == nil && len(vs) == 0
}

// VerifyContinuity is like [Piecewise.CheckContinuity] but returns one
// [ErrDiscontinuous] per offending breakpoint, combined into a single error.
func (p *Piecewise[T]) VerifyContinuity(order int) error {
	vs, err := p.violations(order)
	if err != nil {
		return err
	}
	for _, v := range vs {
		err = multierr.Append(err, fmt.Errorf("%w: derivative of order %d at t=%g", ErrDiscontinuous, v.order, v.t))
	}
	return err
}
