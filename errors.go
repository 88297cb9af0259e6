package curves

import "errors"

// Sentinel errors returned by constructors and evaluators. They are wrapped
// with additional context, so compare them with [errors.Is].
var (
	// ErrOutOfDomain is returned when a curve is evaluated outside of
	// [Min, Max]. Times are never clamped.
	ErrOutOfDomain = errors.New("curves: time out of domain")

	// ErrDimensionMismatch is returned when values of different dimensions,
	// or linear variables over different numbers of unknowns, are combined.
	ErrDimensionMismatch = errors.New("curves: dimension mismatch")

	// ErrDegreeMismatch is returned when two Béziers of different degree are
	// concatenated.
	ErrDegreeMismatch = errors.New("curves: degree mismatch")

	// ErrDiscontinuousDomain is returned when a segment appended to a
	// piecewise curve does not start where the curve ends.
	ErrDiscontinuousDomain = errors.New("curves: discontinuous domain")

	// ErrDiscontinuous is returned when a continuity requirement is violated
	// at a junction.
	ErrDiscontinuous = errors.New("curves: continuity violated")

	// ErrSingularSystem is returned when a spline's linear system has no
	// unique solution, typically because of repeated or unordered times.
	ErrSingularSystem = errors.New("curves: singular system")

	// ErrInvalidConstruction is returned for arguments that cannot describe
	// a curve, such as an empty control point list or an inverted domain.
	ErrInvalidConstruction = errors.New("curves: invalid construction")

	// ErrDomainMismatch is returned when curves that must share a domain do
	// not.
	ErrDomainMismatch = errors.New("curves: domain mismatch")

	// ErrInvalidOrder is returned for derivative orders that are negative or
	// meaningless for the curve.
	ErrInvalidOrder = errors.New("curves: invalid derivative order")
)
