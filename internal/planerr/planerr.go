// Package planerr defines the error taxonomy shared by every map
// builder and planner in the core. Every failure mode the planning
// engine can hit is an explicit *PlanError value; nothing here panics
// or signals failure through an in-band sentinel path.
package planerr

import "fmt"

// Kind classifies why a planning or map-building operation failed.
type Kind int

const (
	// InvalidGeometry: an obstacle polygon has fewer than three
	// vertices, or is not convex/counter-clockwise.
	InvalidGeometry Kind = iota
	// OutOfBounds: start or goal lies inside an inflated obstacle, or
	// outside the workspace bounds.
	OutOfBounds
	// Infeasible: the search exhausted its open list without reaching
	// the goal, or the goal's cost stayed at +Inf.
	Infeasible
	// LocalMinimum: potential-field gradient descent stalled outside
	// goal tolerance.
	LocalMinimum
	// IterationCapExceeded: an incremental planner hit its iteration
	// cap before converging.
	IterationCapExceeded
)

func (k Kind) String() string {
	switch k {
	case InvalidGeometry:
		return "InvalidGeometry"
	case OutOfBounds:
		return "OutOfBounds"
	case Infeasible:
		return "Infeasible"
	case LocalMinimum:
		return "LocalMinimum"
	case IterationCapExceeded:
		return "IterationCapExceeded"
	default:
		return "Unknown"
	}
}

// PlanError is the concrete error value returned for every failure
// kind above.
type PlanError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *PlanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match on Kind alone, so callers can write
// errors.Is(err, planerr.New(planerr.Infeasible, "")) without caring
// about message text.
func (e *PlanError) Is(target error) bool {
	t, ok := target.(*PlanError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs a PlanError with no wrapped cause.
func New(kind Kind, msg string) *PlanError {
	return &PlanError{Kind: kind, Msg: msg}
}

// Wrap constructs a PlanError that wraps an underlying cause.
func Wrap(kind Kind, msg string, err error) *PlanError {
	return &PlanError{Kind: kind, Msg: msg, Err: err}
}
