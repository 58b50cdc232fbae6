package sim

import (
	"errors"
	"fmt"
)

// Domain errors for time stepping.
var (
	// ErrInvalidTimeStep indicates a zero or non-finite dt.
	ErrInvalidTimeStep = errors.New("sim: time step must be finite and nonzero")

	// ErrInvalidField indicates NaN or Inf in a field after a kernel update.
	ErrInvalidField = errors.New("sim: field contains NaN or Inf")

	// ErrReservedCoefficient indicates an attempt to persist the euler
	// sentinel as the scheme coefficient.
	ErrReservedCoefficient = errors.New("sim: coefficient -0.5 is reserved for euler stepping")

	// ErrUnknownField indicates a forcing registered for a field the model
	// does not evolve.
	ErrUnknownField = errors.New("sim: unknown evolved field")
)

// StepError carries the step context of a fatal time-step failure. The
// model's fields are left in a step-in-progress state that must not be
// integrated further.
type StepError struct {
	Step    int
	Time    float64
	Field   string
	Wrapped error
}

func (e *StepError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("step %d (t=%g), field %q: %v", e.Step, e.Time, e.Field, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
