// Package forcing evaluates user-supplied source terms contributing to field
// tendencies. Two variants exist: Discrete forcings receive raw grid indices
// and field data, Continuous forcings receive physical coordinates with
// dependent fields interpolated to the forcing's declared staggered location.
// In both variants the call shape, which optional arguments are present, is
// resolved once at construction and never re-decided per invocation.
package forcing

import (
	"errors"

	"github.com/ssghost/gocean/internal/field"
	"github.com/ssghost/gocean/internal/grid"
)

var (
	// ErrNilFunc reports a forcing constructed without a function.
	ErrNilFunc = errors.New("forcing: nil user function")

	// ErrUnknownDependency reports a dependent-field name absent from the
	// model's field bundle.
	ErrUnknownDependency = errors.New("forcing: unknown dependent field")
)

// Clock exposes the simulation time seen by forcing functions.
type Clock interface {
	Time() float64
	Iteration() int
}

// Forcing produces one scalar tendency contribution per interior cell. The
// tendency-computation phase calls At for every cell of the target field.
type Forcing interface {
	At(i, j, k int, g *grid.Grid, clk Clock, fields *field.Bundle) float64
}

// DiscreteFunc is the parameterless discrete call form. The function receives
// raw field data at the given index and owns any offset or boundary
// semantics itself.
type DiscreteFunc func(i, j, k int, g *grid.Grid, clk Clock, fields *field.Bundle) float64

// DiscreteParamFunc is the discrete call form with a bound parameter
// appended as the final argument.
type DiscreteParamFunc func(i, j, k int, g *grid.Grid, clk Clock, fields *field.Bundle, p float64) float64

// DiscreteForcing invokes a user function on raw grid indices. Whether the
// 6-argument or 7-argument form is used is fixed by which constructor built
// it.
type DiscreteForcing struct {
	call DiscreteFunc
}

// Discrete builds a discrete forcing with no bound parameter.
func Discrete(fn DiscreteFunc) (*DiscreteForcing, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	return &DiscreteForcing{call: fn}, nil
}

// DiscreteWithParameter builds a discrete forcing that always appends p to
// the user function's arguments.
func DiscreteWithParameter(fn DiscreteParamFunc, p float64) (*DiscreteForcing, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	return &DiscreteForcing{
		call: func(i, j, k int, g *grid.Grid, clk Clock, fields *field.Bundle) float64 {
			return fn(i, j, k, g, clk, fields, p)
		},
	}, nil
}

func (d *DiscreteForcing) At(i, j, k int, g *grid.Grid, clk Clock, fields *field.Bundle) float64 {
	return d.call(i, j, k, g, clk, fields)
}
