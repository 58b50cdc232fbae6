package forcing

import (
	"fmt"

	"github.com/ssghost/gocean/internal/field"
	"github.com/ssghost/gocean/internal/grid"
)

// ContinuousFunc is the plain continuous call form.
type ContinuousFunc func(x, y, z, t float64) float64

// ContinuousParamFunc is the continuous form with a bound parameter.
type ContinuousParamFunc func(x, y, z, t, p float64) float64

// ContinuousDepFunc is the continuous form receiving dependent-field values
// interpolated to the forcing location, in declared order.
type ContinuousDepFunc func(x, y, z, t float64, deps []float64) float64

// ContinuousDepParamFunc combines dependent fields and a bound parameter.
type ContinuousDepParamFunc func(x, y, z, t float64, deps []float64, p float64) float64

// interpolator maps a dependent field from its native staggered location to
// the forcing's declared location. The stencil is resolved once at
// construction and depends only on the relative offset of the two
// locations.
type interpolator struct {
	name    string
	stencil field.Stencil
}

// ContinuousForcing evaluates a coordinate-space user function at its
// declared staggered location. The invocation strategy, one of four shapes,
// is fixed at construction.
type ContinuousForcing struct {
	loc  field.Location
	deps []interpolator
	call func(x, y, z, t float64, deps []float64) float64
}

// Option adjusts a continuous forcing at construction.
type Option func(*ContinuousForcing)

// AtLocation declares the staggered location the forcing is evaluated at.
// The default is cell-centered in all axes.
func AtLocation(loc field.Location) Option {
	return func(c *ContinuousForcing) { c.loc = loc }
}

// Continuous builds a forcing from a plain func(x, y, z, t).
func Continuous(fn ContinuousFunc, opts ...Option) (*ContinuousForcing, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	c := &ContinuousForcing{
		loc: field.CellCenter,
		call: func(x, y, z, t float64, _ []float64) float64 {
			return fn(x, y, z, t)
		},
	}
	c.apply(opts)
	return c, nil
}

// ContinuousWithParameter binds p as the user function's final argument.
func ContinuousWithParameter(fn ContinuousParamFunc, p float64, opts ...Option) (*ContinuousForcing, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	c := &ContinuousForcing{
		loc: field.CellCenter,
		call: func(x, y, z, t float64, _ []float64) float64 {
			return fn(x, y, z, t, p)
		},
	}
	c.apply(opts)
	return c, nil
}

// ContinuousWithDeps resolves the named fields against the model bundle and
// passes their values, interpolated to the forcing location, to the user
// function in declared order.
func ContinuousWithDeps(fn ContinuousDepFunc, deps []string, fields *field.Bundle, opts ...Option) (*ContinuousForcing, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	c := &ContinuousForcing{
		loc: field.CellCenter,
		call: func(x, y, z, t float64, vals []float64) float64 {
			return fn(x, y, z, t, vals)
		},
	}
	c.apply(opts)
	if err := c.resolveDeps(deps, fields); err != nil {
		return nil, err
	}
	return c, nil
}

// ContinuousWithDepsAndParameter combines dependent fields with a bound
// parameter.
func ContinuousWithDepsAndParameter(fn ContinuousDepParamFunc, deps []string, p float64, fields *field.Bundle, opts ...Option) (*ContinuousForcing, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	c := &ContinuousForcing{
		loc: field.CellCenter,
		call: func(x, y, z, t float64, vals []float64) float64 {
			return fn(x, y, z, t, vals, p)
		},
	}
	c.apply(opts)
	if err := c.resolveDeps(deps, fields); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ContinuousForcing) apply(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func (c *ContinuousForcing) resolveDeps(deps []string, fields *field.Bundle) error {
	if fields == nil {
		return fmt.Errorf("forcing: dependent fields declared without a field bundle")
	}
	c.deps = make([]interpolator, 0, len(deps))
	for _, name := range deps {
		f, ok := fields.Get(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownDependency, name)
		}
		c.deps = append(c.deps, interpolator{
			name:    name,
			stencil: field.InterpStencil(f.Loc, c.loc),
		})
	}
	return nil
}

// Location returns the declared staggered location.
func (c *ContinuousForcing) Location() field.Location { return c.loc }

func (c *ContinuousForcing) At(i, j, k int, g *grid.Grid, clk Clock, fields *field.Bundle) float64 {
	x := g.X(i, c.loc[0])
	y := g.Y(j, c.loc[1])
	z := g.Z(k, c.loc[2])

	var vals []float64
	if len(c.deps) > 0 {
		vals = make([]float64, len(c.deps))
		for n := range c.deps {
			f, _ := fields.Get(c.deps[n].name)
			vals[n] = c.deps[n].stencil.Apply(f, i, j, k)
		}
	}
	return c.call(x, y, z, clk.Time(), vals)
}
