package sim

import (
	"fmt"

	"github.com/ssghost/gocean/internal/compute"
	"github.com/ssghost/gocean/internal/field"
	"github.com/ssghost/gocean/internal/forcing"
	"github.com/ssghost/gocean/internal/grid"
	"github.com/ssghost/gocean/internal/tendency"
)

const (
	// DefaultChi is the default blending coefficient of the multistep
	// scheme. Chi 0 is the classical second-order Adams-Bashforth blend.
	DefaultChi = 0.1

	// EulerChi makes the update weights degenerate to (1, 0), a plain
	// forward Euler step. Used transiently by the stepper, never persisted.
	EulerChi = -0.5
)

// TendencyComputer supplies the aggregated explicit tendency of every
// evolved field for the current step, overwriting the set's content.
// Closure physics (advection, diffusion) plugs in here.
type TendencyComputer interface {
	ComputeTendencies(fields *field.Bundle, clk *Clock, g *grid.Grid, tend *tendency.Set) error
}

// Velocity groups the staggered velocity components subject to pressure
// projection.
type Velocity struct {
	U, V, W *field.Field
}

// Solver is the pressure-correction collaborator: Correction produces a
// scalar correction field from the provisional velocities, ApplyCorrection
// nudges them toward a divergence-free state.
type Solver interface {
	Correction(v Velocity, g *grid.Grid, dt float64) (*field.Field, error)
	ApplyCorrection(v Velocity, p *field.Field, g *grid.Grid, dt float64) error
}

// Refresher restores state consistency (halo regions, derived quantities)
// after fields change. Refresh must be idempotent: it runs before the very
// first step and after every step.
type Refresher interface {
	Refresh(m *Model) error
}

// Model owns all mutable time-stepping state: the evolved fields, both
// tendency buffers, and the clock. Everything is reachable only through the
// model instance; there are no package-level singletons.
type Model struct {
	Grid       *grid.Grid
	Fields     *field.Bundle
	Tendencies *tendency.Pair
	Clock      *Clock

	chi       float64
	forcings  map[string][]forcing.Forcing
	closure   TendencyComputer
	pressure  Solver
	refresher Refresher
	backend   compute.Backend
}

// NewModel assembles a model around the evolved-field bundle. Tendency
// buffers are allocated zeroed and congruent with the bundle; the refresher
// defaults to periodic halo filling and the backend to the process default.
func NewModel(g *grid.Grid, fields *field.Bundle) (*Model, error) {
	if g == nil {
		return nil, fmt.Errorf("sim: nil grid")
	}
	if fields == nil || fields.Len() == 0 {
		return nil, fmt.Errorf("sim: model must evolve at least one field")
	}
	pair, err := tendency.NewPair(fields)
	if err != nil {
		return nil, err
	}
	if err := pair.Curr.Congruent(fields); err != nil {
		return nil, err
	}
	return &Model{
		Grid:       g,
		Fields:     fields,
		Tendencies: pair,
		Clock:      NewClock(),
		chi:        DefaultChi,
		forcings:   make(map[string][]forcing.Forcing),
		refresher:  PeriodicRefresher{},
		backend:    compute.GetBackend(),
	}, nil
}

// SetCoefficient persists the scheme coefficient. The euler sentinel is
// rejected; euler stepping is requested per call on Stepper.Advance.
func (m *Model) SetCoefficient(chi float64) error {
	if chi == EulerChi {
		return ErrReservedCoefficient
	}
	m.chi = chi
	return nil
}

// Coefficient returns the persisted scheme coefficient.
func (m *Model) Coefficient() float64 { return m.chi }

// SetClosure installs the closure-physics tendency collaborator.
func (m *Model) SetClosure(c TendencyComputer) { m.closure = c }

// SetPressureSolver installs the pressure-projection collaborator. Without
// one, the projection stage is skipped (tracer-only models).
func (m *Model) SetPressureSolver(s Solver) { m.pressure = s }

// SetRefresher replaces the state-refresh collaborator.
func (m *Model) SetRefresher(r Refresher) { m.refresher = r }

// SetBackend selects the execution target for kernel dispatch. Resolved
// once at configuration time, not per step.
func (m *Model) SetBackend(b compute.Backend) { m.backend = b }

// Backend returns the configured execution target.
func (m *Model) Backend() compute.Backend { return m.backend }

// AddForcing registers a forcing contribution for the named evolved field.
func (m *Model) AddForcing(name string, f forcing.Forcing) error {
	if _, ok := m.Fields.Get(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	m.forcings[name] = append(m.forcings[name], f)
	return nil
}

// Velocity returns the model's velocity components, identified by the
// conventional names u, v, w. ok is false unless all three are evolved.
func (m *Model) Velocity() (Velocity, bool) {
	u, okU := m.Fields.Get("u")
	v, okV := m.Fields.Get("v")
	w, okW := m.Fields.Get("w")
	if !okU || !okV || !okW {
		return Velocity{}, false
	}
	return Velocity{U: u, V: v, W: w}, true
}

// PeriodicRefresher fills every evolved field's halo from the opposite
// interior edge, imposing doubly/triply periodic boundaries. Idempotent.
type PeriodicRefresher struct{}

func (PeriodicRefresher) Refresh(m *Model) error {
	for _, f := range m.Fields.Fields() {
		f.WrapHalo()
	}
	return nil
}
