package sim

import (
	"fmt"
	"math"
)

// Stepper advances a model through one time step at a time: tendency
// computation, explicit multistep advance, pressure projection, clock
// advance and tendency-buffer rotation, in that strict order. Steps are
// atomic: any stage failure aborts the step and is fatal to the
// integration.
type Stepper struct{}

func NewStepper() *Stepper {
	return &Stepper{}
}

// Advance performs one full model step of size dt. With euler set, the
// update uses the sentinel coefficient so the multistep weights collapse to
// a plain forward Euler step regardless of the persisted coefficient.
func (s *Stepper) Advance(m *Model, dt float64, euler bool) error {
	if dt == 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidTimeStep, dt)
	}

	// No caller may be relied upon to have refreshed state before the
	// first step.
	if m.Clock.Iteration() == 0 {
		if err := m.refresher.Refresh(m); err != nil {
			return s.fail(m, "", err)
		}
	}

	if err := s.computeTendencies(m); err != nil {
		return s.fail(m, "", err)
	}

	chi := m.chi
	if euler {
		chi = EulerChi
	}

	if err := s.dispatch(m, dt, chi); err != nil {
		return err
	}

	if m.pressure != nil {
		if vel, ok := m.Velocity(); ok {
			p, err := m.pressure.Correction(vel, m.Grid, dt)
			if err != nil {
				return s.fail(m, "", fmt.Errorf("pressure correction: %w", err))
			}
			if err := m.pressure.ApplyCorrection(vel, p, m.Grid, dt); err != nil {
				return s.fail(m, "", fmt.Errorf("pressure correction: %w", err))
			}
		}
	}

	m.Clock.Advance(dt)

	if err := m.refresher.Refresh(m); err != nil {
		return s.fail(m, "", err)
	}

	m.Tendencies.Rotate()
	return nil
}

// computeTendencies materializes the current tendency set: the closure
// collaborator overwrites it, then every registered forcing accumulates its
// contribution. All of this completes before any kernel reads the set.
func (s *Stepper) computeTendencies(m *Model) error {
	if m.closure != nil {
		if err := m.closure.ComputeTendencies(m.Fields, m.Clock, m.Grid, m.Tendencies.Curr); err != nil {
			return err
		}
	} else {
		m.Tendencies.Curr.Zero()
	}

	g := m.Grid
	nx, ny := g.Nx, g.Ny
	for _, name := range m.Fields.Names() {
		fs := m.forcings[name]
		if len(fs) == 0 {
			continue
		}
		acc, ok := m.Tendencies.Curr.Field(name)
		if !ok {
			return fmt.Errorf("%w: no tendency accumulator for %q", ErrUnknownField, name)
		}
		for _, f := range fs {
			f := f
			m.backend.ParallelFor(g.Cells(), minCellsPerChunk, func(start, end int) {
				for c := start; c < end; c++ {
					i := c % nx
					j := (c / nx) % ny
					k := c / (nx * ny)
					acc.Add(i, j, k, f.At(i, j, k, g, m.Clock, m.Fields))
				}
			})
		}
	}
	return nil
}

func (s *Stepper) fail(m *Model, fieldName string, err error) error {
	return &StepError{
		Step:    m.Clock.Iteration(),
		Time:    m.Clock.Time(),
		Field:   fieldName,
		Wrapped: err,
	}
}
