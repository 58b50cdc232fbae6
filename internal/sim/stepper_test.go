package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/ssghost/gocean/internal/field"
	"github.com/ssghost/gocean/internal/forcing"
	"github.com/ssghost/gocean/internal/grid"
	"github.com/ssghost/gocean/internal/tendency"
)

// constTendency overwrites every accumulator with a fixed value.
type constTendency struct {
	value float64
}

func (c constTendency) ComputeTendencies(fields *field.Bundle, clk *Clock, g *grid.Grid, tend *tendency.Set) error {
	for _, f := range tend.Fields() {
		f.SetInterior(func(i, j, k int) float64 { return c.value })
	}
	return nil
}

func tracerModel(t *testing.T, nx int) *Model {
	t.Helper()
	g, err := grid.New(nx, 1, 1, float64(nx), 1, 1)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	fields, err := field.NewBundle(field.New("c", field.CellCenter, g))
	if err != nil {
		t.Fatalf("new bundle: %v", err)
	}
	m, err := NewModel(g, fields)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func TestAdvanceMultistepDelta(t *testing.T) {
	// Gn=1, Gprev=0, chi=0.1, dt=1 must change every cell by exactly 1.6.
	m := tracerModel(t, 4)
	m.SetClosure(constTendency{value: 1})

	if err := NewStepper().Advance(m, 1.0, false); err != nil {
		t.Fatalf("advance: %v", err)
	}

	c, _ := m.Fields.Get("c")
	for i := 0; i < 4; i++ {
		if got := c.At(i, 0, 0); got != 1.6 {
			t.Errorf("cell %d: expected 1.6, got %g", i, got)
		}
	}
}

func TestAdvanceEulerOverride(t *testing.T) {
	// With euler requested the delta is dt*Gn exactly, independent of Gprev
	// and of the persisted coefficient: Gn=2, Gprev=100, dt=0.5 gives 1.0.
	m := tracerModel(t, 4)
	m.SetClosure(constTendency{value: 2})
	prev, _ := m.Tendencies.Prev.Field("c")
	prev.Fill(100)

	if err := NewStepper().Advance(m, 0.5, true); err != nil {
		t.Fatalf("advance: %v", err)
	}

	c, _ := m.Fields.Get("c")
	if got := c.At(2, 0, 0); got != 1.0 {
		t.Errorf("expected 1.0, got %g", got)
	}
	if m.Coefficient() != DefaultChi {
		t.Errorf("euler step persisted the sentinel: chi=%g", m.Coefficient())
	}
}

func TestAdvanceUsesPreviousTendency(t *testing.T) {
	m := tracerModel(t, 2)
	m.SetClosure(constTendency{value: 1})
	prev, _ := m.Tendencies.Prev.Field("c")
	prev.Fill(1)

	if err := NewStepper().Advance(m, 1.0, false); err != nil {
		t.Fatalf("advance: %v", err)
	}

	// (1.5+0.1)*1 - (0.5+0.1)*1 = 1.0
	c, _ := m.Fields.Get("c")
	if got := c.At(0, 0, 0); math.Abs(got-1.0) > 1e-15 {
		t.Errorf("expected 1.0, got %g", got)
	}
}

func TestBufferRotation(t *testing.T) {
	m := tracerModel(t, 4)
	m.SetClosure(constTendency{value: 3})

	curr := m.Tendencies.Curr
	if err := NewStepper().Advance(m, 1.0, false); err != nil {
		t.Fatalf("advance: %v", err)
	}

	if m.Tendencies.Prev != curr {
		t.Fatal("previous set is not the set computed this step")
	}
	g, _ := m.Tendencies.Prev.Field("c")
	if g.At(1, 0, 0) != 3 {
		t.Errorf("rotated tendency lost values: got %g", g.At(1, 0, 0))
	}
}

func TestAdvanceRejectsInvalidDt(t *testing.T) {
	m := tracerModel(t, 2)
	s := NewStepper()

	tests := []struct {
		name string
		dt   float64
	}{
		{"zero", 0},
		{"nan", math.NaN()},
		{"positive inf", math.Inf(1)},
		{"negative inf", math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Advance(m, tt.dt, false); !errors.Is(err, ErrInvalidTimeStep) {
				t.Errorf("expected ErrInvalidTimeStep, got %v", err)
			}
		})
	}

	// Negative dt integrates backward and is allowed.
	m.SetClosure(constTendency{value: 1})
	if err := s.Advance(m, -0.1, false); err != nil {
		t.Errorf("negative dt rejected: %v", err)
	}
}

func TestNaNForcingIsFatalWithContext(t *testing.T) {
	m := tracerModel(t, 4)
	f, err := forcing.Discrete(func(i, j, k int, g *grid.Grid, clk forcing.Clock, fields *field.Bundle) float64 {
		return math.NaN()
	})
	if err != nil {
		t.Fatalf("discrete: %v", err)
	}
	if err := m.AddForcing("c", f); err != nil {
		t.Fatalf("add forcing: %v", err)
	}

	err = NewStepper().Advance(m, 1.0, false)
	if !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatal("expected a StepError")
	}
	if stepErr.Field != "c" {
		t.Errorf("expected field context %q, got %q", "c", stepErr.Field)
	}
	if stepErr.Step != 0 {
		t.Errorf("expected step 0, got %d", stepErr.Step)
	}
}

func TestAddForcingUnknownField(t *testing.T) {
	m := tracerModel(t, 2)
	f, _ := forcing.Discrete(func(i, j, k int, g *grid.Grid, clk forcing.Clock, fields *field.Bundle) float64 {
		return 0
	})
	if err := m.AddForcing("missing", f); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestSetCoefficientRejectsSentinel(t *testing.T) {
	m := tracerModel(t, 2)
	if err := m.SetCoefficient(EulerChi); !errors.Is(err, ErrReservedCoefficient) {
		t.Errorf("expected ErrReservedCoefficient, got %v", err)
	}
	if err := m.SetCoefficient(0); err != nil {
		t.Errorf("chi 0 rejected: %v", err)
	}
	if m.Coefficient() != 0 {
		t.Errorf("coefficient not persisted: %g", m.Coefficient())
	}
}

// orderRecorder tracks the collaborator call sequence of a step.
type orderRecorder struct {
	calls []string
}

func (r *orderRecorder) ComputeTendencies(fields *field.Bundle, clk *Clock, g *grid.Grid, tend *tendency.Set) error {
	r.calls = append(r.calls, "tendencies")
	tend.Zero()
	return nil
}

func (r *orderRecorder) Refresh(m *Model) error {
	r.calls = append(r.calls, "refresh")
	return nil
}

type recordingSolver struct {
	rec *orderRecorder
}

func (s recordingSolver) Correction(v Velocity, g *grid.Grid, dt float64) (*field.Field, error) {
	s.rec.calls = append(s.rec.calls, "correction")
	return field.New("p", field.CellCenter, g), nil
}

func (s recordingSolver) ApplyCorrection(v Velocity, p *field.Field, g *grid.Grid, dt float64) error {
	s.rec.calls = append(s.rec.calls, "apply")
	return nil
}

func TestStepSequence(t *testing.T) {
	g, err := grid.New(2, 2, 2, 1, 1, 1)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	fields, _ := field.NewBundle(
		field.New("u", field.XFace, g),
		field.New("v", field.YFace, g),
		field.New("w", field.ZFace, g),
	)
	m, err := NewModel(g, fields)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	rec := &orderRecorder{}
	m.SetClosure(rec)
	m.SetRefresher(rec)
	m.SetPressureSolver(recordingSolver{rec: rec})

	s := NewStepper()
	if err := s.Advance(m, 0.1, false); err != nil {
		t.Fatalf("first advance: %v", err)
	}

	// First step refreshes up front; later steps must not.
	want := []string{"refresh", "tendencies", "correction", "apply", "refresh"}
	if len(rec.calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, rec.calls)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("call %d: expected %q, got %q (full: %v)", i, want[i], rec.calls[i], rec.calls)
		}
	}

	rec.calls = nil
	if err := s.Advance(m, 0.1, false); err != nil {
		t.Fatalf("second advance: %v", err)
	}
	want = []string{"tendencies", "correction", "apply", "refresh"}
	if len(rec.calls) != len(want) {
		t.Fatalf("second step: expected %v, got %v", want, rec.calls)
	}

	if m.Clock.Iteration() != 2 {
		t.Errorf("iteration: expected 2, got %d", m.Clock.Iteration())
	}
	if math.Abs(m.Clock.Time()-0.2) > 1e-15 {
		t.Errorf("time: expected 0.2, got %g", m.Clock.Time())
	}
}
