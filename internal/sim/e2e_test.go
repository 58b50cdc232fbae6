package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ssghost/gocean/internal/field"
	"github.com/ssghost/gocean/internal/grid"
	"github.com/ssghost/gocean/internal/sim"
	"github.com/ssghost/gocean/internal/tendency"
)

type unitTendency struct{}

func (unitTendency) ComputeTendencies(fields *field.Bundle, clk *sim.Clock, g *grid.Grid, tend *tendency.Set) error {
	for _, f := range tend.Fields() {
		f.SetInterior(func(i, j, k int) float64 { return 1 })
	}
	return nil
}

var _ = Describe("one-field end-to-end step", func() {
	var (
		m *sim.Model
		s *sim.Stepper
	)

	BeforeEach(func() {
		g, err := grid.New(4, 1, 1, 4, 1, 1)
		Expect(err).NotTo(HaveOccurred())

		fields, err := field.NewBundle(field.New("c", field.CellCenter, g))
		Expect(err).NotTo(HaveOccurred())

		m, err = sim.NewModel(g, fields)
		Expect(err).NotTo(HaveOccurred())
		m.SetClosure(unitTendency{})

		s = sim.NewStepper()
	})

	It("advances a 4-cell tracer by exactly 1.6 per cell", func() {
		Expect(s.Advance(m, 1.0, false)).To(Succeed())

		c, ok := m.Fields.Get("c")
		Expect(ok).To(BeTrue())
		for i := 0; i < 4; i++ {
			Expect(c.At(i, 0, 0)).To(Equal(1.6))
		}
	})

	It("increments the iteration counter from 0 to 1", func() {
		Expect(m.Clock.Iteration()).To(Equal(0))
		Expect(s.Advance(m, 1.0, false)).To(Succeed())
		Expect(m.Clock.Iteration()).To(Equal(1))
		Expect(m.Clock.Time()).To(Equal(1.0))
	})

	It("leaves the step's tendencies in the previous set", func() {
		Expect(s.Advance(m, 1.0, false)).To(Succeed())

		prev, ok := m.Tendencies.Prev.Field("c")
		Expect(ok).To(BeTrue())
		for i := 0; i < 4; i++ {
			Expect(prev.At(i, 0, 0)).To(Equal(1.0))
		}
	})

	It("keeps previous tendencies equal to the last computed set over many steps", func() {
		for n := 0; n < 5; n++ {
			Expect(s.Advance(m, 0.5, false)).To(Succeed())
			prev, _ := m.Tendencies.Prev.Field("c")
			Expect(prev.At(2, 0, 0)).To(Equal(1.0))
		}
		Expect(m.Clock.Iteration()).To(Equal(5))
	})
})
