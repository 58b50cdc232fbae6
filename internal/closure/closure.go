// Package closure supplies the aggregated explicit tendencies of the
// evolved fields: advection by the resolved velocities plus downgradient
// diffusion with constant coefficients. It plugs into the stepper as its
// tendency collaborator and overwrites the current accumulator set every
// step.
package closure

import (
	"github.com/ssghost/gocean/internal/field"
	"github.com/ssghost/gocean/internal/grid"
	"github.com/ssghost/gocean/internal/sim"
	"github.com/ssghost/gocean/internal/tendency"
)

// ScalarDiffusivity is an isotropic constant-coefficient closure: Nu acts on
// the velocity components, Kappa on every other (tracer) field.
type ScalarDiffusivity struct {
	Nu    float64
	Kappa float64
}

func New(nu, kappa float64) *ScalarDiffusivity {
	return &ScalarDiffusivity{Nu: nu, Kappa: kappa}
}

func isVelocity(name string) bool {
	return name == "u" || name == "v" || name == "w"
}

// ComputeTendencies writes -(U·∇)f + κ∇²f into every accumulator, with
// centered differences and the advecting velocities interpolated to each
// field's staggered location. Requires halos to be current, which the
// stepper's refresh guarantees.
func (c *ScalarDiffusivity) ComputeTendencies(fields *field.Bundle, clk *sim.Clock, g *grid.Grid, tend *tendency.Set) error {
	u, okU := fields.Get("u")
	v, okV := fields.Get("v")
	w, okW := fields.Get("w")
	advect := okU && okV && okW

	dx2, dy2, dz2 := g.Dx()*g.Dx(), g.Dy()*g.Dy(), g.Dz()*g.Dz()

	for _, name := range fields.Names() {
		f, _ := fields.Get(name)
		acc, _ := tend.Field(name)

		diff := c.Kappa
		if isVelocity(name) {
			diff = c.Nu
		}

		var su, sv, sw field.Stencil
		if advect {
			su = field.InterpStencil(u.Loc, f.Loc)
			sv = field.InterpStencil(v.Loc, f.Loc)
			sw = field.InterpStencil(w.Loc, f.Loc)
		}

		acc.SetInterior(func(i, j, k int) float64 {
			lap := (f.At(i+1, j, k)-2*f.At(i, j, k)+f.At(i-1, j, k))/dx2 +
				(f.At(i, j+1, k)-2*f.At(i, j, k)+f.At(i, j-1, k))/dy2 +
				(f.At(i, j, k+1)-2*f.At(i, j, k)+f.At(i, j, k-1))/dz2

			adv := 0.0
			if advect {
				ua := su.Apply(u, i, j, k)
				va := sv.Apply(v, i, j, k)
				wa := sw.Apply(w, i, j, k)
				adv = ua*(f.At(i+1, j, k)-f.At(i-1, j, k))/(2*g.Dx()) +
					va*(f.At(i, j+1, k)-f.At(i, j-1, k))/(2*g.Dy()) +
					wa*(f.At(i, j, k+1)-f.At(i, j, k-1))/(2*g.Dz())
			}

			return -adv + diff*lap
		})
	}
	return nil
}
