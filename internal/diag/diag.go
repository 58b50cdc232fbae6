// Package diag computes scalar diagnostics of the flow state, consumed by
// the CLI, the live monitor and tests.
package diag

import (
	"math"

	"github.com/ssghost/gocean/internal/field"
	"github.com/ssghost/gocean/internal/grid"
	"github.com/ssghost/gocean/internal/sim"
)

// KineticEnergy integrates 0.5*(u²+v²+w²) over the domain, with the
// staggered components interpolated to cell centers. Requires current halos.
func KineticEnergy(v sim.Velocity, g *grid.Grid) float64 {
	su := field.InterpStencil(v.U.Loc, field.CellCenter)
	sv := field.InterpStencil(v.V.Loc, field.CellCenter)
	sw := field.InterpStencil(v.W.Loc, field.CellCenter)

	dV := g.Dx() * g.Dy() * g.Dz()
	total := 0.0
	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				ua := su.Apply(v.U, i, j, k)
				va := sv.Apply(v.V, i, j, k)
				wa := sw.Apply(v.W, i, j, k)
				total += 0.5 * (ua*ua + va*va + wa*wa) * dV
			}
		}
	}
	return total
}

// MaxDivergence returns the largest magnitude of the discrete divergence
// over all cell centers. Requires current halos.
func MaxDivergence(v sim.Velocity, g *grid.Grid) float64 {
	maxDiv := 0.0
	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				d := Divergence(v, g, i, j, k)
				if a := math.Abs(d); a > maxDiv {
					maxDiv = a
				}
			}
		}
	}
	return maxDiv
}

// Divergence evaluates the discrete divergence at cell (i, j, k) from the
// face-staggered velocity components.
func Divergence(v sim.Velocity, g *grid.Grid, i, j, k int) float64 {
	return (v.U.At(i+1, j, k)-v.U.At(i, j, k))/g.Dx() +
		(v.V.At(i, j+1, k)-v.V.At(i, j, k))/g.Dy() +
		(v.W.At(i, j, k+1)-v.W.At(i, j, k))/g.Dz()
}

// CFL returns the advective Courant number max(|u|/dx+|v|/dy+|w|/dz)*dt.
func CFL(v sim.Velocity, g *grid.Grid, dt float64) float64 {
	maxRate := 0.0
	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				r := math.Abs(v.U.At(i, j, k))/g.Dx() +
					math.Abs(v.V.At(i, j, k))/g.Dy() +
					math.Abs(v.W.At(i, j, k))/g.Dz()
				if r > maxRate {
					maxRate = r
				}
			}
		}
	}
	return maxRate * math.Abs(dt)
}
