// Package pressure enforces incompressibility: it solves a Poisson equation
// for a scalar correction field from the provisional velocity divergence and
// applies its gradient to push the velocities toward a divergence-free
// state.
package pressure

import (
	"fmt"

	"github.com/ssghost/gocean/internal/field"
	"github.com/ssghost/gocean/internal/grid"
	"github.com/ssghost/gocean/internal/sim"
)

const (
	DefaultMaxIters = 200
	DefaultTol      = 1e-8
)

// Jacobi solves ∇²p = ∇·u*/Δt on the periodic domain by Jacobi sweeps,
// stopping at the residual tolerance or the iteration cap,
// whichever comes first. The projection is approximate by construction; the
// residual left at the cap bounds the divergence remaining after
// correction.
type Jacobi struct {
	MaxIters int
	Tol      float64
}

func New(maxIters int, tol float64) (*Jacobi, error) {
	if maxIters < 1 {
		return nil, fmt.Errorf("pressure: iteration cap must be positive, got %d", maxIters)
	}
	if tol < 0 {
		return nil, fmt.Errorf("pressure: tolerance must be nonnegative, got %g", tol)
	}
	return &Jacobi{MaxIters: maxIters, Tol: tol}, nil
}

// Correction returns the cell-centered correction field for the provisional
// velocities. Halos of the provisional components are refreshed here since
// the step's refresh runs only after projection.
func (s *Jacobi) Correction(v sim.Velocity, g *grid.Grid, dt float64) (*field.Field, error) {
	v.U.WrapHalo()
	v.V.WrapHalo()
	v.W.WrapHalo()

	rhs := field.New("rhs", field.CellCenter, g)
	rhs.SetInterior(func(i, j, k int) float64 {
		div := (v.U.At(i+1, j, k)-v.U.At(i, j, k))/g.Dx() +
			(v.V.At(i, j+1, k)-v.V.At(i, j, k))/g.Dy() +
			(v.W.At(i, j, k+1)-v.W.At(i, j, k))/g.Dz()
		return div / dt
	})

	idx2 := 1.0 / (g.Dx() * g.Dx())
	idy2 := 1.0 / (g.Dy() * g.Dy())
	idz2 := 1.0 / (g.Dz() * g.Dz())
	diag := 2 * (idx2 + idy2 + idz2)

	p := field.New("p", field.CellCenter, g)
	next := field.New("p", field.CellCenter, g)

	for iter := 0; iter < s.MaxIters; iter++ {
		p.WrapHalo()
		next.SetInterior(func(i, j, k int) float64 {
			sum := idx2*(p.At(i-1, j, k)+p.At(i+1, j, k)) +
				idy2*(p.At(i, j-1, k)+p.At(i, j+1, k)) +
				idz2*(p.At(i, j, k-1)+p.At(i, j, k+1))
			return (sum - rhs.At(i, j, k)) / diag
		})
		p, next = next, p

		if s.Tol > 0 && s.residual(p, rhs, g) <= s.Tol {
			break
		}
	}

	p.WrapHalo()
	return p, nil
}

// residual returns the max-norm defect of the discrete Poisson equation.
func (s *Jacobi) residual(p, rhs *field.Field, g *grid.Grid) float64 {
	p.WrapHalo()
	dx2, dy2, dz2 := g.Dx()*g.Dx(), g.Dy()*g.Dy(), g.Dz()*g.Dz()
	worst := 0.0
	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				lap := (p.At(i+1, j, k)-2*p.At(i, j, k)+p.At(i-1, j, k))/dx2 +
					(p.At(i, j+1, k)-2*p.At(i, j, k)+p.At(i, j-1, k))/dy2 +
					(p.At(i, j, k+1)-2*p.At(i, j, k)+p.At(i, j, k-1))/dz2
				r := lap - rhs.At(i, j, k)
				if r < 0 {
					r = -r
				}
				if r > worst {
					worst = r
				}
			}
		}
	}
	return worst
}

// ApplyCorrection subtracts Δt times the correction gradient from the
// staggered velocity components.
func (s *Jacobi) ApplyCorrection(v sim.Velocity, p *field.Field, g *grid.Grid, dt float64) error {
	if p == nil {
		return fmt.Errorf("pressure: nil correction field")
	}
	p.WrapHalo()

	v.U.SetInterior(func(i, j, k int) float64 {
		return v.U.At(i, j, k) - dt*(p.At(i, j, k)-p.At(i-1, j, k))/g.Dx()
	})
	v.V.SetInterior(func(i, j, k int) float64 {
		return v.V.At(i, j, k) - dt*(p.At(i, j, k)-p.At(i, j-1, k))/g.Dy()
	})
	v.W.SetInterior(func(i, j, k int) float64 {
		return v.W.At(i, j, k) - dt*(p.At(i, j, k)-p.At(i, j, k-1))/g.Dz()
	})

	v.U.WrapHalo()
	v.V.WrapHalo()
	v.W.WrapHalo()
	return nil
}
