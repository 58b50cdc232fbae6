package field

import (
	"fmt"
	"math"

	"github.com/ssghost/gocean/internal/grid"
)

// Location is the staggered position of a field within a cell, one Stagger
// per axis.
type Location [3]grid.Stagger

var (
	// CellCenter locates a field at cell centers in all axes (tracers,
	// pressure).
	CellCenter = Location{grid.Center, grid.Center, grid.Center}
	// XFace locates a field at x faces (u velocity).
	XFace = Location{grid.Face, grid.Center, grid.Center}
	// YFace locates a field at y faces (v velocity).
	YFace = Location{grid.Center, grid.Face, grid.Center}
	// ZFace locates a field at z faces (w velocity).
	ZFace = Location{grid.Center, grid.Center, grid.Face}
)

func (l Location) String() string {
	return fmt.Sprintf("(%s, %s, %s)", l[0], l[1], l[2])
}

// Field is a named scalar sample array over the grid at a fixed staggered
// location, stored contiguously with x fastest and including the grid's halo
// margin on every side. Interior indices run over [0, N) per axis; indices in
// [-halo, N+halo) address halo cells.
type Field struct {
	Name string
	Loc  Location

	g    *grid.Grid
	data []float64

	sx, sy, sz int // allocated dims including halo
}

// New allocates a zeroed field on g at the given location.
func New(name string, loc Location, g *grid.Grid) *Field {
	h := g.Halo
	sx, sy, sz := g.Nx+2*h, g.Ny+2*h, g.Nz+2*h
	return &Field{
		Name: name,
		Loc:  loc,
		g:    g,
		data: make([]float64, sx*sy*sz),
		sx:   sx, sy: sy, sz: sz,
	}
}

// Grid returns the grid the field is allocated on.
func (f *Field) Grid() *grid.Grid { return f.g }

// Data exposes the raw sample storage including halo cells.
func (f *Field) Data() []float64 { return f.data }

func (f *Field) index(i, j, k int) int {
	h := f.g.Halo
	return ((k+h)*f.sy+(j+h))*f.sx + (i + h)
}

// At reads the sample at (i, j, k). Halo indices are valid.
func (f *Field) At(i, j, k int) float64 { return f.data[f.index(i, j, k)] }

// Set writes the sample at (i, j, k).
func (f *Field) Set(i, j, k int, v float64) { f.data[f.index(i, j, k)] = v }

// Add accumulates v into the sample at (i, j, k).
func (f *Field) Add(i, j, k int, v float64) { f.data[f.index(i, j, k)] += v }

// Fill sets every sample, halo included, to v.
func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// Zero clears every sample.
func (f *Field) Zero() { f.Fill(0) }

// SetInterior evaluates fn at every interior cell and stores the result.
func (f *Field) SetInterior(fn func(i, j, k int) float64) {
	for k := 0; k < f.g.Nz; k++ {
		for j := 0; j < f.g.Ny; j++ {
			for i := 0; i < f.g.Nx; i++ {
				f.Set(i, j, k, fn(i, j, k))
			}
		}
	}
}

// Clone returns an independent copy of the field sharing the same grid.
func (f *Field) Clone() *Field {
	c := New(f.Name, f.Loc, f.g)
	copy(c.data, f.data)
	return c
}

// Congruent reports whether o has the same shape and staggering as f.
func (f *Field) Congruent(o *Field) bool {
	return f.Loc == o.Loc && f.g.Congruent(o.g)
}

// Valid reports whether every interior sample is finite.
func (f *Field) Valid() bool {
	for k := 0; k < f.g.Nz; k++ {
		for j := 0; j < f.g.Ny; j++ {
			for i := 0; i < f.g.Nx; i++ {
				v := f.At(i, j, k)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return false
				}
			}
		}
	}
	return true
}

// WrapHalo fills the halo margin from the opposite interior edge in every
// axis, imposing periodic boundaries.
func (f *Field) WrapHalo() {
	h := f.g.Halo
	nx, ny, nz := f.g.Nx, f.g.Ny, f.g.Nz

	for k := -h; k < nz+h; k++ {
		for j := -h; j < ny+h; j++ {
			for d := 0; d < h; d++ {
				f.Set(-1-d, j, k, f.At(nx-1-d, j, k))
				f.Set(nx+d, j, k, f.At(d, j, k))
			}
		}
	}
	for k := -h; k < nz+h; k++ {
		for i := -h; i < nx+h; i++ {
			for d := 0; d < h; d++ {
				f.Set(i, -1-d, k, f.At(i, ny-1-d, k))
				f.Set(i, ny+d, k, f.At(i, d, k))
			}
		}
	}
	for j := -h; j < ny+h; j++ {
		for i := -h; i < nx+h; i++ {
			for d := 0; d < h; d++ {
				f.Set(i, j, -1-d, f.At(i, j, nz-1-d))
				f.Set(i, j, nz+d, f.At(i, j, d))
			}
		}
	}
}
