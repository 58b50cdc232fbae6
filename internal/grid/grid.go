package grid

import "fmt"

// Stagger identifies where along an axis a quantity is sampled.
type Stagger int

const (
	// Center samples at the midpoint of a cell.
	Center Stagger = iota
	// Face samples at the lower face of a cell.
	Face
)

func (s Stagger) String() string {
	switch s {
	case Center:
		return "center"
	case Face:
		return "face"
	default:
		return fmt.Sprintf("stagger(%d)", int(s))
	}
}

// Grid is a regular rectilinear grid with a halo of ghost cells on every
// side. Interior indices run over [0, N) per axis; halo indices extend that
// range by the halo width in both directions. Face i sits at x0 + i*dx and
// center i at x0 + (i+0.5)*dx, so face i is the lower boundary of cell i.
// A Grid is immutable after construction.
type Grid struct {
	Nx, Ny, Nz int
	Halo       int

	Lx, Ly, Lz float64
	X0, Y0, Z0 float64

	dx, dy, dz float64
}

// New builds a grid with nx*ny*nz interior cells covering extents lx, ly, lz
// from the origin, with a one-cell halo.
func New(nx, ny, nz int, lx, ly, lz float64) (*Grid, error) {
	return NewWithHalo(nx, ny, nz, lx, ly, lz, 1)
}

// NewWithHalo is New with an explicit halo width.
func NewWithHalo(nx, ny, nz int, lx, ly, lz float64, halo int) (*Grid, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("grid: extents must be positive, got %dx%dx%d", nx, ny, nz)
	}
	if lx <= 0 || ly <= 0 || lz <= 0 {
		return nil, fmt.Errorf("grid: domain lengths must be positive, got %g, %g, %g", lx, ly, lz)
	}
	if halo < 1 {
		return nil, fmt.Errorf("grid: halo width must be at least 1, got %d", halo)
	}
	return &Grid{
		Nx: nx, Ny: ny, Nz: nz,
		Halo: halo,
		Lx:   lx, Ly: ly, Lz: lz,
		dx: lx / float64(nx),
		dy: ly / float64(ny),
		dz: lz / float64(nz),
	}, nil
}

func (g *Grid) Dx() float64 { return g.dx }
func (g *Grid) Dy() float64 { return g.dy }
func (g *Grid) Dz() float64 { return g.dz }

// Cells reports the number of interior cells.
func (g *Grid) Cells() int { return g.Nx * g.Ny * g.Nz }

// X returns the physical x coordinate of index i at the given staggering.
// Halo indices are valid and extrapolate the regular spacing.
func (g *Grid) X(i int, s Stagger) float64 { return coord(g.X0, g.dx, i, s) }

// Y returns the physical y coordinate of index j at the given staggering.
func (g *Grid) Y(j int, s Stagger) float64 { return coord(g.Y0, g.dy, j, s) }

// Z returns the physical z coordinate of index k at the given staggering.
func (g *Grid) Z(k int, s Stagger) float64 { return coord(g.Z0, g.dz, k, s) }

func coord(origin, spacing float64, i int, s Stagger) float64 {
	if s == Face {
		return origin + float64(i)*spacing
	}
	return origin + (float64(i)+0.5)*spacing
}

// Congruent reports whether two grids have identical extents, halo and
// spacing. Fields built on congruent grids are interchangeable in shape.
func (g *Grid) Congruent(o *Grid) bool {
	return g.Nx == o.Nx && g.Ny == o.Ny && g.Nz == o.Nz &&
		g.Halo == o.Halo &&
		g.dx == o.dx && g.dy == o.dy && g.dz == o.dz
}

func (g *Grid) String() string {
	return fmt.Sprintf("%dx%dx%d grid (halo %d, spacing %g x %g x %g)",
		g.Nx, g.Ny, g.Nz, g.Halo, g.dx, g.dy, g.dz)
}
