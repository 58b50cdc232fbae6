package grid

import (
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name       string
		nx, ny, nz int
		lx, ly, lz float64
	}{
		{"zero nx", 0, 4, 4, 1, 1, 1},
		{"negative ny", 4, -1, 4, 1, 1, 1},
		{"zero length", 4, 4, 4, 0, 1, 1},
		{"negative length", 4, 4, 4, 1, 1, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.nx, tt.ny, tt.nz, tt.lx, tt.ly, tt.lz); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSpacing(t *testing.T) {
	g, err := New(10, 20, 40, 1.0, 1.0, 2.0)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}

	if g.Dx() != 0.1 {
		t.Errorf("dx: expected 0.1, got %g", g.Dx())
	}
	if g.Dy() != 0.05 {
		t.Errorf("dy: expected 0.05, got %g", g.Dy())
	}
	if g.Dz() != 0.05 {
		t.Errorf("dz: expected 0.05, got %g", g.Dz())
	}
	if g.Cells() != 8000 {
		t.Errorf("cells: expected 8000, got %d", g.Cells())
	}
}

func TestCoordinates(t *testing.T) {
	g, err := New(4, 4, 4, 4.0, 4.0, 4.0)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"face 0", g.X(0, Face), 0.0},
		{"face 2", g.X(2, Face), 2.0},
		{"center 0", g.X(0, Center), 0.5},
		{"center 3", g.Z(3, Center), 3.5},
		{"halo face", g.Y(-1, Face), -1.0},
		{"halo center", g.Y(-1, Center), -0.5},
		{"upper halo", g.X(4, Face), 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-15 {
				t.Errorf("expected %g, got %g", tt.want, tt.got)
			}
		})
	}
}

func TestCenterIsFaceMidpoint(t *testing.T) {
	g, _ := New(8, 8, 8, 3.0, 3.0, 3.0)
	for i := 0; i < 8; i++ {
		mid := 0.5 * (g.X(i, Face) + g.X(i+1, Face))
		if math.Abs(g.X(i, Center)-mid) > 1e-15 {
			t.Errorf("center %d: expected midpoint %g, got %g", i, mid, g.X(i, Center))
		}
	}
}

func TestCongruent(t *testing.T) {
	a, _ := New(4, 4, 4, 1, 1, 1)
	b, _ := New(4, 4, 4, 1, 1, 1)
	c, _ := New(4, 4, 8, 1, 1, 1)

	if !a.Congruent(b) {
		t.Error("identical grids reported incongruent")
	}
	if a.Congruent(c) {
		t.Error("different extents reported congruent")
	}
}
