package field

import "github.com/ssghost/gocean/internal/grid"

// Tap is one sample of an interpolation stencil: a relative index offset
// and its weight.
type Tap struct {
	Di, Dj, Dk int
	W          float64
}

// Stencil linearly interpolates samples from one staggered location to
// another. For affine data the two-point averages reproduce the exact value
// at the target location.
type Stencil []Tap

// InterpStencil builds the stencil translating from location "from" to
// location "to". Axes with matching staggering pass through; a face-sampled
// value reaches the center of cell i as the average of faces i and i+1, and
// a center-sampled value reaches face i as the average of centers i-1 and i.
// The stencil depends only on the relative offset of the two locations and
// is meant to be resolved once, not per call.
func InterpStencil(from, to Location) Stencil {
	taps := Stencil{{0, 0, 0, 1.0}}
	for axis := 0; axis < 3; axis++ {
		if from[axis] == to[axis] {
			continue
		}
		lo, hi := 0, 1
		if from[axis] == grid.Center { // center to face
			lo, hi = -1, 0
		}
		next := make(Stencil, 0, 2*len(taps))
		for _, t := range taps {
			for _, d := range [2]int{lo, hi} {
				nt := t
				nt.W *= 0.5
				switch axis {
				case 0:
					nt.Di += d
				case 1:
					nt.Dj += d
				case 2:
					nt.Dk += d
				}
				next = append(next, nt)
			}
		}
		taps = next
	}
	return taps
}

// Apply evaluates the stencil on f around (i, j, k).
func (s Stencil) Apply(f *Field, i, j, k int) float64 {
	v := 0.0
	for _, t := range s {
		v += t.W * f.At(i+t.Di, j+t.Dj, k+t.Dk)
	}
	return v
}
