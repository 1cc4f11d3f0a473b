package MCDiffusion1D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

const (
	CompositionTolerance = 1.e-6
)

func checkComposition(field string, comp []float64, nSpecies int) error {
	if len(comp) != nSpecies {
		return invalid(field, "expected %d species, got %d", nSpecies, len(comp))
	}
	for s, v := range comp {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return invalid(field, "species %d mole fraction %g is outside [0,1]", s, v)
		}
	}
	if sum := floats.Sum(comp); math.Abs(sum-1) > CompositionTolerance {
		return invalid(field, "mole fractions sum to %g, expected 1", sum)
	}
	return nil
}

// FlatProfile fills the cells below the interface with left and the rest with right
func FlatProfile(gr *Grid, left, right []float64) (f Field, err error) {
	if len(left) < 2 {
		return f, invalid("composition", "need at least 2 species, got %d", len(left))
	}
	if err = checkComposition("composition.left", left, len(left)); err != nil {
		return
	}
	if err = checkComposition("composition.right", right, len(left)); err != nil {
		return
	}
	f = NewField(len(left), gr.NumCells())
	for s := range left {
		p := f.Profile(s)
		for i := range p {
			if gr.InLeftMedium(i) {
				p[i] = left[s]
			} else {
				p[i] = right[s]
			}
		}
	}
	return
}

// InterpolatedProfile interpolates breakpoint compositions linearly onto the walls and averages
// neighboring walls onto the cell centers. Positions outside the breakpoints take the nearest breakpoint value.
func InterpolatedProfile(gr *Grid, breakpoints []float64, comps [][]float64) (f Field, err error) {
	var (
		nb = len(breakpoints)
	)
	if nb < 2 {
		return f, invalid("composition.breakpoints", "need at least 2 breakpoints, got %d", nb)
	}
	if len(comps) != nb {
		return f, invalid("composition.values", "%d breakpoints but %d compositions", nb, len(comps))
	}
	for k := 1; k < nb; k++ {
		if !(breakpoints[k] > breakpoints[k-1]) {
			return f, invalid("composition.breakpoints", "breakpoints must be strictly increasing at index %d", k)
		}
	}
	nSpecies := len(comps[0])
	if nSpecies < 2 {
		return f, invalid("composition", "need at least 2 species, got %d", nSpecies)
	}
	for k, comp := range comps {
		if err = checkComposition(fmt.Sprintf("composition.values[%d]", k), comp, nSpecies); err != nil {
			return
		}
	}
	f = NewField(nSpecies, gr.NumCells())
	ys := make([]float64, nb)
	for s := 0; s < nSpecies; s++ {
		for k := range comps {
			ys[k] = comps[k][s]
		}
		var pl interp.PiecewiseLinear
		if err = pl.Fit(breakpoints, ys); err != nil {
			return f, invalid("composition", "species %d: %v", s, err)
		}
		p := f.Profile(s)
		wLeft := pl.Predict(gr.Walls[0])
		for i := range p {
			wRight := pl.Predict(gr.Walls[i+1])
			p[i] = 0.5 * (wLeft + wRight)
			wLeft = wRight
		}
	}
	return
}
