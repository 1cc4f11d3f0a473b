package MCDiffusion1D

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MassBalance compares the zeroth moment of every species before and after a run
type MassBalance struct {
	Species                     []string
	Initial, Final              []float64
	Absolute, Relative, PerCell []float64 // Relative is a fraction of Initial, PerCell divides Absolute by the cell count
}

// ZerothMoment integrates a cell profile with the generalized coordinate weights, sum C_i x_i^gamma dx
func ZerothMoment(gr *Grid, profile []float64) float64 {
	w := make([]float64, len(profile))
	for i, x := range gr.Centers {
		w[i] = gr.Weight(x)
	}
	return floats.Dot(w, profile) * gr.Dx
}

func NewMassBalance(gr *Grid, species []string, initial, final Field) (mb MassBalance) {
	var (
		ns = len(species)
		nc = float64(gr.NumCells())
	)
	mb = MassBalance{
		Species:  species,
		Initial:  make([]float64, ns),
		Final:    make([]float64, ns),
		Absolute: make([]float64, ns),
		Relative: make([]float64, ns),
		PerCell:  make([]float64, ns),
	}
	for s := 0; s < ns; s++ {
		mb.Initial[s] = ZerothMoment(gr, initial.Profile(s))
		mb.Final[s] = ZerothMoment(gr, final.Profile(s))
		mb.Absolute[s] = math.Abs(mb.Final[s] - mb.Initial[s])
		switch {
		case mb.Absolute[s] == 0:
			mb.Relative[s] = 0
		case mb.Initial[s] == 0:
			mb.Relative[s] = math.Inf(1)
		default:
			mb.Relative[s] = mb.Absolute[s] / math.Abs(mb.Initial[s])
		}
		mb.PerCell[s] = mb.Absolute[s] / nc
	}
	return
}

func (mb MassBalance) MaxRelative() float64 { return floats.Max(mb.Relative) }
