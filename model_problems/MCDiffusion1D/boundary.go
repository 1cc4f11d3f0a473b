package MCDiffusion1D

import (
	"fmt"

	"github.com/notargets/diffchron/types"
)

// Boundary holds the domain end conditions of one species. Flux columns are carried from the
// input tables, only a vanishing flux is accepted for zero-flux ends.
type Boundary struct {
	Left, Right         types.BCFLAG
	LeftFlux, RightFlux float64
}

type BoundaryTable []Boundary

func (bt BoundaryTable) Validate(nSpecies int) error {
	// The closure species follows from the others, its entry is optional
	if len(bt) != nSpecies && len(bt) != nSpecies-1 {
		return invalid("boundary", "expected %d or %d species, got %d", nSpecies-1, nSpecies, len(bt))
	}
	for s, b := range bt {
		for _, side := range []struct {
			name string
			flag types.BCFLAG
			flux float64
		}{{"left", b.Left, b.LeftFlux}, {"right", b.Right, b.RightFlux}} {
			field := fmt.Sprintf("boundary[%d].%s", s, side.name)
			switch side.flag {
			case types.BC_Fixed:
			case types.BC_ZeroFlux:
				if side.flux != 0 {
					return invalid(field, "prescribed flux %g is not supported, zero-flux only", side.flux)
				}
			default:
				return invalid(field, "boundary kind must be fixed or zero-flux, got %s", side.flag)
			}
		}
	}
	return nil
}
