package MCDiffusion1D

import (
	"fmt"
)

// History is the append only record of stored fields, States[0] is the initial condition
type History struct {
	Grid       *Grid
	Species    []string
	Times      []float64
	Iterations []int
	States     []Field
}

func NewHistory(gr *Grid, species []string) *History {
	return &History{
		Grid:    gr,
		Species: species,
	}
}

func (h *History) Append(rc RunContext, f Field) {
	h.Times = append(h.Times, rc.Time)
	h.Iterations = append(h.Iterations, rc.Iteration)
	h.States = append(h.States, f)
}

func (h *History) Len() int { return len(h.States) }

func (h *History) Last() Field { return h.States[len(h.States)-1] }

func (h *History) SpeciesIndex(name string) (s int, err error) {
	for s = range h.Species {
		if h.Species[s] == name {
			return
		}
	}
	return -1, fmt.Errorf("species %q not in %v", name, h.Species)
}

// Series returns the stored profiles of one species, indexed by stored step
func (h *History) Series(name string) (profiles [][]float64, err error) {
	var s int
	if s, err = h.SpeciesIndex(name); err != nil {
		return
	}
	profiles = make([][]float64, h.Len())
	for k, f := range h.States {
		profiles[k] = f.Profile(s)
	}
	return
}

// Snapshot renders stored step k
func (h *History) Snapshot(k int) Snapshot {
	return NewSnapshot(h.Grid, h.Species, h.States[k], h.Times[k], h.Iterations[k])
}
