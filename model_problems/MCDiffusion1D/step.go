package MCDiffusion1D

import (
	"github.com/notargets/diffchron/types"
	"github.com/notargets/diffchron/utils"
)

// StepSolver advances the independent species one backward Euler step
type StepSolver struct {
	Grid       *Grid
	Species    []string
	Boundaries BoundaryTable
	Solver     LinearSolver
}

// Step computes the next field from prev using cell diffusivities D and time step dt. Cross coupling
// to the other independent species is taken from prev, the closure species is recomputed at the end.
func (ss *StepSolver) Step(rc *RunContext, prev Field, D utils.Matrix, dt float64) (next Field, err error) {
	var (
		ns   = prev.Species()
		last = ns - 1
	)
	next = NewField(ns, prev.Cells())
	for g := 0; g < last; g++ {
		var (
			A   utils.DOK
			rhs []float64
			x   []float64
		)
		A, rhs = ss.Assemble(prev, D, g, dt)
		if x, err = ss.Solver.Solve(A, rhs); err != nil {
			err = &NumericalSingularityError{Iteration: rc.Iteration, Species: ss.Species[g], Err: err}
			return
		}
		copy(next.Profile(g), x)
	}
	CloseDependent(next)
	return
}

// Assemble builds the tridiagonal system of species g
func (ss *StepSolver) Assemble(prev Field, D utils.Matrix, g int, dt float64) (A utils.DOK, rhs []float64) {
	var (
		gr    = ss.Grid
		nc    = gr.NumCells()
		last  = prev.Species() - 1
		scale = dt / (gr.Dx * gr.Dx)
		bc    = ss.Boundaries[g]
		phi   = prev.Profile(g)
		MC    = CouplingMatrix(D, prev, g)
		W     = make([][]float64, last) // Wall coefficients per coupled species
	)
	for h := 0; h < last; h++ {
		W[h] = WallValues(MC.Row(h).Data())
	}
	A = utils.NewDOK(nc, nc)
	rhs = make([]float64, nc)
	// Cross terms from the gradients of the other independent species
	crossTerm := func(i int, left, right bool) (off float64) {
		rL, rR := gr.FaceRatios(i)
		for h := 0; h < last; h++ {
			if h == g {
				continue
			}
			var (
				ph     = prev.Profile(h)
				B1, B3 = W[h][i] * scale, W[h][i+1] * scale
			)
			if left {
				off += B1 * rL * (ph[i-1] - ph[i])
			}
			if right {
				off += B3 * rR * (ph[i+1] - ph[i])
			}
		}
		return
	}
	for i := 0; i < nc; i++ {
		var (
			rL, rR = gr.FaceRatios(i)
			A1, A3 = W[g][i] * scale, W[g][i+1] * scale
		)
		switch {
		case i == 0:
			if bc.Left == types.BC_Fixed {
				A.Set(i, i, 1)
				rhs[i] = phi[i]
				continue
			}
			A.Set(i, i, 1+A3*rR)
			A.Set(i, i+1, -A3*rR)
			rhs[i] = phi[i] + crossTerm(i, false, true)
		case i == nc-1:
			if bc.Right == types.BC_Fixed {
				A.Set(i, i, 1)
				rhs[i] = phi[i]
				continue
			}
			A.Set(i, i-1, -A1*rL)
			A.Set(i, i, 1+A1*rL)
			rhs[i] = phi[i] + crossTerm(i, true, false)
		default:
			A.Set(i, i-1, -A1*rL)
			A.Set(i, i, 1+A1*rL+A3*rR)
			A.Set(i, i+1, -A3*rR)
			rhs[i] = phi[i] + crossTerm(i, true, true)
		}
	}
	return
}
