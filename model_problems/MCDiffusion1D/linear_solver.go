package MCDiffusion1D

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/notargets/diffchron/utils"
)

// LinearSolver solves A x = rhs for one species per step
type LinearSolver interface {
	Solve(A utils.DOK, rhs []float64) (x []float64, err error)
	Name() string
}

type SolverType uint8

const (
	Solver_Dense SolverType = iota
	Solver_Tridiagonal
)

var SolverNameMap = map[string]SolverType{
	"dense":       Solver_Dense,
	"inverse":     Solver_Dense,
	"tridiagonal": Solver_Tridiagonal,
	"thomas":      Solver_Tridiagonal,
	"banded":      Solver_Tridiagonal,
}

func (st SolverType) String() string {
	switch st {
	case Solver_Tridiagonal:
		return "tridiagonal"
	}
	return "dense"
}

func NewLinearSolver(name string) (ls LinearSolver, err error) {
	st, ok := SolverNameMap[strings.ToLower(name)]
	if !ok {
		var names []string
		for n := range SolverNameMap {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, invalid("solver", "unknown linear solver %q, choose from %v", name, names)
	}
	switch st {
	case Solver_Tridiagonal:
		ls = Tridiagonal{}
	default:
		ls = DenseInverse{}
	}
	return
}

// DenseInverse forms the explicit inverse with LAPACK, the reference solver for small grids
type DenseInverse struct {
	MaxCondition float64 // Zero disables the condition number check
}

func (DenseInverse) Name() string { return Solver_Dense.String() }

func (ds DenseInverse) Solve(A utils.DOK, rhs []float64) (x []float64, err error) {
	var (
		Ad   = A.ToDense()
		Ainv utils.Matrix
	)
	if ds.MaxCondition > 0 {
		if cond := Ad.ConditionNumberQR(); cond > ds.MaxCondition {
			return nil, fmt.Errorf("condition number %g exceeds %g", cond, ds.MaxCondition)
		}
	}
	if Ainv, err = Ad.Inverse(); err != nil {
		return
	}
	x = Ainv.MulVec(utils.NewVector(len(rhs), rhs)).Data()
	if !utils.IsFinite(x) {
		err = errors.New("non finite solution")
	}
	return
}

// Tridiagonal is the Thomas algorithm over the three bands of A
type Tridiagonal struct{}

func (Tridiagonal) Name() string { return Solver_Tridiagonal.String() }

func (Tridiagonal) Solve(A utils.DOK, rhs []float64) (x []float64, err error) {
	var (
		lower, diag, upper []float64
		n                  = len(rhs)
	)
	if lower, diag, upper, err = A.TriDiagonal(); err != nil {
		return
	}
	if len(diag) != n {
		return nil, fmt.Errorf("system has %d rows and %d right hand side values", len(diag), n)
	}
	// Forward elimination
	cp := make([]float64, n) // modified super-diagonal
	dp := make([]float64, n) // modified RHS
	denom := diag[0]
	for i := 0; i < n; i++ {
		if i > 0 {
			denom = diag[i] - lower[i]*cp[i-1]
		}
		if math.Abs(denom) < utils.NODETOL*math.Max(1, math.Abs(diag[i])) {
			return nil, fmt.Errorf("zero pivot at row %d", i)
		}
		cp[i] = upper[i] / denom
		if i == 0 {
			dp[i] = rhs[i] / denom
		} else {
			dp[i] = (rhs[i] - lower[i]*dp[i-1]) / denom
		}
	}
	// Back substitution
	x = make([]float64, n)
	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dp[i] - cp[i]*x[i+1]
	}
	if !utils.IsFinite(x) {
		err = errors.New("non finite solution")
	}
	return
}
