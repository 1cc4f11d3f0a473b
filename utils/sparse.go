package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is an assembly matrix, entries are set individually and read back as dense or banded storage
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m DOK) ToDense() Matrix {
	var (
		nr, nc = m.Dims()
		R      = NewMatrix(nr, nc)
	)
	R.M.Copy(m.M.ToDense())
	return R
}

func (m DOK) ToCSR() *sparse.CSR {
	return m.M.ToCSR()
}

// TriDiagonal extracts the sub, main and super diagonals of a square matrix,
// entries outside the three bands are ignored
func (m DOK) TriDiagonal() (lower, diag, upper []float64, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("matrix %q is not square: %d x %d", m.name, nr, nc)
		return
	}
	lower, diag, upper = make([]float64, nr), make([]float64, nr), make([]float64, nr)
	for i := 0; i < nr; i++ {
		diag[i] = m.M.At(i, i)
		if i > 0 {
			lower[i] = m.M.At(i, i-1)
		}
		if i < nr-1 {
			upper[i] = m.M.At(i, i+1)
		}
	}
	return
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}
