package MCDiffusion1D

import (
	"math"

	"github.com/notargets/diffchron/utils"
)

// Field holds mole fractions, one row per species and one column per cell
type Field struct {
	utils.Matrix
}

func NewField(nSpecies, nCells int) Field {
	return Field{utils.NewMatrix(nSpecies, nCells)}
}

func (f Field) Species() (nr int) {
	nr, _ = f.Dims()
	return
}

func (f Field) Cells() (nc int) {
	_, nc = f.Dims()
	return
}

// Profile is a writable view of the cell values of species s
func (f Field) Profile(s int) []float64 {
	nc := f.Cells()
	return f.Data()[s*nc : (s+1)*nc]
}

func (f Field) Copy() Field { return Field{f.Matrix.Copy()} }

// Rows returns a deep copy as one slice per species
func (f Field) Rows() (rows [][]float64) {
	rows = make([][]float64, f.Species())
	for s := range rows {
		rows[s] = append([]float64(nil), f.Profile(s)...)
	}
	return
}

// SumDeviation is the largest departure of a per cell species sum from one
func (f Field) SumDeviation() (dev float64) {
	var (
		ns, nc = f.Dims()
		data   = f.Data()
	)
	for i := 0; i < nc; i++ {
		var sum float64
		for s := 0; s < ns; s++ {
			sum += data[s*nc+i]
		}
		dev = math.Max(dev, math.Abs(sum-1))
	}
	return
}

// OutOfBounds counts values outside [0,1] by more than tol
func (f Field) OutOfBounds(tol float64) (count int) {
	for _, v := range f.Data() {
		if v < -tol || v > 1+tol {
			count++
		}
	}
	return
}
