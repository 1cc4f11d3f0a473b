package utils

import (
	"math"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}

// HarmonicMean of two signed values. Equal inputs are returned unchanged and a vanishing sum yields zero.
// Inputs of opposite sign give a result of either sign whose magnitude grows without bound as a+b nears zero.
func HarmonicMean(a, b float64) float64 {
	if a == b {
		return a
	}
	if a+b == 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

// Linspace returns n points evenly spaced over [a, b], computed by index to avoid accumulating roundoff
func Linspace(a, b float64, n int) (x []float64) {
	x = make([]float64, n)
	if n == 1 {
		x[0] = a
		return
	}
	h := (b - a) / float64(n-1)
	for i := range x {
		x[i] = a + float64(i)*h
	}
	x[n-1] = b
	return
}
