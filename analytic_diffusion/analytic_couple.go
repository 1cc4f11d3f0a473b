package analytic_diffusion

import (
	"math"
)

// Couple is the planar diffusion couple on an infinite domain: a step from Left to Right at X0
// relaxed by a single constant diffusivity D
type Couple struct {
	X0, Left, Right, D float64
}

// At evaluates the couple at position x and time t,
// C = (Left + Right)/2 + (Right - Left)/2 erf((x - X0) / (2 sqrt(D t)))
func (c Couple) At(x, t float64) float64 {
	var (
		mid  = 0.5 * (c.Left + c.Right)
		half = 0.5 * (c.Right - c.Left)
	)
	if t <= 0 {
		switch {
		case x < c.X0:
			return c.Left
		case x > c.X0:
			return c.Right
		}
		return mid
	}
	return mid + half*math.Erf((x-c.X0)/(2*math.Sqrt(c.D*t)))
}

func (c Couple) Profile(X []float64, t float64) (C []float64) {
	C = make([]float64, len(X))
	for i, x := range X {
		C[i] = c.At(x, t)
	}
	return
}

// HalfWidth is the position offset from X0 where the profile has covered fraction f of the step, f in (0,1)
func (c Couple) HalfWidth(f, t float64) float64 {
	return 2 * math.Sqrt(c.D*t) * math.Erfinv(2*f-1)
}
