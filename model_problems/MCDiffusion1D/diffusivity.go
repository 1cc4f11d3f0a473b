package MCDiffusion1D

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"

	"github.com/notargets/diffchron/utils"
)

// Arrhenius is a tracer diffusivity law D = D0 exp(-(Ea + P Va) / (R T))
type Arrhenius struct {
	D0 float64 // m^2/s
	Ea float64 // J/mol
	Va float64 // m^3/mol
}

// SI evaluates the law at temperature tk (Kelvin) and pressure p (Pa)
func (a Arrhenius) SI(tk, p float64) *unit.Unit {
	factor := math.Exp(-(a.Ea + p*a.Va) / (GasConstant * tk))
	return unit.Mul(NewSIDiffusivity(a.D0), unit.New(factor, unit.Dimless))
}

// MediumDiffusivity is either a direct constant in um^2/hr or an Arrhenius law
type MediumDiffusivity struct {
	Constant float64
	Law      *Arrhenius
}

// Value in um^2/hr at temperature tc (Celsius), pressure p (Pa) and traverse tilt theta (degrees)
// from the c-axis. The tilt correction cos^2(theta) only applies to Arrhenius laws.
func (md MediumDiffusivity) Value(tc, p, theta float64) (d float64, err error) {
	if md.Law == nil {
		return md.Constant, nil
	}
	if d, err = MicronsSquaredPerHour(md.Law.SI(CelsiusToKelvin(tc), p)); err != nil {
		return
	}
	c := math.Cos(theta * math.Pi / 180.)
	d *= c * c
	return
}

func (md MediumDiffusivity) validate(field string) error {
	if md.Law == nil {
		if math.IsNaN(md.Constant) || md.Constant < 0 {
			return invalid(field, "diffusivity must be non-negative, got %g", md.Constant)
		}
		return nil
	}
	if !(md.Law.D0 >= 0) || math.IsNaN(md.Law.Ea) || math.IsNaN(md.Law.Va) {
		return invalid(field, "malformed Arrhenius law %+v", *md.Law)
	}
	return nil
}

// SpeciesDiffusivity holds the tracer diffusivity of one species in each medium
type SpeciesDiffusivity struct {
	Left, Right MediumDiffusivity
}

// DiffusivityTable has one entry per species, including the closure species
type DiffusivityTable []SpeciesDiffusivity

func (dt DiffusivityTable) Validate(nSpecies int) error {
	if len(dt) != nSpecies {
		return invalid("diffusivity", "expected %d species, got %d", nSpecies, len(dt))
	}
	for s, sd := range dt {
		if err := sd.Left.validate(fmt.Sprintf("diffusivity[%d].left", s)); err != nil {
			return err
		}
		if err := sd.Right.validate(fmt.Sprintf("diffusivity[%d].right", s)); err != nil {
			return err
		}
	}
	return nil
}

// DependsOnTemperature reports whether any entry needs re-evaluation when the temperature changes
func (dt DiffusivityTable) DependsOnTemperature() bool {
	for _, sd := range dt {
		if sd.Left.Law != nil || sd.Right.Law != nil {
			return true
		}
	}
	return false
}

// CellDiffusivity assigns every cell the tracer diffusivities of its medium, one row per species
func (dt DiffusivityTable) CellDiffusivity(gr *Grid, tc, p, theta float64) (D utils.Matrix, err error) {
	var (
		nc = gr.NumCells()
	)
	D = utils.NewMatrix(len(dt), nc)
	data := D.Data()
	for s, sd := range dt {
		var dl, dr float64
		if dl, err = sd.Left.Value(tc, p, theta); err != nil {
			return
		}
		if dr, err = sd.Right.Value(tc, p, theta); err != nil {
			return
		}
		for i := 0; i < nc; i++ {
			if gr.InLeftMedium(i) {
				data[s*nc+i] = dl
			} else {
				data[s*nc+i] = dr
			}
		}
	}
	return
}

// CouplingMatrix returns the multicomponent diffusion coefficients governing species g,
// row h is the coupling of g to the gradient of independent species h:
//
//	MC[h,i] = D[g,i] delta(g,h) - (D[g,i] x[g,i] / sum_k D[k,i] x[k,i]) (D[h,i] - D[n-1,i])
func CouplingMatrix(D utils.Matrix, x Field, g int) (MC utils.Matrix) {
	var (
		ns, nc = D.Dims()
		dd     = D.Data()
		xd     = x.Data()
		last   = ns - 1
	)
	MC = utils.NewMatrix(last, nc)
	mc := MC.Data()
	for i := 0; i < nc; i++ {
		var sigDX float64
		for k := 0; k < ns; k++ {
			sigDX += dd[k*nc+i] * xd[k*nc+i]
		}
		dg := dd[g*nc+i]
		var weight float64
		if sigDX != 0 {
			weight = dg * xd[g*nc+i] / sigDX
		}
		for h := 0; h < last; h++ {
			var v float64
			if h == g {
				v = dg
			}
			mc[h*nc+i] = v - weight*(dd[h*nc+i]-dd[last*nc+i])
		}
	}
	return
}

// WallValues interpolates cell centered coefficients onto the cell walls with a harmonic mean,
// the domain end walls take the value of the nearest interior wall
func WallValues(center []float64) (walls []float64) {
	var (
		nc = len(center)
	)
	walls = make([]float64, nc+1)
	for k := 1; k < nc; k++ {
		walls[k] = utils.HarmonicMean(center[k-1], center[k])
	}
	walls[0], walls[nc] = walls[1], walls[nc-1]
	return
}

// StabilityNumber is the explicit scheme criterion max(D) dt / dx^2, the implicit solver does not need it below 0.5
func StabilityNumber(D utils.Matrix, dt, dx float64) float64 {
	return D.Max() * dt / (dx * dx)
}
