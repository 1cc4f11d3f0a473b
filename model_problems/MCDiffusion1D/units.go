package MCDiffusion1D

import (
	"fmt"

	"github.com/ctessum/unit"
)

const (
	GasConstant     = 8.3144 // J/(mol K)
	KelvinOffset    = 273.15
	MicronsPerMeter = 1.e6
	SecondsPerHour  = 3600.
	HoursPerDay     = 24.
)

// Diffusivity dimensions, length^2 / time
var DiffusivityDims = unit.Dimensions{
	unit.LengthDim: 2,
	unit.TimeDim:   -1}

// NewSIDiffusivity wraps a diffusivity in m^2/s
func NewSIDiffusivity(d float64) *unit.Unit { return unit.New(d, DiffusivityDims) }

// MicronsSquaredPerHour converts an SI diffusivity to the solver units of um^2/hr
func MicronsSquaredPerHour(d *unit.Unit) (float64, error) {
	if err := d.Check(DiffusivityDims); err != nil {
		return 0, fmt.Errorf("diffusivity: %w", err)
	}
	return d.Value() * MicronsPerMeter * MicronsPerMeter * SecondsPerHour, nil
}

// SIFromMicronsSquaredPerHour is the inverse of MicronsSquaredPerHour
func SIFromMicronsSquaredPerHour(d float64) *unit.Unit {
	return NewSIDiffusivity(d / (MicronsPerMeter * MicronsPerMeter * SecondsPerHour))
}

func CelsiusToKelvin(tc float64) float64 { return tc + KelvinOffset }
