package MCDiffusion1D

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

// TemperatureHistory is a piecewise linear time (hr) - temperature (Celsius) - pressure (Pa) path.
// Lookups before the first or after the last row hold the end values.
type TemperatureHistory struct {
	Times, Temperatures, Pressures []float64
	temperature, pressure          interp.PiecewiseLinear
}

// NewTemperatureHistory validates and fits the table, pressures may be nil for a zero pressure path
func NewTemperatureHistory(times, temperatures, pressures []float64) (th *TemperatureHistory, err error) {
	var (
		n = len(times)
	)
	if n == 0 {
		return nil, invalid("temperatureHistory", "table is empty")
	}
	if len(temperatures) != n {
		return nil, invalid("temperatureHistory", "%d times but %d temperatures", n, len(temperatures))
	}
	if pressures == nil {
		pressures = make([]float64, n)
	}
	if len(pressures) != n {
		return nil, invalid("temperatureHistory", "%d times but %d pressures", n, len(pressures))
	}
	for k := 0; k < n; k++ {
		if math.IsNaN(times[k]) || math.IsNaN(temperatures[k]) || math.IsNaN(pressures[k]) {
			return nil, invalid("temperatureHistory", "row %d is not a number", k)
		}
		if temperatures[k] <= -KelvinOffset {
			return nil, invalid("temperatureHistory", "row %d temperature %g C is below absolute zero", k, temperatures[k])
		}
		if k > 0 && !(times[k] > times[k-1]) {
			return nil, invalid("temperatureHistory", "times must be strictly increasing at row %d", k)
		}
	}
	th = &TemperatureHistory{
		Times:        times,
		Temperatures: temperatures,
		Pressures:    pressures,
	}
	if n == 1 {
		// A single row is an isothermal path
		return
	}
	if err = th.temperature.Fit(times, temperatures); err != nil {
		return nil, invalid("temperatureHistory", "%v", err)
	}
	if err = th.pressure.Fit(times, pressures); err != nil {
		return nil, invalid("temperatureHistory", "%v", err)
	}
	return
}

// Duration is the time spanned by the table
func (th *TemperatureHistory) Duration() float64 {
	return th.Times[len(th.Times)-1] - th.Times[0]
}

// At returns temperature and pressure at elapsed time t, measured from the first row
func (th *TemperatureHistory) At(t float64) (tc, p float64) {
	if len(th.Times) == 1 {
		return th.Temperatures[0], th.Pressures[0]
	}
	t += th.Times[0]
	return th.temperature.Predict(t), th.pressure.Predict(t)
}
