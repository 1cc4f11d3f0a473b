package best_fit

import (
	"errors"
	"fmt"
)

var ErrNoAcceptableFit = errors.New("no acceptable fit")

// NoAcceptableFitError reports that no stored step matched any measured point within its uncertainty,
// the smallest RMS deviation is kept as a hint for widening the bands
type NoAcceptableFitError struct {
	Steps, Points int
	MinRMSStep    int
	MinRMSTime    float64
	MinRMS        float64
}

func (e *NoAcceptableFitError) Error() string {
	return fmt.Sprintf("%v: none of %d measured points falls within its uncertainty over %d steps, smallest RMS %g at t = %g hr (step %d)",
		ErrNoAcceptableFit, e.Points, e.Steps, e.MinRMS, e.MinRMSTime, e.MinRMSStep)
}

func (e *NoAcceptableFitError) Unwrap() error { return ErrNoAcceptableFit }
