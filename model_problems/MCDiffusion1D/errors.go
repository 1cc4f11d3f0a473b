package MCDiffusion1D

import (
	"errors"
	"fmt"

	"github.com/notargets/diffchron/types"
)

var (
	ErrInputValidation      = errors.New("invalid input")
	ErrGeometry             = errors.New("invalid geometry")
	ErrNumericalSingularity = errors.New("numerical singularity")
)

// InputValidationError reports a missing or malformed input table, detected before any computation
type InputValidationError struct {
	Field  string
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInputValidation, e.Field, e.Reason)
}

func (e *InputValidationError) Unwrap() error { return ErrInputValidation }

func invalid(field, format string, args ...interface{}) error {
	return &InputValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// GeometryError is raised when a curvilinear geometry reaches the coordinate origin
type GeometryError struct {
	Geometry  types.Geometry
	Start     float64
	Interface float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%v: %s geometry needs a positive start and interface, got start = %g, interface = %g",
		ErrGeometry, e.Geometry, e.Start, e.Interface)
}

func (e *GeometryError) Unwrap() error { return ErrGeometry }

// NumericalSingularityError is fatal for a run, the linear system of one species could not be solved
type NumericalSingularityError struct {
	Iteration int
	Species   string
	Err       error
}

func (e *NumericalSingularityError) Error() string {
	return fmt.Sprintf("%v: iteration %d, species %s: %v", ErrNumericalSingularity, e.Iteration, e.Species, e.Err)
}

func (e *NumericalSingularityError) Unwrap() []error { return []error{ErrNumericalSingularity, e.Err} }
