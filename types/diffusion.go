package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Fixed
	BC_ZeroFlux
)

// Numeric codes follow the input tables: 1 holds the boundary composition, 2 closes the boundary to flux
var BCNameMap = map[string]BCFLAG{
	"fixed":     BC_Fixed,
	"dirichlet": BC_Fixed,
	"1":         BC_Fixed,
	"zero-flux": BC_ZeroFlux,
	"zeroflux":  BC_ZeroFlux,
	"neuman":    BC_ZeroFlux,
	"neumann":   BC_ZeroFlux,
	"closed":    BC_ZeroFlux,
	"2":         BC_ZeroFlux,
}

func (bf BCFLAG) String() string {
	switch bf {
	case BC_Fixed:
		return "Fixed"
	case BC_ZeroFlux:
		return "ZeroFlux"
	}
	return "None"
}

func NewBCFLAG(label string) (bf BCFLAG, err error) {
	var ok bool
	if bf, ok = BCNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown boundary condition %q", label)
	}
	return
}

// Geometry selects the generalized coordinate exponent of the 1D domain
type Geometry uint8

const (
	Planar Geometry = iota
	Cylindrical
	Spherical
)

var GeometryNameMap = map[string]Geometry{
	"planar":      Planar,
	"cartesian":   Planar,
	"0":           Planar,
	"cylindrical": Cylindrical,
	"cylinder":    Cylindrical,
	"1":           Cylindrical,
	"spherical":   Spherical,
	"sphere":      Spherical,
	"2":           Spherical,
}

func (g Geometry) String() string {
	switch g {
	case Planar:
		return "Planar"
	case Cylindrical:
		return "Cylindrical"
	case Spherical:
		return "Spherical"
	}
	return fmt.Sprintf("Geometry(%d)", uint8(g))
}

// Exponent is the power of the radial coordinate weighting cell volumes and face areas
func (g Geometry) Exponent() int { return int(g) }

func (g Geometry) Valid() bool { return g <= Spherical }

func NewGeometry(label string) (g Geometry, err error) {
	var ok bool
	if g, ok = GeometryNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown geometry %q", label)
	}
	return
}
