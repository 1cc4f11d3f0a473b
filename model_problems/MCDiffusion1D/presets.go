package MCDiffusion1D

import (
	"fmt"
	"sort"
	"strings"
)

// Apatite halogen and hydroxyl tracer diffusion parallel to the c-axis (Li et al., 2020)
var ApatiteLaws = map[string]Arrhenius{
	"F":  {D0: 9.0e-5, Ea: 288.e3},
	"Cl": {D0: 5.1e-5, Ea: 290.e3},
	"OH": {D0: 1.7e-2, Ea: 397.e3},
}

func ApatiteSpecies() (names []string) {
	for name := range ApatiteLaws {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// ApatiteLaw looks up a preset by species name, case insensitive
func ApatiteLaw(name string) (law Arrhenius, err error) {
	for key, l := range ApatiteLaws {
		if strings.EqualFold(key, name) {
			return l, nil
		}
	}
	err = invalid("diffusivity.preset", "no apatite law for species %q, have %v", name, ApatiteSpecies())
	return
}

// ApatiteDiffusivity evaluates a preset at temperature tc (Celsius) for a traverse tilted theta degrees from the c-axis,
// returning the diffusivity in um^2/hr
func ApatiteDiffusivity(name string, tc, theta float64) (d float64, err error) {
	var law Arrhenius
	if law, err = ApatiteLaw(name); err != nil {
		return
	}
	if d, err = (MediumDiffusivity{Law: &law}).Value(tc, 0, theta); err != nil {
		err = fmt.Errorf("apatite %s: %w", name, err)
	}
	return
}
