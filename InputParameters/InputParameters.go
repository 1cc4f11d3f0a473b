package InputParameters

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/spf13/cast"

	"github.com/notargets/diffchron/best_fit"
	"github.com/notargets/diffchron/model_problems/MCDiffusion1D"
	"github.com/notargets/diffchron/types"
)

// Parameters obtained from the YAML input deck
type InputParameters1D struct {
	Title              string              `yaml:"Title"`
	Species            []string            `yaml:"Species"` // The last species is the closure species
	Geometry           string              `yaml:"Geometry"`
	Domain             DomainParameters    `yaml:"Domain"`
	TimeStep           float64             `yaml:"TimeStep"`  // hr
	FinalTime          float64             `yaml:"FinalTime"` // hr, zero runs to the end of the temperature history
	Tilt               float64             `yaml:"Tilt"`      // Traverse angle from the c-axis, degrees
	Solver             string              `yaml:"Solver"`
	HistoryStride      int                 `yaml:"HistoryStride"`
	Composition        CompositionTable    `yaml:"Composition"`
	Diffusivity        []SpeciesMedia      `yaml:"Diffusivity"`
	Boundaries         []BoundaryEntry     `yaml:"Boundaries"`
	TemperatureHistory TemperatureTable    `yaml:"TemperatureHistory"`
	Measured           *MeasuredParameters `yaml:"Measured"`
}

type DomainParameters struct {
	Start, End, Dx, Interface float64 // um
}

// CompositionTable is either a step at the interface (Left/Right) or a set of breakpoints
type CompositionTable struct {
	Left, Right []float64
	Breakpoints []float64
	Values      [][]float64
}

// MediumParameters selects a diffusivity: a preset species name, an Arrhenius law, or a constant in um^2/hr
type MediumParameters struct {
	Preset   string
	D0       float64 // m^2/s
	Ea       float64 // J/mol
	Va       float64 // m^3/mol
	Constant float64
}

type SpeciesMedia struct {
	Left, Right MediumParameters
}

// BoundaryEntry kinds are names ("fixed", "zero-flux") or the numeric codes 1 and 2
type BoundaryEntry struct {
	Left, Right         interface{}
	LeftFlux, RightFlux float64
}

type TemperatureTable struct {
	Time        []float64 // hr
	Temperature []float64 // Celsius
	Pressure    []float64 // Pa
}

type MeasuredParameters struct {
	Species     string
	Position    []float64 // um
	Value       []float64
	Uncertainty []float64
}

func (ip *InputParameters1D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters1D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%v\t\t= Species\n", ip.Species)
	fmt.Printf("[%s]\t\t\t= Geometry\n", ip.Geometry)
	fmt.Printf("[%8.3f,%8.3f]\t= Domain, um\n", ip.Domain.Start, ip.Domain.End)
	fmt.Printf("%8.5f\t\t= Dx, um\n", ip.Domain.Dx)
	fmt.Printf("%8.5f\t\t= Interface, um\n", ip.Domain.Interface)
	fmt.Printf("%8.5f\t\t= TimeStep, hr\n", ip.TimeStep)
	fmt.Printf("%8.5f\t\t= FinalTime, hr\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= Tilt, deg\n", ip.Tilt)
	for s, sm := range ip.Diffusivity {
		fmt.Printf("Diffusivity[%s] = Left %s, Right %s\n", ip.speciesName(s), sm.Left, sm.Right)
	}
	for s, b := range ip.Boundaries {
		fmt.Printf("Boundaries[%s] = Left %v, Right %v\n", ip.speciesName(s), b.Left, b.Right)
	}
	fmt.Printf("%d rows\t\t\t= Temperature History\n", len(ip.TemperatureHistory.Time))
	if ip.Measured != nil {
		fmt.Printf("[%s] %d points\t= Measured\n", ip.Measured.Species, len(ip.Measured.Position))
	}
}

func (mp MediumParameters) String() string {
	switch {
	case mp.Preset != "":
		return "preset " + mp.Preset
	case mp.D0 != 0:
		return fmt.Sprintf("D0 = %g m^2/s, Ea = %g J/mol, Va = %g m^3/mol", mp.D0, mp.Ea, mp.Va)
	}
	return fmt.Sprintf("%g um^2/hr", mp.Constant)
}

func (ip *InputParameters1D) speciesName(s int) string {
	if s < len(ip.Species) {
		return ip.Species[s]
	}
	return cast.ToString(s)
}

// Validate checks the deck structure, value checks are left to the typed constructors in ModelInput
func (ip *InputParameters1D) Validate() error {
	var missing []string
	if len(ip.Species) == 0 {
		missing = append(missing, "Species")
	}
	if ip.Domain.Dx == 0 {
		missing = append(missing, "Domain.Dx")
	}
	if ip.TimeStep == 0 {
		missing = append(missing, "TimeStep")
	}
	if len(ip.Diffusivity) == 0 {
		missing = append(missing, "Diffusivity")
	}
	if len(ip.Boundaries) == 0 {
		missing = append(missing, "Boundaries")
	}
	if len(ip.TemperatureHistory.Time) == 0 {
		missing = append(missing, "TemperatureHistory")
	}
	if len(missing) != 0 {
		sort.Strings(missing)
		return &MCDiffusion1D.InputValidationError{Field: "deck", Reason: "missing " + strings.Join(missing, ", ")}
	}
	comp := ip.Composition
	hasStep, hasBreaks := len(comp.Left) != 0 || len(comp.Right) != 0, len(comp.Breakpoints) != 0
	if hasStep == hasBreaks {
		return &MCDiffusion1D.InputValidationError{Field: "Composition",
			Reason: "give either Left and Right or Breakpoints and Values"}
	}
	if ip.Measured != nil {
		found := false
		for _, name := range ip.Species {
			found = found || name == ip.Measured.Species
		}
		if !found {
			return &MCDiffusion1D.InputValidationError{Field: "Measured.Species",
				Reason: fmt.Sprintf("%q is not one of %v", ip.Measured.Species, ip.Species)}
		}
	}
	return nil
}

// ModelInput builds the typed model input
func (ip *InputParameters1D) ModelInput() (in MCDiffusion1D.Input, err error) {
	if err = ip.Validate(); err != nil {
		return
	}
	var (
		geometry = types.Planar
		d        = ip.Domain
	)
	if ip.Geometry != "" {
		if geometry, err = types.NewGeometry(ip.Geometry); err != nil {
			return in, &MCDiffusion1D.InputValidationError{Field: "Geometry", Reason: err.Error()}
		}
	}
	in = MCDiffusion1D.Input{
		Species:   ip.Species,
		Tilt:      ip.Tilt,
		Dt:        ip.TimeStep,
		FinalTime: ip.FinalTime,
	}
	if in.Grid, err = MCDiffusion1D.NewGrid(d.Start, d.End, d.Dx, d.Interface, geometry); err != nil {
		return
	}
	comp := ip.Composition
	if len(comp.Breakpoints) != 0 {
		in.Initial, err = MCDiffusion1D.InterpolatedProfile(in.Grid, comp.Breakpoints, comp.Values)
	} else {
		in.Initial, err = MCDiffusion1D.FlatProfile(in.Grid, comp.Left, comp.Right)
	}
	if err != nil {
		return
	}
	for s, sm := range ip.Diffusivity {
		var sd MCDiffusion1D.SpeciesDiffusivity
		if sd.Left, err = sm.Left.medium(fmt.Sprintf("Diffusivity[%d].Left", s)); err != nil {
			return
		}
		if sd.Right, err = sm.Right.medium(fmt.Sprintf("Diffusivity[%d].Right", s)); err != nil {
			return
		}
		in.Diffusivity = append(in.Diffusivity, sd)
	}
	for s, be := range ip.Boundaries {
		b := MCDiffusion1D.Boundary{LeftFlux: be.LeftFlux, RightFlux: be.RightFlux}
		if b.Left, err = boundaryKind(fmt.Sprintf("Boundaries[%d].Left", s), be.Left); err != nil {
			return
		}
		if b.Right, err = boundaryKind(fmt.Sprintf("Boundaries[%d].Right", s), be.Right); err != nil {
			return
		}
		in.Boundaries = append(in.Boundaries, b)
	}
	th := ip.TemperatureHistory
	if in.Temperature, err = MCDiffusion1D.NewTemperatureHistory(th.Time, th.Temperature, th.Pressure); err != nil {
		return
	}
	err = in.Validate()
	return
}

func (mp MediumParameters) medium(field string) (md MCDiffusion1D.MediumDiffusivity, err error) {
	switch {
	case mp.Preset != "":
		var law MCDiffusion1D.Arrhenius
		if law, err = MCDiffusion1D.ApatiteLaw(mp.Preset); err != nil {
			return md, &MCDiffusion1D.InputValidationError{Field: field, Reason: err.Error()}
		}
		law.Va = mp.Va
		md.Law = &law
	case mp.D0 != 0:
		md.Law = &MCDiffusion1D.Arrhenius{D0: mp.D0, Ea: mp.Ea, Va: mp.Va}
	default:
		md.Constant = mp.Constant
	}
	return
}

func boundaryKind(field string, kind interface{}) (bf types.BCFLAG, err error) {
	var label string
	if label, err = cast.ToStringE(kind); err != nil || label == "" {
		return bf, &MCDiffusion1D.InputValidationError{Field: field, Reason: fmt.Sprintf("boundary kind %v is not a name or code", kind)}
	}
	if bf, err = types.NewBCFLAG(label); err != nil {
		return bf, &MCDiffusion1D.InputValidationError{Field: field, Reason: err.Error()}
	}
	return
}

// MeasuredProfile returns the deck's measured traverse, ErrNoMeasuredProfile when the deck has none
func (ip *InputParameters1D) MeasuredProfile(uncertaintyFraction float64) (m best_fit.Measured, err error) {
	if ip.Measured == nil {
		return m, ErrNoMeasuredProfile
	}
	mp := ip.Measured
	return best_fit.NewMeasured(mp.Species, mp.Position, mp.Value, mp.Uncertainty, uncertaintyFraction)
}

var ErrNoMeasuredProfile = errors.New("no measured profile")
