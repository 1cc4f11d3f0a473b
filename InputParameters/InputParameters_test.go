package InputParameters

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/diffchron/model_problems/MCDiffusion1D"
	"github.com/notargets/diffchron/types"
)

var coupleDeck = []byte(`
Title: Binary couple
Species: [Cl, F]
Geometry: planar
Domain:
  Start: 0
  End: 10
  Dx: 1
  Interface: 5
TimeStep: 1
Composition:
  Left: [0.2, 0.8]
  Right: [0.8, 0.2]
Diffusivity:
  - Left: {Constant: 1.e-3}
    Right: {Constant: 1.e-3}
  - Left: {Constant: 1.e-3}
    Right: {Constant: 1.e-3}
Boundaries:
  - Left: 1         # numeric code for fixed
    Right: fixed
TemperatureHistory:
  Time: [0, 1000]
  Temperature: [800, 800]
Measured:
  Species: Cl
  Position: [0.5, 5.5]
  Value: [0.2, 0.6]
`)

func TestInputParameters1D(t *testing.T) {
	var ip InputParameters1D
	require.NoError(t, ip.Parse(coupleDeck))
	assert.Equal(t, "Binary couple", ip.Title)
	assert.Equal(t, []string{"Cl", "F"}, ip.Species)
	assert.Equal(t, 10., ip.Domain.End)
	assert.Equal(t, 1.e-3, ip.Diffusivity[1].Right.Constant)
	assert.Equal(t, "fixed", ip.Boundaries[0].Right)
	ip.Print()
	{ // Typed input
		in, err := ip.ModelInput()
		require.NoError(t, err)
		assert.Equal(t, 10, in.Grid.NumCells())
		assert.Equal(t, 5., in.Grid.InterfacePosition())
		assert.Equal(t, types.BC_Fixed, in.Boundaries[0].Left)
		assert.Equal(t, types.BC_Fixed, in.Boundaries[0].Right)
		assert.Len(t, in.Boundaries, 1)
		assert.Equal(t, []float64{0.2, 0.2, 0.2, 0.2, 0.2, 0.8, 0.8, 0.8, 0.8, 0.8}, in.Initial.Profile(0))
		assert.Equal(t, 1000., in.Temperature.Duration())
	}
	{ // The deck runs to the end of its temperature history
		in, err := ip.ModelInput()
		require.NoError(t, err)
		l := logrus.New()
		l.SetLevel(logrus.ErrorLevel)
		c, err := MCDiffusion1D.NewMCDiffusion(in, MCDiffusion1D.Options{Logger: l, HistoryStride: 100})
		require.NoError(t, err)
		res, err := c.Run(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1000, res.Iterations)
		assert.InDeltaSlice(t,
			[]float64{0.2, 0.2049239, 0.222326, 0.2782575, 0.4073999, 0.5926001, 0.7217425, 0.777674, 0.7950761, 0.8},
			res.History.Last().Profile(0), 1.e-6)
	}
	{ // Measured profile with the default uncertainty
		m, err := ip.MeasuredProfile(0.02)
		require.NoError(t, err)
		assert.Equal(t, "Cl", m.Species)
		assert.InDeltaSlice(t, []float64{0.004, 0.012}, m.Uncertainties, 1.e-15)
	}
}

func TestInputParametersErrors(t *testing.T) {
	parse := func(edit func(ip *InputParameters1D)) error {
		var ip InputParameters1D
		require.NoError(t, ip.Parse(coupleDeck))
		edit(&ip)
		_, err := ip.ModelInput()
		return err
	}
	cases := []struct {
		name string
		edit func(ip *InputParameters1D)
	}{
		{"species", func(ip *InputParameters1D) { ip.Species = nil }},
		{"both compositions", func(ip *InputParameters1D) { ip.Composition.Breakpoints = []float64{0, 10} }},
		{"no composition", func(ip *InputParameters1D) { ip.Composition = CompositionTable{} }},
		{"geometry", func(ip *InputParameters1D) { ip.Geometry = "toroidal" }},
		{"curvilinear origin", func(ip *InputParameters1D) { ip.Geometry = "spherical" }},
		{"boundary code", func(ip *InputParameters1D) { ip.Boundaries[0].Left = 3 }},
		{"boundary missing", func(ip *InputParameters1D) { ip.Boundaries[0].Right = nil }},
		{"flux", func(ip *InputParameters1D) {
			ip.Boundaries[0].Right, ip.Boundaries[0].RightFlux = "zero-flux", 0.1
		}},
		{"preset", func(ip *InputParameters1D) { ip.Diffusivity[0].Left = MediumParameters{Preset: "Br"} }},
		{"measured species", func(ip *InputParameters1D) { ip.Measured.Species = "OH" }},
		{"temperature", func(ip *InputParameters1D) { ip.TemperatureHistory.Time = []float64{0, 0} }},
		{"closure sum", func(ip *InputParameters1D) { ip.Composition.Left = []float64{0.2, 0.7} }},
	}
	for _, tc := range cases {
		err := parse(tc.edit)
		assert.Truef(t, errors.Is(err, MCDiffusion1D.ErrInputValidation) || errors.Is(err, MCDiffusion1D.ErrGeometry),
			"case %s: %v", tc.name, err)
	}
	{ // A spherical domain away from the origin with presets and zero-flux ends
		var ip InputParameters1D
		require.NoError(t, ip.Parse(coupleDeck))
		ip.Geometry = "2"
		ip.Domain.Start, ip.Domain.End, ip.Domain.Interface = 1, 11, 6
		ip.Diffusivity[0].Left = MediumParameters{Preset: "cl"}
		ip.Boundaries[0].Right = 2
		in, err := ip.ModelInput()
		require.NoError(t, err)
		assert.Equal(t, types.Spherical, in.Grid.Geometry)
		assert.Equal(t, types.BC_ZeroFlux, in.Boundaries[0].Right)
		assert.Equal(t, MCDiffusion1D.ApatiteLaws["Cl"].D0, in.Diffusivity[0].Left.Law.D0)
		assert.True(t, in.Diffusivity.DependsOnTemperature())
	}
	{
		var ip InputParameters1D
		require.NoError(t, ip.Parse(coupleDeck))
		ip.Measured = nil
		_, err := ip.MeasuredProfile(0.02)
		assert.Equal(t, ErrNoMeasuredProfile, err)
	}
}
