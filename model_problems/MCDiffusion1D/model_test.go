package MCDiffusion1D

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/diffchron/analytic_diffusion"
	"github.com/notargets/diffchron/types"
)

type couple struct {
	a0, a1, dx, xi float64
	geometry       types.Geometry
	left, right    []float64
	D              float64
	bc             types.BCFLAG
	dt, total      float64
}

// e2eCouple is a binary exchange across the interface of a 10 um planar domain
var e2eCouple = couple{
	a0: 0, a1: 10, dx: 1, xi: 5,
	geometry: types.Planar,
	left:     []float64{0.2, 0.8},
	right:    []float64{0.8, 0.2},
	D:        1.e-3,
	bc:       types.BC_Fixed,
	dt:       1, total: 1000,
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func (cp couple) input(t *testing.T) Input {
	gr, err := NewGrid(cp.a0, cp.a1, cp.dx, cp.xi, cp.geometry)
	require.NoError(t, err)
	initial, err := FlatProfile(gr, cp.left, cp.right)
	require.NoError(t, err)
	species := []string{"Cl", "F", "OH"}[:len(cp.left)]
	var (
		dt DiffusivityTable
		bt BoundaryTable
	)
	for range species {
		dt = append(dt, SpeciesDiffusivity{
			Left:  MediumDiffusivity{Constant: cp.D},
			Right: MediumDiffusivity{Constant: cp.D},
		})
		bt = append(bt, Boundary{Left: cp.bc, Right: cp.bc})
	}
	th, err := NewTemperatureHistory([]float64{0, cp.total}, []float64{800, 800}, nil)
	require.NoError(t, err)
	return Input{
		Species:     species,
		Grid:        gr,
		Initial:     initial,
		Diffusivity: dt,
		Boundaries:  bt,
		Temperature: th,
		Dt:          cp.dt,
	}
}

func (cp couple) run(t *testing.T, opts Options) *Result {
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	c, err := NewMCDiffusion(cp.input(t), opts)
	require.NoError(t, err)
	res, err := c.Run(context.Background(), nil)
	require.NoError(t, err)
	return res
}

func TestEndToEnd(t *testing.T) {
	res := e2eCouple.run(t, Options{})
	{ // Smooth monotonic transition matching a reference solution
		final := res.History.Last().Profile(0)
		expected := []float64{0.2, 0.2049239, 0.222326, 0.2782575, 0.4073999, 0.5926001, 0.7217425, 0.777674, 0.7950761, 0.8}
		assert.InDeltaSlice(t, expected, final, 1.e-6)
		for i := 1; i < len(final); i++ {
			assert.Greater(t, final[i], final[i-1])
		}
	}
	{ // Bookkeeping
		assert.Equal(t, 1000, res.Iterations)
		assert.Equal(t, 1001, res.History.Len())
		assert.Equal(t, 0., res.History.Times[0])
		assert.Equal(t, 1000., res.History.Times[1000])
		assert.Equal(t, 0, res.BoundsViolations)
		assert.InDelta(t, 1.e-3, res.StabilityNumber, 1.e-15)
	}
	{ // Mass conserved within 0.1 percent
		assert.Less(t, res.MassBalance.MaxRelative(), 1.e-3)
		assert.Less(t, res.MassBalance.PerCell[0], 1.e-4)
	}
	{ // Every stored state sums to one and stays in [0,1]
		for k, f := range res.History.States {
			assert.LessOrEqual(t, f.SumDeviation(), 1.e-9, "step %d", k)
			assert.Equal(t, 0, f.OutOfBounds(BoundsTolerance), "step %d", k)
		}
		assert.LessOrEqual(t, res.MaxSumDeviation, 1.e-9)
	}
}

func TestSolverEquivalence(t *testing.T) {
	var (
		cp = e2eCouple
	)
	cp.total = 200
	dense := cp.run(t, Options{Solver: DenseInverse{}})
	banded := cp.run(t, Options{Solver: Tridiagonal{}})
	for s := range dense.History.Species {
		assert.InDeltaSlice(t, dense.History.Last().Profile(s), banded.History.Last().Profile(s), 1.e-12)
	}
}

func TestAnalyticCouple(t *testing.T) {
	var (
		cp = e2eCouple
	)
	cp.dx, cp.dt = 0.25, 2
	res := cp.run(t, Options{Solver: Tridiagonal{}})
	exact := analytic_diffusion.Couple{X0: 5, Left: 0.2, Right: 0.8, D: cp.D}.
		Profile(res.History.Grid.Centers, cp.total)
	assert.InDeltaSlice(t, exact, res.History.Last().Profile(0), 2.e-3)
}

func TestSteadyState(t *testing.T) {
	for _, geometry := range []types.Geometry{types.Planar, types.Spherical} {
		for _, bc := range []types.BCFLAG{types.BC_Fixed, types.BC_ZeroFlux} {
			for _, step := range [][2]float64{{1, 1}, {0.5, 10}, {0.25, 100}} {
				cp := couple{
					a0: 1, a1: 11, dx: step[0], xi: 4,
					geometry: geometry,
					left:     []float64{0.3, 0.5, 0.2},
					right:    []float64{0.3, 0.5, 0.2},
					D:        0.1,
					bc:       bc,
					dt:       step[1], total: 500,
				}
				res := cp.run(t, Options{Solver: Tridiagonal{}})
				initial, final := res.History.States[0], res.History.Last()
				assert.InDeltaSlice(t, initial.Data(), final.Data(), 1.e-12, "%s %s dx=%g dt=%g", geometry, bc, step[0], step[1])
			}
		}
	}
}

func TestMassConvergence(t *testing.T) {
	for _, cp := range []couple{
		{a0: 0, a1: 10, xi: 3, geometry: types.Planar,
			left: []float64{0.2, 0.8}, right: []float64{0.8, 0.2}, D: 0.05, bc: types.BC_Fixed, total: 100},
		{a0: 1, a1: 11, xi: 4, geometry: types.Spherical,
			left: []float64{0.2, 0.8}, right: []float64{0.8, 0.2}, D: 0.05, bc: types.BC_Fixed, total: 100},
	} {
		var previous []float64
		for _, step := range [][2]float64{{1, 10}, {0.5, 5}, {0.25, 2.5}, {0.125, 1.25}} {
			cp.dx, cp.dt = step[0], step[1]
			res := cp.run(t, Options{Solver: Tridiagonal{}})
			rel := res.MassBalance.Relative
			if previous != nil {
				for s := range rel {
					assert.Less(t, rel[s], previous[s], "%s dx=%g species %d", cp.geometry, cp.dx, s)
				}
			}
			previous = rel
		}
	}
}

func TestTimeStepping(t *testing.T) {
	var (
		cp = e2eCouple
	)
	cp.dt, cp.total = 3, 10
	{ // The last step is shortened to land on the final time
		var dts []float64
		c, err := NewMCDiffusion(cp.input(t), Options{Logger: quietLogger()})
		require.NoError(t, err)
		res, err := c.Run(context.Background(), func(rc RunContext, snap Snapshot) {
			dts = append(dts, rc.Dt)
			assert.Equal(t, rc.Time, snap.Time)
			assert.Equal(t, rc.Snapshots, len(dts))
		})
		require.NoError(t, err)
		assert.Equal(t, 4, res.Iterations)
		assert.Equal(t, []float64{0, 3, 6, 9, 10}, res.History.Times)
		assert.Equal(t, []float64{0, 3, 3, 3, 1}, dts)
	}
	{ // History stride keeps the initial and final states
		res := cp.run(t, Options{HistoryStride: 2})
		assert.Equal(t, []int{0, 2, 4}, res.History.Iterations)
		assert.Equal(t, []float64{0, 6, 10}, res.History.Times)
	}
	{ // Explicit final time overrides the temperature history span
		in := cp.input(t)
		in.FinalTime = 5
		c, err := NewMCDiffusion(in, Options{Logger: quietLogger()})
		require.NoError(t, err)
		res, err := c.Run(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 5., res.History.Times[res.History.Len()-1])
	}
}

func TestCancellation(t *testing.T) {
	{ // Cancelled before the first iteration
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c, err := NewMCDiffusion(e2eCouple.input(t), Options{Logger: quietLogger()})
		require.NoError(t, err)
		res, err := c.Run(ctx, nil)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, 0, res.Iterations)
		assert.Equal(t, 1, res.History.Len())
		assert.Equal(t, 0., res.MassBalance.Absolute[0])
	}
	{ // Cancelled by an observer, the run stops at the next iteration boundary
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		c, err := NewMCDiffusion(e2eCouple.input(t), Options{Logger: quietLogger()})
		require.NoError(t, err)
		res, err := c.Run(ctx, func(rc RunContext, snap Snapshot) {
			if rc.Iteration == 3 {
				cancel()
			}
		})
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, 3, res.Iterations)
		assert.Equal(t, 4, res.History.Len())
	}
}

func TestTemperatureDependence(t *testing.T) {
	in := e2eCouple.input(t)
	law := &Arrhenius{D0: 5.1e-5, Ea: 290.e3}
	for s := range in.Diffusivity {
		in.Diffusivity[s] = SpeciesDiffusivity{Left: MediumDiffusivity{Law: law}, Right: MediumDiffusivity{Law: law}}
	}
	th, err := NewTemperatureHistory([]float64{0, 10}, []float64{900, 1000}, nil)
	require.NoError(t, err)
	in.Temperature = th
	in.Dt = 2
	c, err := NewMCDiffusion(in, Options{Logger: quietLogger()})
	require.NoError(t, err)
	var temps []float64
	res, err := c.Run(context.Background(), func(rc RunContext, snap Snapshot) {
		temps = append(temps, rc.Temperature)
	})
	require.NoError(t, err)
	// Temperatures are sampled at the start of each step
	assert.InDeltaSlice(t, []float64{900, 900, 920, 940, 960, 980}, temps, 1.e-9)
	// The hottest step sets the stability number
	d, err := MediumDiffusivity{Law: law}.Value(980, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, d*2, res.StabilityNumber, 1.e-12)
}

func TestInputValidation(t *testing.T) {
	base := e2eCouple.input(t)
	var (
		unbalanced = base.Initial.Copy()
		noKind     = BoundaryTable{{Left: types.BC_None, Right: types.BC_Fixed}}
		withFlux   = BoundaryTable{{Left: types.BC_ZeroFlux, LeftFlux: 1, Right: types.BC_Fixed}}
	)
	unbalanced.Profile(0)[0] = 0.5
	cases := []struct {
		name   string
		mutate func(in *Input)
	}{
		{"species", func(in *Input) { in.Species = []string{"Cl"} }},
		{"duplicate species", func(in *Input) { in.Species = []string{"Cl", "Cl"} }},
		{"grid", func(in *Input) { in.Grid = nil }},
		{"initial", func(in *Input) { in.Initial = Field{} }},
		{"initial sum", func(in *Input) { in.Initial = unbalanced }},
		{"diffusivity", func(in *Input) { in.Diffusivity = in.Diffusivity[:1] }},
		{"boundary", func(in *Input) { in.Boundaries = BoundaryTable{} }},
		{"boundary kind", func(in *Input) { in.Boundaries = noKind }},
		{"boundary flux", func(in *Input) { in.Boundaries = withFlux }},
		{"temperatureHistory", func(in *Input) { in.Temperature = nil }},
		{"dt", func(in *Input) { in.Dt = 0 }},
		{"finalTime", func(in *Input) { in.FinalTime = -1 }},
	}
	for _, tc := range cases {
		in := base
		tc.mutate(&in)
		_, err := NewMCDiffusion(in, Options{})
		var ie *InputValidationError
		assert.True(t, errors.As(err, &ie), tc.name)
	}
	{ // The closure species boundary entry is optional
		in := base
		in.Boundaries = in.Boundaries[:1]
		_, err := NewMCDiffusion(in, Options{Logger: quietLogger()})
		assert.NoError(t, err)
	}
}
