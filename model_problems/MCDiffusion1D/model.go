package MCDiffusion1D

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/notargets/diffchron/utils"
)

const (
	BoundsTolerance = 1.e-9
)

// RunContext carries the progress counters of a run through the solver and to observers
type RunContext struct {
	Iteration             int
	Time, Dt              float64 // Elapsed time and the step that produced it, hr
	Temperature, Pressure float64 // Celsius, Pa
	Snapshots             int     // Stored history entries
}

// Observer receives every stored snapshot
type Observer func(rc RunContext, snap Snapshot)

// Input is the typed problem definition: species, grid, initial field, and the material and boundary tables
type Input struct {
	Species     []string // The last species is the closure species
	Grid        *Grid
	Initial     Field
	Diffusivity DiffusivityTable
	Boundaries  BoundaryTable
	Temperature *TemperatureHistory
	Tilt        float64 // Traverse angle from the c-axis in degrees
	Dt          float64 // Nominal time step, hr
	FinalTime   float64 // Total run time, hr. Zero uses the duration of the temperature history
}

type Options struct {
	Solver        LinearSolver
	LogFrequency  int
	HistoryStride int // Store every HistoryStride iterations, the final state is always stored
	Logger        logrus.FieldLogger
}

type MCDiffusion struct {
	In        Input
	FinalTime float64
	Step      *StepSolver
	opts      Options
	log       logrus.FieldLogger
}

type Result struct {
	History          *History
	MassBalance      MassBalance
	Iterations       int
	BoundsViolations int
	MaxSumDeviation  float64
	StabilityNumber  float64
}

func NewMCDiffusion(in Input, opts Options) (c *MCDiffusion, err error) {
	if err = in.Validate(); err != nil {
		return
	}
	if opts.Solver == nil {
		opts.Solver = DenseInverse{}
	}
	if opts.LogFrequency <= 0 {
		opts.LogFrequency = 50
	}
	if opts.HistoryStride <= 0 {
		opts.HistoryStride = 1
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	c = &MCDiffusion{
		In:        in,
		FinalTime: in.FinalTime,
		Step: &StepSolver{
			Grid:       in.Grid,
			Species:    in.Species,
			Boundaries: in.Boundaries,
			Solver:     opts.Solver,
		},
		opts: opts,
		log:  opts.Logger,
	}
	if c.FinalTime == 0 {
		c.FinalTime = in.Temperature.Duration()
	}
	if !(c.FinalTime > 0) {
		return nil, invalid("finalTime", "run time must be positive, got %g", c.FinalTime)
	}
	return
}

func (in Input) Validate() (err error) {
	var (
		ns = len(in.Species)
	)
	if ns < 2 {
		return invalid("species", "need at least 2 species, got %d", ns)
	}
	seen := make(map[string]bool, ns)
	for _, name := range in.Species {
		if name == "" || seen[name] {
			return invalid("species", "species names must be unique and non-empty: %v", in.Species)
		}
		seen[name] = true
	}
	if in.Grid == nil {
		return invalid("grid", "missing")
	}
	if in.Initial.Matrix.M == nil {
		return invalid("initial", "missing")
	}
	if in.Initial.Species() != ns || in.Initial.Cells() != in.Grid.NumCells() {
		return invalid("initial", "field is %d x %d, expected %d species x %d cells",
			in.Initial.Species(), in.Initial.Cells(), ns, in.Grid.NumCells())
	}
	if dev := in.Initial.SumDeviation(); dev > CompositionTolerance {
		return invalid("initial", "mole fractions do not sum to one, deviation %g", dev)
	}
	if n := in.Initial.OutOfBounds(0); n != 0 {
		return invalid("initial", "%d mole fractions outside [0,1]", n)
	}
	if err = in.Diffusivity.Validate(ns); err != nil {
		return
	}
	if err = in.Boundaries.Validate(ns); err != nil {
		return
	}
	if in.Temperature == nil {
		return invalid("temperatureHistory", "missing")
	}
	if !(in.Dt > 0) {
		return invalid("dt", "time step must be positive, got %g", in.Dt)
	}
	if in.FinalTime < 0 || math.IsNaN(in.FinalTime) {
		return invalid("finalTime", "run time must not be negative, got %g", in.FinalTime)
	}
	return
}

// Run advances the field to FinalTime. The context is checked between iterations, a cancelled run returns
// the result up to the last completed iteration together with the context error.
func (c *MCDiffusion) Run(ctx context.Context, observe Observer) (res *Result, err error) {
	var (
		in       = c.In
		gr       = in.Grid
		rc       RunContext
		cur      = in.Initial.Copy()
		D        utils.Matrix
		lastTemp = math.NaN()
		lastP    = math.NaN()
		varyD    = in.Diffusivity.DependsOnTemperature()
	)
	res = &Result{History: NewHistory(gr, in.Species)}
	store := func() {
		rc.Snapshots++
		res.History.Append(rc, cur)
		if observe != nil {
			observe(rc, res.History.Snapshot(res.History.Len()-1))
		}
	}
	finish := func() {
		res.Iterations = rc.Iteration
		res.MassBalance = NewMassBalance(gr, in.Species, res.History.States[0], cur)
	}
	rc.Temperature, rc.Pressure = in.Temperature.At(0)
	store()
	c.log.WithFields(logrus.Fields{
		"species":   in.Species,
		"cells":     gr.NumCells(),
		"geometry":  gr.Geometry,
		"interface": gr.InterfacePosition(),
		"dt":        in.Dt,
		"finalTime": c.FinalTime,
		"solver":    c.Step.Solver.Name(),
	}).Info("multicomponent diffusion")

	for c.FinalTime-rc.Time > 1.e-12*c.FinalTime {
		if err = ctx.Err(); err != nil {
			finish()
			err = fmt.Errorf("run stopped after iteration %d at t = %g hr: %w", rc.Iteration, rc.Time, err)
			return
		}
		rc.Dt = math.Min(in.Dt, c.FinalTime-rc.Time)
		rc.Temperature, rc.Pressure = in.Temperature.At(rc.Time)
		if D.M == nil || (varyD && (rc.Temperature != lastTemp || rc.Pressure != lastP)) {
			if D, err = in.Diffusivity.CellDiffusivity(gr, rc.Temperature, rc.Pressure, in.Tilt); err != nil {
				return
			}
			lastTemp, lastP = rc.Temperature, rc.Pressure
			if sn := StabilityNumber(D, in.Dt, gr.Dx); sn > res.StabilityNumber {
				res.StabilityNumber = sn
			}
		}
		rc.Iteration++
		var next Field
		if next, err = c.Step.Step(&rc, cur, D, rc.Dt); err != nil {
			rc.Iteration--
			finish()
			return
		}
		cur = next
		rc.Time += rc.Dt
		if c.FinalTime-rc.Time <= 1.e-12*c.FinalTime {
			rc.Time = c.FinalTime
		}
		if n := cur.OutOfBounds(BoundsTolerance); n != 0 {
			if res.BoundsViolations == 0 {
				c.log.WithFields(logrus.Fields{
					"iteration": rc.Iteration,
					"cells":     n,
				}).Warn("mole fractions left [0,1], reduce dt or dx")
			}
			res.BoundsViolations += n
		}
		res.MaxSumDeviation = math.Max(res.MaxSumDeviation, cur.SumDeviation())
		isDone := rc.Time == c.FinalTime
		if rc.Iteration%c.opts.HistoryStride == 0 || isDone {
			store()
		}
		if rc.Iteration%c.opts.LogFrequency == 0 || isDone {
			c.log.WithFields(logrus.Fields{
				"iteration":   rc.Iteration,
				"time":        rc.Time,
				"temperature": rc.Temperature,
				"min":         cur.Min(),
				"max":         cur.Max(),
			}).Info("progress")
		}
	}
	if res.StabilityNumber >= 0.5 {
		c.log.WithField("stability", res.StabilityNumber).
			Warn("explicit stability number exceeds 0.5")
	}
	finish()
	c.log.WithFields(logrus.Fields{
		"iterations": rc.Iteration,
		"snapshots":  rc.Snapshots,
		"memory":     utils.GetMemUsage(),
	}).Debug("run complete")
	return
}
