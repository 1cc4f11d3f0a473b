package best_fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/diffchron/model_problems/MCDiffusion1D"
	"github.com/notargets/diffchron/utils"
)

const (
	DefaultUncertaintyFraction = 0.02
)

// Measured is a profile of one species along the traverse
type Measured struct {
	Species                          string
	Positions, Values, Uncertainties []float64
}

// NewMeasured validates a measured profile, nil uncertainties default to fraction times the measured value
func NewMeasured(species string, positions, values, uncertainties []float64, fraction float64) (m Measured, err error) {
	var (
		n = len(positions)
	)
	if n == 0 {
		return m, invalid("measured", "profile is empty")
	}
	if len(values) != n {
		return m, invalid("measured", "%d positions but %d values", n, len(values))
	}
	if uncertainties == nil {
		uncertainties = make([]float64, n)
		for i, v := range values {
			uncertainties[i] = fraction * math.Abs(v)
		}
	}
	if len(uncertainties) != n {
		return m, invalid("measured", "%d positions but %d uncertainties", n, len(uncertainties))
	}
	for i := 0; i < n; i++ {
		if !utils.IsFinite([]float64{positions[i], values[i], uncertainties[i]}) {
			return m, invalid("measured", "row %d is not finite", i)
		}
		if uncertainties[i] < 0 {
			return m, invalid("measured", "row %d uncertainty %g is negative", i, uncertainties[i])
		}
		if i > 0 && !(positions[i] > positions[i-1]) {
			return m, invalid("measured", "positions must be strictly increasing at row %d", i)
		}
	}
	m = Measured{
		Species:       species,
		Positions:     positions,
		Values:        values,
		Uncertainties: uncertainties,
	}
	return
}

// Series is the model history of one species, Profiles[k] is sampled at Positions at Times[k]
type Series struct {
	Positions []float64
	Times     []float64
	Profiles  [][]float64
}

func SeriesFromHistory(h *MCDiffusion1D.History, species string) (s Series, err error) {
	var profiles [][]float64
	if profiles, err = h.Series(species); err != nil {
		return s, invalid("measured.species", "%v", err)
	}
	s = Series{
		Positions: h.Grid.Centers,
		Times:     h.Times,
		Profiles:  profiles,
	}
	return
}

type Options struct {
	ParallelDegree int  // Zero uses all CPUs
	Strict         bool // A point fits when |model - measured| < uncertainty instead of <=
}

// StepScore is the agreement of one stored step with the measured profile
type StepScore struct {
	Fits        int
	RMS         float64
	Discrepancy float64
}

type Result struct {
	Best, First, Last      int // Stored step indices
	BestTime               float64
	LowerBound, UpperBound float64 // Offsets of First and Last from BestTime, hr
	BestDays               float64
	Fits, Points           int
	Discrepancy            float64 // Mean |model - measured| / measured at the best step
	MinRMSStep             int
	MinRMSTime, MinRMS     float64
	Model                  []float64 // Model interpolated to the measured positions at the best step
	Scores                 []StepScore
}

// Search scores every stored step against the measured profile. The best step is the midpoint of the first and
// last steps reaching the maximum fit count, which need not be contiguous. Steps are scored in parallel, the
// selection is a sequential scan.
func Search(series Series, meas Measured, opts Options) (res *Result, err error) {
	var (
		nSteps = len(series.Profiles)
	)
	if nSteps == 0 {
		return nil, invalid("history", "no stored steps")
	}
	if len(series.Times) != nSteps {
		return nil, invalid("history", "%d profiles but %d times", nSteps, len(series.Times))
	}
	if len(series.Positions) < 2 {
		return nil, invalid("history", "need at least 2 model positions, got %d", len(series.Positions))
	}
	for k, p := range series.Profiles {
		if len(p) != len(series.Positions) {
			return nil, invalid("history", "step %d has %d values for %d positions", k, len(p), len(series.Positions))
		}
	}
	var (
		op      = utils.LessOrEqual
		scores  = make([]StepScore, nSteps)
		models  = make([][]float64, nSteps)
		stepErr = make([]error, nSteps)
		pm      = utils.NewPartitionMap(utils.ParallelDegree(opts.ParallelDegree, nSteps), nSteps)
	)
	if opts.Strict {
		op = utils.Less
	}
	pm.Run(func(bn, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			models[k], stepErr[k] = interpolate(series.Positions, series.Profiles[k], meas.Positions)
			if stepErr[k] == nil {
				scores[k] = score(models[k], meas, op)
			}
		}
	})
	for k, e := range stepErr {
		if e != nil {
			return nil, fmt.Errorf("step %d: %w", k, e)
		}
	}

	res = &Result{
		First:  -1,
		Points: len(meas.Values),
		Scores: scores,
	}
	res.MinRMS = math.Inf(1)
	for k, sc := range scores {
		if sc.Fits > res.Fits {
			res.Fits, res.First = sc.Fits, k
		}
		if sc.RMS < res.MinRMS {
			res.MinRMS, res.MinRMSStep = sc.RMS, k
		}
	}
	res.MinRMSTime = series.Times[res.MinRMSStep]
	if res.Fits == 0 {
		return nil, &NoAcceptableFitError{
			Steps:      nSteps,
			Points:     res.Points,
			MinRMSStep: res.MinRMSStep,
			MinRMSTime: res.MinRMSTime,
			MinRMS:     res.MinRMS,
		}
	}
	for k := nSteps - 1; k >= 0; k-- {
		if scores[k].Fits == res.Fits {
			res.Last = k
			break
		}
	}
	res.Best = (res.First + res.Last) / 2
	res.BestTime = series.Times[res.Best]
	res.LowerBound = series.Times[res.First] - res.BestTime
	res.UpperBound = series.Times[res.Last] - res.BestTime
	res.BestDays = res.BestTime / MCDiffusion1D.HoursPerDay
	res.Discrepancy = scores[res.Best].Discrepancy
	res.Model = models[res.Best]
	return
}

func interpolate(xs, ys, at []float64) (y []float64, err error) {
	var pl interp.PiecewiseLinear
	if err = pl.Fit(xs, ys); err != nil {
		return
	}
	y = make([]float64, len(at))
	for i, x := range at {
		y[i] = pl.Predict(x)
	}
	return
}

func score(model []float64, meas Measured, op utils.EvalOp) (sc StepScore) {
	var (
		n    = len(model)
		diff = make([]float64, n)
		rel  []float64
	)
	floats.SubTo(diff, model, meas.Values)
	for i, d := range diff {
		if op.Eval(math.Abs(d), meas.Uncertainties[i]) {
			sc.Fits++
		}
		if meas.Values[i] != 0 {
			rel = append(rel, math.Abs(d/meas.Values[i]))
		}
	}
	sc.RMS = floats.Norm(diff, 2) / math.Sqrt(float64(n))
	if len(rel) != 0 {
		sc.Discrepancy = stat.Mean(rel, nil)
	}
	return
}

func invalid(field, format string, args ...interface{}) error {
	return &MCDiffusion1D.InputValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
