/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/diffchron/InputParameters"
	"github.com/notargets/diffchron/best_fit"
	"github.com/notargets/diffchron/model_problems/MCDiffusion1D"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional multicomponent diffusion across a fixed interface",
	Long: `
Runs the implicit multicomponent diffusion model described by an input deck and,
when the deck carries a measured profile, finds the best fit diffusion time,

diffchron 1D -I deck.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		m1d := &Model1D{
			InputFile:           Cfg.GetString("inputConditionsFile"),
			Solver:              Cfg.GetString("solver"),
			FinalTime:           Cfg.GetFloat64("finalTime"),
			HistoryStride:       Cfg.GetInt("historyStride"),
			LogFrequency:        Cfg.GetInt("logFrequency"),
			ParallelDegree:      Cfg.GetInt("procs"),
			UncertaintyFraction: Cfg.GetFloat64("uncertaintyFraction"),
			Strict:              Cfg.GetBool("strict"),
			Profile:             Cfg.GetString("profile"),
		}
		var ip *InputParameters.InputParameters1D
		if ip, err = processInput(m1d); err != nil {
			return
		}
		ip.Print()
		switch m1d.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			return fmt.Errorf("unknown profile %q, choose cpu or mem", m1d.Profile)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		_, err = Run1D(ctx, m1d, ip, log)
		return
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
}

type Model1D struct {
	InputFile           string
	Solver              string
	FinalTime           float64
	HistoryStride       int
	LogFrequency        int
	ParallelDegree      int
	UncertaintyFraction float64
	Strict              bool
	Profile             string
}

// Report1D is the outcome of one run. Fit is nil when the deck has no measured profile or nothing fits,
// NoFit carries the search summary in the latter case.
type Report1D struct {
	Result *MCDiffusion1D.Result
	Fit    *best_fit.Result
	NoFit  *best_fit.NoAcceptableFitError
}

const exampleDeck = `
########################################
Title: "Cl-F exchange"
Species: [Cl, F, OH]   # The last species closes the composition
Geometry: planar       # or cylindrical, spherical
Domain: {Start: 0, End: 100, Dx: 0.5, Interface: 50}   # um
TimeStep: 1            # hr
Composition:
  Left: [0.6, 0.3, 0.1]
  Right: [0.1, 0.8, 0.1]
Diffusivity:
  - Left: {Preset: Cl}
    Right: {Constant: 1.e-4}   # um^2/hr
  - Left: {Preset: F}
    Right: {Constant: 1.e-4}
  - Left: {Preset: OH}
    Right: {Constant: 1.e-4}
Boundaries:
  - {Left: zero-flux, Right: fixed}
  - {Left: zero-flux, Right: fixed}
TemperatureHistory:
  Time: [0, 500, 1000]     # hr
  Temperature: [950, 900, 850]  # C
Measured:
  Species: Cl
  Position: [45, 48, 50, 52, 55]
  Value: [0.58, 0.5, 0.35, 0.2, 0.11]
########################################
`

func processInput(m1d *Model1D) (ip *InputParameters.InputParameters1D, err error) {
	if len(m1d.InputFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleDeck)
		return nil, fmt.Errorf("must supply an input deck (-I, --inputConditionsFile) in YAML format")
	}
	var data []byte
	if data, err = os.ReadFile(m1d.InputFile); err != nil {
		return
	}
	ip = &InputParameters.InputParameters1D{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", m1d.InputFile, err)
	}
	if len(ip.Title) == 0 {
		ip.Title = m1d.InputFile
	}
	return
}

func Run1D(ctx context.Context, m1d *Model1D, ip *InputParameters.InputParameters1D, logger logrus.FieldLogger) (rpt *Report1D, err error) {
	var (
		in     MCDiffusion1D.Input
		solver MCDiffusion1D.LinearSolver
		c      *MCDiffusion1D.MCDiffusion
	)
	if in, err = ip.ModelInput(); err != nil {
		return
	}
	if m1d.FinalTime > 0 {
		in.FinalTime = m1d.FinalTime
	}
	name, stride := m1d.Solver, m1d.HistoryStride
	if name == "" {
		name = ip.Solver
	}
	if name == "" {
		name = MCDiffusion1D.Solver_Dense.String()
	}
	if stride <= 0 {
		stride = ip.HistoryStride
	}
	if solver, err = MCDiffusion1D.NewLinearSolver(name); err != nil {
		return
	}
	if c, err = MCDiffusion1D.NewMCDiffusion(in, MCDiffusion1D.Options{
		Solver:        solver,
		LogFrequency:  m1d.LogFrequency,
		HistoryStride: stride,
		Logger:        logger.WithField("title", ip.Title),
	}); err != nil {
		return
	}
	rpt = &Report1D{}
	if rpt.Result, err = c.Run(ctx, nil); err != nil {
		return
	}
	mb := rpt.Result.MassBalance
	for s, sp := range mb.Species {
		logger.WithFields(logrus.Fields{
			"species":     sp,
			"initial":     mb.Initial[s],
			"final":       mb.Final[s],
			"relative(%)": 100 * mb.Relative[s],
			"perCell":     mb.PerCell[s],
		}).Info("mass balance")
	}

	var (
		meas   best_fit.Measured
		series best_fit.Series
		fit    *best_fit.Result
	)
	if meas, err = ip.MeasuredProfile(m1d.UncertaintyFraction); err != nil {
		if errors.Is(err, InputParameters.ErrNoMeasuredProfile) {
			err = nil
		}
		return
	}
	if series, err = best_fit.SeriesFromHistory(rpt.Result.History, meas.Species); err != nil {
		return
	}
	fit, err = best_fit.Search(series, meas, best_fit.Options{
		ParallelDegree: m1d.ParallelDegree,
		Strict:         m1d.Strict,
	})
	var nf *best_fit.NoAcceptableFitError
	if errors.As(err, &nf) {
		logger.WithField("minRMSTime", nf.MinRMSTime).Warn(nf.Error())
		rpt.NoFit = nf
		return rpt, nil
	}
	if err != nil {
		return
	}
	rpt.Fit = fit
	logger.WithFields(logrus.Fields{
		"species":     meas.Species,
		"time(hr)":    fit.BestTime,
		"time(days)":  fit.BestDays,
		"lower(hr)":   fit.LowerBound,
		"upper(hr)":   fit.UpperBound,
		"fits":        fmt.Sprintf("%d/%d", fit.Fits, fit.Points),
		"discrepancy": fit.Discrepancy,
		"minRMS(hr)":  fit.MinRMSTime,
	}).Info("best fit")
	return
}
