package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/diffchron/analytic_diffusion"
	"github.com/notargets/diffchron/model_problems/MCDiffusion1D"
	"github.com/notargets/diffchron/types"
)

var (
	csvFile string
	levels  = 4
	dx0     = 1.
	dt0     = 4.
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study, written by -run")
	runPtr := flag.Bool("run", false, "run the couple refinement study and write it to csvFile")
	levelsPtr := flag.Int("levels", levels, "number of refinement levels, each halves dx and dt")
	dxPtr := flag.Float64("dx", dx0, "coarsest cell size, um")
	dtPtr := flag.Float64("dt", dt0, "coarsest time step, hr")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	if *runPtr {
		cs, err := RunCoupleStudy(*levelsPtr, *dxPtr, *dtPtr)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err = writeStudy(csvFile, cs); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Input file: %v\n", csvFile)
	f, err := os.Open(csvFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	studies, err := readCSV(f)
	if err != nil {
		panic(err)
	}
	titles := make([]string, 0, len(studies))
	for title := range studies {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		cs := studies[title]
		fmt.Printf("Title = %s\n", cs.title)
		order := cs.Order()
		for i := range cs.numCells {
			fmt.Printf("%d, %v, %v, %v, %v, %v, order %5.2f\n",
				cs.numCells[i], cs.dx[i], cs.dt[i], cs.rmsErr[i], cs.maxErr[i], cs.massErr[i], order[i])
		}
	}
}

// ConvergenceStudy holds the errors of one problem against its analytic solution under refinement
type ConvergenceStudy struct {
	title          string
	numCells       []int
	dx, dt         []float64
	rmsErr, maxErr []float64
	massErr        []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
	}
}

func (cs *ConvergenceStudy) Add(numCells int, dx, dt, rmsErr, maxErr, massErr float64) {
	cs.numCells = append(cs.numCells, numCells)
	cs.dx = append(cs.dx, dx)
	cs.dt = append(cs.dt, dt)
	cs.rmsErr = append(cs.rmsErr, rmsErr)
	cs.maxErr = append(cs.maxErr, maxErr)
	cs.massErr = append(cs.massErr, massErr)
}

// Order is the observed order of the RMS error between successive levels, the first level is NaN
func (cs *ConvergenceStudy) Order() (order []float64) {
	order = make([]float64, len(cs.dx))
	order[0] = math.NaN()
	for i := 1; i < len(cs.dx); i++ {
		order[i] = math.Log(cs.rmsErr[i-1]/cs.rmsErr[i]) / math.Log(cs.dx[i-1]/cs.dx[i])
	}
	return
}

// RunCoupleStudy relaxes a planar binary couple for 1000 hr at each level and measures it against the erf solution
func RunCoupleStudy(levels int, dx, dt float64) (cs *ConvergenceStudy, err error) {
	var (
		exact = analytic_diffusion.Couple{X0: 5, Left: 0.2, Right: 0.8, D: 1.e-3}
		total = 1000.
		log   = logrus.New()
	)
	log.SetLevel(logrus.WarnLevel)
	cs = NewConvergenceStudy("planar couple")
	for k := 0; k < levels; k++ {
		var (
			gr      *MCDiffusion1D.Grid
			initial MCDiffusion1D.Field
			th      *MCDiffusion1D.TemperatureHistory
			c       *MCDiffusion1D.MCDiffusion
			res     *MCDiffusion1D.Result
		)
		if gr, err = MCDiffusion1D.NewGrid(0, 10, dx, exact.X0, types.Planar); err != nil {
			return
		}
		if initial, err = MCDiffusion1D.FlatProfile(gr, []float64{exact.Left, 1 - exact.Left},
			[]float64{exact.Right, 1 - exact.Right}); err != nil {
			return
		}
		if th, err = MCDiffusion1D.NewTemperatureHistory([]float64{0}, []float64{800}, nil); err != nil {
			return
		}
		medium := MCDiffusion1D.MediumDiffusivity{Constant: exact.D}
		species := MCDiffusion1D.SpeciesDiffusivity{Left: medium, Right: medium}
		if c, err = MCDiffusion1D.NewMCDiffusion(MCDiffusion1D.Input{
			Species:     []string{"A", "B"},
			Grid:        gr,
			Initial:     initial,
			Diffusivity: MCDiffusion1D.DiffusivityTable{species, species},
			Boundaries:  MCDiffusion1D.BoundaryTable{{Left: types.BC_Fixed, Right: types.BC_Fixed}},
			Temperature: th,
			Dt:          dt,
			FinalTime:   total,
		}, MCDiffusion1D.Options{
			Solver:        MCDiffusion1D.Tridiagonal{},
			HistoryStride: math.MaxInt32,
			Logger:        log,
		}); err != nil {
			return
		}
		if res, err = c.Run(context.Background(), nil); err != nil {
			return
		}
		var (
			model = res.History.Last().Profile(0)
			diff  = exact.Profile(gr.Centers, total)
		)
		floats.Sub(diff, model)
		rms := floats.Norm(diff, 2) / math.Sqrt(float64(len(diff)))
		cs.Add(gr.NumCells(), dx, dt, rms, floats.Norm(diff, math.Inf(1)), res.MassBalance.MaxRelative())
		dx, dt = dx/2, dt/2
	}
	return
}

// writeStudy writes the study to path, a failed close is reported like a failed write
func writeStudy(path string, cs *ConvergenceStudy) (err error) {
	var f *os.File
	if f, err = os.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeCSV(f, cs)
}

func writeCSV(w io.Writer, cs *ConvergenceStudy) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write([]string{"title", "cells", "dx", "dt", "rmsErr", "maxErr", "massErr"}); err != nil {
		return
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := range cs.numCells {
		if err = cw.Write([]string{cs.title, strconv.Itoa(cs.numCells[i]),
			f(cs.dx[i]), f(cs.dt[i]), f(cs.rmsErr[i]), f(cs.maxErr[i]), f(cs.massErr[i])}); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

func readCSV(rd io.Reader) (studies map[string]*ConvergenceStudy, err error) {
	var (
		records [][]string
		ok      bool
		cs      *ConvergenceStudy
	)
	studies = make(map[string]*ConvergenceStudy)
	r := csv.NewReader(bufio.NewReader(rd))
	if records, err = r.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) != 7 {
			return nil, fmt.Errorf("line %d: expected 7 fields, got %d", i+1, len(rec))
		}
		var (
			title = rec[0]
			n     int
			v     [5]float64
		)
		if n, err = strconv.Atoi(rec[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		for j := range v {
			if v[j], err = strconv.ParseFloat(rec[j+2], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		if cs, ok = studies[title]; !ok {
			cs = NewConvergenceStudy(title)
			studies[title] = cs
		}
		cs.Add(n, v[0], v[1], v[2], v[3], v[4])
	}
	return
}
