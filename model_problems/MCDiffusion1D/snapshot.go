package MCDiffusion1D

// Trace is a plottable line of one species
type Trace struct {
	Species string
	X, Y    []float64
}

// Snapshot is the renderable state of a field at one time
type Snapshot struct {
	Time      float64
	Iteration int
	Traces    []Trace
}

// NewSnapshot builds one trace per species over the full domain: the domain walls carry the end cell values
// and the interface wall appears twice so the composition step between the two media is drawn vertically
func NewSnapshot(gr *Grid, species []string, f Field, time float64, iteration int) (snap Snapshot) {
	var (
		pq     = gr.Interface
		nc     = gr.NumCells()
		nWalls = len(gr.Walls)
	)
	snap = Snapshot{
		Time:      time,
		Iteration: iteration,
		Traces:    make([]Trace, len(species)),
	}
	x := make([]float64, 0, nc+4)
	x = append(x, gr.Walls[0])
	x = append(x, gr.Centers[:pq]...)
	x = append(x, gr.Walls[pq], gr.Walls[pq])
	x = append(x, gr.Centers[pq:]...)
	x = append(x, gr.Walls[nWalls-1])
	for s, name := range species {
		p := f.Profile(s)
		y := make([]float64, 0, nc+4)
		y = append(y, p[0])
		y = append(y, p[:pq]...)
		y = append(y, p[pq-1], p[pq])
		y = append(y, p[pq:]...)
		y = append(y, p[nc-1])
		snap.Traces[s] = Trace{
			Species: name,
			X:       x,
			Y:       y,
		}
	}
	return
}
