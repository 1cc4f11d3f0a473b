package MCDiffusion1D

import (
	"math"

	"github.com/notargets/diffchron/types"
	"github.com/notargets/diffchron/utils"
)

// Grid is a uniform 1D finite volume discretization, cell i spans Walls[i] to Walls[i+1]
type Grid struct {
	Walls, Centers []float64
	Dx             float64
	Interface      int // Wall index separating the two media, cells below it belong to the left medium
	Geometry       types.Geometry
	Gamma          int
}

func NewGrid(a0, a1, dx, interfacePos float64, geometry types.Geometry) (gr *Grid, err error) {
	var (
		tol = 1.e-9 * dx
	)
	switch {
	case !geometry.Valid():
		return nil, invalid("geometry", "unknown geometry %d", geometry)
	case !(dx > 0):
		return nil, invalid("dx", "grid spacing must be positive, got %g", dx)
	case !(a1 > a0):
		return nil, invalid("domain", "end %g must exceed start %g", a1, a0)
	}
	if geometry != types.Planar && (a0 <= 0 || interfacePos <= 0) {
		return nil, &GeometryError{Geometry: geometry, Start: a0, Interface: interfacePos}
	}
	nWalls := int(math.Floor((a1-a0+tol)/dx)) + 1
	if nWalls < 3 {
		return nil, invalid("dx", "domain [%g, %g] with dx = %g yields %d walls, need at least 3", a0, a1, dx, nWalls)
	}
	gr = &Grid{
		Walls:    make([]float64, nWalls),
		Centers:  make([]float64, nWalls-1),
		Dx:       dx,
		Geometry: geometry,
		Gamma:    geometry.Exponent(),
	}
	for k := range gr.Walls {
		gr.Walls[k] = a0 + float64(k)*dx
	}
	for i := range gr.Centers {
		gr.Centers[i] = 0.5 * (gr.Walls[i] + gr.Walls[i+1])
	}
	gr.Interface = gr.nearestWall(interfacePos)
	return
}

func (gr *Grid) nearestWall(x float64) (k int) {
	var (
		nWalls = len(gr.Walls)
	)
	k = int(math.Round((x - gr.Walls[0]) / gr.Dx))
	if k < 1 {
		k = 1
	}
	if k > nWalls-2 {
		k = nWalls - 2
	}
	return
}

func (gr *Grid) NumCells() int { return len(gr.Centers) }

// InterfacePosition is the coordinate of the wall separating the two media
func (gr *Grid) InterfacePosition() float64 { return gr.Walls[gr.Interface] }

// Weight is the generalized coordinate volume weight x^gamma of a position
func (gr *Grid) Weight(x float64) float64 { return utils.POW(x, gr.Gamma) }

// FaceRatios are the left and right face weights of cell i relative to its center weight,
// both are one for planar grids
func (gr *Grid) FaceRatios(i int) (rL, rR float64) {
	if gr.Gamma == 0 {
		return 1, 1
	}
	var (
		x  = gr.Centers[i]
		wx = gr.Weight(x)
	)
	rL = gr.Weight(x-0.5*gr.Dx) / wx
	rR = gr.Weight(x+0.5*gr.Dx) / wx
	return
}

// InLeftMedium reports whether cell i lies before the interface
func (gr *Grid) InLeftMedium(i int) bool { return i < gr.Interface }
