package lattice

import (
	"fmt"
	"math"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
)

// Options tunes a Generator.
type Options struct {
	// MaxCandidates caps the padded search range. Zero means
	// DefaultMaxCandidates; a negative value disables the cap.
	MaxCandidates int64
}

func (o Options) maxCandidates() int64 {
	if o.MaxCandidates == 0 {
		return DefaultMaxCandidates
	}
	return o.MaxCandidates
}

// Grid is the set of cells intersecting a boundary, in row-major order with
// ascending rows and then ascending columns.
type Grid struct {
	Radius float64 `json:"radius"`
	Range  Range   `json:"range"`
	Cells  []Cell  `json:"cells"`
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.Cells)
}

// Centers returns the cell centers, index-aligned with Polygons.
func (g *Grid) Centers() []geo.Point2D {
	out := make([]geo.Point2D, len(g.Cells))
	for i, c := range g.Cells {
		out[i] = c.Center
	}
	return out
}

// Polygons returns the cell boundaries, index-aligned with Centers.
func (g *Grid) Polygons() []geo.Polygon {
	out := make([]geo.Polygon, len(g.Cells))
	for i, c := range g.Cells {
		out[i] = c.Boundary
	}
	return out
}

// Generator enumerates lattice cells against a boundary.
type Generator struct {
	kernel geo.Kernel
	opts   Options
}

// NewGenerator returns a generator that tests candidates with k.
func NewGenerator(k geo.Kernel, opts Options) *Generator {
	return &Generator{kernel: k, opts: opts}
}

// Generate returns every cell of radius r whose hexagon intersects boundary,
// boundary-only contact included. The boundary need not be convex.
func (g *Generator) Generate(boundary geo.Polygon, r float64) (*Grid, error) {
	if err := ValidRadius(r); err != nil {
		return nil, err
	}
	if boundary.IsEmpty() {
		return nil, fmt.Errorf("%w: boundary has %d vertices", geo.ErrKernel, boundary.Len())
	}
	if !boundary.IsFinite() {
		return nil, fmt.Errorf("%w: boundary has non-finite coordinates", geo.ErrKernel)
	}

	target := geo.RegionOf(boundary)
	lo, hi := g.kernel.Bounds(target)
	if err := g.checkCandidates(lo, hi, r); err != nil {
		return nil, err
	}
	rg := SearchRange(lo, hi, r)

	grid := &Grid{Radius: r, Range: rg}
	for row := rg.MinRow; row <= rg.MaxRow; row++ {
		for col := rg.MinCol; col <= rg.MaxCol; col++ {
			cell := NewCell(Index{Row: row, Col: col}, r)
			if g.kernel.Intersects(geo.RegionOf(cell.Boundary), target) {
				grid.Cells = append(grid.Cells, cell)
			}
		}
	}
	return grid, nil
}

func (g *Generator) checkCandidates(lo, hi geo.Point2D, r float64) error {
	if !Indexable(lo, hi, r) {
		return fmt.Errorf("%w: radius %v puts lattice indices beyond ±%d",
			ErrTooManyCandidates, r, maxIndex)
	}
	limit := g.opts.maxCandidates()
	if limit < 0 {
		return nil
	}
	if est := EstimateCandidates(lo, hi, r); est > float64(limit) || math.IsNaN(est) {
		return fmt.Errorf("%w: radius %v needs about %.0f candidates, limit is %d",
			ErrTooManyCandidates, r, est, limit)
	}
	return nil
}

// EstimateCandidates returns the size of the padded search range for the box
// [lo, hi] at radius r. It works in floating point, so absurd radii give a
// huge or infinite estimate rather than an overflowed index.
func EstimateCandidates(lo, hi geo.Point2D, r float64) float64 {
	xStep, yStep := Steps(r)
	rows := math.Ceil(hi.Y/yStep) - math.Floor(lo.Y/yStep) + 2*searchMargin + 1
	cols := math.Ceil(hi.X/xStep) - math.Floor(lo.X/xStep) + 2*searchMargin + 1
	return rows * cols
}
