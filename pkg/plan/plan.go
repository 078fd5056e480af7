// Package plan runs the full coverage pipeline: build the service region,
// generate the lattice cells that intersect it, and evaluate coverage.
package plan

import (
	"fmt"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/coverage"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/lattice"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/region"
)

// Result is everything a presentation layer needs for one run.
type Result struct {
	Label    string           `json:"label"`
	Radius   float64          `json:"radius"`
	Boundary geo.Polygon      `json:"boundary"`
	Cells    []lattice.Cell   `json:"cells"`
	Centers  []geo.Point2D    `json:"centers"`
	Metrics  coverage.Metrics `json:"metrics"`
}

// Polygons returns the cell boundaries, index-aligned with Centers.
func (r *Result) Polygons() []geo.Polygon {
	out := make([]geo.Polygon, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Boundary
	}
	return out
}

// Breakdown classifies every cell by how much of it lies inside the boundary.
func (r *Result) Breakdown() coverage.Breakdown {
	return coverage.CellBreakdown(r.Boundary, r.Cells)
}

// Planner holds the kernel and generator settings shared by runs. It keeps no
// state between runs and is safe for concurrent use.
type Planner struct {
	generator *lattice.Generator
	evaluator *coverage.Evaluator
}

// New returns a planner backed by k.
func New(k geo.Kernel, opts lattice.Options) *Planner {
	return &Planner{
		generator: lattice.NewGenerator(k, opts),
		evaluator: coverage.NewEvaluator(k),
	}
}

// Default returns a planner on the default kernel and generator options.
func Default() *Planner {
	return New(geo.NewKernel(), lattice.Options{})
}

// Run plans radius r over the region described by d. It returns either a
// complete result or an error, never both.
func (p *Planner) Run(d region.Descriptor, r float64) (*Result, error) {
	if err := lattice.ValidRadius(r); err != nil {
		return nil, err
	}
	boundary, err := d.Build()
	if err != nil {
		return nil, err
	}
	return p.RunBoundary(d.Label(), boundary, r)
}

// RunBoundary plans radius r over an already built boundary.
func (p *Planner) RunBoundary(label string, boundary geo.Polygon, r float64) (*Result, error) {
	grid, err := p.generator.Generate(boundary, r)
	if err != nil {
		return nil, fmt.Errorf("generating lattice: %w", err)
	}
	metrics, err := p.evaluator.Evaluate(boundary, grid.Polygons(), r)
	if err != nil {
		return nil, fmt.Errorf("evaluating coverage: %w", err)
	}
	return &Result{
		Label:    label,
		Radius:   r,
		Boundary: boundary,
		Cells:    grid.Cells,
		Centers:  grid.Centers(),
		Metrics:  metrics,
	}, nil
}
