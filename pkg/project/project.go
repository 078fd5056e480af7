// Package project ties a loaded plan spec to the planning pipeline: it runs
// the validation levels in order and plans the region when they pass.
package project

import (
	"fmt"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/lattice"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/plan"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/spec"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/validation"
)

// Region is a validated, built service region.
type Region struct {
	Label    string
	Boundary geo.Polygon
}

// Check runs schema and analytical validation on s and builds its region.
// The report is returned whenever validation ran, even alongside an error.
func Check(s *spec.PlanSpec) (*Region, *validation.Report, error) {
	report := validation.ValidateSchema(s)
	if !report.Valid {
		return nil, report, report.Err()
	}

	d, err := s.Descriptor()
	if err != nil {
		return nil, report, fmt.Errorf("resolving region: %w", err)
	}
	boundary, err := d.Build()
	if err != nil {
		return nil, report, fmt.Errorf("building region: %w", err)
	}

	report.Merge(validation.ValidateAnalytical(s, boundary))
	if !report.Valid {
		return nil, report, report.Err()
	}
	return &Region{Label: d.Label(), Boundary: boundary}, report, nil
}

// Plan validates s and plans it at s.Cell.Radius. Coverage findings on the
// finished run are merged into the returned report.
func Plan(s *spec.PlanSpec) (*plan.Result, *validation.Report, error) {
	rgn, report, err := Check(s)
	if err != nil {
		return nil, report, err
	}
	p := plan.New(geo.NewKernel(), lattice.Options{MaxCandidates: s.Cell.MaxCandidates})
	res, err := p.RunBoundary(rgn.Label, rgn.Boundary, s.Cell.Radius)
	if err != nil {
		return nil, report, err
	}
	report.Merge(validation.ValidateResult(res))
	return res, report, nil
}

// WithRadius returns a shallow copy of s planned at radius r.
func WithRadius(s *spec.PlanSpec, r float64) *spec.PlanSpec {
	c := *s
	c.Cell.Radius = r
	return &c
}
