package validation

import (
	"fmt"
	"math"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/lattice"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/plan"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/spec"
)

// smallRadiusRatio flags radii finer than this fraction of the region's
// longer bounding-box side.
const smallRadiusRatio = 1.0 / 500

// lowCoverage is the ratio under which a full lattice run is reported.
const lowCoverage = 0.99

// ValidateAnalytical performs Level 2 validation: it checks the built
// boundary against the requested radius and candidate limit without running
// the lattice generator.
func ValidateAnalytical(s *spec.PlanSpec, boundary geo.Polygon) *Report {
	r := NewReport()

	area := boundary.Area()
	if area == 0 {
		r.AddWarning(Result{
			Level:       LevelAnalytical,
			Message:     "region has zero area; coverage ratio will be 0",
			SpecPath:    "region",
			ActualValue: area,
			Suggestions: []string{"Check for collinear or duplicate vertices"},
		})
	}

	radius := s.Cell.Radius
	if lattice.ValidRadius(radius) != nil {
		return r
	}
	lo, hi := boundary.BoundingBox()
	extent := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	est := lattice.EstimateCandidates(lo, hi, radius)

	limit := s.Cell.MaxCandidates
	switch {
	case limit < 0:
		r.AddWarning(Result{
			Level:    LevelAnalytical,
			Message:  "candidate limit disabled; very small radii may run for a long time",
			SpecPath: "cell.max_candidates",
		})
	case limit == 0:
		limit = lattice.DefaultMaxCandidates
	}
	if limit > 0 && est > float64(limit) {
		r.AddError(Result{
			Level:       LevelAnalytical,
			Message:     fmt.Sprintf("radius %v needs about %.0f lattice candidates, over the limit of %d", radius, est, limit),
			SpecPath:    "cell.radius",
			ActualValue: radius,
			Expected:    fmt.Sprintf(">= %.4g", minRadius(lo, hi, limit)),
			Suggestions: []string{"Increase cell.radius", "Raise cell.max_candidates"},
		})
	} else if extent > 0 && radius < extent*smallRadiusRatio {
		r.AddWarning(Result{
			Level:       LevelAnalytical,
			Message:     fmt.Sprintf("very small radius %v relative to region extent %.4g", radius, extent),
			SpecPath:    "cell.radius",
			ActualValue: radius,
		})
	}

	if radius > extent {
		r.AddInfo(Result{
			Level:       LevelAnalytical,
			Message:     fmt.Sprintf("radius %v exceeds the region extent %.4g; expect a handful of cells", radius, extent),
			SpecPath:    "cell.radius",
			ActualValue: radius,
		})
	}
	r.AddInfo(Result{
		Level:       LevelAnalytical,
		Message:     fmt.Sprintf("about %.0f lattice candidates, about %.0f cells inside", est, area/lattice.Area(radius)),
		SpecPath:    "cell.radius",
		ActualValue: radius,
	})
	return r
}

// minRadius is the smallest radius whose candidate estimate fits under limit,
// ignoring the margin.
func minRadius(lo, hi geo.Point2D, limit int64) float64 {
	w, h := hi.X-lo.X, hi.Y-lo.Y
	// rows*cols ~ (h/1.5R)(w/sqrt(3)R) = limit
	return math.Sqrt(w * h / (1.5 * math.Sqrt(3) * float64(limit)))
}

// ValidateResult performs Level 3 validation on a finished run.
func ValidateResult(res *plan.Result) *Report {
	r := NewReport()
	m := res.Metrics

	if m.ServiceArea > 0 && m.CoverageRatio < lowCoverage {
		r.AddWarning(Result{
			Level:       LevelCoverage,
			Message:     fmt.Sprintf("coverage ratio %.4f is below %.2f although every intersecting cell was kept", m.CoverageRatio, lowCoverage),
			SpecPath:    "metrics.coverage_ratio",
			ActualValue: m.CoverageRatio,
			Suggestions: []string{"Check the region outline for self-intersections"},
		})
	}

	b := res.Breakdown()
	if b.TouchingOnly > 0 {
		r.AddInfo(Result{
			Level:       LevelCoverage,
			Message:     fmt.Sprintf("%d of %d cells only touch the region boundary and add no covered area", b.TouchingOnly, m.TotalCells),
			SpecPath:    "metrics.total_cells",
			ActualValue: b.TouchingOnly,
		})
	}
	r.AddInfo(Result{
		Level:       LevelCoverage,
		Message:     fmt.Sprintf("%d interior cells, %d partial cells", b.Interior, b.Partial),
		SpecPath:    "metrics.total_cells",
		ActualValue: m.TotalCells,
	})
	return r
}
