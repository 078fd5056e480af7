// Package coverage turns a set of lattice cells into summary statistics for
// the service region they were generated against.
package coverage

import (
	"fmt"
	"math"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/lattice"
)

// Metrics summarises how well a cell set covers its service region.
type Metrics struct {
	TotalCells        int     `json:"total_cells"`
	ServiceArea       float64 `json:"service_area"`
	SingleHexArea     float64 `json:"single_hex_area"`
	CoveredAreaInside float64 `json:"covered_area_inside"`
	CoverageRatio     float64 `json:"coverage_ratio"`
}

// Evaluator computes Metrics with a geometry kernel.
type Evaluator struct {
	kernel geo.Kernel
}

// NewEvaluator returns an evaluator backed by k.
func NewEvaluator(k geo.Kernel) *Evaluator {
	return &Evaluator{kernel: k}
}

// Evaluate computes the metrics of cells against boundary for radius r.
// The cells are merged in a single union and the result is intersected with
// the boundary; a zero-area boundary yields a ratio of 0.
func (e *Evaluator) Evaluate(boundary geo.Polygon, cells []geo.Polygon, r float64) (Metrics, error) {
	if err := lattice.ValidRadius(r); err != nil {
		return Metrics{}, err
	}
	target := geo.RegionOf(boundary)
	m := Metrics{
		TotalCells:    len(cells),
		ServiceArea:   e.kernel.Area(target),
		SingleHexArea: lattice.Area(r),
	}
	if len(cells) == 0 || m.ServiceArea == 0 {
		return m, nil
	}

	regions := make([]geo.Region, len(cells))
	for i, c := range cells {
		regions[i] = geo.RegionOf(c)
	}
	combined, err := e.kernel.Union(regions)
	if err != nil {
		return Metrics{}, fmt.Errorf("merging %d cells: %w", len(cells), err)
	}
	inside, err := e.kernel.Intersection(combined, target)
	if err != nil {
		return Metrics{}, fmt.Errorf("clipping coverage to boundary: %w", err)
	}

	// Kernel round-off may land just outside [0, service_area].
	m.CoveredAreaInside = math.Max(0, math.Min(e.kernel.Area(inside), m.ServiceArea))
	if m.ServiceArea > 0 {
		m.CoverageRatio = m.CoveredAreaInside / m.ServiceArea
	}
	return m, nil
}

// UncoveredArea returns the part of the service region no cell reaches.
func (m Metrics) UncoveredArea() float64 {
	return m.ServiceArea - m.CoveredAreaInside
}

// Overprovision returns how much cell area was deployed per unit of service
// area, or 0 for a zero-area region.
func (m Metrics) Overprovision() float64 {
	if m.ServiceArea <= 0 {
		return 0
	}
	return float64(m.TotalCells) * m.SingleHexArea / m.ServiceArea
}
