package coverage

import (
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/lattice"
)

// Placement classifies a cell by how much of it lies inside the region.
type Placement string

const (
	Interior     Placement = "interior"
	Partial      Placement = "partial"
	TouchingOnly Placement = "touching"
)

// fullTolerance is the relative slack under which a cell counts as fully inside.
const fullTolerance = 1e-9

// CellCoverage is the share of one cell that falls inside the region.
type CellCoverage struct {
	Index      lattice.Index `json:"index"`
	InsideArea float64       `json:"inside_area"`
	Fraction   float64       `json:"fraction"`
	Placement  Placement     `json:"placement"`
}

// Breakdown reports per-cell coverage and placement counts.
type Breakdown struct {
	Cells        []CellCoverage `json:"cells"`
	Interior     int            `json:"interior"`
	Partial      int            `json:"partial"`
	TouchingOnly int            `json:"touching_only"`
}

// CellBreakdown clips the boundary against every cell hexagon and classifies
// each cell. The sum of InsideArea over all cells equals the covered area,
// because lattice cells do not overlap.
func CellBreakdown(boundary geo.Polygon, cells []lattice.Cell) Breakdown {
	b := Breakdown{Cells: make([]CellCoverage, 0, len(cells))}
	for _, c := range cells {
		hexArea := lattice.Area(c.Radius)
		inside := geo.ClipToConvex(boundary, c.Boundary.EnsureCCW()).Area()
		if inside > hexArea {
			inside = hexArea
		}
		cc := CellCoverage{Index: c.Index, InsideArea: inside}
		if hexArea > 0 {
			cc.Fraction = inside / hexArea
		}
		switch {
		case cc.Fraction >= 1-fullTolerance:
			cc.Placement = Interior
			b.Interior++
		case inside > fullTolerance*hexArea:
			cc.Placement = Partial
			b.Partial++
		default:
			cc.Placement = TouchingOnly
			b.TouchingOnly++
		}
		b.Cells = append(b.Cells, cc)
	}
	return b
}

// InsideArea sums the per-cell inside areas.
func (b Breakdown) InsideArea() float64 {
	var total float64
	for _, c := range b.Cells {
		total += c.InsideArea
	}
	return total
}
