// Package lattice enumerates the cells of a regular hexagonal lattice that
// intersect a boundary polygon.
//
// Cells are pointy-top hexagons: vertex k sits at angle pi/6 + k*pi/3 from
// the center. Row r, column c has its center at (c*xStep, r*yStep) with
// xStep = sqrt(3)*R and yStep = 1.5*R, and odd rows shift right by xStep/2,
// so neighbouring cells share edges without gaps or overlap.
package lattice

import (
	"errors"
	"fmt"
	"math"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
)

// searchMargin is the number of extra rows and columns scanned on every side
// of the boundary's bounding box.
const searchMargin = 2

// DefaultMaxCandidates bounds the padded search range so a tiny radius over a
// large region fails fast instead of running for hours.
const DefaultMaxCandidates = 4_000_000

var (
	// ErrInvalidRadius is returned for a radius that is not a finite positive number.
	ErrInvalidRadius = errors.New("invalid cell radius")

	// ErrTooManyCandidates is returned when the padded search range exceeds
	// Options.MaxCandidates.
	ErrTooManyCandidates = errors.New("too many lattice candidates")
)

// Index identifies a lattice position.
type Index struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is one hexagon of the lattice.
type Cell struct {
	Index    Index       `json:"index"`
	Center   geo.Point2D `json:"center"`
	Radius   float64     `json:"radius"`
	Boundary geo.Polygon `json:"boundary"`
}

// Area returns the closed-form area of a regular hexagon of circumradius r.
func Area(r float64) float64 {
	return 1.5 * math.Sqrt(3) * r * r
}

// Steps returns the horizontal and vertical center spacing for radius r.
func Steps(r float64) (xStep, yStep float64) {
	return math.Sqrt(3) * r, 1.5 * r
}

// CenterOf maps a lattice index to its cell center.
func CenterOf(idx Index, r float64) geo.Point2D {
	xStep, yStep := Steps(r)
	cx := float64(idx.Col) * xStep
	cy := float64(idx.Row) * yStep
	if idx.Row%2 != 0 {
		cx += xStep / 2
	}
	return geo.Pt(cx, cy)
}

// Hexagon returns the six vertices of the cell centered at c with radius r.
func Hexagon(c geo.Point2D, r float64) geo.Polygon {
	return geo.RegularRing(c, r, 6, math.Pi/6)
}

// NewCell builds the cell at idx.
func NewCell(idx Index, r float64) Cell {
	c := CenterOf(idx, r)
	return Cell{
		Index:    idx,
		Center:   c,
		Radius:   r,
		Boundary: Hexagon(c, r),
	}
}

// Range is an inclusive block of lattice indices.
type Range struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Count returns the number of indices in the range.
func (rg Range) Count() int64 {
	if rg.MaxRow < rg.MinRow || rg.MaxCol < rg.MinCol {
		return 0
	}
	return int64(rg.MaxRow-rg.MinRow+1) * int64(rg.MaxCol-rg.MinCol+1)
}

// Contains reports whether idx falls inside the range.
func (rg Range) Contains(idx Index) bool {
	return idx.Row >= rg.MinRow && idx.Row <= rg.MaxRow &&
		idx.Col >= rg.MinCol && idx.Col <= rg.MaxCol
}

// maxIndex bounds lattice rows and columns, margin included.
const maxIndex = math.MaxInt32

// SearchRange returns the padded index range covering every cell whose
// hexagon can touch the box [lo, hi] at radius r. Indices saturate at
// ±maxIndex.
func SearchRange(lo, hi geo.Point2D, r float64) Range {
	xStep, yStep := Steps(r)
	return Range{
		MinRow: toIndex(math.Floor(lo.Y/yStep) - searchMargin),
		MaxRow: toIndex(math.Ceil(hi.Y/yStep) + searchMargin),
		MinCol: toIndex(math.Floor(lo.X/xStep) - searchMargin),
		MaxCol: toIndex(math.Ceil(hi.X/xStep) + searchMargin),
	}
}

// Indexable reports whether the padded search range for [lo, hi] at radius r
// fits within ±maxIndex without saturating.
func Indexable(lo, hi geo.Point2D, r float64) bool {
	xStep, yStep := Steps(r)
	for _, v := range []float64{lo.Y / yStep, hi.Y / yStep, lo.X / xStep, hi.X / xStep} {
		if !(math.Abs(v) < maxIndex-searchMargin-1) {
			return false
		}
	}
	return true
}

func toIndex(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > maxIndex:
		return maxIndex
	case v < -maxIndex:
		return -maxIndex
	}
	return int(v)
}

// ValidRadius reports an error unless r is a finite positive number.
func ValidRadius(r float64) error {
	if !(r > 0) || math.IsInf(r, 1) {
		return fmt.Errorf("%w: radius must be a finite number > 0, got %v", ErrInvalidRadius, r)
	}
	return nil
}
