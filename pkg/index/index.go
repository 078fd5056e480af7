// Package index answers point and box queries over a generated cell set.
package index

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/lattice"
)

// pointTolerance is the half-width of the query box built around a point and
// the distance under which a point counts as lying on a cell edge.
const pointTolerance = 1e-9

// entry wraps a cell for R-tree storage.
type entry struct {
	order int
	cell  lattice.Cell
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *entry) Bounds() rtreego.Rect {
	return e.bbox
}

// CellIndex is an R-tree over cell bounding boxes.
type CellIndex struct {
	tree *rtreego.Rtree
	size int
}

// New indexes cells. Cells with degenerate boundaries are skipped.
func New(cells []lattice.Cell) *CellIndex {
	objs := make([]rtreego.Spatial, 0, len(cells))
	for i, c := range cells {
		lo, hi := c.Boundary.BoundingBox()
		bbox, err := rtreego.NewRectFromPoints(rtreego.Point{lo.X, lo.Y}, rtreego.Point{hi.X, hi.Y})
		if err != nil {
			continue
		}
		objs = append(objs, &entry{order: i, cell: c, bbox: bbox})
	}
	return &CellIndex{tree: rtreego.NewTree(2, 25, 50, objs...), size: len(objs)}
}

// Len returns the number of indexed cells.
func (ix *CellIndex) Len() int {
	return ix.size
}

// Locate returns the serving cell for pt: the cell containing it, or, for a
// point on a shared edge or vertex, the one whose center is nearest with ties
// going to the earlier cell.
func (ix *CellIndex) Locate(pt geo.Point2D) (lattice.Cell, bool) {
	var (
		best  *entry
		bestD float64
	)
	for _, e := range ix.search(rtreego.Point{pt.X, pt.Y}.ToRect(pointTolerance)) {
		b := e.cell.Boundary
		if !b.Contains(pt) && !b.OnBoundary(pt, pointTolerance) {
			continue
		}
		d := e.cell.Center.Distance(pt)
		if best == nil || d < bestD || (d == bestD && e.order < best.order) {
			best, bestD = e, d
		}
	}
	if best == nil {
		return lattice.Cell{}, false
	}
	return best.cell, true
}

// Query returns every cell whose bounding box meets the box [lo, hi], in
// generation order.
func (ix *CellIndex) Query(lo, hi geo.Point2D) []lattice.Cell {
	bbox, err := rtreego.NewRectFromPoints(rtreego.Point{lo.X, lo.Y}, rtreego.Point{hi.X, hi.Y})
	if err != nil {
		return nil
	}
	found := ix.search(bbox)
	out := make([]lattice.Cell, len(found))
	for i, e := range found {
		out[i] = e.cell
	}
	return out
}

func (ix *CellIndex) search(bb rtreego.Rect) []*entry {
	results := ix.tree.SearchIntersect(bb)
	out := make([]*entry, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*entry))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}
