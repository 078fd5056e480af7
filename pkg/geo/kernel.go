package geo

import "errors"

// ErrKernel is returned when a boolean operation cannot be carried out on its
// input, either because a ring is malformed or the engine failed numerically.
var ErrKernel = errors.New("geometry kernel failure")

// Region is a possibly multi-part planar area described by a set of rings.
// A ring nested inside an odd number of other rings is a hole.
type Region []Polygon

// RegionOf wraps single polygons into a region.
func RegionOf(polys ...Polygon) Region {
	return Region(polys)
}

// IsEmpty reports whether the region has no ring with at least 3 vertices.
func (r Region) IsEmpty() bool {
	for _, p := range r {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// Kernel is the polygon algebra the planner consumes. Implementations must
// treat their inputs as read-only.
type Kernel interface {
	// Area returns the non-negative area of r.
	Area(r Region) float64

	// Bounds returns the axis-aligned bounding box of r.
	Bounds(r Region) (min, max Point2D)

	// Intersects reports whether a and b share any point, boundary-only
	// contact included.
	Intersects(a, b Region) bool

	// Union merges all regions into one covering region.
	Union(rs []Region) (Region, error)

	// Intersection returns the area common to a and b.
	Intersection(a, b Region) (Region, error)
}
