package geo

import (
	"fmt"

	sf "github.com/peterstace/simplefeatures/geom"
)

// OverlayKernel implements Kernel on top of the simplefeatures DCEL overlay.
// The overlay snaps and re-nodes its input before classifying faces, so cells
// that share whole edges merge into a single face.
type OverlayKernel struct{}

// NewKernel returns the default geometry kernel.
func NewKernel() *OverlayKernel {
	return &OverlayKernel{}
}

// Area returns the area of r, holes subtracted.
func (OverlayKernel) Area(r Region) float64 {
	if r.IsEmpty() || checkRegion(r) != nil {
		return 0
	}
	g, err := toGeometry(r)
	if err != nil {
		return 0
	}
	return g.Area()
}

// Bounds returns the bounding box of every vertex in r.
func (OverlayKernel) Bounds(r Region) (Point2D, Point2D) {
	var env sf.Envelope
	for _, p := range r {
		for _, v := range p.Vertices {
			env = env.ExpandToIncludeXY(sf.XY{X: v.X, Y: v.Y})
		}
	}
	lo, hi, ok := env.MinMaxXYs()
	if !ok {
		return Point2D{}, Point2D{}
	}
	return Pt(lo.X, lo.Y), Pt(hi.X, hi.Y)
}

// Intersects reports whether a and b share any point. Rings with fewer than
// 3 distinct vertices or no area are tested as points and line strings.
func (OverlayKernel) Intersects(a, b Region) bool {
	ga, ok := intersectable(a)
	if !ok {
		return false
	}
	gb, ok := intersectable(b)
	if !ok {
		return false
	}
	return sf.Intersects(ga, gb)
}

// Union merges rs in a single overlay pass.
func (OverlayKernel) Union(rs []Region) (out Region, err error) {
	if len(rs) == 0 {
		return Region{}, nil
	}
	for i, r := range rs {
		if err := checkRegion(r); err != nil {
			return nil, fmt.Errorf("union input %d: %w", i, err)
		}
	}

	defer recoverKernel("union", &err)
	gs := make([]sf.Geometry, 0, len(rs))
	for i, r := range rs {
		if r.IsEmpty() {
			continue
		}
		g, err := toGeometry(r)
		if err != nil {
			return nil, fmt.Errorf("union input %d: %w", i, err)
		}
		gs = append(gs, g)
	}
	if len(gs) == 0 {
		return Region{}, nil
	}
	u, err := sf.UnionMany(gs)
	if err != nil {
		return nil, fmt.Errorf("%w: union: %v", ErrKernel, err)
	}
	return fromGeometry(u), nil
}

// Intersection returns the overlap of a and b.
func (OverlayKernel) Intersection(a, b Region) (out Region, err error) {
	if err := checkRegion(a); err != nil {
		return nil, fmt.Errorf("intersection subject: %w", err)
	}
	if err := checkRegion(b); err != nil {
		return nil, fmt.Errorf("intersection clip: %w", err)
	}
	if a.IsEmpty() || b.IsEmpty() {
		return Region{}, nil
	}

	defer recoverKernel("intersection", &err)
	ga, err := toGeometry(a)
	if err != nil {
		return nil, fmt.Errorf("intersection subject: %w", err)
	}
	gb, err := toGeometry(b)
	if err != nil {
		return nil, fmt.Errorf("intersection clip: %w", err)
	}
	g, err := sf.Intersection(ga, gb)
	if err != nil {
		return nil, fmt.Errorf("%w: intersection: %v", ErrKernel, err)
	}
	return fromGeometry(g), nil
}

func recoverKernel(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", ErrKernel, op, r)
	}
}

// checkRegion rejects rings the overlay cannot work with.
func checkRegion(r Region) error {
	for i, p := range r {
		if len(p.Vertices) > 0 && len(p.Vertices) < 3 {
			return fmt.Errorf("%w: ring %d has %d vertices", ErrKernel, i, len(p.Vertices))
		}
		if !p.IsFinite() {
			return fmt.Errorf("%w: ring %d has non-finite coordinates", ErrKernel, i)
		}
	}
	return nil
}

// toGeometry converts r to a polygonal geometry under the even-odd rule: the
// filled area is the symmetric difference of every ring's interior.
func toGeometry(r Region) (sf.Geometry, error) {
	var out sf.Geometry
	first := true
	for _, p := range r {
		p = p.Open()
		if p.IsEmpty() {
			continue
		}
		g := ringPolygon(p).AsGeometry()
		if first {
			out, first = g, false
			continue
		}
		var err error
		if out, err = sf.SymmetricDifference(out, g); err != nil {
			return sf.Geometry{}, fmt.Errorf("%w: combining rings: %v", ErrKernel, err)
		}
	}
	return out, nil
}

// ringPolygon builds a hole-free polygon from an open ring.
func ringPolygon(p Polygon) sf.Polygon {
	return sf.NewPolygon([]sf.LineString{closedLine(p)})
}

func closedLine(p Polygon) sf.LineString {
	coords := make([]float64, 0, 2*len(p.Vertices)+2)
	for _, v := range p.Vertices {
		coords = append(coords, v.X, v.Y)
	}
	first := p.Vertices[0]
	coords = append(coords, first.X, first.Y)
	return sf.NewLineString(sf.NewSequence(coords, sf.DimXY))
}

// intersectable converts r for a point-set predicate. Degenerate rings become
// points or line strings; the second result is false when r has no vertices
// or a non-finite one.
func intersectable(r Region) (sf.Geometry, bool) {
	proper := true
	found := false
	for _, p := range r {
		p = p.Open()
		if len(p.Vertices) == 0 {
			continue
		}
		found = true
		if !p.IsFinite() {
			return sf.Geometry{}, false
		}
		if len(p.Vertices) < 3 || p.Area() == 0 {
			proper = false
		}
	}
	if !found {
		return sf.Geometry{}, false
	}
	if proper {
		if g, err := toGeometry(r); err == nil {
			return g, true
		}
	}

	parts := make([]sf.Geometry, 0, len(r))
	for _, p := range r {
		p = p.Open()
		switch {
		case len(p.Vertices) == 0:
		case len(p.Vertices) == 1:
			v := p.Vertices[0]
			parts = append(parts, sf.NewPointXY(v.X, v.Y).AsGeometry())
		case len(p.Vertices) < 3 || p.Area() == 0:
			parts = append(parts, closedLine(p).AsGeometry())
		default:
			parts = append(parts, ringPolygon(p).AsGeometry())
		}
	}
	return sf.NewGeometryCollection(parts).AsGeometry(), true
}

// fromGeometry flattens the polygonal parts of g into rings: each exterior
// followed by its holes. Lower-dimensional parts carry no area and are
// dropped.
func fromGeometry(g sf.Geometry) Region {
	var out Region
	var walk func(sf.Geometry)
	walk = func(g sf.Geometry) {
		switch g.Type() {
		case sf.TypePolygon:
			out = appendPolygon(out, g.MustAsPolygon())
		case sf.TypeMultiPolygon:
			mp := g.MustAsMultiPolygon()
			for i := 0; i < mp.NumPolygons(); i++ {
				out = appendPolygon(out, mp.PolygonN(i))
			}
		case sf.TypeGeometryCollection:
			gc := g.MustAsGeometryCollection()
			for i := 0; i < gc.NumGeometries(); i++ {
				walk(gc.GeometryN(i))
			}
		}
	}
	walk(g)
	if out == nil {
		return Region{}
	}
	return out
}

func appendPolygon(dst Region, p sf.Polygon) Region {
	if p.IsEmpty() {
		return dst
	}
	dst = appendRing(dst, p.ExteriorRing())
	for i := 0; i < p.NumInteriorRings(); i++ {
		dst = appendRing(dst, p.InteriorRingN(i))
	}
	return dst
}

func appendRing(dst Region, ls sf.LineString) Region {
	seq := ls.Coordinates()
	ring := Polygon{Vertices: make([]Point2D, seq.Length())}
	for i := range ring.Vertices {
		xy := seq.GetXY(i)
		ring.Vertices[i] = Pt(xy.X, xy.Y)
	}
	ring = ring.Open()
	if ring.IsEmpty() {
		return dst
	}
	return append(dst, ring)
}
