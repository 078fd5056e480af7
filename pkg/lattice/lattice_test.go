package lattice

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
)

func rectangle(w, h float64) geo.Polygon {
	return geo.NewPolygon(geo.Pt(0, 0), geo.Pt(w, 0), geo.Pt(w, h), geo.Pt(0, h))
}

func generate(t *testing.T, boundary geo.Polygon, r float64) *Grid {
	t.Helper()
	grid, err := NewGenerator(geo.NewKernel(), Options{}).Generate(boundary, r)
	if err != nil {
		t.Fatalf("Generate(R=%v): %v", r, err)
	}
	return grid
}

func indices(cells []Cell) []Index {
	out := make([]Index, len(cells))
	for i, c := range cells {
		out[i] = c.Index
	}
	return out
}

func TestHexagonGeometry(t *testing.T) {
	for _, r := range []float64{0.5, 1, 20, 1234.5} {
		cell := NewCell(Index{Row: 3, Col: -2}, r)
		if cell.Boundary.Len() != 6 {
			t.Fatalf("R=%v: %d vertices, want 6", r, cell.Boundary.Len())
		}
		for i, v := range cell.Boundary.Vertices {
			if d := v.Distance(cell.Center); math.Abs(d-r) > 1e-9*r {
				t.Errorf("R=%v: vertex %d at distance %v", r, i, d)
			}
		}
		if got, want := cell.Boundary.Area(), Area(r); math.Abs(got-want) > 1e-9*want {
			t.Errorf("R=%v: area = %v, want %v", r, got, want)
		}
	}
}

func TestHexagonOrientation(t *testing.T) {
	h := Hexagon(geo.Origin, 2)
	first := h.Vertices[0]
	if math.Abs(first.X-math.Sqrt(3)) > 1e-12 || math.Abs(first.Y-1) > 1e-12 {
		t.Errorf("vertex 0 = %v, want (sqrt(3), 1)", first)
	}
	top := h.Vertices[1]
	if math.Abs(top.X) > 1e-12 || math.Abs(top.Y-2) > 1e-12 {
		t.Errorf("vertex 1 = %v, want (0, 2)", top)
	}
}

func TestCenterOf(t *testing.T) {
	r := 20.0
	xStep := math.Sqrt(3) * r
	tests := []struct {
		idx  Index
		want geo.Point2D
	}{
		{Index{0, 0}, geo.Pt(0, 0)},
		{Index{0, 2}, geo.Pt(2*xStep, 0)},
		{Index{1, 0}, geo.Pt(xStep/2, 30)},
		{Index{-1, 0}, geo.Pt(xStep/2, -30)},
		{Index{-2, -1}, geo.Pt(-xStep, -60)},
	}
	for _, tt := range tests {
		got := CenterOf(tt.idx, r)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("CenterOf(%v) = %v, want %v", tt.idx, got, tt.want)
		}
	}
}

func TestNeighboursShareEdges(t *testing.T) {
	r := 10.0
	a := NewCell(Index{0, 0}, r)
	right := NewCell(Index{0, 1}, r)
	upper := NewCell(Index{1, 0}, r)
	for _, nb := range []Cell{right, upper} {
		shared := 0
		for _, v := range a.Boundary.Vertices {
			for _, w := range nb.Boundary.Vertices {
				if v.Distance(w) < 1e-9 {
					shared++
				}
			}
		}
		if shared != 2 {
			t.Errorf("cell %v shares %d vertices with (0,0), want 2", nb.Index, shared)
		}
		if d := a.Center.Distance(nb.Center); math.Abs(d-math.Sqrt(3)*r) > 1e-9 {
			t.Errorf("center distance to %v = %v, want sqrt(3)*R", nb.Index, d)
		}
	}
}

func TestGenerateRectangle(t *testing.T) {
	boundary := rectangle(200, 150)
	grid := generate(t, boundary, 20)

	if grid.Len() == 0 {
		t.Fatal("no cells generated")
	}
	centers, polys := grid.Centers(), grid.Polygons()
	if len(centers) != grid.Len() || len(polys) != grid.Len() {
		t.Fatalf("len(centers)=%d len(polys)=%d, want %d", len(centers), len(polys), grid.Len())
	}
	k := geo.NewKernel()
	for i, c := range grid.Cells {
		if centers[i] != c.Center {
			t.Errorf("center %d out of order", i)
		}
		if !k.Intersects(geo.RegionOf(polys[i]), geo.RegionOf(boundary)) {
			t.Errorf("cell %v does not intersect the boundary", c.Index)
		}
		if !grid.Range.Contains(c.Index) {
			t.Errorf("cell %v outside search range %+v", c.Index, grid.Range)
		}
	}
}

func TestGenerateRowMajorOrder(t *testing.T) {
	grid := generate(t, rectangle(120, 90), 15)
	for i := 1; i < grid.Len(); i++ {
		prev, cur := grid.Cells[i-1].Index, grid.Cells[i].Index
		if cur.Row < prev.Row || (cur.Row == prev.Row && cur.Col <= prev.Col) {
			t.Fatalf("cells %d and %d out of order: %v then %v", i-1, i, prev, cur)
		}
	}
}

func TestGenerateSkipsNothing(t *testing.T) {
	k := geo.NewKernel()
	boundaries := map[string]geo.Polygon{
		"negative quadrant": geo.NewPolygon(geo.Pt(-130, -95), geo.Pt(-20, -110), geo.Pt(-45, -12)),
		"straddling origin": geo.NewPolygon(geo.Pt(-33, -41), geo.Pt(52, -8), geo.Pt(17, 63), geo.Pt(-60, 30)),
		"hexagon":           geo.RegularRing(geo.Pt(250, 250), 200, 6, 0),
	}
	for name, boundary := range boundaries {
		t.Run(name, func(t *testing.T) {
			r := 17.0
			grid := generate(t, boundary, r)

			// Brute force over a range five cells wider on every side.
			rg := grid.Range
			var want []Index
			for row := rg.MinRow - 5; row <= rg.MaxRow+5; row++ {
				for col := rg.MinCol - 5; col <= rg.MaxCol+5; col++ {
					c := NewCell(Index{row, col}, r)
					if k.Intersects(geo.RegionOf(c.Boundary), geo.RegionOf(boundary)) {
						want = append(want, c.Index)
					}
				}
			}
			if diff := cmp.Diff(want, indices(grid.Cells)); diff != "" {
				t.Errorf("generated cells mismatch (-brute force +generated):\n%s", diff)
			}
		})
	}
}

func TestGenerateRegularHexagonWithinPaddedBox(t *testing.T) {
	boundary := geo.RegularRing(geo.Pt(250, 250), 200, 6, 0)
	r := 20.0
	grid := generate(t, boundary, r)
	lo, hi := boundary.BoundingBox()
	xStep, yStep := Steps(r)
	for _, c := range grid.Cells {
		if c.Center.X < lo.X-2*xStep || c.Center.X > hi.X+2*xStep ||
			c.Center.Y < lo.Y-2*yStep || c.Center.Y > hi.Y+2*yStep {
			t.Errorf("cell %v center %v outside padded box", c.Index, c.Center)
		}
	}
}

func TestGenerateConcave(t *testing.T) {
	// U shape with a 100 wide notch open to the top.
	u := geo.NewPolygon(
		geo.Pt(0, 0), geo.Pt(300, 0), geo.Pt(300, 200), geo.Pt(200, 200),
		geo.Pt(200, 50), geo.Pt(100, 50), geo.Pt(100, 200), geo.Pt(0, 200),
	)
	grid := generate(t, u, 10)
	if grid.Len() == 0 {
		t.Fatal("no cells generated")
	}
	for _, c := range grid.Cells {
		if c.Center.X > 110 && c.Center.X < 190 && c.Center.Y > 60 {
			t.Errorf("cell %v at %v lies in the notch", c.Index, c.Center)
		}
	}
}

func TestGenerateKeepsTouchingCells(t *testing.T) {
	r := 10.0
	a := NewCell(Index{0, 0}, r)
	b := NewCell(Index{0, 1}, r)
	apex := a.Boundary.Vertices[0]
	mid := apex.Lerp(b.Center, 0.5)
	wedge := geo.NewPolygon(apex, mid.Add(geo.Pt(0, 0.5)), mid.Add(geo.Pt(0, -0.5)))

	grid := generate(t, wedge, r)
	got := map[Index]bool{}
	for _, idx := range indices(grid.Cells) {
		got[idx] = true
	}
	if !got[a.Index] {
		t.Errorf("touching cell %v missing from %v", a.Index, indices(grid.Cells))
	}
	if !got[b.Index] {
		t.Errorf("containing cell %v missing from %v", b.Index, indices(grid.Cells))
	}
}

func TestGenerateHugeRadius(t *testing.T) {
	boundary := rectangle(10, 10)
	grid := generate(t, boundary, 10000)
	if grid.Len() < 1 || grid.Len() > 4 {
		t.Fatalf("got %d cells, want a handful", grid.Len())
	}
	if grid.Cells[0].Index != (Index{0, 0}) {
		t.Errorf("first cell = %v, want (0,0)", grid.Cells[0].Index)
	}
}

func TestGenerateMonotonic(t *testing.T) {
	boundary := rectangle(200, 150)
	prev := 0
	for _, r := range []float64{80, 40, 20, 10, 5} {
		n := generate(t, boundary, r).Len()
		if n <= prev {
			t.Errorf("R=%v: %d cells, not more than %d at the previous radius", r, n, prev)
		}
		prev = n
	}
}

func TestGenerateDeterministic(t *testing.T) {
	boundary := geo.RegularRing(geo.Pt(10, -5), 75, 7, 0.3)
	first := generate(t, boundary, 6)
	second := generate(t, boundary, 6)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated generation differs:\n%s", diff)
	}
}

func TestGenerateDegenerateBoundary(t *testing.T) {
	flat := geo.NewPolygon(geo.Pt(0, 0), geo.Pt(50, 0), geo.Pt(100, 0))
	grid := generate(t, flat, 10)
	if grid.Len() == 0 {
		t.Error("a collinear boundary still touches the cells along its segment")
	}
}

func TestGenerateInvalidRadius(t *testing.T) {
	g := NewGenerator(geo.NewKernel(), Options{})
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := g.Generate(rectangle(10, 10), r); !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("R=%v: err = %v, want ErrInvalidRadius", r, err)
		}
	}
}

func TestGenerateMalformedBoundary(t *testing.T) {
	g := NewGenerator(geo.NewKernel(), Options{})
	if _, err := g.Generate(geo.NewPolygon(geo.Pt(0, 0), geo.Pt(1, 1)), 1); !errors.Is(err, geo.ErrKernel) {
		t.Errorf("err = %v, want ErrKernel", err)
	}
}

func TestGenerateCandidateLimit(t *testing.T) {
	g := NewGenerator(geo.NewKernel(), Options{MaxCandidates: 100})
	if _, err := g.Generate(rectangle(200, 150), 1); !errors.Is(err, ErrTooManyCandidates) {
		t.Errorf("err = %v, want ErrTooManyCandidates", err)
	}
	if _, err := NewGenerator(geo.NewKernel(), Options{}).Generate(rectangle(1e6, 1e6), 1e-6); !errors.Is(err, ErrTooManyCandidates) {
		t.Errorf("tiny radius err = %v, want ErrTooManyCandidates", err)
	}
	unlimited := NewGenerator(geo.NewKernel(), Options{MaxCandidates: -1})
	if _, err := unlimited.Generate(rectangle(20, 20), 1); err != nil {
		t.Errorf("unlimited generator: %v", err)
	}
}

func TestGenerateUnlimitedStillIndexable(t *testing.T) {
	unlimited := NewGenerator(geo.NewKernel(), Options{MaxCandidates: -1})
	for _, tt := range []struct {
		name     string
		boundary geo.Polygon
		r        float64
	}{
		{"tiny radius", rectangle(1e6, 1e6), 1e-6},
		{"far away", geo.NewPolygon(geo.Pt(1e300, 0), geo.Pt(2e300, 0), geo.Pt(2e300, 1e300)), 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := unlimited.Generate(tt.boundary, tt.r); !errors.Is(err, ErrTooManyCandidates) {
				t.Errorf("err = %v, want ErrTooManyCandidates", err)
			}
		})
	}
}

func TestSearchRangeSaturates(t *testing.T) {
	rg := SearchRange(geo.Pt(-1e300, -1e300), geo.Pt(1e300, 1e300), 1)
	if rg.MinRow != -maxIndex || rg.MaxRow != maxIndex || rg.MinCol != -maxIndex || rg.MaxCol != maxIndex {
		t.Errorf("range = %+v, want saturated at ±%d", rg, maxIndex)
	}
	if Indexable(geo.Pt(-1e300, 0), geo.Pt(0, 1), 1) {
		t.Error("Indexable should reject coordinates beyond the index bound")
	}
	if !Indexable(geo.Pt(0, 0), geo.Pt(200, 150), 20) {
		t.Error("Indexable rejected an ordinary box")
	}
}

func TestSearchRangeCount(t *testing.T) {
	rg := Range{MinRow: -2, MaxRow: 2, MinCol: 0, MaxCol: 9}
	if got := rg.Count(); got != 50 {
		t.Errorf("Count() = %d, want 50", got)
	}
	if got := (Range{MinRow: 1, MaxRow: 0}).Count(); got != 0 {
		t.Errorf("empty Count() = %d, want 0", got)
	}
}
