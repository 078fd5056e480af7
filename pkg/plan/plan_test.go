package plan

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/lattice"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/region"
)

func TestRunRectangle(t *testing.T) {
	res, err := Default().Run(region.Rectangle{W: 200, H: 150}, 20)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Label != "Rectangle" {
		t.Errorf("Label = %q", res.Label)
	}
	if res.Radius != 20 {
		t.Errorf("Radius = %v, want 20", res.Radius)
	}
	n := res.Metrics.TotalCells
	if n == 0 || n != len(res.Cells) || n != len(res.Centers) || n != len(res.Polygons()) {
		t.Errorf("TotalCells=%d cells=%d centers=%d", n, len(res.Cells), len(res.Centers))
	}
	for i, c := range res.Cells {
		if res.Centers[i] != c.Center {
			t.Fatalf("center %d not aligned with its cell", i)
		}
	}
	if res.Metrics.ServiceArea != 30000 {
		t.Errorf("ServiceArea = %v, want 30000", res.Metrics.ServiceArea)
	}
	if r := res.Metrics.CoverageRatio; r <= 0 || r > 1 {
		t.Errorf("CoverageRatio = %v, want (0,1]", r)
	}
}

func TestRunIdempotent(t *testing.T) {
	descriptors := []region.Descriptor{
		region.Rectangle{W: 200, H: 150},
		region.NewRegularPolygon(6),
		region.Outline{Vertices: []geo.Point2D{geo.Pt(0, 0), geo.Pt(90, 10), geo.Pt(40, 30), geo.Pt(60, 80)}},
	}
	p := Default()
	for _, d := range descriptors {
		first, err := p.Run(d, 17)
		if err != nil {
			t.Fatalf("%s: %v", d.Label(), err)
		}
		second, err := p.Run(d, 17)
		if err != nil {
			t.Fatalf("%s: %v", d.Label(), err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%s: repeated run differs:\n%s", d.Label(), diff)
		}
	}
}

func TestRunMonotonic(t *testing.T) {
	p := Default()
	prev := 0
	for _, r := range []float64{60, 30, 15, 8} {
		res, err := p.Run(region.NewRegularPolygon(6), r)
		if err != nil {
			t.Fatal(err)
		}
		if res.Metrics.TotalCells <= prev {
			t.Errorf("R=%v: %d cells, want more than %d", r, res.Metrics.TotalCells, prev)
		}
		prev = res.Metrics.TotalCells
	}
}

func TestRunPreset(t *testing.T) {
	outline, err := region.Preset("ethiopia")
	if err != nil {
		t.Fatal(err)
	}
	res, err := Default().Run(outline, 20)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Label != "Ethiopia Map Outline" {
		t.Errorf("Label = %q", res.Label)
	}
	if r := res.Metrics.CoverageRatio; r < 0.99 || r > 1 {
		t.Errorf("CoverageRatio = %v, want close to 1", r)
	}
	b := res.Breakdown()
	if b.Interior+b.Partial+b.TouchingOnly != res.Metrics.TotalCells {
		t.Errorf("breakdown counts %+v do not sum to %d", b, res.Metrics.TotalCells)
	}
}

func TestRunErrors(t *testing.T) {
	p := Default()
	tests := []struct {
		name string
		d    region.Descriptor
		r    float64
		want error
	}{
		{"zero radius", region.Rectangle{W: 1, H: 1}, 0, lattice.ErrInvalidRadius},
		{"negative radius before bad shape", region.Rectangle{W: -1, H: 1}, -3, lattice.ErrInvalidRadius},
		{"bad rectangle", region.Rectangle{W: -1, H: 1}, 5, region.ErrInvalidParameter},
		{"two-sided polygon", region.NewRegularPolygon(2), 5, region.ErrInvalidParameter},
		{"too fine", region.Rectangle{W: 1e5, H: 1e5}, 1e-3, lattice.ErrTooManyCandidates},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Run(tt.d, tt.r)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if res != nil {
				t.Error("a failed run must not return a result")
			}
		})
	}
}

func TestRunBoundaryHugeRadius(t *testing.T) {
	boundary := geo.NewPolygon(geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10))
	res, err := Default().RunBoundary("tiny", boundary, 1e4)
	if err != nil {
		t.Fatal(err)
	}
	if res.Metrics.TotalCells != 1 {
		t.Errorf("TotalCells = %d, want 1", res.Metrics.TotalCells)
	}
	if math.Abs(res.Metrics.CoverageRatio-1) > 1e-6 {
		t.Errorf("CoverageRatio = %v, want 1", res.Metrics.CoverageRatio)
	}
}
