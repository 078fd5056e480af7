package region

import (
	"errors"
	"math"
	"testing"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
)

func TestRectangleArea(t *testing.T) {
	for _, tc := range []Rectangle{{W: 200, H: 150}, {W: 1, H: 1}, {W: 0.25, H: 4000}} {
		poly, err := tc.Build()
		if err != nil {
			t.Fatalf("Build(%v): %v", tc, err)
		}
		if poly.Len() != 4 {
			t.Errorf("Build(%v) has %d vertices, want 4", tc, poly.Len())
		}
		if want := tc.W * tc.H; math.Abs(poly.Area()-want) > 1e-9*want {
			t.Errorf("Build(%v) area = %v, want %v", tc, poly.Area(), want)
		}
		if poly.SignedArea() <= 0 {
			t.Errorf("Build(%v) should wind counterclockwise", tc)
		}
	}
}

func TestRectangleCorners(t *testing.T) {
	poly, err := Rectangle{W: 200, H: 150}.Build()
	if err != nil {
		t.Fatal(err)
	}
	want := []geo.Point2D{geo.Pt(0, 0), geo.Pt(200, 0), geo.Pt(200, 150), geo.Pt(0, 150)}
	for i, v := range want {
		if poly.Vertices[i] != v {
			t.Errorf("vertex %d = %v, want %v", i, poly.Vertices[i], v)
		}
	}
}

func TestInvalidDescriptors(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
	}{
		{"zero width", Rectangle{W: 0, H: 10}},
		{"negative height", Rectangle{W: 10, H: -1}},
		{"NaN width", Rectangle{W: math.NaN(), H: 1}},
		{"infinite height", Rectangle{W: 1, H: math.Inf(1)}},
		{"two sides", NewRegularPolygon(2)},
		{"zero circumradius", RegularPolygon{N: 5, Circumradius: 0}},
		{"two vertices", Outline{Vertices: []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 1)}}},
		{"NaN vertex", Outline{Vertices: []geo.Point2D{geo.Pt(0, 0), geo.Pt(math.NaN(), 1), geo.Pt(1, 0)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.d.Build(); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Build() err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestRegularHexagonArea(t *testing.T) {
	poly, err := NewRegularPolygon(6).Build()
	if err != nil {
		t.Fatal(err)
	}
	side := 2 * 200 * math.Sin(math.Pi/6)
	want := 6 * (math.Sqrt(3) / 4) * side * side
	if math.Abs(poly.Area()-want) > 1e-6 {
		t.Errorf("area = %v, want %v", poly.Area(), want)
	}
	first := poly.Vertices[0]
	if math.Abs(first.X-450) > 1e-9 || math.Abs(first.Y-250) > 1e-9 {
		t.Errorf("vertex 0 = %v, want (450,250)", first)
	}
}

func TestRegularPolygonVertices(t *testing.T) {
	for n := 3; n <= 12; n++ {
		rp := RegularPolygon{N: n, CenterX: -10, CenterY: 5, Circumradius: 7}
		poly, err := rp.Build()
		if err != nil {
			t.Fatalf("N=%d: %v", n, err)
		}
		if poly.Len() != n {
			t.Errorf("N=%d: %d vertices", n, poly.Len())
		}
		want := 0.5 * float64(n) * 49 * math.Sin(2*math.Pi/float64(n))
		if math.Abs(poly.Area()-want) > 1e-9 {
			t.Errorf("N=%d: area = %v, want %v", n, poly.Area(), want)
		}
	}
}

func TestOutlineVerbatim(t *testing.T) {
	in := []geo.Point2D{geo.Pt(0, 0), geo.Pt(4, 0), geo.Pt(4, 4), geo.Pt(2, 1), geo.Pt(0, 4)}
	poly, err := Outline{Vertices: in}.Build()
	if err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if poly.Vertices[i] != in[i] {
			t.Errorf("vertex %d = %v, want %v", i, poly.Vertices[i], in[i])
		}
	}
	in[0] = geo.Pt(99, 99)
	if poly.Vertices[0] == in[0] {
		t.Error("built polygon should not alias the descriptor's vertex slice")
	}
}

func TestLabels(t *testing.T) {
	if got := (Rectangle{W: 1, H: 1}).Label(); got != "Rectangle" {
		t.Errorf("rectangle label = %q", got)
	}
	if got := NewRegularPolygon(7).Label(); got != "Regular 7-Sided Polygon" {
		t.Errorf("polygon label = %q", got)
	}
	if got := (Outline{}).Label(); got != "Geographic Map Outline" {
		t.Errorf("outline label = %q", got)
	}
}

func TestPreset(t *testing.T) {
	o, err := Preset("Ethiopia")
	if err != nil {
		t.Fatalf("Preset: %v", err)
	}
	if o.Label() != "Ethiopia Map Outline" {
		t.Errorf("label = %q", o.Label())
	}
	if len(o.Vertices) != 37 {
		t.Errorf("vertices = %d, want 37", len(o.Vertices))
	}
	o.Vertices[0] = geo.Pt(-1, -1)
	again, _ := Preset("ethiopia")
	if again.Vertices[0] != geo.Pt(90, 300) {
		t.Error("Preset should return a copy")
	}

	if _, err := Preset("atlantis"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown preset err = %v, want ErrInvalidParameter", err)
	}
}

func TestOutlineFromGeoJSON(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"name": "small"},
			 "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}},
			{"type": "Feature", "properties": {"name": "district"},
			 "geometry": {"type": "MultiPolygon", "coordinates": [
				[[[10,10],[30,10],[30,30],[10,30],[10,10]]]
			 ]}}
		]
	}`)
	o, err := OutlineFromGeoJSON(data)
	if err != nil {
		t.Fatalf("OutlineFromGeoJSON: %v", err)
	}
	if o.Name != "district" {
		t.Errorf("name = %q, want district", o.Name)
	}
	if len(o.Vertices) != 4 {
		t.Fatalf("vertices = %d, want 4 (closing vertex dropped)", len(o.Vertices))
	}
	poly, err := o.Build()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(poly.Area()-400) > 1e-9 {
		t.Errorf("area = %v, want 400", poly.Area())
	}
}

func TestOutlineFromGeoJSONGeometry(t *testing.T) {
	o, err := OutlineFromGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,3],[0,0]]]}`))
	if err != nil {
		t.Fatalf("OutlineFromGeoJSON: %v", err)
	}
	if len(o.Vertices) != 3 {
		t.Errorf("vertices = %d, want 3", len(o.Vertices))
	}
}

func TestOutlineFromGeoJSONNoPolygon(t *testing.T) {
	_, err := OutlineFromGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`))
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}
