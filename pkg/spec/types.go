package spec

import "github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"

// Shape names accepted in region.shape.
const (
	ShapeRectangle = "rectangle"
	ShapePolygon   = "polygon"
	ShapeOutline   = "outline"
	ShapePreset    = "preset"
	ShapeGeoJSON   = "geojson"
)

// PlanSpec is the top-level description of a coverage planning project.
type PlanSpec struct {
	SpecVersion string    `yaml:"spec_version" json:"spec_version"`
	Name        string    `yaml:"name" json:"name"`
	Region      RegionDef `yaml:"region" json:"region"`
	Cell        CellDef   `yaml:"cell" json:"cell"`
	Sweep       SweepDef  `yaml:"sweep" json:"sweep"`
	Output      OutputDef `yaml:"output" json:"output"`

	// Dir is the directory the plan file was loaded from. Relative paths in the
	// file resolve against it.
	Dir string `yaml:"-" json:"-"`
}

// RegionDef describes the service region. Which fields apply depends on Shape.
type RegionDef struct {
	Shape string `yaml:"shape" json:"shape"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`

	// rectangle
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`

	// polygon
	Sides        int          `yaml:"sides,omitempty" json:"sides,omitempty"`
	Center       *geo.Point2D `yaml:"center,omitempty" json:"center,omitempty"`
	Circumradius float64      `yaml:"circumradius,omitempty" json:"circumradius,omitempty"`

	// outline
	Vertices []geo.Point2D `yaml:"vertices,omitempty" json:"vertices,omitempty"`

	// preset
	Preset string `yaml:"preset,omitempty" json:"preset,omitempty"`

	// geojson
	GeoJSON string `yaml:"geojson,omitempty" json:"geojson,omitempty"`
}

// CellDef configures the lattice.
type CellDef struct {
	Radius        float64 `yaml:"radius" json:"radius"`
	MaxCandidates int64   `yaml:"max_candidates,omitempty" json:"max_candidates,omitempty"`
}

// SweepDef lists radii for the sweep command.
type SweepDef struct {
	Radii []float64 `yaml:"radii,omitempty" json:"radii,omitempty"`
}

// OutputDef names the files written by the render command. Paths are
// relative to the project directory.
type OutputDef struct {
	SVG      string `yaml:"svg,omitempty" json:"svg,omitempty"`
	GeoJSON  string `yaml:"geojson,omitempty" json:"geojson,omitempty"`
	SVGWidth int    `yaml:"svg_width,omitempty" json:"svg_width,omitempty"`
}
