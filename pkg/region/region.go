// Package region turns shape descriptors into service-region boundary polygons.
package region

import (
	"errors"
	"fmt"
	"math"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
)

// ErrInvalidParameter is returned for descriptors that cannot describe a region.
var ErrInvalidParameter = errors.New("invalid region parameter")

// Default placement of regular polygons when the caller gives none.
const (
	DefaultCenterX      = 250.0
	DefaultCenterY      = 250.0
	DefaultCircumradius = 200.0
)

// Descriptor is a shape from which a boundary polygon can be built.
type Descriptor interface {
	// Build validates the descriptor and returns its boundary polygon.
	Build() (geo.Polygon, error)
	// Label is the human-readable region-type label.
	Label() string
}

// Rectangle is an axis-aligned W x H rectangle anchored at the origin.
type Rectangle struct {
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Build returns the corners (0,0), (W,0), (W,H), (0,H).
func (r Rectangle) Build() (geo.Polygon, error) {
	if !positive(r.W) {
		return geo.Polygon{}, fmt.Errorf("%w: rectangle width must be > 0, got %v", ErrInvalidParameter, r.W)
	}
	if !positive(r.H) {
		return geo.Polygon{}, fmt.Errorf("%w: rectangle height must be > 0, got %v", ErrInvalidParameter, r.H)
	}
	return geo.NewPolygon(
		geo.Pt(0, 0),
		geo.Pt(r.W, 0),
		geo.Pt(r.W, r.H),
		geo.Pt(0, r.H),
	), nil
}

func (r Rectangle) Label() string { return "Rectangle" }

// RegularPolygon is an N-gon with vertex 0 on the positive X axis of its center.
type RegularPolygon struct {
	N            int     `json:"n" yaml:"n"`
	CenterX      float64 `json:"center_x" yaml:"center_x"`
	CenterY      float64 `json:"center_y" yaml:"center_y"`
	Circumradius float64 `json:"circumradius" yaml:"circumradius"`
}

// NewRegularPolygon returns an N-gon at the default center and circumradius.
func NewRegularPolygon(n int) RegularPolygon {
	return RegularPolygon{
		N:            n,
		CenterX:      DefaultCenterX,
		CenterY:      DefaultCenterY,
		Circumradius: DefaultCircumradius,
	}
}

// Build places vertex i at angle 2*pi*i/N.
func (r RegularPolygon) Build() (geo.Polygon, error) {
	if r.N < 3 {
		return geo.Polygon{}, fmt.Errorf("%w: regular polygon needs at least 3 sides, got %d", ErrInvalidParameter, r.N)
	}
	if !positive(r.Circumradius) {
		return geo.Polygon{}, fmt.Errorf("%w: circumradius must be > 0, got %v", ErrInvalidParameter, r.Circumradius)
	}
	center := geo.Pt(r.CenterX, r.CenterY)
	if !center.IsFinite() {
		return geo.Polygon{}, fmt.Errorf("%w: center must be finite, got %v", ErrInvalidParameter, center)
	}
	return geo.RegularRing(center, r.Circumradius, r.N, 0), nil
}

func (r RegularPolygon) Label() string {
	return fmt.Sprintf("Regular %d-Sided Polygon", r.N)
}

// Outline is an explicit vertex list used verbatim as the boundary ring.
// Simplicity and closedness are the caller's responsibility.
type Outline struct {
	Name     string        `json:"name,omitempty" yaml:"name,omitempty"`
	Vertices []geo.Point2D `json:"vertices" yaml:"vertices"`
}

// Build returns the vertices as given.
func (o Outline) Build() (geo.Polygon, error) {
	if len(o.Vertices) < 3 {
		return geo.Polygon{}, fmt.Errorf("%w: outline needs at least 3 vertices, got %d", ErrInvalidParameter, len(o.Vertices))
	}
	for i, v := range o.Vertices {
		if !v.IsFinite() {
			return geo.Polygon{}, fmt.Errorf("%w: outline vertex %d is not finite", ErrInvalidParameter, i)
		}
	}
	pts := make([]geo.Point2D, len(o.Vertices))
	copy(pts, o.Vertices)
	return geo.NewPolygon(pts...), nil
}

func (o Outline) Label() string {
	if o.Name != "" {
		return o.Name
	}
	return "Geographic Map Outline"
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
