package region

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
)

// OutlineFromGeoJSON reads a boundary from a GeoJSON FeatureCollection,
// Feature, or bare geometry. Coordinates are taken as planar X/Y. When the
// input holds several polygons the one with the largest exterior wins, since
// a service region is a single ring; holes are dropped for the same reason.
func OutlineFromGeoJSON(data []byte) (Outline, error) {
	var (
		best     orb.Ring
		bestArea float64
		name     string
	)
	consider := func(g orb.Geometry, featureName string) {
		for _, poly := range polygonsOf(g) {
			if len(poly) == 0 {
				continue
			}
			a := planar.Area(poly[0])
			if best == nil || a > bestArea {
				best, bestArea, name = poly[0], a, featureName
			}
		}
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err == nil && len(fc.Features) > 0 {
		for _, f := range fc.Features {
			consider(f.Geometry, featureName(f))
		}
	} else if f, ferr := geojson.UnmarshalFeature(data); ferr == nil && f.Geometry != nil {
		consider(f.Geometry, featureName(f))
	} else if g, gerr := geojson.UnmarshalGeometry(data); gerr == nil {
		consider(g.Geometry(), "")
	} else {
		return Outline{}, fmt.Errorf("parsing GeoJSON outline: %w", gerr)
	}

	if best == nil {
		return Outline{}, fmt.Errorf("%w: GeoJSON input holds no polygon", ErrInvalidParameter)
	}

	pts := make([]geo.Point2D, 0, len(best))
	for _, p := range best {
		pts = append(pts, geo.Pt(p.X(), p.Y()))
	}
	ring := geo.NewPolygon(pts...).Open()
	return Outline{Name: name, Vertices: ring.Vertices}, nil
}

func polygonsOf(g orb.Geometry) []orb.Polygon {
	switch v := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{v}
	case orb.MultiPolygon:
		return v
	case orb.Collection:
		var out []orb.Polygon
		for _, sub := range v {
			out = append(out, polygonsOf(sub)...)
		}
		return out
	}
	return nil
}

func featureName(f *geojson.Feature) string {
	if f == nil || f.Properties == nil {
		return ""
	}
	if s, ok := f.Properties["name"].(string); ok {
		return s
	}
	return ""
}
