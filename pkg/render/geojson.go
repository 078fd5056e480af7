package render

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/plan"
)

// Feature kinds written to the "kind" property.
const (
	KindServiceArea = "service_area"
	KindCell        = "cell"
)

// GeoJSON returns res as a feature collection: the service boundary first,
// then one polygon per cell in generation order. Coordinates are planar.
func GeoJSON(res *plan.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"title":   Title(res),
		"radius":  res.Radius,
		"metrics": res.Metrics,
	}

	boundary := geojson.NewFeature(orbPolygon(res.Boundary))
	boundary.Properties["kind"] = KindServiceArea
	boundary.Properties["label"] = res.Label
	boundary.Properties["area"] = res.Metrics.ServiceArea
	fc.Append(boundary)

	for _, c := range res.Cells {
		f := geojson.NewFeature(orbPolygon(c.Boundary))
		f.ID = fmt.Sprintf("%d:%d", c.Index.Row, c.Index.Col)
		f.Properties["kind"] = KindCell
		f.Properties["row"] = c.Index.Row
		f.Properties["col"] = c.Index.Col
		f.Properties["center"] = []float64{c.Center.X, c.Center.Y}
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON encodes GeoJSON(res) to w.
func WriteGeoJSON(w io.Writer, res *plan.Result) error {
	data, err := GeoJSON(res).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing GeoJSON: %w", err)
	}
	return nil
}

// orbPolygon converts p to a closed single-ring orb polygon.
func orbPolygon(p geo.Polygon) orb.Polygon {
	p = p.Open()
	ring := make(orb.Ring, 0, p.Len()+1)
	for _, v := range p.Vertices {
		ring = append(ring, orb.Point{v.X, v.Y})
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}
