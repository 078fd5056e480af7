// Package render draws planning results as SVG and exports them as GeoJSON.
package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/plan"
)

// DefaultWidth is the SVG width in pixels when none is given.
const DefaultWidth = 800

// headerHeight is the band above the plot reserved for the title.
const headerHeight = 64

const (
	cellStyle     = "fill:lightblue;fill-opacity:0.5;stroke:black;stroke-width:1"
	centerStyle   = "fill:red"
	boundaryStyle = "fill:none;stroke:red;stroke-width:2.5;stroke-dasharray:8,5"
	gridStyle     = "stroke:#bbbbbb;stroke-width:0.5;stroke-dasharray:1,3"
	titleStyle    = "font-family:sans-serif;font-size:16px;text-anchor:middle"
	subtitleStyle = "font-family:sans-serif;font-size:13px;text-anchor:middle"
	legendStyle   = "font-family:sans-serif;font-size:11px"
)

// Title returns the plot heading for res.
func Title(res *plan.Result) string {
	return "Hexagonal Cell Layout over " + res.Label
}

// Subtitle returns the radius, cell count and coverage line.
func Subtitle(res *plan.Result) string {
	return fmt.Sprintf("Radius (R) = %v | Total Cells = %d | Coverage = %.1f%%",
		res.Radius, res.Metrics.TotalCells, res.Metrics.CoverageRatio*100)
}

// Viewport maps plan coordinates onto the SVG canvas. The world window is
// the boundary's bounding box padded by twice the cell radius.
type Viewport struct {
	Min, Max geo.Point2D
	Width    int
	Height   int
	scale    float64
}

// NewViewport fits res into a canvas width pixels wide.
func NewViewport(res *plan.Result, width int) Viewport {
	if width <= 0 {
		width = DefaultWidth
	}
	lo, hi := res.Boundary.BoundingBox()
	pad := geo.Pt(2*res.Radius, 2*res.Radius)
	lo, hi = lo.Sub(pad), hi.Add(pad)

	w, h := hi.X-lo.X, hi.Y-lo.Y
	scale := float64(width) / w
	if w <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}
	return Viewport{
		Min:    lo,
		Max:    hi,
		Width:  width,
		Height: int(math.Ceil(h*scale)) + headerHeight,
		scale:  scale,
	}
}

// Project converts a plan point to pixel coordinates with Y pointing down.
func (v Viewport) Project(p geo.Point2D) (int, int) {
	x := (p.X - v.Min.X) * v.scale
	y := (v.Max.Y - p.Y) * v.scale
	return int(math.Round(x)), int(math.Round(y)) + headerHeight
}

func (v Viewport) ring(p geo.Polygon) ([]int, []int) {
	xs := make([]int, p.Len())
	ys := make([]int, p.Len())
	for i, pt := range p.Vertices {
		xs[i], ys[i] = v.Project(pt)
	}
	return xs, ys
}

// SVG writes res as an SVG document: filled cells, red center dots, the
// dashed service boundary, and a title with the headline metrics.
func SVG(w io.Writer, res *plan.Result, width int) error {
	v := NewViewport(res, width)
	cw := &errWriter{w: w}
	canvas := svg.New(cw)

	canvas.Start(v.Width, v.Height)
	canvas.Title(Title(res))
	canvas.Rect(0, 0, v.Width, v.Height, "fill:white")
	drawGrid(canvas, v, res.Radius)

	canvas.Group(`id="cells"`, cellStyle)
	for _, c := range res.Cells {
		xs, ys := v.ring(c.Boundary)
		canvas.Polygon(xs, ys)
	}
	canvas.Gend()

	canvas.Group(`id="centers"`, centerStyle)
	for _, c := range res.Centers {
		x, y := v.Project(c)
		canvas.Circle(x, y, 2)
	}
	canvas.Gend()

	xs, ys := v.ring(res.Boundary)
	if len(xs) > 0 {
		// Close the ring explicitly so the dash pattern runs over the last edge.
		xs, ys = append(xs, xs[0]), append(ys, ys[0])
	}
	canvas.Polyline(xs, ys, `id="boundary"`, boundaryStyle)

	canvas.Text(v.Width/2, 24, Title(res), titleStyle)
	canvas.Text(v.Width/2, 46, Subtitle(res), subtitleStyle)
	drawLegend(canvas, v)
	canvas.End()
	return cw.err
}

// drawGrid draws dotted guide lines every 5R in plan units.
func drawGrid(canvas *svg.SVG, v Viewport, r float64) {
	step := 5 * r
	if step <= 0 || (v.Max.X-v.Min.X)/step > 200 || (v.Max.Y-v.Min.Y)/step > 200 {
		return
	}
	canvas.Gstyle(gridStyle)
	for x := math.Ceil(v.Min.X/step) * step; x <= v.Max.X; x += step {
		x1, y1 := v.Project(geo.Pt(x, v.Min.Y))
		x2, y2 := v.Project(geo.Pt(x, v.Max.Y))
		canvas.Line(x1, y1, x2, y2)
	}
	for y := math.Ceil(v.Min.Y/step) * step; y <= v.Max.Y; y += step {
		x1, y1 := v.Project(geo.Pt(v.Min.X, y))
		x2, y2 := v.Project(geo.Pt(v.Max.X, y))
		canvas.Line(x1, y1, x2, y2)
	}
	canvas.Gend()
}

func drawLegend(canvas *svg.SVG, v Viewport) {
	x := v.Width - 130
	y := headerHeight + 16
	canvas.Line(x, y, x+24, y, boundaryStyle)
	canvas.Text(x+30, y+4, "Service Area", legendStyle)
	canvas.Circle(x+12, y+18, 3, centerStyle)
	canvas.Text(x+30, y+22, "Cell Centers", legendStyle)
}

// errWriter remembers the first write error; svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err == nil {
		_, e.err = e.w.Write(p)
	}
	return len(p), nil
}
