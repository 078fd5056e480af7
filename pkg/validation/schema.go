package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/region"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/spec"
)

// SupportedVersion is the plan spec version this build understands.
const SupportedVersion = "0.1.0"

// ValidateSchema performs Level 1 (schema) validation on a parsed PlanSpec.
// It checks structural correctness before any geometry is built.
func ValidateSchema(s *spec.PlanSpec) *Report {
	r := NewReport()

	validateVersion(s, r)
	validateRegion(s, r)
	validateCell(s, r)
	validateSweep(s, r)
	validateOutput(s, r)

	return r
}

func validateVersion(s *spec.PlanSpec, r *Report) {
	switch s.SpecVersion {
	case SupportedVersion:
	case "":
		r.AddWarning(Result{
			Level:    LevelSchema,
			Message:  "spec_version is missing; assuming " + SupportedVersion,
			SpecPath: "spec_version",
			Expected: SupportedVersion,
		})
	default:
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("spec_version %q is not %s; fields may be ignored", s.SpecVersion, SupportedVersion),
			SpecPath:    "spec_version",
			ActualValue: s.SpecVersion,
			Expected:    SupportedVersion,
		})
	}
}

func validateRegion(s *spec.PlanSpec, r *Report) {
	rd := s.Region
	switch rd.Shape {
	case spec.ShapeRectangle:
		requirePositive(r, "region.width", rd.Width)
		requirePositive(r, "region.height", rd.Height)
	case spec.ShapePolygon:
		if rd.Sides < 3 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     "region.sides must be at least 3",
				SpecPath:    "region.sides",
				ActualValue: rd.Sides,
				Expected:    ">= 3",
			})
		}
		if rd.Circumradius != 0 {
			requirePositive(r, "region.circumradius", rd.Circumradius)
		}
	case spec.ShapeOutline:
		if len(rd.Vertices) < 3 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("region.vertices needs at least 3 points (got %d)", len(rd.Vertices)),
				SpecPath:    "region.vertices",
				ActualValue: len(rd.Vertices),
				Expected:    ">= 3",
			})
		}
		for i, v := range rd.Vertices {
			if !v.IsFinite() {
				r.AddError(Result{
					Level:    LevelSchema,
					Message:  fmt.Sprintf("region.vertices[%d] is not a finite point", i),
					SpecPath: fmt.Sprintf("region.vertices[%d]", i),
				})
			}
		}
	case spec.ShapePreset:
		if _, err := region.Preset(rd.Preset); err != nil {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("unknown preset %q", rd.Preset),
				SpecPath:    "region.preset",
				ActualValue: rd.Preset,
				Expected:    strings.Join(region.PresetNames(), ", "),
			})
		}
	case spec.ShapeGeoJSON:
		if rd.GeoJSON == "" {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  "region.geojson must name a GeoJSON file",
				SpecPath: "region.geojson",
			})
		}
	case "":
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "region.shape is required",
			SpecPath: "region.shape",
			Expected: shapeList(),
		})
	default:
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown region.shape %q", rd.Shape),
			SpecPath:    "region.shape",
			ActualValue: rd.Shape,
			Expected:    shapeList(),
		})
	}
}

func validateCell(s *spec.PlanSpec, r *Report) {
	requirePositive(r, "cell.radius", s.Cell.Radius)
}

func validateSweep(s *spec.PlanSpec, r *Report) {
	seen := make(map[float64]bool, len(s.Sweep.Radii))
	for i, radius := range s.Sweep.Radii {
		requirePositive(r, fmt.Sprintf("sweep.radii[%d]", i), radius)
		if seen[radius] {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("sweep radius %v listed more than once", radius),
				SpecPath:    fmt.Sprintf("sweep.radii[%d]", i),
				ActualValue: radius,
			})
		}
		seen[radius] = true
	}
}

func validateOutput(s *spec.PlanSpec, r *Report) {
	if s.Output.SVGWidth < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "output.svg_width must not be negative",
			SpecPath:    "output.svg_width",
			ActualValue: s.Output.SVGWidth,
			Expected:    ">= 0",
		})
	}
}

func requirePositive(r *Report, path string, v float64) {
	if v > 0 && !math.IsInf(v, 1) {
		return
	}
	r.AddError(Result{
		Level:       LevelSchema,
		Message:     fmt.Sprintf("%s must be a finite number > 0", path),
		SpecPath:    path,
		ActualValue: v,
		Expected:    "> 0",
	})
}

func shapeList() string {
	return strings.Join([]string{
		spec.ShapeRectangle, spec.ShapePolygon, spec.ShapeOutline, spec.ShapePreset, spec.ShapeGeoJSON,
	}, ", ")
}
