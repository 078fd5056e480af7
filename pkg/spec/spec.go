package spec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/region"
)

// FileName is the plan file looked up in a project directory.
const FileName = "plan.yaml"

// ErrUnknownShape is returned for a region.shape the loader does not know.
var ErrUnknownShape = errors.New("unknown region shape")

// Load reads a plan spec from a YAML file.
func Load(path string) (*PlanSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

// LoadProject loads a plan spec from a project directory.
// It looks for plan.yaml in the given directory.
func LoadProject(projectDir string) (*PlanSpec, error) {
	specPath := filepath.Join(projectDir, FileName)
	return Load(specPath)
}

// Parse decodes a plan spec from YAML. Relative paths resolve against the
// working directory until Dir is set.
func Parse(data []byte) (*PlanSpec, error) {
	var s PlanSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing spec YAML: %w", err)
	}
	s.Region.Shape = strings.ToLower(strings.TrimSpace(s.Region.Shape))
	return &s, nil
}

// Path resolves a spec-relative path.
func (s *PlanSpec) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || s.Dir == "" {
		return p
	}
	return filepath.Join(s.Dir, p)
}

// Descriptor returns the region descriptor of the plan. A GeoJSON
// region is read from disk.
func (s *PlanSpec) Descriptor() (region.Descriptor, error) {
	d, err := s.Region.descriptor(s.Path)
	if err != nil {
		return nil, err
	}
	if s.Region.Label != "" {
		return labeled{Descriptor: d, label: s.Region.Label}, nil
	}
	return d, nil
}

func (rd RegionDef) descriptor(resolve func(string) string) (region.Descriptor, error) {
	switch rd.Shape {
	case ShapeRectangle:
		return region.Rectangle{W: rd.Width, H: rd.Height}, nil
	case ShapePolygon:
		rp := region.NewRegularPolygon(rd.Sides)
		if rd.Center != nil {
			rp.CenterX, rp.CenterY = rd.Center.X, rd.Center.Y
		}
		if rd.Circumradius != 0 {
			rp.Circumradius = rd.Circumradius
		}
		return rp, nil
	case ShapeOutline:
		return region.Outline{Vertices: rd.Vertices}, nil
	case ShapePreset:
		return region.Preset(rd.Preset)
	case ShapeGeoJSON:
		if rd.GeoJSON == "" {
			return nil, fmt.Errorf("%w: region.geojson is empty", region.ErrInvalidParameter)
		}
		data, err := os.ReadFile(resolve(rd.GeoJSON))
		if err != nil {
			return nil, fmt.Errorf("reading GeoJSON outline: %w", err)
		}
		return region.OutlineFromGeoJSON(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, rd.Shape)
}

// labeled overrides a descriptor's label.
type labeled struct {
	region.Descriptor
	label string
}

func (l labeled) Label() string { return l.label }
