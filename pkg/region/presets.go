package region

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
)

// presets are named outlines approximating real footprints.
var presets = map[string]Outline{
	"ethiopia": {
		Name: "Ethiopia Map Outline",
		Vertices: []geo.Point2D{
			{X: 90, Y: 300}, {X: 120, Y: 350}, {X: 100, Y: 380}, {X: 110, Y: 410}, {X: 150, Y: 420},
			{X: 160, Y: 460}, {X: 200, Y: 460}, {X: 220, Y: 440}, {X: 250, Y: 450}, {X: 280, Y: 420},
			{X: 300, Y: 430}, {X: 320, Y: 400}, {X: 350, Y: 390}, {X: 380, Y: 400}, {X: 400, Y: 390},
			{X: 420, Y: 360}, {X: 450, Y: 340}, {X: 460, Y: 300}, {X: 430, Y: 280}, {X: 420, Y: 250},
			{X: 440, Y: 220}, {X: 380, Y: 200}, {X: 350, Y: 210}, {X: 320, Y: 180}, {X: 300, Y: 120},
			{X: 260, Y: 80}, {X: 250, Y: 40}, {X: 210, Y: 30}, {X: 200, Y: 60}, {X: 170, Y: 80},
			{X: 180, Y: 120}, {X: 150, Y: 150}, {X: 120, Y: 150}, {X: 110, Y: 180}, {X: 130, Y: 210},
			{X: 90, Y: 240}, {X: 60, Y: 270},
		},
	},
}

// Preset returns a copy of the named outline. Names are case-insensitive.
func Preset(name string) (Outline, error) {
	o, ok := presets[strings.ToLower(name)]
	if !ok {
		return Outline{}, fmt.Errorf("%w: unknown preset %q (have %s)",
			ErrInvalidParameter, name, strings.Join(PresetNames(), ", "))
	}
	pts := make([]geo.Point2D, len(o.Vertices))
	copy(pts, o.Vertices)
	return Outline{Name: o.Name, Vertices: pts}, nil
}

// PresetNames lists the available preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
