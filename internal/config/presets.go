package config

import (
	"sort"

	"github.com/san-kum/mbsim/internal/modeling"
)

// Presets builds a fresh description for each named example model.
var Presets = map[string]func() *Config{
	"pendulum": DefaultConfig,
	"double_pendulum": func() *Config {
		return &Config{
			Name: "double_pendulum", Ground: true,
			Bodies: []BodyConfig{
				{
					Name:     "link1",
					Stations: []StationConfig{{Name: "tip", At: []float64{0, -1, 0}}},
					MassElements: []MassElementConfig{
						{Name: "bob", Shape: "point", Mass: 1, At: []float64{0, -1, 0}},
					},
				},
				{
					Name: "link2", Like: "link1", Origin: []float64{0, -1, 0},
				},
			},
			Joints: []JointConfig{
				{Name: "shoulder", Type: "pin", Reference: modeling.GroundName, Moving: "link1"},
				{Name: "elbow", Type: "pin", Reference: "link1/tip", Moving: "link2"},
			},
		}
	},
	"cartpole": func() *Config {
		return &Config{
			Name: "cartpole", Ground: true,
			Bodies: []BodyConfig{
				{
					Name: "cart",
					MassElements: []MassElementConfig{
						{Name: "chassis", Shape: "brick", Mass: 1, HalfLengths: []float64{0.25, 0.1, 0.1}},
					},
				},
				{
					Name: "pole",
					MassElements: []MassElementConfig{
						{Name: "rod", Shape: "cylinder", Mass: 0.1, Radius: 0.02, HalfLength: 0.5, At: []float64{0, 0.5, 0}},
					},
				},
			},
			Joints: []JointConfig{
				{Name: "rail", Type: "sliding", Reference: modeling.GroundName, Moving: "cart"},
				{Name: "hinge", Type: "pin", Reference: "cart", Moving: "pole"},
			},
		}
	},
	"free_body": func() *Config {
		return &Config{
			Name: "free_body", Ground: true,
			Bodies: []BodyConfig{
				{
					Name:   "box",
					Origin: []float64{0, 0, 2},
					MassElements: []MassElementConfig{
						{Name: "block", Shape: "brick", Mass: 2, HalfLengths: []float64{0.5, 0.3, 0.2}},
					},
				},
			},
			Joints: []JointConfig{
				{Name: "float", Type: "free", Reference: modeling.GroundName, Moving: "box"},
			},
		}
	},
	"gimbal_arm": func() *Config {
		return &Config{
			Name: "gimbal_arm", Ground: true,
			Bodies: []BodyConfig{
				{
					Name:     "base",
					Stations: []StationConfig{{Name: "top", At: []float64{0, 0, 0.4}}},
					MassElements: []MassElementConfig{
						{Name: "column", Shape: "cylinder", Mass: 5, Radius: 0.1, HalfLength: 0.2, At: []float64{0, 0, 0.2}},
					},
				},
				{
					Name:     "arm",
					Axis:     []float64{0, 1, 0},
					Angle:    0.5,
					Stations: []StationConfig{{Name: "hand", At: []float64{1, 0, 0}}},
					MassElements: []MassElementConfig{
						{Name: "elbow", Shape: "point", Mass: 0.5, At: []float64{0.5, 0, 0}},
						{Name: "payload", Shape: "point", Mass: 1.5, At: []float64{1, 0, 0}},
					},
				},
				{
					Name: "cable", Kind: "deformable",
				},
			},
			Joints: []JointConfig{
				{Name: "mount", Type: "weld", Reference: modeling.GroundName, Moving: "base"},
				{Name: "wrist", Type: "gimbal", Reference: "base/top", Moving: "arm"},
				{Name: "tether", Type: "ball", Reference: "arm/hand", Moving: "cable"},
			},
		}
	},
}

// GetPreset returns a new copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
