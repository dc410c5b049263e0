package config

import "sort"

func preset(example string, edit func(c *Config)) *Config {
	c := DefaultConfig()
	c.Example = example
	edit(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"dos": {
		"quick": preset("dos", func(c *Config) {
			c.DOS.Size1D, c.DOS.Size2D, c.DOS.Size3D = 1000, 100, 20
		}),
		"reference": preset("dos", func(c *Config) {
			c.DOS.Size3D = 200
		}),
		"sharp": preset("dos", func(c *Config) {
			c.DOS.Smoothing = SmoothingConfig{Sigma: 0.01, Window: 21}
		}),
	},
	"density": {
		"small": preset("density", func(c *Config) {
			c.Density.SizeX, c.Density.SizeY = 8, 8
		}),
		"excited": preset("density", func(c *Config) {
			c.Density.State = 5
		}),
	},
	"annulus": {
		"small": preset("annulus", func(c *Config) {
			c.Annulus.Size, c.Annulus.InnerRadius, c.Annulus.OuterRadius = 17, 2, 8
		}),
		"thin": preset("annulus", func(c *Config) {
			c.Annulus.InnerRadius, c.Annulus.OuterRadius = 14, 20
		}),
	},
	"hamiltonian": {
		"chain": preset("hamiltonian", func(c *Config) {
			c.Hamiltonian.SizeX, c.Hamiltonian.SizeY = 5, 1
		}),
	},
	"potentials": {
		"quick": preset("potentials", func(c *Config) {
			c.Potentials.Size = 100
		}),
		"many": preset("potentials", func(c *Config) {
			c.Potentials.NumStates = 15
		}),
	},
	"graphene": {
		"coarse": preset("graphene", func(c *Config) {
			c.Graphene.MeshResolution = 120
			c.Graphene.PointsPerSegment = 40
		}),
		"fine-dos": preset("graphene", func(c *Config) {
			c.Graphene.Energy.Resolution = 2000
			c.Graphene.Smoothing = SmoothingConfig{Sigma: 0.015, Window: 101}
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(example, name string) *Config {
	examplePresets, ok := Presets[example]
	if !ok {
		return nil
	}
	cfg, ok := examplePresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(example string) []string {
	examplePresets, ok := Presets[example]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(examplePresets))
	for name := range examplePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
