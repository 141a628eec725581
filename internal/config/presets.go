package config

import (
	"fmt"
	"sort"
)

func preset(edit func(c *Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

var Presets = map[string]*Config{
	"classic": preset(func(c *Config) {
		c.Bodies = 3
	}),
	"binary": preset(func(c *Config) {
		c.Bodies = 2
		c.Orbit.Radius = 0.3
	}),
	"trinary": preset(func(c *Config) {
		c.Bodies = 3
		c.Moons.Probability = 0
		c.Palette = "ember"
	}),
	"quintet": preset(func(c *Config) {
		c.Bodies = 5
		c.Orbit.Radius = 0.45
		c.Orbit.MassMax = 3
	}),
	"lonely": preset(func(c *Config) {
		c.Bodies = 1
		c.Orbit.Radius = 0.2
		c.Moons.Probability = 1
	}),
	"busy": preset(func(c *Config) {
		c.Bodies = 3
		c.SeedsPerEdge = 24
		c.Moons.Probability = 1
		c.Moons.HistoryProbability = 1
		c.Grid.Arrows = true
	}),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	c := *p
	return &c, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
