package batch

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrEmptyGallery = errors.New("batch: gallery has no entries")

// Entry is one artwork in a gallery. Empty fields fall back to the
// runner's base config.
type Entry struct {
	Name    string `yaml:"name"`
	Preset  string `yaml:"preset"`
	Seed    string `yaml:"seed"`
	Advance int    `yaml:"advance"` // frames to step before capture
	Caption string `yaml:"caption"`
	SVG     bool   `yaml:"svg"`
}

// Label names the entry in logs and tables.
func (e Entry) Label() string {
	if e.Name != "" {
		return e.Name
	}
	if e.Seed != "" {
		return e.Seed
	}
	return "(base)"
}

// Gallery is a scripted set of renders, usually read from YAML.
type Gallery struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Size        int     `yaml:"size"` // overrides the base size when set
	Entries     []Entry `yaml:"entries"`
}

func LoadGallery(path string) (*Gallery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGallery(data)
}

func ParseGallery(data []byte) (*Gallery, error) {
	var g Gallery
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("batch: parse gallery: %w", err)
	}
	if len(g.Entries) == 0 {
		return nil, ErrEmptyGallery
	}
	if g.Size < 0 {
		return nil, fmt.Errorf("batch: gallery size %d is negative", g.Size)
	}
	return &g, nil
}

// SeedRange builds a gallery of count consecutive seeds "prefix-0",
// "prefix-1", and so on.
func SeedRange(prefix string, count int) *Gallery {
	g := &Gallery{Name: prefix}
	for i := 0; i < count; i++ {
		g.Entries = append(g.Entries, Entry{Seed: fmt.Sprintf("%s-%d", prefix, i)})
	}
	return g
}
