package data

import (
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlanetoidTemplate is one spawnable planetoid kind loaded from YAML.
type PlanetoidTemplate struct {
	Name    string  `yaml:"name"`
	Radius  float64 `yaml:"radius"`
	Sides   int     `yaml:"sides"`
	Density float64 `yaml:"density"`
	Color   string  `yaml:"color"`  // "#rrggbb"
	Weight  int     `yaml:"weight"` // relative pick weight, 0 = never picked
}

// RGBA parses Color. Malformed values fall back to opaque grey.
func (t *PlanetoidTemplate) RGBA() color.RGBA {
	c, err := ParseHexColor(t.Color)
	if err != nil {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	return c
}

type planetoidListFile struct {
	Planetoids []PlanetoidTemplate `yaml:"planetoids"`
}

// PlanetoidTable holds the spawn templates in file order plus a name index.
type PlanetoidTable struct {
	templates   []*PlanetoidTemplate
	byName      map[string]*PlanetoidTemplate
	totalWeight int
}

// LoadPlanetoidTable loads planetoid templates from a YAML file.
func LoadPlanetoidTable(path string) (*PlanetoidTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read planetoid_list: %w", err)
	}
	return ParsePlanetoidTable(raw)
}

// ParsePlanetoidTable builds a table from YAML bytes.
func ParsePlanetoidTable(raw []byte) (*PlanetoidTable, error) {
	var f planetoidListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse planetoid_list: %w", err)
	}
	t := &PlanetoidTable{
		templates: make([]*PlanetoidTemplate, 0, len(f.Planetoids)),
		byName:    make(map[string]*PlanetoidTemplate, len(f.Planetoids)),
	}
	for i := range f.Planetoids {
		tmpl := &f.Planetoids[i]
		if tmpl.Radius <= 0 || tmpl.Density <= 0 {
			return nil, fmt.Errorf("planetoid %q: radius and density must be positive", tmpl.Name)
		}
		if tmpl.Sides < 3 {
			return nil, fmt.Errorf("planetoid %q: need at least 3 sides, got %d", tmpl.Name, tmpl.Sides)
		}
		if _, dup := t.byName[tmpl.Name]; dup {
			return nil, fmt.Errorf("planetoid %q: duplicate name", tmpl.Name)
		}
		t.templates = append(t.templates, tmpl)
		t.byName[tmpl.Name] = tmpl
		if tmpl.Weight > 0 {
			t.totalWeight += tmpl.Weight
		}
	}
	return t, nil
}

// Get returns a template by name, or nil.
func (t *PlanetoidTable) Get(name string) *PlanetoidTemplate {
	return t.byName[name]
}

// Count returns the number of loaded templates.
func (t *PlanetoidTable) Count() int {
	return len(t.templates)
}

// Pick returns a weighted random template, or nil when nothing is pickable.
func (t *PlanetoidTable) Pick(rng *rand.Rand) *PlanetoidTemplate {
	if t.totalWeight <= 0 {
		return nil
	}
	n := rng.Intn(t.totalWeight)
	for _, tmpl := range t.templates {
		if tmpl.Weight <= 0 {
			continue
		}
		if n < tmpl.Weight {
			return tmpl
		}
		n -= tmpl.Weight
	}
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
