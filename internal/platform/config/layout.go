package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSectionHandle names the section list rendered on every page.
const DefaultSectionHandle = "default"

//go:embed layout.yaml
var defaultLayout []byte

// Layout describes which metadata sections are rendered per route and how the page type is chosen.
// Page-type rules are kept as raw maps so the value types can be validated by their consumer.
type Layout struct {
	PageTypes []map[string]any    `yaml:"pageTypes"`
	Sections  map[string][]string `yaml:"sections"`
	Cart      CartLayout          `yaml:"cart"`
}

// CartLayout restricts the route-gated cart section. A nil list outputs on every route.
type CartLayout struct {
	OutputOnRoutes []string `yaml:"outputOnRoutes"`
}

// LoadLayout reads the layout file at path, or the embedded default when path is empty.
func LoadLayout(path string) (Layout, error) {
	raw := defaultLayout
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Layout{}, fmt.Errorf("config: read layout %s: %w", path, err)
		}
		raw = data
	}
	return ParseLayout(raw)
}

// ParseLayout decodes a YAML layout document. Unknown keys are rejected.
func ParseLayout(raw []byte) (Layout, error) {
	var layout Layout
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&layout); err != nil {
		if errors.Is(err, io.EOF) {
			return Layout{}, errors.New("config: layout document is empty")
		}
		return Layout{}, fmt.Errorf("config: decode layout: %w", err)
	}
	if _, ok := layout.Sections[DefaultSectionHandle]; !ok {
		return Layout{}, &ValidationError{fields: []string{"Layout.Sections.default"}}
	}
	return layout, nil
}

// SectionsFor returns the default sections followed by those registered for the route handle,
// without duplicates.
func (l Layout) SectionsFor(handle string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(names []string) {
		for _, name := range names {
			if _, ok := seen[name]; ok || name == "" {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	add(l.Sections[DefaultSectionHandle])
	if handle != DefaultSectionHandle {
		add(l.Sections[handle])
	}
	return out
}
