// Package content loads the site catalog: hero slides, testimonials,
// portfolio items and the services offered on the contact form.
//
// A default catalog is embedded in the binary. Load reads an override YAML
// file with the same shape when one is configured.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/capture/internal/validate"
)

// FilterAll matches every portfolio item.
const FilterAll = "all"

//go:embed catalog.yaml
var defaultCatalog []byte

// Slide is one hero carousel panel.
type Slide struct {
	Title    string `yaml:"title" validate:"required"`
	Subtitle string `yaml:"subtitle"`
	Image    string `yaml:"image" validate:"omitempty,url"`
}

// Testimonial is one entry of the testimonial slider.
type Testimonial struct {
	Quote  string `yaml:"quote" validate:"required"`
	Author string `yaml:"author" validate:"required"`
	Role   string `yaml:"role"`
}

// Item is one portfolio gallery entry. Full is the high resolution image used
// by the lightbox and the analyzer; Image is used when Full is empty.
type Item struct {
	Title    string `yaml:"title" validate:"required"`
	Category string `yaml:"category"`
	Image    string `yaml:"image" validate:"required,url"`
	Full     string `yaml:"full" validate:"omitempty,url"`
}

// Source returns the URL the lightbox should display.
func (i Item) Source() string {
	if strings.TrimSpace(i.Full) != "" {
		return i.Full
	}
	return i.Image
}

// Catalog is the full site content.
type Catalog struct {
	Slides       []Slide       `yaml:"slides" validate:"dive"`
	Testimonials []Testimonial `yaml:"testimonials" validate:"dive"`
	Portfolio    []Item        `yaml:"portfolio" validate:"dive"`
	Services     []string      `yaml:"services"`
}

// Default returns the embedded catalog.
func Default() (Catalog, error) {
	return parse(defaultCatalog)
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Catalog{}, fmt.Errorf("content file %s not found", path)
		}
		return Catalog{}, fmt.Errorf("read content: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse content: %w", err)
	}
	if err := validate.Struct(cat); err != nil {
		return Catalog{}, fmt.Errorf("invalid content: %s", validate.Describe(err))
	}
	return cat, nil
}

// Categories returns the filter chips: FilterAll followed by each distinct
// lowercased category in order of first appearance.
func (c Catalog) Categories() []string {
	out := []string{FilterAll}
	seen := map[string]bool{FilterAll: true}
	for _, item := range c.Portfolio {
		cat := normalizeCategory(item.Category)
		if seen[cat] {
			continue
		}
		seen[cat] = true
		out = append(out, cat)
	}
	return out
}

// Filter returns the items visible under filter. An empty filter or
// FilterAll shows everything; uncategorised items only show under FilterAll.
func Filter(items []Item, filter string) []Item {
	want := strings.ToLower(strings.TrimSpace(filter))
	if want == "" || want == FilterAll {
		out := make([]Item, len(items))
		copy(out, items)
		return out
	}
	var out []Item
	for _, item := range items {
		if normalizeCategory(item.Category) == want {
			out = append(out, item)
		}
	}
	return out
}

func normalizeCategory(category string) string {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat == "" {
		return FilterAll
	}
	return cat
}
