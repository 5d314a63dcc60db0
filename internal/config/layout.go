package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout describes the static catalog structure shown on the pages
type Layout struct {
	// Categories feed the catalog navigation, in display order
	Categories []string          `yaml:"categories"`
	Featured   []FeaturedSection `yaml:"featured"`
}

// FeaturedSection is one capped category block on the home page
type FeaturedSection struct {
	Category string `yaml:"category"`
	Title    string `yaml:"title"`
	Limit    int    `yaml:"limit"`
}

// DefaultLayout mirrors the sample data categories
func DefaultLayout() Layout {
	return Layout{
		Categories: []string{"electronics", "clothing", "home", "footwear", "toys", "sports", "accessories"},
		Featured: []FeaturedSection{
			{Category: "electronics", Title: "Trending in Electronics", Limit: 4},
			{Category: "clothing", Title: "Stylish Clothing", Limit: 4},
			{Category: "home", Title: "Home Essentials", Limit: 4},
		},
	}
}

// LoadLayout reads a YAML layout file. Omitted sections keep their defaults.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var parsed Layout
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Layout{}, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	layout := DefaultLayout()
	if len(parsed.Categories) > 0 {
		layout.Categories = parsed.Categories
	}
	if len(parsed.Featured) > 0 {
		layout.Featured = parsed.Featured
	}
	for i := range layout.Featured {
		if layout.Featured[i].Limit <= 0 {
			layout.Featured[i].Limit = 4
		}
	}

	if err := layout.Validate(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// Validate rejects empty category names
func (l Layout) Validate() error {
	for _, c := range l.Categories {
		if strings.TrimSpace(c) == "" {
			return &ConfigurationError{Key: "CATALOG_FILE", Reason: "empty category name"}
		}
	}
	for _, f := range l.Featured {
		if strings.TrimSpace(f.Category) == "" {
			return &ConfigurationError{Key: "CATALOG_FILE", Reason: "featured section without category"}
		}
	}
	return nil
}
