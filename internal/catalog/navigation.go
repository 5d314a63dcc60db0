package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CatalogPath is where the catalog listing is served
const CatalogPath = "/products"

// Link is one navigation affordance on the catalog page
type Link struct {
	Label  string
	Href   string
	Active bool
}

// Navigation holds the category and sort links for the next request
type Navigation struct {
	Categories []Link
	Sorts      []Link
}

var sortLabels = []struct {
	value string
	label string
}{
	{SortAsc, "Low to High"},
	{SortDesc, "High to Low"},
}

// BuildNavigation derives the links from the known categories and the current
// selection. Category links keep the current sort; sort links keep the
// current category.
func BuildNavigation(categories []string, current Query) Navigation {
	nav := Navigation{
		Categories: make([]Link, 0, len(categories)+1),
		Sorts:      make([]Link, 0, len(sortLabels)),
	}

	for _, c := range withAll(categories) {
		next := Query{Category: c, Sort: current.Sort}
		nav.Categories = append(nav.Categories, Link{
			Label:  Label(c),
			Href:   Href(next),
			Active: c == current.Category,
		})
	}

	for _, s := range sortLabels {
		next := Query{Category: current.Category, Sort: s.value}
		nav.Sorts = append(nav.Sorts, Link{
			Label:  s.label,
			Href:   Href(next),
			Active: s.value == current.Sort,
		})
	}

	return nav
}

// Href is the catalog URL for a query
func Href(q Query) string {
	return CatalogPath + "?" + q.Values().Encode()
}

// Label upper-cases the first character of a category
func Label(category string) string {
	r, size := utf8.DecodeRuneInString(category)
	if r == utf8.RuneError {
		return category
	}
	return string(unicode.ToUpper(r)) + category[size:]
}

func withAll(categories []string) []string {
	out := make([]string, 0, len(categories)+1)
	out = append(out, AllCategories)
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || c == AllCategories {
			continue
		}
		out = append(out, c)
	}
	return out
}
