// Package catalog turns catalog page parameters into store reads and
// navigation links.
package catalog

import (
	"net/url"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

const (
	AllCategories = "all"
	SortAsc       = "asc"
	SortDesc      = "desc"

	// FeaturedLimit caps each home page section
	FeaturedLimit = 4
)

// Query holds the request-scoped catalog parameters
type Query struct {
	Category string
	Sort     string
}

// DefaultQuery is the catalog with no parameters
func DefaultQuery() Query {
	return Query{Category: AllCategories, Sort: SortAsc}
}

// ParseQuery reads category and sort from request parameters.
// A missing category means all; a missing sort means ascending and any
// other value than asc means descending.
func ParseQuery(values url.Values) Query {
	q := DefaultQuery()

	if c := strings.TrimSpace(values.Get("category")); c != "" {
		q.Category = c
	}
	if s := strings.TrimSpace(values.Get("sort")); s != "" && s != SortAsc {
		q.Sort = SortDesc
	}
	return q
}

// Filter is the single read request for the catalog listing. There is no
// limit and no tie-break on equal prices.
func (q Query) Filter() repository.ProductFilter {
	f := repository.ProductFilter{Order: repository.PriceDesc}
	if q.Sort == SortAsc {
		f.Order = repository.PriceAsc
	}
	if q.Category != AllCategories {
		f.Category = q.Category
	}
	return f
}

// Values encodes the query back into request parameters
func (q Query) Values() url.Values {
	return url.Values{
		"category": {q.Category},
		"sort":     {q.Sort},
	}
}

// FeaturedFilter is the capped, unordered read for one home page section
func FeaturedFilter(category string, limit int) repository.ProductFilter {
	if limit <= 0 {
		limit = FeaturedLimit
	}
	return repository.ProductFilter{Category: category, Limit: limit}
}
