// Package web renders the storefront pages from embedded HTML templates.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageHome     = "home.html"
	pageCatalog  = "catalog.html"
	pageProduct  = "product.html"
	pageNotFound = "notfound.html"
	pageError    = "error.html"
)

// Section is a featured block on the home page
type Section struct {
	Category   string
	Title      string
	SeeAllHref string
	Products   []models.Product
}

// HomePage is the data for the home template
type HomePage struct {
	Sections []Section
}

// CatalogPage is the data for the catalog listing template
type CatalogPage struct {
	Query    catalog.Query
	Nav      catalog.Navigation
	Products []models.Product
}

// Renderer executes the page templates
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout and card
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, page := range []string{pageHome, pageCatalog, pageProduct, pageNotFound, pageError} {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/card.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

// NewSection builds a home page section linking to its full category listing
func NewSection(category, title string, products []models.Product) Section {
	return Section{
		Category:   category,
		Title:      title,
		SeeAllHref: catalog.Href(catalog.Query{Category: category, Sort: catalog.SortAsc}),
		Products:   products,
	}
}

// Home renders the landing page
func (r *Renderer) Home(w http.ResponseWriter, page HomePage) error {
	return r.render(w, http.StatusOK, pageHome, page)
}

// Catalog renders one card per product in order, plus the navigation links
func (r *Renderer) Catalog(w http.ResponseWriter, page CatalogPage) error {
	return r.render(w, http.StatusOK, pageCatalog, page)
}

// CatalogError renders the error state; no products or navigation are shown
func (r *Renderer) CatalogError(w http.ResponseWriter) error {
	return r.render(w, http.StatusInternalServerError, pageError, nil)
}

// Product renders the detail view
func (r *Renderer) Product(w http.ResponseWriter, product models.Product) error {
	return r.render(w, http.StatusOK, pageProduct, product)
}

// NotFound renders the 404 document
func (r *Renderer) NotFound(w http.ResponseWriter) error {
	return r.render(w, http.StatusNotFound, pageNotFound, nil)
}

// render executes into a buffer first so a template failure never sends a
// partial document
func (r *Renderer) render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
