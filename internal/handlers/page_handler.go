package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/web"
)

// PageHandler serves the server-rendered storefront pages
type PageHandler struct {
	service    *service.CatalogService
	renderer   *web.Renderer
	categories []string
	logger     *slog.Logger
}

// NewPageHandler creates a page handler; categories drive the catalog navigation
func NewPageHandler(service *service.CatalogService, renderer *web.Renderer, categories []string, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		service:    service,
		renderer:   renderer,
		categories: categories,
		logger:     logger,
	}
}

// Home handles GET /
// Featured sections that fail to load render empty
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	featured := h.service.Featured(r.Context())

	page := web.HomePage{Sections: make([]web.Section, 0, len(featured))}
	for _, f := range featured {
		page.Sections = append(page.Sections, web.NewSection(f.Category, f.Title, f.Products))
	}

	h.render("home", h.renderer.Home(w, page))
}

// Catalog handles GET /products?category=&sort=
func (h *PageHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	q := catalog.ParseQuery(r.URL.Query())

	products, err := h.service.ListCatalog(r.Context(), q)
	if err != nil {
		h.logger.Error("failed to load catalog", "category", q.Category, "sort", q.Sort, "error", err)
		h.render("catalog error", h.renderer.CatalogError(w))
		return
	}

	h.render("catalog", h.renderer.Catalog(w, web.CatalogPage{
		Query:    q,
		Nav:      catalog.BuildNavigation(h.categories, q),
		Products: products,
	}))
}

// Product handles GET /products/{productId}
func (h *PageHandler) Product(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSpace(chi.URLParam(r, "productId"))
	if productID == "" {
		h.NotFound(w, r)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		if !errors.Is(err, repository.ErrProductNotFound) {
			h.logger.Error("failed to get product", "productId", productID, "error", err)
		}
		h.NotFound(w, r)
		return
	}

	h.render("product", h.renderer.Product(w, *product))
}

// NotFound renders the 404 page; used as the router's fallback
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render("not found", h.renderer.NotFound(w))
}

func (h *PageHandler) render(page string, err error) {
	if err != nil {
		h.logger.Error("failed to render page", "page", page, "error", err)
	}
}
