package main

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/web"
)

type routerDeps struct {
	service    *service.CatalogService
	store      handlers.Pinger
	renderer   *web.Renderer
	categories []string
	logger     *slog.Logger
}

func newRouter(deps routerDeps) chi.Router {
	healthHandler := handlers.NewHealthHandler(deps.store, version, deps.logger)
	productHandler := handlers.NewProductHandler(deps.service, deps.logger)
	pageHandler := handlers.NewPageHandler(deps.service, deps.renderer, deps.categories, deps.logger)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(deps.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", healthHandler.ServeHTTP)

	// Storefront pages
	r.Get("/", pageHandler.Home)
	r.Get("/products", pageHandler.Catalog)
	r.Get("/products/{productId}", pageHandler.Product)
	r.NotFound(pageHandler.NotFound)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
	})

	return r
}
