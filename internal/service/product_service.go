package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

// FeaturedSection is one home page block with its products
type FeaturedSection struct {
	Category string
	Title    string
	Products []models.Product
}

// CatalogService handles the read paths behind the storefront pages
type CatalogService struct {
	repo     repository.ProductRepository
	featured []config.FeaturedSection
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.ProductRepository, featured []config.FeaturedSection, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		featured: featured,
		logger:   logger,
	}
}

// ListCatalog runs the catalog query. Any store failure is returned as a
// *repository.DataAccessError so the caller can show the error state.
func (s *CatalogService) ListCatalog(ctx context.Context, q catalog.Query) ([]models.Product, error) {
	products, err := s.repo.List(ctx, q.Filter())
	if err != nil {
		var dae *repository.DataAccessError
		if errors.As(err, &dae) {
			return nil, err
		}
		return nil, &repository.DataAccessError{Op: "list", Err: err}
	}
	return products, nil
}

// Featured loads every configured section concurrently. A failing section
// is logged and left empty; the call itself never fails.
func (s *CatalogService) Featured(ctx context.Context) []FeaturedSection {
	sections := make([]FeaturedSection, len(s.featured))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range s.featured {
		i, f := i, f
		sections[i] = FeaturedSection{Category: f.Category, Title: f.Title}
		g.Go(func() error {
			products, err := s.repo.List(gctx, catalog.FeaturedFilter(f.Category, f.Limit))
			if err != nil {
				s.logger.Error("failed to fetch featured products",
					"category", f.Category,
					"error", err,
				)
				products = []models.Product{}
			}
			sections[i].Products = products
			return nil
		})
	}
	_ = g.Wait()

	return sections
}

// GetProduct returns a product by ID. Store failures are logged and reported
// as repository.ErrProductNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, repository.ErrProductNotFound) {
		s.logger.Warn("product lookup failed, reporting not found", "productId", id, "error", err)
	}
	return nil, repository.ErrProductNotFound
}
