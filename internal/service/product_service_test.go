package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// failingRepo wraps a repository and fails reads for selected categories
type failingRepo struct {
	repository.ProductRepository
	failCategory string
	failAll      bool
	failGet      error
}

func (f *failingRepo) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	if f.failAll || (f.failCategory != "" && filter.Category == f.failCategory) {
		return nil, &repository.DataAccessError{Op: "list", Err: errors.New("upstream timeout")}
	}
	return f.ProductRepository.List(ctx, filter)
}

func (f *failingRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	return f.ProductRepository.GetByID(ctx, id)
}

// plainErrRepo returns errors that are not DataAccessErrors
type plainErrRepo struct {
	repository.ProductRepository
}

func (plainErrRepo) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	return nil, errors.New("raw failure")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func np(name, price, category string) models.NewProduct {
	return models.NewProduct{Name: name, Price: decimal.RequireFromString(price), Category: category}
}

func newSeededRepo(t *testing.T) *repository.InMemoryProductRepository {
	t.Helper()
	repo := repository.NewInMemoryProductRepository()
	_, err := repo.Insert(context.Background(), []models.NewProduct{
		np("Apple iPhone 15 Pro", "1199.99", "electronics"),
		np("Vintage Leather Jacket", "89.99", "clothing"),
		np("Sony WH-1000XM5 Headphones", "349.99", "electronics"),
		np("KitchenAid Mixer", "299.99", "home"),
		np("Nike Air Max 270", "129.50", "footwear"),
		np("Samsung Galaxy Tab S9", "599.00", "electronics"),
		np("Instant Pot Duo", "89.99", "home"),
		np("Pixel 8", "699.00", "electronics"),
		np("Kindle", "139.99", "electronics"),
	})
	require.NoError(t, err)
	return repo
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestListCatalog(t *testing.T) {
	svc := NewCatalogService(newSeededRepo(t), nil, discardLogger())
	ctx := context.Background()

	t.Run("category ascending", func(t *testing.T) {
		got, err := svc.ListCatalog(ctx, catalog.Query{Category: "home", Sort: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Instant Pot Duo", "KitchenAid Mixer"}, names(got))
	})

	t.Run("all descending is non-increasing", func(t *testing.T) {
		got, err := svc.ListCatalog(ctx, catalog.Query{Category: "all", Sort: "desc"})
		require.NoError(t, err)
		require.Len(t, got, 9)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].Price.GreaterThan(got[i-1].Price), "index %d out of order", i)
		}
	})

	t.Run("empty category is not an error", func(t *testing.T) {
		got, err := svc.ListCatalog(ctx, catalog.Query{Category: "garden", Sort: "asc"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestListCatalog_Failure(t *testing.T) {
	t.Run("data access error passes through", func(t *testing.T) {
		svc := NewCatalogService(&failingRepo{ProductRepository: newSeededRepo(t), failAll: true}, nil, discardLogger())

		got, err := svc.ListCatalog(context.Background(), catalog.DefaultQuery())
		assert.Nil(t, got)
		var dae *repository.DataAccessError
		require.ErrorAs(t, err, &dae)
		assert.Contains(t, err.Error(), "upstream timeout")
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		svc := NewCatalogService(plainErrRepo{}, nil, discardLogger())

		_, err := svc.ListCatalog(context.Background(), catalog.DefaultQuery())
		var dae *repository.DataAccessError
		require.ErrorAs(t, err, &dae)
		assert.Equal(t, "list", dae.Op)
	})
}

func TestFeatured(t *testing.T) {
	featured := config.DefaultLayout().Featured
	svc := NewCatalogService(newSeededRepo(t), featured, discardLogger())

	sections := svc.Featured(context.Background())
	require.Len(t, sections, 3)

	assert.Equal(t, "electronics", sections[0].Category)
	assert.Equal(t, "Trending in Electronics", sections[0].Title)
	assert.Len(t, sections[0].Products, 4, "electronics is capped at 4")

	assert.Equal(t, "clothing", sections[1].Category)
	assert.Len(t, sections[1].Products, 1, "fewer rows than the cap are returned as is")

	assert.Equal(t, "home", sections[2].Category)
	assert.Len(t, sections[2].Products, 2)

	for _, s := range sections {
		for _, p := range s.Products {
			assert.Equal(t, s.Category, p.Category)
		}
	}
}

func TestFeatured_EmptyCategory(t *testing.T) {
	featured := []config.FeaturedSection{{Category: "toys", Title: "Toys", Limit: 4}}
	svc := NewCatalogService(newSeededRepo(t), featured, discardLogger())

	sections := svc.Featured(context.Background())
	require.Len(t, sections, 1)
	assert.NotNil(t, sections[0].Products)
	assert.Empty(t, sections[0].Products)
}

func TestFeatured_DegradesFailingSection(t *testing.T) {
	repo := &failingRepo{ProductRepository: newSeededRepo(t), failCategory: "clothing"}
	svc := NewCatalogService(repo, config.DefaultLayout().Featured, discardLogger())

	sections := svc.Featured(context.Background())
	require.Len(t, sections, 3)

	assert.Len(t, sections[0].Products, 4)
	assert.Empty(t, sections[1].Products)
	assert.Equal(t, "Stylish Clothing", sections[1].Title)
	assert.Len(t, sections[2].Products, 2)
}

func TestGetProduct(t *testing.T) {
	repo := newSeededRepo(t)
	all, err := repo.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		svc := NewCatalogService(repo, nil, discardLogger())
		got, err := svc.GetProduct(context.Background(), all[0].ID)
		require.NoError(t, err)
		assert.Equal(t, all[0], *got)
	})

	t.Run("absent", func(t *testing.T) {
		svc := NewCatalogService(repo, nil, discardLogger())
		_, err := svc.GetProduct(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})

	t.Run("store failure reads as not found", func(t *testing.T) {
		failing := &failingRepo{ProductRepository: repo, failGet: &repository.DataAccessError{Op: "get", Err: errors.New("down")}}
		svc := NewCatalogService(failing, nil, discardLogger())

		got, err := svc.GetProduct(context.Background(), all[0].ID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})
}
