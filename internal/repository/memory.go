package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// InMemoryProductRepository implements ProductRepository with in-memory storage.
// Rows keep insertion order, which acts as the store's natural order.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	missing  bool
}

var _ ProductRepository = (*InMemoryProductRepository)(nil)

// NewInMemoryProductRepository creates an empty in-memory product repository
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{}
}

// NewMissingRelationRepository creates a repository whose products relation
// does not exist; every call fails with ErrRelationMissing
func NewMissingRelationRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{missing: true}
}

// List returns products matching the filter
func (r *InMemoryProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	if err := r.check(ctx, "list"); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	r.mu.RUnlock()

	switch filter.Order {
	case PriceAsc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return a.Price.Cmp(b.Price) })
	case PriceDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return b.Price.Cmp(a.Price) })
	}

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if err := r.check(ctx, "get"); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Insert stores all products or none, assigning each a new UUID
func (r *InMemoryProductRepository) Insert(ctx context.Context, products []models.NewProduct) ([]models.Product, error) {
	if err := r.check(ctx, "insert"); err != nil {
		return nil, err
	}

	stored := make([]models.Product, 0, len(products))
	for _, np := range products {
		if err := np.Validate(); err != nil {
			return nil, dataAccess("insert", err)
		}
		stored = append(stored, np.WithID(uuid.NewString()))
	}

	r.mu.Lock()
	r.products = append(r.products, stored...)
	r.mu.Unlock()

	return stored, nil
}

// Probe reports whether the products relation exists
func (r *InMemoryProductRepository) Probe(ctx context.Context) error {
	return r.check(ctx, "probe")
}

func (r *InMemoryProductRepository) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return dataAccess(op, err)
	}
	if r.missing {
		return dataAccess(op, ErrRelationMissing)
	}
	return nil
}
