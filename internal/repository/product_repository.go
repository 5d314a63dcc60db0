package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrRelationMissing means the products table does not exist in the store
	ErrRelationMissing = errors.New("products relation does not exist")
)

// DataAccessError wraps any read or write failure reported by the store
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s products: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func dataAccess(op string, err error) error {
	return &DataAccessError{Op: op, Err: err}
}

// SortOrder is the price ordering applied to a read
type SortOrder int

const (
	// Unordered leaves rows in the store's natural order
	Unordered SortOrder = iota
	PriceAsc
	PriceDesc
)

// ProductFilter describes a single read against the products collection.
// Zero values mean no constraint.
type ProductFilter struct {
	Category string
	Order    SortOrder
	Limit    int
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// List returns the rows matching filter in the requested order
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	// GetByID returns ErrProductNotFound when no row has the id
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// Insert writes all products in one batch and returns them with their ids
	Insert(ctx context.Context, products []models.NewProduct) ([]models.Product, error)
	// Probe checks the products relation exists; ErrRelationMissing when it does not
	Probe(ctx context.Context) error
}
