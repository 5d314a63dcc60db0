// Package seed populates the products table with sample records.
// Seeding is not idempotent: every run inserts a fresh copy of the rows.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

var ErrNoProducts = errors.New("no products to seed")

// SchemaError means the target collection does not exist
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("the products table does not exist, create it first: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Seeder writes products through a repository
type Seeder struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(repo repository.ProductRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		repo:   repo,
		logger: logger,
	}
}

// Run probes the table and bulk inserts products in one request.
// It returns the stored rows with their assigned ids.
func (s *Seeder) Run(ctx context.Context, products []models.NewProduct) ([]models.Product, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	s.logger.Info("starting database seeding", "products", len(products))

	if err := s.repo.Probe(ctx); err != nil {
		if errors.Is(err, repository.ErrRelationMissing) {
			return nil, &SchemaError{Err: err}
		}
		// the probe is a sanity check only; the insert reports real failures
		s.logger.Warn("products table probe failed", "error", err)
	}

	stored, err := s.repo.Insert(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("seeding failed: %w", err)
	}

	s.logger.Info("products seeded successfully", "inserted", len(stored))
	return stored, nil
}
