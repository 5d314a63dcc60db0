package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// undefinedTable is the SQLSTATE PostgreSQL reports for a missing relation
const undefinedTable = "42P01"

const productColumns = "id::text, name, description, price, image_url, category"

// PostgresProductRepository reads and writes the products table through database/sql
type PostgresProductRepository struct {
	db *sql.DB
}

var _ ProductRepository = (*PostgresProductRepository)(nil)

// NewPostgresProductRepository creates a repository on an open connection pool
func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// buildListQuery composes the SELECT for a filter and returns it with its arguments
func buildListQuery(filter ProductFilter) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString("SELECT " + productColumns + " FROM products")

	if filter.Category != "" {
		args = append(args, filter.Category)
		fmt.Fprintf(&b, " WHERE category = $%d", len(args))
	}

	switch filter.Order {
	case PriceAsc:
		b.WriteString(" ORDER BY price ASC")
	case PriceDesc:
		b.WriteString(" ORDER BY price DESC")
	}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}

	return b.String(), args
}

// List runs one filtered, ordered read
func (r *PostgresProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("list", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, classify("list", err)
	}
	return products, nil
}

// GetByID returns the product with the exact id. Ids that are not UUIDs
// cannot exist in the table and are reported as not found.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}

	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, classify("get", err)
	}
	return &p, nil
}

// Insert writes every product with a single multi-row INSERT
func (r *PostgresProductRepository) Insert(ctx context.Context, products []models.NewProduct) ([]models.Product, error) {
	if len(products) == 0 {
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO products (name, description, price, image_url, category) VALUES ")

	args := make([]any, 0, len(products)*5)
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, dataAccess("insert", fmt.Errorf("product %d: %w", i, err))
		}
		if i > 0 {
			b.WriteString(", ")
		}
		n := len(args)
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, p.Name, nullString(p.Description), p.Price, nullString(p.ImageURL), p.Category)
	}
	b.WriteString(" RETURNING " + productColumns)

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, classify("insert", err)
	}
	defer rows.Close()

	stored, err := scanProducts(rows)
	if err != nil {
		return nil, classify("insert", err)
	}
	return stored, nil
}

// Probe selects zero rows to learn whether the relation exists
func (r *PostgresProductRepository) Probe(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM products LIMIT 0")
	if err != nil {
		return classify("probe", err)
	}
	defer rows.Close()
	if err := rows.Err(); err != nil {
		return classify("probe", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (models.Product, error) {
	var (
		p                              models.Product
		name, desc, imageURL, category sql.NullString
	)
	if err := s.Scan(&p.ID, &name, &desc, &p.Price, &imageURL, &category); err != nil {
		return models.Product{}, err
	}
	p.Name = name.String
	p.Description = desc.String
	p.ImageURL = imageURL.String
	p.Category = category.String

	if err := p.Validate(); err != nil {
		return models.Product{}, fmt.Errorf("invalid row %q: %w", p.ID, err)
	}
	return p, nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// classify wraps a store error, marking a missing relation
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return dataAccess(op, fmt.Errorf("%w: %s", ErrRelationMissing, pgErr.Message))
	}
	return dataAccess(op, err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
