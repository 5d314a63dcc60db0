package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyPrefix is prepended to every displayed price
const CurrencyPrefix = "$"

var (
	ErrMissingID       = errors.New("product id is required")
	ErrMissingName     = errors.New("product name is required")
	ErrMissingCategory = errors.New("product category is required")
	ErrNegativePrice   = errors.New("product price cannot be negative")
)

// Product represents a sellable item as stored in the products table.
// Description and ImageURL are empty when the store has no value.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Category    string          `json:"category"`
}

// DisplayPrice formats the price with two decimals and the currency prefix
func (p Product) DisplayPrice() string {
	return FormatPrice(p.Price)
}

// Validate checks that a row read from the store has the fixed record shape
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrMissingID
	}
	return validateFields(p.Name, p.Category, p.Price)
}

// NewProduct is the insert shape for a product; the store assigns the id
type NewProduct struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
}

// Validate checks the fields required before an insert
func (p NewProduct) Validate() error {
	return validateFields(p.Name, p.Category, p.Price)
}

// WithID builds the stored product for an insert once the id is known
func (p NewProduct) WithID(id string) Product {
	return Product{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
	}
}

func validateFields(name, category string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(category) == "" {
		return ErrMissingCategory
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativePrice, price.String())
	}
	return nil
}

// FormatPrice renders an amount like "$1199.99"
func FormatPrice(amount decimal.Decimal) string {
	return CurrencyPrefix + amount.StringFixed(2)
}
