package seed

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// csvProduct is one row of a seed CSV file
type csvProduct struct {
	Name        string `csv:"name"`
	Description string `csv:"description"`
	Price       string `csv:"price"`
	ImageURL    string `csv:"image_url"`
	Category    string `csv:"category"`
}

// Source loads seed products from a local path or an http(s) URL.
// Locations ending in .gz are decompressed.
type Source struct {
	client *http.Client
}

// NewSource creates a source with an HTTP client for remote files
func NewSource() *Source {
	return &Source{
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Load reads and validates every product at location
func (s *Source) Load(ctx context.Context, location string) ([]models.NewProduct, error) {
	body, err := s.open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(strings.ToLower(stripQuery(location)), ".gz") {
		gzReader, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	return ParseCSV(r)
}

func (s *Source) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("failed to open seed file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download seed file: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// ParseCSV decodes products from CSV with a header row of
// name,description,price,image_url,category
func ParseCSV(r io.Reader) ([]models.NewProduct, error) {
	var rows []csvProduct
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	products := make([]models.NewProduct, 0, len(rows))
	for i, row := range rows {
		price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q: %w", i+1, row.Price, err)
		}

		p := models.NewProduct{
			Name:        strings.TrimSpace(row.Name),
			Description: strings.TrimSpace(row.Description),
			Price:       price,
			ImageURL:    strings.TrimSpace(row.ImageURL),
			Category:    strings.TrimSpace(row.Category),
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		products = append(products, p)
	}

	return products, nil
}

func stripQuery(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		return location[:i]
	}
	return location
}
