package seed

import (
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// SampleProducts returns the default seed records
func SampleProducts() []models.NewProduct {
	return []models.NewProduct{
		{
			Name:        "Apple iPhone 15 Pro",
			Description: "Latest iPhone with advanced camera and fast processor.",
			Price:       decimal.RequireFromString("1199.99"),
			ImageURL:    "https://images.same-assets.com/ebay-iphone15.jpg",
			Category:    "electronics",
		},
		{
			Name:        "Vintage Leather Jacket",
			Description: "Classic brown leather jacket for men.",
			Price:       decimal.RequireFromString("89.99"),
			ImageURL:    "https://images.same-assets.com/ebay-leather-jacket.jpg",
			Category:    "clothing",
		},
		{
			Name:        "Sony WH-1000XM5 Headphones",
			Description: "Noise-cancelling wireless headphones.",
			Price:       decimal.RequireFromString("349.99"),
			ImageURL:    "https://images.same-assets.com/ebay-sony-headphones.jpg",
			Category:    "electronics",
		},
		{
			Name:        "KitchenAid Mixer",
			Description: "Powerful stand mixer for baking.",
			Price:       decimal.RequireFromString("299.99"),
			ImageURL:    "https://images.same-assets.com/ebay-mixer.jpg",
			Category:    "home",
		},
		{
			Name:        "Nike Air Max 270",
			Description: "Comfortable and stylish running shoes.",
			Price:       decimal.RequireFromString("129.50"),
			ImageURL:    "https://images.same-assets.com/ebay-nike-airmax.jpg",
			Category:    "footwear",
		},
		{
			Name:        "LEGO Star Wars Millennium Falcon",
			Description: "1,300-piece set for Star Wars lovers.",
			Price:       decimal.RequireFromString("159.99"),
			ImageURL:    "https://images.same-assets.com/ebay-lego-falcon.jpg",
			Category:    "toys",
		},
		{
			Name:        "Samsung Galaxy Tab S9",
			Description: "High-resolution tablet for work and play.",
			Price:       decimal.RequireFromString("599.00"),
			ImageURL:    "https://images.same-assets.com/ebay-galaxy-tab.jpg",
			Category:    "electronics",
		},
		{
			Name:        "Hydro Flask Water Bottle",
			Description: "Keeps cold drinks cold for 24 hours.",
			Price:       decimal.RequireFromString("35.00"),
			ImageURL:    "https://images.same-assets.com/ebay-hydroflask.jpg",
			Category:    "sports",
		},
		{
			Name:        "Casio G-Shock Watch",
			Description: "Tough, reliable digital watch.",
			Price:       decimal.RequireFromString("99.95"),
			ImageURL:    "https://images.same-assets.com/ebay-gshock.jpg",
			Category:    "accessories",
		},
		{
			Name:        "Instant Pot Duo",
			Description: "The best-selling 7-in-1 multi-cooker.",
			Price:       decimal.RequireFromString("89.99"),
			ImageURL:    "https://images.same-assets.com/ebay-instantpot.jpg",
			Category:    "home",
		},
	}
}
