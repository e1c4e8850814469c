// Package product holds the beverage catalogue: categories, products, and
// per-tier pricing. Plain CRUD; no design weight beyond the data model.
package product

import (
	"context"
	"fmt"
	"time"

	"tally/internal/shared/biztime"
)

// PricingTier selects which price applies to a sale.
type PricingTier string

const (
	TierNormal   PricingTier = "normal"
	TierParty    PricingTier = "party"
	TierBigEvent PricingTier = "big_event"
)

func (t PricingTier) IsValid() bool {
	return t == TierNormal || t == TierParty || t == TierBigEvent
}

// Category groups products.
type Category struct {
	ID   uint
	Name string
}

// Beverage is a product of type "beverage" with its size and tier prices.
type Beverage struct {
	ProductID   uint
	Name        string
	CategoryID  uint
	Size        float64
	Pricing     map[PricingTier]float64
	PicturePath *string
	CreatedAt   time.Time
}

// NewBeverage validates a beverage before persistence. Every tier must be
// priced so a sale can never hit a missing price row.
func NewBeverage(name string, categoryID uint, size float64, pricing map[PricingTier]float64) (*Beverage, error) {
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if categoryID == 0 {
		return nil, fmt.Errorf("category id is required")
	}
	if size <= 0 {
		return nil, fmt.Errorf("beverage size must be positive")
	}
	for _, tier := range []PricingTier{TierNormal, TierParty, TierBigEvent} {
		price, ok := pricing[tier]
		if !ok {
			return nil, fmt.Errorf("missing price for tier %s", tier)
		}
		if price < 0 {
			return nil, fmt.Errorf("price for tier %s cannot be negative", tier)
		}
	}

	return &Beverage{
		Name:       name,
		CategoryID: categoryID,
		Size:       size,
		Pricing:    pricing,
		CreatedAt:  biztime.NowUTC(),
	}, nil
}

// Repository is the catalogue store.
type Repository interface {
	// CreateCategory persists a category; conflict if the name exists.
	CreateCategory(ctx context.Context, name string) (*Category, error)

	// ListCategories returns all categories.
	ListCategories(ctx context.Context) ([]*Category, error)

	// CreateBeverage persists the product, beverage, and pricing rows in
	// one transaction and returns the assigned product id.
	CreateBeverage(ctx context.Context, beverage *Beverage) error

	// ListBeverages returns all beverages with their pricing maps.
	ListBeverages(ctx context.Context) ([]*Beverage, error)

	// GetBeverage returns one beverage by product id.
	GetBeverage(ctx context.Context, productID uint) (*Beverage, error)

	// UpdatePricing replaces the price of one tier of a product.
	UpdatePricing(ctx context.Context, productID uint, tier PricingTier, price float64) error

	// DeleteProduct removes a product and its dependent rows.
	DeleteProduct(ctx context.Context, productID uint) error
}
