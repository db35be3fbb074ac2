package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry.
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	CreatedAt time.Time
}

// MaxPrice is the first price the catalog cannot store.
var MaxPrice = decimal.New(1, 10)

// ProductInput carries the admin-editable fields of a product.
type ProductInput struct {
	Name     string
	Price    decimal.Decimal
	ImageURL string
}

// Validate checks the fields an admin may submit.
func (in ProductInput) Validate() error {
	if in.Name == "" {
		return NewValidationError("name", "is required")
	}
	if in.ImageURL == "" {
		return NewValidationError("image_url", "is required")
	}
	if in.Price.IsNegative() {
		return NewValidationError("price", "must not be negative")
	}
	if in.Price.GreaterThanOrEqual(MaxPrice) {
		return NewValidationError("price", "must be less than "+MaxPrice.String())
	}
	if !in.Price.Equal(in.Price.Round(2)) {
		return NewValidationError("price", "must have at most two decimal places")
	}
	return nil
}
