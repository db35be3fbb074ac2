package ports

import (
	"context"

	"github.com/woodmart/storefront/internal/core/domain"
)

// ProductRepository defines persistence for the product catalog.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in domain.ProductInput) error
	// Delete is idempotent: removing a missing id is not an error.
	Delete(ctx context.Context, id int64) error
}
