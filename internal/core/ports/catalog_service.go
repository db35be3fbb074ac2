package ports

import (
	"context"

	"github.com/woodmart/storefront/internal/core/domain"
)

// CatalogService exposes products to shoppers and to administrators.
// Methods taking an Identity require an administrator.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, who domain.Identity, id int64) (*domain.Product, error)
	Create(ctx context.Context, who domain.Identity, in domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, who domain.Identity, id int64, in domain.ProductInput) error
	Delete(ctx context.Context, who domain.Identity, id int64) error
}
