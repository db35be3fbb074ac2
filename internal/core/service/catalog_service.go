package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/woodmart/storefront/internal/core/domain"
	"github.com/woodmart/storefront/internal/core/ports"
)

type catalogService struct {
	products ports.ProductRepository
	log      zerolog.Logger
}

// NewCatalogService returns a CatalogService backed by repo.
func NewCatalogService(products ports.ProductRepository, log zerolog.Logger) ports.CatalogService {
	return &catalogService{products: products, log: log}
}

func (s *catalogService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *catalogService) Get(ctx context.Context, who domain.Identity, id int64) (*domain.Product, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *catalogService) Create(ctx context.Context, who domain.Identity, in domain.ProductInput) (*domain.Product, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p, err := s.products.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info().Int64("product_id", p.ID).Str("admin", who.Username).Msg("product created")
	return p, nil
}

func (s *catalogService) Update(ctx context.Context, who domain.Identity, id int64, in domain.ProductInput) error {
	if err := who.RequireAdmin(); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}

	if err := s.products.Update(ctx, id, in); err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}

	s.log.Info().Int64("product_id", id).Str("admin", who.Username).Msg("product updated")
	return nil
}

func (s *catalogService) Delete(ctx context.Context, who domain.Identity, id int64) error {
	if err := who.RequireAdmin(); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	s.log.Info().Int64("product_id", id).Str("admin", who.Username).Msg("product deleted")
	return nil
}
