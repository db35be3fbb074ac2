package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/woodmart/storefront/internal/core/domain"
	"github.com/woodmart/storefront/internal/core/ports"
)

type cartService struct {
	products ports.ProductRepository
	log      zerolog.Logger
}

// NewCartService returns a CartService resolving products through repo.
func NewCartService(products ports.ProductRepository, log zerolog.Logger) ports.CartService {
	return &cartService{products: products, log: log}
}

// Add puts quantity units of productID into the cart and returns the number
// of distinct lines. An existing line keeps its original snapshot.
func (s *cartService) Add(ctx context.Context, sess *domain.Session, productID string, quantity int) (int, error) {
	if err := domain.IdentityFromSession(sess).RequireUser(); err != nil {
		return 0, err
	}
	if quantity < 1 {
		return 0, domain.NewValidationError("quantity", "must be at least 1")
	}

	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		// Non-numeric ids can never match a catalog row.
		return 0, domain.ErrProductNotFound
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("add to cart: %w", err)
	}

	if err := sess.Cart.Add(*product, quantity); err != nil {
		return 0, err
	}

	s.log.Debug().
		Str("session", sess.ID).
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("cart line added")

	return sess.Cart.Len(), nil
}

// Update replaces the quantity of a line; quantity <= 0 removes it.
func (s *cartService) Update(_ context.Context, sess *domain.Session, productID string, quantity int) error {
	if err := domain.IdentityFromSession(sess).RequireUser(); err != nil {
		return err
	}
	return sess.Cart.SetQuantity(productID, quantity)
}

func (s *cartService) Remove(_ context.Context, sess *domain.Session, productID string) error {
	if err := domain.IdentityFromSession(sess).RequireUser(); err != nil {
		return err
	}
	return sess.Cart.Remove(productID)
}

func (s *cartService) Clear(_ context.Context, sess *domain.Session) error {
	if err := domain.IdentityFromSession(sess).RequireUser(); err != nil {
		return err
	}
	sess.Cart.Clear()
	return nil
}

// Summarize is readable by anonymous callers.
func (s *cartService) Summarize(_ context.Context, sess *domain.Session) domain.CartSummary {
	return sess.Cart.Summarize(domain.IdentityFromSession(sess).Authenticated())
}
