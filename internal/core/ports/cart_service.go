package ports

import (
	"context"

	"github.com/woodmart/storefront/internal/core/domain"
)

// CartService mutates the cart held by a session. Callers persist the
// session afterwards.
type CartService interface {
	Add(ctx context.Context, sess *domain.Session, productID string, quantity int) (int, error)
	Update(ctx context.Context, sess *domain.Session, productID string, quantity int) error
	Remove(ctx context.Context, sess *domain.Session, productID string) error
	Clear(ctx context.Context, sess *domain.Session) error
	Summarize(ctx context.Context, sess *domain.Session) domain.CartSummary
}
