package ports

import (
	"context"

	"github.com/woodmart/storefront/internal/core/domain"
)

// SessionStore keeps sessions by id. Expiry is the store's concern.
type SessionStore interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}
