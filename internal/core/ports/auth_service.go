package ports

import (
	"context"

	"github.com/woodmart/storefront/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, sess *domain.Session, username, password string) (*domain.User, error)
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Logout(ctx context.Context, sess *domain.Session) error
}
