package ports

import (
	"context"

	"github.com/woodmart/storefront/internal/core/domain"
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	// FindByCredentials matches username and plaintext password exactly.
	FindByCredentials(ctx context.Context, username, password string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
}
