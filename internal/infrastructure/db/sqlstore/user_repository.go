package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/woodmart/storefront/internal/core/domain"
)

const userColumns = `id, username, password, role, created_at`

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewUserRepository(db *sql.DB, dialect Dialect) *UserRepository {
	return &UserRepository{db: db, dialect: dialect}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		role      string
		createdAt timestamp
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &role, &createdAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	u.Role = parsed
	u.CreatedAt = createdAt.Time
	return &u, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, rebind(r.dialect, query), args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// FindByCredentials compares the stored plaintext password verbatim.
func (r *UserRepository) FindByCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ? AND password = ?`, username, password)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// Create relies on the UNIQUE constraint on username; a violation is
// reported as domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	insertCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(insertCtx,
		rebind(r.dialect, `INSERT INTO users (username, password, role) VALUES (?, ?, ?) RETURNING id`),
		username, password, string(role),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}
