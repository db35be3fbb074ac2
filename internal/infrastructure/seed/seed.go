// Package seed loads the bootstrap accounts and catalog.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/woodmart/storefront/internal/core/domain"
	"github.com/woodmart/storefront/internal/core/ports"
)

type account struct {
	username string
	password string
	role     domain.Role
}

var accounts = []account{
	{"admin", "admin123", domain.RoleAdmin},
	{"user", "111", domain.RoleUser},
}

var catalog = []domain.ProductInput{
	{Name: "Доска строганая 20x96x1000 мм хвоя сорт оптима ФГИС ЛК", Price: decimal.NewFromInt(103), ImageURL: "assets/Доска1.webp"},
	{Name: "Планкен 20x146x2000 мм хвоя сорт Оптима прямой с фаской угла", Price: decimal.NewFromInt(354), ImageURL: "assets/Доска 2.webp"},
	{Name: "Доска строганая 40x146x3000 мм хвоя сорт Оптима ФГИС ЛК", Price: decimal.NewFromInt(887), ImageURL: "assets/Доска 3.webp"},
	{Name: "Доска строганая 20x146x2000 мм хвоя сорт Оптима ФГИС ЛК", Price: decimal.NewFromInt(354), ImageURL: "assets/Доска 4.webp"},
	{Name: "Планкен Raggy wood хвойные деревья сорт АВ 2000x95x20мм 6шт", Price: decimal.NewFromInt(4550), ImageURL: "assets/Доска 5.webp"},
	{Name: "Доска Леспроф строганая 2400x95x20мм сосна сорт AB 6шт", Price: decimal.NewFromInt(2400), ImageURL: "assets/Доска 6.webp"},
	{Name: "Доска строганная Дом дерева 3000x90x20мм ель сорт AB 4шт", Price: decimal.NewFromInt(1608), ImageURL: "assets/Доска 7.webp"},
	{Name: "Доска строганная Дом дерева 3000x90x20мм ель сорт AB 4шт", Price: decimal.NewFromInt(1815), ImageURL: "assets/Доска 8.webp"},
	{Name: "Каска", Price: decimal.NewFromInt(12345), ImageURL: "/assets/logo_banner.png"},
}

// Run creates the bootstrap accounts, skipping those that already exist,
// and fills the catalog only when it is empty. Running it twice is a no-op.
func Run(ctx context.Context, users ports.UserRepository, products ports.ProductRepository, log zerolog.Logger) error {
	for _, a := range accounts {
		_, err := users.Create(ctx, a.username, a.password, a.role)
		switch {
		case err == nil:
			log.Info().Str("username", a.username).Str("role", string(a.role)).Msg("seeded account")
		case errors.Is(err, domain.ErrUserExists):
		default:
			return fmt.Errorf("seed account %s: %w", a.username, err)
		}
	}

	existing, err := products.List(ctx)
	if err != nil {
		return fmt.Errorf("seed list products: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, in := range catalog {
		if _, err := products.Create(ctx, in); err != nil {
			return fmt.Errorf("seed product %q: %w", in.Name, err)
		}
	}
	log.Info().Int("count", len(catalog)).Msg("seeded catalog")
	return nil
}
