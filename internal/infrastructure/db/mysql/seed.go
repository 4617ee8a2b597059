package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gvn/lending-platform/internal/core/domain"
)

// AdminSeed describes the bootstrap admin account.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// Seed idempotently creates the ADMIN and USER roles, the bootstrap admin
// account (carrying both roles) and a handful of sample products. Existing
// records are left untouched, so running it on every startup is safe.
func Seed(ctx context.Context, db *sql.DB, admin AdminSeed, logger zerolog.Logger) error {
	roles := NewRoleRepository(db)
	users := NewUserRepository(db)
	products := NewProductRepository(db)

	adminRole, err := ensureRole(ctx, roles, domain.RoleAdmin, logger)
	if err != nil {
		return err
	}
	userRole, err := ensureRole(ctx, roles, domain.RoleUser, logger)
	if err != nil {
		return err
	}

	if _, err := users.FindByUsername(ctx, admin.Username); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("seed admin lookup: %w", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed admin hash: %w", err)
		}
		if _, err := users.Create(ctx, &domain.User{
			Username:     admin.Username,
			Email:        admin.Email,
			PasswordHash: string(hash),
			Active:       true,
			Roles:        []domain.Role{*adminRole, *userRole},
		}); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		logger.Info().Str("username", admin.Username).Msg("seeded admin user")
	}

	seedProducts := []domain.Product{
		{Name: "Bronze", Tenor: 12, InterestRate: 5.0},
		{Name: "Silver", Tenor: 24, InterestRate: 7.0},
		{Name: "Gold", Tenor: 36, InterestRate: 9.0},
	}
	existing, err := products.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("seed products lookup: %w", err)
	}
	byName := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		byName[p.Name] = struct{}{}
	}
	for _, p := range seedProducts {
		if _, ok := byName[p.Name]; ok {
			continue
		}
		if _, err := products.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
		logger.Info().Str("name", p.Name).Msg("seeded product")
	}

	return nil
}

func ensureRole(ctx context.Context, repo *RoleRepository, name string, logger zerolog.Logger) (*domain.Role, error) {
	role, err := repo.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, fmt.Errorf("seed role lookup %s: %w", name, err)
	}

	created, err := repo.Create(ctx, &domain.Role{Name: name})
	if err != nil {
		return nil, fmt.Errorf("seed role %s: %w", name, err)
	}
	logger.Info().Str("name", name).Msg("seeded role")
	return created, nil
}
