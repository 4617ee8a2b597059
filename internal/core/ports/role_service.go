package ports

import (
	"context"

	"github.com/gvn/lending-platform/internal/core/domain"
)

// UpdateRoleInput applies a partial update to a role.
type UpdateRoleInput struct {
	Name *string
}

// RoleService exposes cached CRUD over roles.
type RoleService interface {
	Create(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	Update(ctx context.Context, id int64, input UpdateRoleInput) (*domain.Role, error)
	Delete(ctx context.Context, id int64) error
}
