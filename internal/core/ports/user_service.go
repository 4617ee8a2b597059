package ports

import (
	"context"

	"github.com/gvn/lending-platform/internal/core/domain"
)

// CreateUserInput carries the data for an admin-created user. Roles are
// role names resolved against the role store.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Active   bool
	Roles    []string
}

// UpdateUserInput applies a partial update: nil fields keep their stored
// value. A nil Roles slice keeps the current role assignments; a non-nil
// slice replaces them.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Active   *bool
	Roles    []string
}

// UserService exposes cached CRUD over users. GetByUsername serves the auth
// middleware's subject resolution and goes through the same cache group.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
