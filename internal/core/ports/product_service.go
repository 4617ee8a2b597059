package ports

import (
	"context"

	"github.com/gvn/lending-platform/internal/core/domain"
)

// CreateProductInput carries the data for a new lending product.
type CreateProductInput struct {
	Name         string
	Tenor        int
	InterestRate float64
}

// UpdateProductInput applies a partial update: nil fields keep their
// stored value.
type UpdateProductInput struct {
	Name         *string
	Tenor        *int
	InterestRate *float64
}

// ProductService exposes cached CRUD over lending products.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
