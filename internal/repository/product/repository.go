package product

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the Postgres catalog cache. Only active products are listed.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	Deactivate(ctx context.Context, slug string) error
}
