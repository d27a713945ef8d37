package coupon

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Coupon, error)
	Upsert(ctx context.Context, c domain.Coupon) error
}
