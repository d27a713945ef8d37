// Package seed loads demo coupons and catalog products for local runs.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

type couponWriter interface {
	Upsert(ctx context.Context, c domain.Coupon) error
}

type productWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// Coupons are the codes the storefront advertises on the cart page.
func Coupons() []domain.Coupon {
	return []domain.Coupon{
		{Code: "GETCASH10", Amount: 100, MinSubtotal: 999, Active: true},
	}
}

// Products is a small demo catalog spanning the filter dimensions.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Slug: "boxy-fit-tee", Title: "Boxy Fit Tee", Price: 799, OriginalPrice: 1299,
			Images: []string{"/images/boxy-fit-tee.jpg"}, Categories: []string{"Tees"},
			Badge: domain.BadgeNew, Sizes: []string{"S", "M", "L"}, Fits: []string{"Boxy"},
			Colors: []string{"Black", "White"}, InStock: true,
		},
		{
			ID: "2", Slug: "oxford-shirt", Title: "Oxford Shirt", Price: 1499,
			Images: []string{"/images/oxford-shirt.jpg"}, Categories: []string{"Shirts"},
			Sizes: []string{"M", "L", "XL"}, Fits: []string{"Regular"},
			Colors: []string{"Blue"}, InStock: true,
		},
		{
			ID: "3", Slug: "relaxed-cargo", Title: "Relaxed Cargo Pants", Price: 1899, OriginalPrice: 2499,
			Images: []string{"/images/relaxed-cargo.jpg"}, Categories: []string{"Bottoms"},
			Badge: domain.BadgeSale, Sizes: []string{"30", "32", "34"}, Fits: []string{"Relaxed"},
			Colors: []string{"Olive"}, InStock: true,
		},
	}
}

// Apply upserts the demo data. Re-running it is safe.
func Apply(ctx context.Context, coupons couponWriter, products productWriter, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, c := range Coupons() {
		if err := coupons.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert coupon %s: %w", c.Code, err)
		}
		logger.Info("coupon seeded", zap.String("code", c.Code))
	}
	for _, p := range Products() {
		if _, err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
		logger.Info("product seeded", zap.String("slug", p.Slug))
	}
	return nil
}
