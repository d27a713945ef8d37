package coupon

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Coupon, error) {
	const q = `SELECT code, amount, min_subtotal, active, created_at FROM coupons ORDER BY code`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("coupon repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := rows.Scan(&c.Code, &c.Amount, &c.MinSubtotal, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Coupon) error {
	const q = `
INSERT INTO coupons (code, amount, min_subtotal, active)
VALUES ($1, $2, $3, $4)
ON CONFLICT (code) DO UPDATE SET
    amount = EXCLUDED.amount,
    min_subtotal = EXCLUDED.min_subtotal,
    active = EXCLUDED.active
`
	code := strings.ToUpper(strings.TrimSpace(c.Code))
	if _, err := r.pool.Exec(ctx, q, code, c.Amount, c.MinSubtotal, c.Active); err != nil {
		r.logger.Error("coupon repo: upsert", zap.String("code", code), zap.Error(err))
		return err
	}
	r.logger.Debug("coupon repo: upserted", zap.String("code", code))
	return nil
}
