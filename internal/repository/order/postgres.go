package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{pool: pool, logger: logger}
}

func (r *Postgres) Load(ctx context.Context, key string) ([]domain.Order, error) {
	const q = `SELECT orders FROM order_histories WHERE storage_key = $1`
	var raw []byte
	err := r.pool.QueryRow(ctx, q, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("order repo: load", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decode order history %s: %w", key, err)
	}
	r.logger.Debug("order repo: loaded", zap.String("key", key), zap.Int("count", len(orders)))
	return orders, nil
}

func (r *Postgres) Save(ctx context.Context, key string, orders []domain.Order) error {
	const q = `
INSERT INTO order_histories (storage_key, orders, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (storage_key) DO UPDATE SET
    orders = EXCLUDED.orders,
    updated_at = EXCLUDED.updated_at
`
	raw, err := encode(orders)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, q, key, string(raw)); err != nil {
		r.logger.Error("order repo: save", zap.String("key", key), zap.Error(err))
		return err
	}
	r.logger.Debug("order repo: saved", zap.String("key", key), zap.Int("count", len(orders)))
	return nil
}

func encode(orders []domain.Order) ([]byte, error) {
	if orders == nil {
		orders = []domain.Order{}
	}
	raw, err := json.Marshal(orders)
	if err != nil {
		return nil, fmt.Errorf("encode order history: %w", err)
	}
	return raw, nil
}
