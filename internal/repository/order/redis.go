package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

type Redis struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedis stores each history as one JSON string value at prefix+key.
func NewRedis(client *redis.Client, prefix string, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: client, prefix: prefix, logger: logger}
}

func (r *Redis) Load(ctx context.Context, key string) ([]domain.Order, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.logger.Error("order repo: redis load", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decode order history %s: %w", key, err)
	}
	return orders, nil
}

func (r *Redis) Save(ctx context.Context, key string, orders []domain.Order) error {
	raw, err := encode(orders)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, 0).Err(); err != nil {
		r.logger.Error("order repo: redis save", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
