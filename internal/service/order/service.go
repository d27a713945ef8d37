// Package order keeps per-user order history. Histories are loaded once per storage key,
// mutated in memory and written back whole after each placement.
package order

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

// DefaultKey is the storage key used when no user is attached.
const DefaultKey = "orders"

// Store persists a whole order list under a key. Save replaces the list.
type Store interface {
	Load(ctx context.Context, key string) ([]domain.Order, error)
	Save(ctx context.Context, key string, orders []domain.Order) error
}

// KeyFor returns the storage key for a user id.
func KeyFor(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + userID
}

// Recorder is the in-memory history of one storage key. Safe for concurrent use.
type Recorder struct {
	mu     sync.RWMutex
	saveMu sync.Mutex
	key    string
	store  Store
	ids    *IDGenerator
	logger *zap.Logger
	orders []domain.Order
}

// NewRecorder loads the history for key. A load failure is logged and starts an empty
// history.
func NewRecorder(ctx context.Context, store Store, key string, ids *IDGenerator, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	r := &Recorder{key: key, store: store, ids: ids, logger: logger}
	if store == nil {
		return r
	}
	loaded, err := store.Load(ctx, key)
	if err != nil {
		logger.Warn("order history load failed", zap.String("key", key), zap.Error(err))
		return r
	}
	r.orders = loaded
	logger.Debug("order history loaded", zap.String("key", key), zap.Int("count", len(loaded)))
	return r
}

// Place prepends o and persists the full list. Persistence errors are logged only.
// Saves run in placement order, so the stored list is never older than a previous save.
func (r *Recorder) Place(ctx context.Context, o domain.Order) domain.Order {
	r.mu.Lock()
	if o.ID == "" {
		o.ID = r.ids.Next()
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusPlaced
	}
	stored := o.Clone()
	next := make([]domain.Order, 0, len(r.orders)+1)
	next = append(next, stored)
	next = append(next, r.orders...)
	r.orders = next
	snapshot := cloneAll(next)
	r.saveMu.Lock()
	r.mu.Unlock()

	r.persist(ctx, snapshot)
	r.saveMu.Unlock()
	r.logger.Info("order placed", zap.String("key", r.key), zap.String("order_id", stored.ID), zap.Int64("total", stored.Total))
	return stored.Clone()
}

// Get finds an order by id.
func (r *Recorder) Get(id string) (domain.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return domain.Order{}, false
}

// List returns the history, most recent first.
func (r *Recorder) List() []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.orders)
}

func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func (r *Recorder) Key() string { return r.key }

func (r *Recorder) persist(ctx context.Context, orders []domain.Order) {
	if r.store == nil {
		return
	}
	if err := r.store.Save(ctx, r.key, orders); err != nil {
		r.logger.Error("order history save failed", zap.String("key", r.key), zap.Int("count", len(orders)), zap.Error(err))
	}
}

func cloneAll(in []domain.Order) []domain.Order {
	out := make([]domain.Order, len(in))
	for i, o := range in {
		out[i] = o.Clone()
	}
	return out
}
