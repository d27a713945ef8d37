package order

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Registry hands out one Recorder per storage key so every session of a user shares
// the same history.
type Registry struct {
	mu        sync.Mutex
	store     Store
	ids       *IDGenerator
	logger    *zap.Logger
	recorders map[string]*Recorder
}

func NewRegistry(store Store, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		store:     store,
		ids:       NewIDGenerator(nil),
		logger:    logger,
		recorders: make(map[string]*Recorder),
	}
}

// For returns the recorder for userID, loading its history on first use.
func (r *Registry) For(ctx context.Context, userID string) *Recorder {
	key := KeyFor(userID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.recorders[key]; ok {
		return rec
	}
	rec := NewRecorder(ctx, r.store, key, r.ids, r.logger)
	r.recorders[key] = rec
	return rec
}
