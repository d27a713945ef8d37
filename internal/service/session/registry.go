package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

type entry struct {
	shop      *Shop
	expiresAt time.Time
}

// Registry issues session ids and keeps their shops until they expire. Each lookup
// extends the expiry.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	opts     Options
	now      func() time.Time
	logger   *zap.Logger
}

func NewRegistry(ttl time.Duration, opts Options, logger *zap.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]entry),
		ttl:      ttl,
		opts:     opts,
		now:      time.Now,
		logger:   logger,
	}
}

// Create starts a new session, optionally bound to a user.
func (r *Registry) Create(userID string) *Shop {
	id := uuid.NewString()
	shop := NewShop(id, r.opts)
	shop.AttachUser(userID)

	r.mu.Lock()
	r.sessions[id] = entry{shop: shop, expiresAt: r.now().Add(r.ttl)}
	count := len(r.sessions)
	r.mu.Unlock()

	r.logger.Debug("session created", zap.String("session_id", id), zap.Int("active", count))
	return shop
}

// Get returns a live session. Expired sessions are closed and dropped.
func (r *Registry) Get(id string) (*Shop, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if now.After(e.expiresAt) {
		delete(r.sessions, id)
		e.shop.Close()
		return nil, false
	}
	e.expiresAt = now.Add(r.ttl)
	r.sessions[id] = e
	return e.shop, true
}

// Delete closes and forgets a session. It reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		e.shop.Close()
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	now := r.now()
	var expired []*Shop
	r.mu.Lock()
	for id, e := range r.sessions {
		if now.After(e.expiresAt) {
			delete(r.sessions, id)
			expired = append(expired, e.shop)
		}
	}
	r.mu.Unlock()
	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		r.logger.Info("sessions expired", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps on every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close closes every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]entry)
	r.mu.Unlock()
	for _, e := range sessions {
		e.shop.Close()
	}
}
