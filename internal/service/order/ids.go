package order

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator issues ORD-<unix millis> ids. When the clock has not advanced past the
// previous id the millisecond is bumped, so ids are unique and increasing.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return "ORD-" + strconv.FormatInt(ms, 10)
}
