package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestTrigger_OnlyLastValueFires(t *testing.T) {
	rec := &recorder{}
	d := New(30*time.Millisecond, rec.record)

	for _, v := range []string{"t", "te", "tee"} {
		d.Trigger(v)
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"tee"}, rec.snapshot())
}

func TestFlush_RunsPendingNow(t *testing.T) {
	rec := &recorder{}
	d := New(time.Hour, rec.record)
	d.Trigger("polo")
	d.Flush()
	assert.Equal(t, []string{"polo"}, rec.snapshot())

	d.Flush()
	assert.Equal(t, []string{"polo"}, rec.snapshot())
}

func TestStop_CancelsPending(t *testing.T) {
	rec := &recorder{}
	d := New(10*time.Millisecond, rec.record)
	d.Trigger("cap")
	d.Stop()
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}
