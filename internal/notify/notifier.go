// Package notify holds the transient user-facing message ("Added to cart") with a
// single auto-dismiss timer. The most recent message wins.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 2 * time.Second

// Message is a shown notification. An empty Text signals dismissal to subscribers.
type Message struct {
	Seq  uint64    `json:"seq"`
	Text string    `json:"message"`
	At   time.Time `json:"at"`
}

// Notifier is safe for concurrent use.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	seq     uint64
	current *Message
	timer   *time.Timer
	subs    map[int]chan Message
	nextSub int
	closed  bool
}

func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl, subs: make(map[int]chan Message)}
}

// Show replaces the current message and re-arms the dismiss timer. A pending dismissal
// of an older message is cancelled.
func (n *Notifier) Show(text string) Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return Message{}
	}
	n.seq++
	msg := Message{Seq: n.seq, Text: text, At: time.Now().UTC()}
	n.current = &msg
	if n.timer != nil {
		n.timer.Stop()
	}
	seq := n.seq
	n.timer = time.AfterFunc(n.ttl, func() { n.dismiss(seq) })
	n.broadcast(msg)
	return msg
}

// Current returns the visible message, if any.
func (n *Notifier) Current() (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Message{}, false
	}
	return *n.current, true
}

// Subscribe returns a channel receiving shows and dismissals. Delivery never blocks the
// writer; a full subscriber misses messages. cancel must be called to release it.
func (n *Notifier) Subscribe() (<-chan Message, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan Message, 8)
	if n.closed {
		close(ch)
		return ch, func() {}
	}
	id := n.nextSub
	n.nextSub++
	n.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if c, ok := n.subs[id]; ok {
				delete(n.subs, id)
				close(c)
			}
		})
	}
}

// Close stops the timer and closes all subscriber channels.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	if n.timer != nil {
		n.timer.Stop()
	}
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}

func (n *Notifier) dismiss(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || n.current == nil || n.current.Seq != seq {
		return
	}
	n.current = nil
	n.broadcast(Message{Seq: seq, At: time.Now().UTC()})
}

func (n *Notifier) broadcast(msg Message) {
	for _, ch := range n.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}
