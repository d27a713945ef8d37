package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow_AutoDismisses(t *testing.T) {
	n := New(20 * time.Millisecond)
	defer n.Close()

	n.Show("Added to cart")
	msg, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Added to cart", msg.Text)

	assert.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestShow_MostRecentWins(t *testing.T) {
	n := New(80 * time.Millisecond)
	defer n.Close()

	n.Show("first")
	time.Sleep(50 * time.Millisecond)
	n.Show("second")
	time.Sleep(50 * time.Millisecond)

	msg, ok := n.Current()
	require.True(t, ok, "second message dismissed by the first message's timer")
	assert.Equal(t, "second", msg.Text)
}

func TestSubscribe_ReceivesShowAndDismiss(t *testing.T) {
	n := New(10 * time.Millisecond)
	defer n.Close()

	ch, cancel := n.Subscribe()
	defer cancel()

	n.Show("Added to wishlist")

	select {
	case msg := <-ch:
		assert.Equal(t, "Added to wishlist", msg.Text)
	case <-time.After(time.Second):
		t.Fatal("no show delivered")
	}
	select {
	case msg := <-ch:
		assert.Empty(t, msg.Text)
	case <-time.After(time.Second):
		t.Fatal("no dismissal delivered")
	}
}

func TestClose_ClosesSubscribers(t *testing.T) {
	n := New(time.Second)
	ch, cancel := n.Subscribe()
	n.Close()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, Message{}, n.Show("ignored"))
}
