package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

var (
	tee  = domain.Product{ID: "1", Title: "Tee", Price: 500, Images: []string{"/tee.jpg"}}
	polo = domain.Product{ID: "5", Title: "Polo", Price: 900}
)

func newTestShop(t *testing.T) *Shop {
	t.Helper()
	s := NewShop("s1", Options{ToastTTL: time.Second, SearchDelay: 20 * time.Millisecond})
	t.Cleanup(s.Close)
	return s
}

func currentText(s *Shop) string {
	msg, _ := s.Notification()
	return msg.Text
}

func TestShop_AddNotifiesAndMerges(t *testing.T) {
	s := newTestShop(t)
	s.AddToCart(tee, "M")
	line := s.AddToCart(tee, "M")

	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, MsgAddedToCart, currentText(s))
	view := s.Cart()
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "/tee.jpg", view.Lines[0].Image)
}

func TestShop_DecreaseToZeroRemoves(t *testing.T) {
	s := newTestShop(t)
	s.AddToCart(tee, "S")
	require.True(t, s.Decrease("1", "S"))
	assert.Equal(t, 0, s.Qty("1", "S"))
	assert.Empty(t, s.Cart().Lines)
	assert.False(t, s.Increase("1", "S"))
}

func TestShop_WishlistToggleNotifiesEachTime(t *testing.T) {
	s := newTestShop(t)
	ch, cancel := s.Subscribe()
	defer cancel()

	assert.True(t, s.ToggleWishlist(polo))
	assert.True(t, s.InWishlist("5"))
	assert.False(t, s.ToggleWishlist(polo))
	assert.False(t, s.InWishlist("5"))

	assert.Equal(t, MsgAddedToWishlist, (<-ch).Text)
	assert.Equal(t, MsgRemovedFromWishlist, (<-ch).Text)
}

func TestShop_PlaceOrderClearsOnSuccessOnly(t *testing.T) {
	s := newTestShop(t)
	s.AddToCart(tee, "M")
	s.AddToCart(polo, "")

	_, err := s.PlaceOrder(func([]domain.CartLine) (domain.Order, error) {
		return domain.Order{}, errors.New("rejected")
	})
	require.Error(t, err)
	assert.Equal(t, 2, s.Cart().Count)

	o, err := s.PlaceOrder(func(lines []domain.CartLine) (domain.Order, error) {
		assert.Len(t, lines, 2)
		return domain.Order{ID: "ORD-1"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", o.ID)
	assert.Equal(t, 0, s.Cart().Count)
	assert.Equal(t, MsgOrderPlaced, currentText(s))
}

func TestShop_PlaceOrderEmptyCart(t *testing.T) {
	s := newTestShop(t)
	called := false
	_, err := s.PlaceOrder(func([]domain.CartLine) (domain.Order, error) {
		called = true
		return domain.Order{}, nil
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.False(t, called)
}

func TestShop_SearchIsDebounced(t *testing.T) {
	s := newTestShop(t)
	s.SetSearch("p")
	s.SetSearch("po")
	s.SetSearch("polo ")

	assert.Equal(t, "", s.Search())
	assert.Equal(t, "polo ", s.PendingSearch())
	assert.Eventually(t, func() bool { return s.Search() == "polo" }, time.Second, 5*time.Millisecond)

	s.SetSearch("tee")
	s.FlushSearch()
	assert.Equal(t, "tee", s.Search())
}

func TestShop_ConcurrentAddsKeepOneLine(t *testing.T) {
	s := newTestShop(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddToCart(tee, "L")
		}()
	}
	wg.Wait()

	view := s.Cart()
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 50, view.Lines[0].Quantity)
}

func TestShop_AttachUser(t *testing.T) {
	s := newTestShop(t)
	assert.False(t, s.AttachUser("  "))
	assert.Empty(t, s.UserID())
	assert.True(t, s.AttachUser("u-42"))
	assert.Equal(t, "u-42", s.UserID())
	assert.True(t, s.AttachUser("u-42"))

	assert.False(t, s.AttachUser("u-7"))
	assert.Equal(t, "u-42", s.UserID())
}
