// Package session holds per-visitor shopping state: cart, wishlist, applied search and
// the transient notification. Every mutation goes through one mutex.
package session

import (
	"strings"
	"sync"
	"time"

	"storefront/internal/debounce"
	"storefront/internal/domain"
	"storefront/internal/ledger"
	"storefront/internal/notify"
	"storefront/internal/wishlist"
)

// Notification texts.
const (
	MsgAddedToCart         = "Added to cart"
	MsgRemovedFromCart     = "Removed from cart"
	MsgCartCleared         = "Cart cleared"
	MsgAddedToWishlist     = "Added to wishlist"
	MsgRemovedFromWishlist = "Removed from wishlist"
	MsgOrderPlaced         = "Order placed successfully"
)

// Options tunes the timers of a Shop.
type Options struct {
	ToastTTL    time.Duration
	SearchDelay time.Duration
}

// DefaultOptions matches the storefront UI: 2s toasts and a 300ms search debounce.
func DefaultOptions() Options {
	return Options{ToastTTL: notify.DefaultTTL, SearchDelay: 300 * time.Millisecond}
}

// CartView is a consistent snapshot of the cart.
type CartView struct {
	Lines []domain.CartLine `json:"lines"`
	Count int               `json:"count"`
}

type Shop struct {
	id       string
	notifier *notify.Notifier
	search   *debounce.Debouncer[string]

	mu      sync.Mutex
	userID  string
	cart    *ledger.Ledger
	wish    *wishlist.Set
	applied string
	typed   string
}

func NewShop(id string, opts Options) *Shop {
	if opts.SearchDelay <= 0 {
		opts.SearchDelay = DefaultOptions().SearchDelay
	}
	s := &Shop{
		id:       id,
		notifier: notify.New(opts.ToastTTL),
		cart:     ledger.New(),
		wish:     wishlist.New(),
	}
	s.search = debounce.New(opts.SearchDelay, s.applySearch)
	return s
}

func (s *Shop) ID() string { return s.id }

func (s *Shop) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// AttachUser binds the session to a signed-in user. A session is bound once: it reports
// false when it already belongs to someone else. An empty id is ignored.
func (s *Shop) AttachUser(userID string) bool {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != "" && s.userID != userID {
		return false
	}
	s.userID = userID
	return true
}

func (s *Shop) AddToCart(p domain.Product, variant string) domain.CartLine {
	s.mu.Lock()
	line := s.cart.Add(p, variant)
	s.mu.Unlock()
	s.notifier.Show(MsgAddedToCart)
	return line
}

func (s *Shop) Increase(productID, variant string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Increase(productID, variant)
}

func (s *Shop) Decrease(productID, variant string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Decrease(productID, variant)
}

func (s *Shop) Remove(productID, variant string) bool {
	s.mu.Lock()
	removed := s.cart.Remove(productID, variant)
	s.mu.Unlock()
	if removed {
		s.notifier.Show(MsgRemovedFromCart)
	}
	return removed
}

func (s *Shop) ClearCart() {
	s.mu.Lock()
	s.cart.Clear()
	s.mu.Unlock()
	s.notifier.Show(MsgCartCleared)
}

func (s *Shop) Qty(productID, variant string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Qty(productID, variant)
}

func (s *Shop) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartView{Lines: s.cart.Lines(), Count: s.cart.Count()}
}

// PlaceOrder runs place with the current lines while holding the session lock. When place
// succeeds the cart is cleared and the success notification shown; on error the cart is
// left untouched.
func (s *Shop) PlaceOrder(place func(lines []domain.CartLine) (domain.Order, error)) (domain.Order, error) {
	s.mu.Lock()
	lines := s.cart.Lines()
	if len(lines) == 0 {
		s.mu.Unlock()
		return domain.Order{}, domain.ErrEmptyCart
	}
	o, err := place(lines)
	if err != nil {
		s.mu.Unlock()
		return domain.Order{}, err
	}
	s.cart.Clear()
	s.mu.Unlock()
	s.notifier.Show(MsgOrderPlaced)
	return o, nil
}

// ToggleWishlist reports whether the product is now in the wishlist.
func (s *Shop) ToggleWishlist(p domain.Product) bool {
	s.mu.Lock()
	added := s.wish.Toggle(p)
	s.mu.Unlock()
	if added {
		s.notifier.Show(MsgAddedToWishlist)
	} else {
		s.notifier.Show(MsgRemovedFromWishlist)
	}
	return added
}

func (s *Shop) InWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wish.Contains(productID)
}

func (s *Shop) Wishlist() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wish.Entries()
}

// SetSearch records typed input. It becomes the applied search once input has been
// quiet for the debounce delay.
func (s *Shop) SetSearch(q string) {
	s.mu.Lock()
	s.typed = q
	s.mu.Unlock()
	s.search.Trigger(q)
}

// FlushSearch applies pending input immediately.
func (s *Shop) FlushSearch() { s.search.Flush() }

// Search returns the applied search text.
func (s *Shop) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

// PendingSearch returns the most recently typed text, applied or not.
func (s *Shop) PendingSearch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typed
}

// Notify shows an arbitrary message.
func (s *Shop) Notify(msg string) notify.Message { return s.notifier.Show(msg) }

func (s *Shop) Notification() (notify.Message, bool) { return s.notifier.Current() }

func (s *Shop) Subscribe() (<-chan notify.Message, func()) { return s.notifier.Subscribe() }

// Close stops the debounce and notification timers.
func (s *Shop) Close() {
	s.search.Stop()
	s.notifier.Close()
}

func (s *Shop) applySearch(q string) {
	s.mu.Lock()
	s.applied = strings.TrimSpace(q)
	s.mu.Unlock()
}
