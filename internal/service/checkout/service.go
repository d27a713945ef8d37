// Package checkout turns a session cart into a recorded order.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/pricing"
	"storefront/internal/service/order"
	"storefront/internal/service/session"
)

type orderBook interface {
	For(ctx context.Context, userID string) *order.Recorder
}

type observer interface {
	ObserveOrder(o domain.Order)
}

type addressBook interface {
	Get(ctx context.Context, userID, id string) (domain.Address, error)
}

type Service struct {
	rules     pricing.Rules
	orders    orderBook
	observer  observer
	addresses addressBook
	now       func() time.Time
	logger    *zap.Logger
}

// New builds the checkout service. obs may be nil.
func New(rules pricing.Rules, orders orderBook, obs observer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{rules: rules, orders: orders, observer: obs, now: time.Now, logger: logger}
}

// WithAddresses lets PlaceInput.AddressID pick from the user's saved addresses.
func (s *Service) WithAddresses(book addressBook) *Service {
	s.addresses = book
	return s
}

// PlaceInput carries the delivery address inline or, with AddressID set, by reference
// to a saved one.
type PlaceInput struct {
	Address       domain.Address `json:"address"`
	AddressID     string         `json:"addressId,omitempty"`
	PaymentMethod string         `json:"paymentMethod"`
	Coupon        string         `json:"coupon,omitempty"`
}

// Quote prices the session's current cart.
func (s *Service) Quote(shop *session.Shop, coupon string) pricing.Totals {
	return pricing.Compute(shop.Cart().Lines, s.rules, coupon)
}

func (s *Service) Rules() pricing.Rules { return s.rules }

// Place records an order for userID from the shop's cart and clears the cart. Nothing is
// recorded unless the user, cart, address and payment method all pass.
func (s *Service) Place(ctx context.Context, userID string, shop *session.Shop, in PlaceInput) (domain.Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Order{}, domain.ErrLoginRequired
	}
	if shop.Cart().Count == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	addr, err := s.resolveAddress(ctx, userID, in)
	if err != nil {
		return domain.Order{}, err
	}
	if err := ValidateAddress(addr); err != nil {
		return domain.Order{}, err
	}
	method, err := ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return domain.Order{}, err
	}

	rec := s.orders.For(ctx, userID)
	placed, err := shop.PlaceOrder(func(lines []domain.CartLine) (domain.Order, error) {
		totals := pricing.Compute(lines, s.rules, in.Coupon)
		o := domain.Order{
			UserID:        userID,
			Items:         snapshotItems(lines),
			Address:       addr,
			Breakdown:     totals.OrderTotals(),
			Total:         totals.GrandTotal,
			PaymentMethod: method,
			Status:        domain.OrderStatusPlaced,
			CreatedAt:     s.now().UTC(),
		}
		return rec.Place(ctx, o), nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	if s.observer != nil {
		s.observer.ObserveOrder(placed)
	}
	s.logger.Info("checkout completed",
		zap.String("session_id", shop.ID()),
		zap.String("user_id", userID),
		zap.String("order_id", placed.ID),
		zap.Int("items", len(placed.Items)),
		zap.Int64("total", placed.Total),
	)
	return placed, nil
}

func (s *Service) resolveAddress(ctx context.Context, userID string, in PlaceInput) (domain.Address, error) {
	id := strings.TrimSpace(in.AddressID)
	if id == "" {
		return in.Address, nil
	}
	if s.addresses == nil {
		return domain.Address{}, fmt.Errorf("address %s: %w", id, domain.ErrNotFound)
	}
	a, err := s.addresses.Get(ctx, userID, id)
	if err != nil {
		return domain.Address{}, fmt.Errorf("address %s: %w", id, err)
	}
	return a, nil
}

func snapshotItems(lines []domain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			Variant:   l.Variant,
			Title:     l.Title,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Image:     l.Image,
		})
	}
	return items
}
