// Package pricing derives cart totals from cart lines and a small rule table.
package pricing

import "storefront/internal/domain"

// Defaults taken from the storefront's checkout rules.
const (
	DefaultTaxBasisPoints    = 500
	DefaultFreeDeliveryAbove = 999
	DefaultDeliveryFee       = 49
)

// Rules configures the calculator. Tax is expressed in basis points (500 = 5%).
type Rules struct {
	TaxBasisPoints    int64
	FreeDeliveryAbove int64
	DeliveryFee       int64
	Discount          DiscountRule
}

// DefaultRules is 5% tax, free delivery above 999, 49 otherwise, no discount.
func DefaultRules() Rules {
	return Rules{
		TaxBasisPoints:    DefaultTaxBasisPoints,
		FreeDeliveryAbove: DefaultFreeDeliveryAbove,
		DeliveryFee:       DefaultDeliveryFee,
		Discount:          NoDiscount{},
	}
}

// Totals is the derived price breakdown.
type Totals struct {
	Subtotal   int64  `json:"subtotal"`
	Tax        int64  `json:"tax"`
	Delivery   int64  `json:"delivery"`
	Discount   int64  `json:"discount"`
	GrandTotal int64  `json:"grandTotal"`
	CouponCode string `json:"couponCode,omitempty"`
}

// Compute prices the lines. It is pure: the same lines, rules and coupon always produce
// the same Totals regardless of line order. An empty cart prices to zero.
func Compute(lines []domain.CartLine, rules Rules, coupon string) Totals {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.Total()
	}
	if subtotal <= 0 {
		return Totals{}
	}

	t := Totals{Subtotal: subtotal}
	t.Tax = roundHalfUp(subtotal*rules.TaxBasisPoints, 10000)
	if subtotal <= rules.FreeDeliveryAbove {
		t.Delivery = rules.DeliveryFee
	}

	gross := t.Subtotal + t.Tax + t.Delivery
	if rules.Discount != nil {
		d := rules.Discount.Discount(subtotal, coupon)
		if d < 0 {
			d = 0
		}
		if d > gross {
			d = gross
		}
		t.Discount = d
		if d > 0 {
			t.CouponCode = rules.Discount.Label(coupon)
		}
	}
	t.GrandTotal = gross - t.Discount
	return t
}

// OrderTotals converts Totals into the snapshot stored with an order.
func (t Totals) OrderTotals() domain.OrderTotals {
	return domain.OrderTotals{
		Subtotal:   t.Subtotal,
		Tax:        t.Tax,
		Delivery:   t.Delivery,
		Discount:   t.Discount,
		CouponCode: t.CouponCode,
	}
}

func roundHalfUp(num, den int64) int64 {
	if num < 0 {
		return -roundHalfUp(-num, den)
	}
	return (num + den/2) / den
}
