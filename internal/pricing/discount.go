package pricing

import (
	"strings"

	"storefront/internal/domain"
)

// Discount strategy names accepted by RuleFor.
const (
	ModeNone      = "none"
	ModeThreshold = "threshold"
	ModeCoupon    = "coupon"
)

// DiscountRule yields the flat discount for a subtotal and an optional coupon code.
// Label names the applied discount for display; it is only called when Discount > 0.
type DiscountRule interface {
	Discount(subtotal int64, coupon string) int64
	Label(coupon string) string
}

// NoDiscount never discounts.
type NoDiscount struct{}

func (NoDiscount) Discount(int64, string) int64 { return 0 }
func (NoDiscount) Label(string) string          { return "" }

// ThresholdDiscount applies Amount automatically once the subtotal exceeds MinSubtotal.
type ThresholdDiscount struct {
	Amount      int64
	MinSubtotal int64
}

func (d ThresholdDiscount) Discount(subtotal int64, _ string) int64 {
	if subtotal > d.MinSubtotal {
		return d.Amount
	}
	return 0
}

func (d ThresholdDiscount) Label(string) string { return "AUTO" }

// CouponDiscount applies the flat amount of an active coupon matched by code
// (case-insensitive) once the subtotal exceeds the coupon's minimum.
type CouponDiscount struct {
	coupons map[string]domain.Coupon
}

// NewCouponDiscount indexes coupons by normalised code. Later duplicates win.
func NewCouponDiscount(coupons []domain.Coupon) CouponDiscount {
	idx := make(map[string]domain.Coupon, len(coupons))
	for _, c := range coupons {
		code := normalizeCode(c.Code)
		if code == "" {
			continue
		}
		idx[code] = c
	}
	return CouponDiscount{coupons: idx}
}

func (d CouponDiscount) Discount(subtotal int64, coupon string) int64 {
	c, ok := d.coupons[normalizeCode(coupon)]
	if !ok || !c.Active {
		return 0
	}
	if subtotal > c.MinSubtotal {
		return c.Amount
	}
	return 0
}

func (d CouponDiscount) Label(coupon string) string {
	return strings.ToUpper(normalizeCode(coupon))
}

// Lookup reports the coupon stored under code.
func (d CouponDiscount) Lookup(code string) (domain.Coupon, bool) {
	c, ok := d.coupons[normalizeCode(code)]
	return c, ok
}

// RuleFor selects a discount strategy by configuration. Unknown modes fall back to
// NoDiscount.
func RuleFor(mode string, amount, minSubtotal int64, coupons []domain.Coupon) DiscountRule {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeThreshold:
		return ThresholdDiscount{Amount: amount, MinSubtotal: minSubtotal}
	case ModeCoupon:
		return NewCouponDiscount(coupons)
	default:
		return NoDiscount{}
	}
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
