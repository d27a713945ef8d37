package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/domain"
)

func lines(amounts ...int64) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(amounts))
	for i, a := range amounts {
		out = append(out, domain.CartLine{ProductID: string(rune('a' + i)), Price: a, Quantity: 1})
	}
	return out
}

func TestCompute_FreeDeliveryAboveThreshold(t *testing.T) {
	got := Compute(lines(1200), DefaultRules(), "")
	assert.Equal(t, Totals{Subtotal: 1200, Tax: 60, Delivery: 0, Discount: 0, GrandTotal: 1260}, got)
}

func TestCompute_DeliveryFeeAtOrBelowThreshold(t *testing.T) {
	got := Compute(lines(999), DefaultRules(), "")
	assert.Equal(t, int64(49), got.Delivery)
	assert.Equal(t, int64(50), got.Tax)
	assert.Equal(t, int64(999+50+49), got.GrandTotal)
}

func TestCompute_TaxRoundsHalfUp(t *testing.T) {
	assert.Equal(t, int64(1), Compute(lines(10), DefaultRules(), "").Tax)
	assert.Equal(t, int64(0), Compute(lines(9), DefaultRules(), "").Tax)
	assert.Equal(t, int64(42), Compute(lines(849), DefaultRules(), "").Tax)
}

func TestCompute_QuantityAndOrderIndependence(t *testing.T) {
	a := []domain.CartLine{
		{ProductID: "1", Price: 800, Quantity: 1},
		{ProductID: "1", Variant: "M", Price: 800, Quantity: 2},
		{ProductID: "2", Price: 349, Quantity: 3},
	}
	b := []domain.CartLine{a[2], a[0], a[1]}

	first := Compute(a, DefaultRules(), "")
	assert.Equal(t, int64(3447), first.Subtotal)
	assert.Equal(t, first, Compute(b, DefaultRules(), ""))
	assert.Equal(t, first, Compute(a, DefaultRules(), ""))
}

func TestCompute_EmptyCartIsZero(t *testing.T) {
	assert.Equal(t, Totals{}, Compute(nil, DefaultRules(), "GETCASH10"))
}

func TestCompute_ThresholdDiscount(t *testing.T) {
	rules := DefaultRules()
	rules.Discount = ThresholdDiscount{Amount: 100, MinSubtotal: 999}

	got := Compute(lines(1000), rules, "")
	assert.Equal(t, int64(100), got.Discount)
	assert.Equal(t, int64(1000+50-100), got.GrandTotal)
	assert.Equal(t, "AUTO", got.CouponCode)

	got = Compute(lines(999), rules, "")
	assert.Zero(t, got.Discount)
	assert.Empty(t, got.CouponCode)
}

func TestCompute_CouponDiscount(t *testing.T) {
	rules := DefaultRules()
	rules.Discount = NewCouponDiscount([]domain.Coupon{
		{Code: "GETCASH10", Amount: 100, MinSubtotal: 999, Active: true},
		{Code: "OLD", Amount: 500, Active: false},
	})

	got := Compute(lines(1200), rules, " getcash10 ")
	assert.Equal(t, int64(100), got.Discount)
	assert.Equal(t, "GETCASH10", got.CouponCode)
	assert.Equal(t, int64(1160), got.GrandTotal)

	assert.Zero(t, Compute(lines(1200), rules, "").Discount)
	assert.Zero(t, Compute(lines(1200), rules, "OLD").Discount)
	assert.Zero(t, Compute(lines(500), rules, "GETCASH10").Discount)
}

func TestCompute_DiscountIsClamped(t *testing.T) {
	rules := DefaultRules()
	rules.Discount = ThresholdDiscount{Amount: 10000, MinSubtotal: 0}

	got := Compute(lines(100), rules, "")
	assert.Equal(t, int64(100+5+49), got.Discount)
	assert.Zero(t, got.GrandTotal)
}

func TestRuleFor(t *testing.T) {
	assert.IsType(t, NoDiscount{}, RuleFor("", 0, 0, nil))
	assert.IsType(t, NoDiscount{}, RuleFor("bogus", 0, 0, nil))
	assert.Equal(t, ThresholdDiscount{Amount: 100, MinSubtotal: 999}, RuleFor("Threshold", 100, 999, nil))

	rule := RuleFor("coupon", 0, 0, []domain.Coupon{{Code: "X1", Amount: 5, Active: true}})
	cd, ok := rule.(CouponDiscount)
	if assert.True(t, ok) {
		c, found := cd.Lookup("x1")
		assert.True(t, found)
		assert.Equal(t, int64(5), c.Amount)
	}
}
