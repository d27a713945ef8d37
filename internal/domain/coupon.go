package domain

import "time"

// Coupon is a flat discount unlocked by an explicit code once the subtotal exceeds
// MinSubtotal.
type Coupon struct {
	Code        string    `json:"code"`
	Amount      int64     `json:"amount"`
	MinSubtotal int64     `json:"minSubtotal"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
