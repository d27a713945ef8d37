package domain

import "time"

// OrderStatus is the order lifecycle tag. Orders start and currently end at PLACED.
type OrderStatus string

const OrderStatusPlaced OrderStatus = "PLACED"

// PaymentMethod tags how the customer pays.
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentUPI    PaymentMethod = "UPI"
	PaymentCard   PaymentMethod = "CARD"
	PaymentOnline PaymentMethod = "ONLINE"
)

// OrderItem snapshots a cart line at checkout time.
type OrderItem struct {
	ProductID string `json:"id"`
	Variant   string `json:"variant,omitempty"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// OrderTotals is the price breakdown captured with the order.
type OrderTotals struct {
	Subtotal   int64  `json:"subtotal"`
	Tax        int64  `json:"tax"`
	Delivery   int64  `json:"delivery"`
	Discount   int64  `json:"discount"`
	CouponCode string `json:"couponCode,omitempty"`
}

// Order is immutable once recorded.
type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId,omitempty"`
	Items         []OrderItem   `json:"items"`
	Address       Address       `json:"address"`
	Breakdown     OrderTotals   `json:"breakdown"`
	Total         int64         `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Clone returns a deep copy so callers cannot mutate a recorded order.
func (o Order) Clone() Order {
	out := o
	if o.Items != nil {
		out.Items = make([]OrderItem, len(o.Items))
		copy(out.Items, o.Items)
	}
	return out
}
