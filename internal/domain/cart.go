package domain

// LineKey identifies a cart line. Variant is empty when the product was added without a
// sub-selection such as size.
type LineKey struct {
	ProductID string `json:"productId"`
	Variant   string `json:"variant,omitempty"`
}

// CartLine is one (product, variant) entry with a snapshot of the product taken when the
// line was created.
type CartLine struct {
	ProductID string `json:"productId"`
	Variant   string `json:"variant,omitempty"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Key returns the line's identity.
func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Variant: l.Variant}
}

// Total is price times quantity.
func (l CartLine) Total() int64 {
	return l.Price * int64(l.Quantity)
}
