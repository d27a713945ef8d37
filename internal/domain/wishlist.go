package domain

// WishlistEntry is a variant-agnostic snapshot of a liked product.
type WishlistEntry struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
}
