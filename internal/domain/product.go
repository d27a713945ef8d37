package domain

import "time"

// Badge tags shown on product cards.
const (
	BadgeNew  = "NEW"
	BadgeSale = "SALE"
)

// Product is the storefront's read-only view of a catalog record. Prices are whole
// currency units.
type Product struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug,omitempty"`
	Title         string    `json:"title"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"originalPrice,omitempty"`
	Images        []string  `json:"images,omitempty"`
	Categories    []string  `json:"categories,omitempty"`
	Badge         string    `json:"badge,omitempty"`
	Sizes         []string  `json:"sizes,omitempty"`
	Fits          []string  `json:"fits,omitempty"`
	Colors        []string  `json:"colors,omitempty"`
	InStock       bool      `json:"inStock"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// Image returns the primary image reference or an empty string.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
