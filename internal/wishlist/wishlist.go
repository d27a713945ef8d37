// Package wishlist is a presence set of product snapshots keyed by product id.
package wishlist

import "storefront/internal/domain"

// Set is not safe for concurrent use; session.Shop serialises access.
type Set struct {
	entries []domain.WishlistEntry
}

func New() *Set {
	return &Set{}
}

// Toggle removes the product when present, otherwise stores a snapshot. It reports
// whether the product was added.
func (s *Set) Toggle(p domain.Product) bool {
	for i, e := range s.entries {
		if e.ProductID == p.ID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return false
		}
	}
	s.entries = append(s.entries, domain.WishlistEntry{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image(),
	})
	return true
}

func (s *Set) Contains(productID string) bool {
	for _, e := range s.entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// Entries returns a copy in insertion order.
func (s *Set) Entries() []domain.WishlistEntry {
	out := make([]domain.WishlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Set) Len() int {
	return len(s.entries)
}
