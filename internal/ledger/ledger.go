// Package ledger keeps the cart: one line per (product, variant) with a positive quantity.
package ledger

import "storefront/internal/domain"

// Ledger is an insertion-ordered collection of cart lines. It is not safe for concurrent
// use; callers serialise access (see session.Shop).
type Ledger struct {
	lines []domain.CartLine
	index map[domain.LineKey]int
}

func New() *Ledger {
	return &Ledger{index: make(map[domain.LineKey]int)}
}

// Add increments the matching line or creates a new one with quantity 1, snapshotting the
// product's title, price and image. It returns the resulting line.
func (l *Ledger) Add(p domain.Product, variant string) domain.CartLine {
	key := domain.LineKey{ProductID: p.ID, Variant: variant}
	if i, ok := l.index[key]; ok {
		l.lines[i].Quantity++
		return l.lines[i]
	}
	line := domain.CartLine{
		ProductID: p.ID,
		Variant:   variant,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image(),
		Quantity:  1,
	}
	l.index[key] = len(l.lines)
	l.lines = append(l.lines, line)
	return line
}

// Increase adds one to an existing line. Unknown keys are ignored.
func (l *Ledger) Increase(productID, variant string) bool {
	i, ok := l.index[domain.LineKey{ProductID: productID, Variant: variant}]
	if !ok {
		return false
	}
	l.lines[i].Quantity++
	return true
}

// Decrease subtracts one from an existing line, removing it when the quantity reaches 0.
func (l *Ledger) Decrease(productID, variant string) bool {
	key := domain.LineKey{ProductID: productID, Variant: variant}
	i, ok := l.index[key]
	if !ok {
		return false
	}
	if l.lines[i].Quantity <= 1 {
		l.removeAt(i)
		return true
	}
	l.lines[i].Quantity--
	return true
}

// Remove deletes the matching line if present.
func (l *Ledger) Remove(productID, variant string) bool {
	i, ok := l.index[domain.LineKey{ProductID: productID, Variant: variant}]
	if !ok {
		return false
	}
	l.removeAt(i)
	return true
}

// Clear drops every line.
func (l *Ledger) Clear() {
	l.lines = nil
	l.index = make(map[domain.LineKey]int)
}

// Qty returns the stored quantity or 0.
func (l *Ledger) Qty(productID, variant string) int {
	i, ok := l.index[domain.LineKey{ProductID: productID, Variant: variant}]
	if !ok {
		return 0
	}
	return l.lines[i].Quantity
}

// Lines returns a copy of the lines in insertion order.
func (l *Ledger) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

// Count is the sum of all line quantities.
func (l *Ledger) Count() int {
	total := 0
	for _, line := range l.lines {
		total += line.Quantity
	}
	return total
}

// Len is the number of distinct lines.
func (l *Ledger) Len() int {
	return len(l.lines)
}

func (l *Ledger) removeAt(i int) {
	delete(l.index, l.lines[i].Key())
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
	for j := i; j < len(l.lines); j++ {
		l.index[l.lines[j].Key()] = j
	}
}
