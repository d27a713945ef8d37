// Package catalog narrows and orders product lists for display.
package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

// Sort keys accepted by Filter.Sort.
const (
	SortNone    = ""
	SortLowHigh = "low-high"
	SortHighLow = "high-low"
)

// Filter is the UI-selected filter state. Empty sets do not restrict; a product must
// match at least one value in every non-empty set. A nil MaxPrice means no ceiling.
type Filter struct {
	MaxPrice   *int64   `json:"maxPrice,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Sizes      []string `json:"sizes,omitempty"`
	Fits       []string `json:"fits,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	SearchText string   `json:"q,omitempty"`
	Sort       string   `json:"sort,omitempty"`
}

// Apply returns a new slice holding the products that satisfy f, ordered by f.Sort.
// The input slice is never modified.
func Apply(products []domain.Product, f Filter) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(f.SearchText))
	categories := toSet(f.Categories)
	sizes := toSet(f.Sizes)
	fits := toSet(f.Fits)
	colors := toSet(f.Colors)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if !intersects(p.Categories, categories) ||
			!intersects(p.Sizes, sizes) ||
			!intersects(p.Fits, fits) ||
			!intersects(p.Colors, colors) {
			continue
		}
		if q != "" && !matchesSearch(p, q) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortLowHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortHighLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}

// Ceiling returns a MaxPrice of n.
func Ceiling(n int64) *int64 { return &n }

// ParseFilter reads filter state from query parameters. Multi-valued dimensions accept
// repeated keys and comma separated values.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Categories: multi(values, "category"),
		Sizes:      multi(values, "size"),
		Fits:       multi(values, "fit"),
		Colors:     multi(values, "color"),
		SearchText: strings.TrimSpace(values.Get("q")),
	}
	if v := strings.TrimSpace(values.Get("maxPrice")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			f.MaxPrice = Ceiling(n)
		}
	}
	switch s := strings.ToLower(strings.TrimSpace(values.Get("sort"))); s {
	case SortLowHigh, SortHighLow:
		f.Sort = s
	}
	return f
}

func matchesSearch(p domain.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	for _, c := range p.Colors {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

func intersects(attrs []string, set map[string]struct{}) bool {
	if len(set) == 0 {
		return true
	}
	for _, a := range attrs {
		if _, ok := set[strings.ToLower(a)]; ok {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func multi(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
