package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

// apiProduct is the upstream record. Decimal fields arrive as strings or numbers.
type apiProduct struct {
	ID            json.Number `json:"id"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Price         money       `json:"price"`
	DiscountPrice money       `json:"discount_price"`
	Category      string      `json:"category"`
	Subcategory   string      `json:"subcategory"`
	Image         string      `json:"image"`
	HoverImage    string      `json:"hover_image"`
	Size          []string    `json:"size"`
	Fit           string      `json:"fit"`
	Colors        []string    `json:"colors"`
	Badge         string      `json:"badge"`
	InStock       *bool       `json:"in_stock"`
	IsActive      *bool       `json:"is_active"`
}

func (p apiProduct) active() bool {
	return p.IsActive == nil || *p.IsActive
}

// toDomain renames fields. A discount price becomes the selling price and the list
// price is kept as the original.
func (p apiProduct) toDomain() domain.Product {
	out := domain.Product{
		ID:      p.ID.String(),
		Slug:    p.Slug,
		Title:   p.Name,
		Price:   p.Price.units,
		Sizes:   cloneStrings(p.Size),
		Colors:  cloneStrings(p.Colors),
		Badge:   strings.ToUpper(strings.TrimSpace(p.Badge)),
		InStock: p.InStock == nil || *p.InStock,
	}
	if p.DiscountPrice.set {
		out.Price = p.DiscountPrice.units
		if p.Price.units > out.Price {
			out.OriginalPrice = p.Price.units
		}
	}
	for _, img := range []string{p.Image, p.HoverImage} {
		if img != "" {
			out.Images = append(out.Images, img)
		}
	}
	for _, c := range []string{p.Subcategory, p.Category} {
		if c = strings.TrimSpace(c); c != "" {
			out.Categories = append(out.Categories, c)
		}
	}
	if fit := strings.TrimSpace(p.Fit); fit != "" {
		out.Fits = []string{fit}
	}
	return out
}

// money is a decimal amount rounded half-up to whole currency units.
type money struct {
	units int64
	set   bool
}

func (m *money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = money{}
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("money %s: %w", s, err)
		}
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*m = money{}
			return nil
		}
	}
	units, err := parseUnits(s)
	if err != nil {
		return err
	}
	*m = money{units: units, set: true}
	return nil
}

// parseUnits rounds a plain decimal ("1299.50") half-up to whole units without going
// through float64.
func parseUnits(s string) (int64, error) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money %q: %w", s, err)
	}
	if frac != "" {
		if _, err := strconv.ParseUint(frac, 10, 64); err != nil {
			return 0, fmt.Errorf("money %q: invalid fraction", s)
		}
		if frac[0] >= '5' {
			n++
		}
	}
	if neg {
		n = -n
	}
	return n, nil
}

func cloneStrings(v []string) []string {
	if len(v) == 0 {
		return nil
	}
	return append([]string(nil), v...)
}
