// Package remote reads the upstream catalog API (/api/products/) and maps its records
// into storefront products.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

// Query narrows the upstream listing. Both fields are slugs matched case-insensitively
// upstream.
type Query struct {
	Category    string
	Subcategory string
}

type Client struct {
	base   string
	http   *http.Client
	logger *zap.Logger
}

func New(base string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FetchProducts lists active products.
func (c *Client) FetchProducts(ctx context.Context, q Query) ([]domain.Product, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Subcategory != "" {
		params.Set("subcategory", q.Subcategory)
	}
	endpoint := c.base + "/api/products/"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var records []apiProduct
	if err := c.getJSON(ctx, endpoint, &records); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		if !rec.active() {
			continue
		}
		out = append(out, rec.toDomain())
	}
	c.logger.Debug("catalog fetched", zap.String("category", q.Category), zap.String("subcategory", q.Subcategory), zap.Int("count", len(out)))
	return out, nil
}

// FetchBySlug loads one product. Unknown or inactive slugs return domain.ErrNotFound.
func (c *Client) FetchBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.New("slug required")
	}
	var rec apiProduct
	if err := c.getJSON(ctx, c.base+"/api/products/"+url.PathEscape(slug)+"/", &rec); err != nil {
		return nil, err
	}
	if !rec.active() {
		return nil, domain.ErrNotFound
	}
	p := rec.toDomain()
	return &p, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catalog request %s: status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
