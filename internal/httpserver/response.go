package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/pricing"
	"storefront/internal/service/session"
)

type productListResponse struct {
	Count   int              `json:"count"`
	Results []domain.Product `json:"results"`
	Search  string           `json:"search,omitempty"`
	Catalog string           `json:"catalog"`
}

type cartResponse struct {
	SessionID string         `json:"sessionId"`
	Lines     []cartLineView `json:"lines"`
	Count     int            `json:"count"`
	Totals    pricing.Totals `json:"totals"`
}

type cartLineView struct {
	domain.CartLine
	LineTotal int64 `json:"lineTotal"`
}

type wishlistResponse struct {
	SessionID string                 `json:"sessionId"`
	Items     []domain.WishlistEntry `json:"items"`
	Count     int                    `json:"count"`
}

type notificationResponse struct {
	Notification *notify.Message `json:"notification"`
}

func toCartResponse(shop *session.Shop, totals pricing.Totals) cartResponse {
	view := shop.Cart()
	lines := make([]cartLineView, 0, len(view.Lines))
	for _, l := range view.Lines {
		lines = append(lines, cartLineView{CartLine: l, LineTotal: l.Total()})
	}
	return cartResponse{
		SessionID: shop.ID(),
		Lines:     lines,
		Count:     view.Count,
		Totals:    totals,
	}
}

func toWishlistResponse(shop *session.Shop) wishlistResponse {
	items := shop.Wishlist()
	if items == nil {
		items = []domain.WishlistEntry{}
	}
	return wishlistResponse{SessionID: shop.ID(), Items: items, Count: len(items)}
}

func nonNilProducts(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}

// writeError maps domain errors onto HTTP statuses.
func (h *handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrLoginRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "login": loginHint})
	case errors.Is(err, domain.ErrSessionOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidAddress), errors.Is(err, domain.ErrInvalidPayment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
