package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/catalog"
)

type lineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Variant   string `json:"variant"`
}

type wishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type searchRequest struct {
	Query string `json:"q"`
}

func (h *handlers) createSession(c *gin.Context) {
	userID := ""
	if u, ok := currentUser(c); ok {
		userID = u.ID
	}
	shop := h.deps.Sessions.Create(userID)
	h.trackSessions()
	c.JSON(http.StatusCreated, gin.H{"id": shop.ID(), "userId": shop.UserID()})
}

func (h *handlers) deleteSession(c *gin.Context) {
	h.deps.Sessions.Delete(currentShop(c).ID())
	h.trackSessions()
	c.Status(http.StatusNoContent)
}

func (h *handlers) trackSessions() {
	if h.deps.Metrics != nil {
		h.deps.Metrics.Sessions.Set(float64(h.deps.Sessions.Len()))
	}
}

func (h *handlers) getCart(c *gin.Context) {
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) respondCart(c *gin.Context, status int) {
	shop := currentShop(c)
	c.JSON(status, toCartResponse(shop, h.deps.Checkout.Quote(shop, c.Query("coupon"))))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req lineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.deps.Catalog.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	line := currentShop(c).AddToCart(*p, strings.TrimSpace(req.Variant))
	h.logger.Debug("cart line added",
		zap.String("session_id", currentShop(c).ID()),
		zap.String("product_id", line.ProductID),
		zap.String("variant", line.Variant),
		zap.Int("quantity", line.Quantity),
	)
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) increaseCartItem(c *gin.Context) {
	var req lineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	currentShop(c).Increase(req.ProductID, req.Variant)
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) decreaseCartItem(c *gin.Context) {
	var req lineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	currentShop(c).Decrease(req.ProductID, req.Variant)
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
		return
	}
	currentShop(c).Remove(productID, c.Query("variant"))
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) clearCart(c *gin.Context) {
	currentShop(c).ClearCart()
	h.respondCart(c, http.StatusOK)
}

func (h *handlers) getWishlist(c *gin.Context) {
	c.JSON(http.StatusOK, toWishlistResponse(currentShop(c)))
}

func (h *handlers) toggleWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.deps.Catalog.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	shop := currentShop(c)
	added := shop.ToggleWishlist(*p)
	c.JSON(http.StatusOK, gin.H{"added": added, "wishlist": toWishlistResponse(shop)})
}

func (h *handlers) wishlistMembership(c *gin.Context) {
	id := c.Param("productId")
	c.JSON(http.StatusOK, gin.H{"productId": id, "present": currentShop(c).InWishlist(id)})
}

func (h *handlers) setSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shop := currentShop(c)
	shop.SetSearch(req.Query)
	c.JSON(http.StatusAccepted, gin.H{"pending": shop.PendingSearch(), "applied": shop.Search()})
}

// browseSession filters the catalog with the query parameters; without q the session's
// applied search is used.
func (h *handlers) browseSession(c *gin.Context) {
	shop := currentShop(c)
	query := c.Request.URL.Query()
	f := catalog.ParseFilter(query)
	if !query.Has("q") {
		f.SearchText = shop.Search()
	}
	products := h.deps.Catalog.Browse(f)
	c.JSON(http.StatusOK, productListResponse{
		Count:   len(products),
		Results: nonNilProducts(products),
		Search:  f.SearchText,
		Catalog: string(h.deps.Catalog.Status().State),
	})
}

func (h *handlers) getNotification(c *gin.Context) {
	resp := notificationResponse{}
	if msg, ok := currentShop(c).Notification(); ok {
		resp.Notification = &msg
	}
	c.JSON(http.StatusOK, resp)
}
