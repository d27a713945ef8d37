package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/checkout"
)

func (h *handlers) placeOrder(c *gin.Context) {
	var req checkout.PlaceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, _ := currentUser(c)
	o, err := h.deps.Checkout.Place(c.Request.Context(), user.ID, currentShop(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *handlers) listOrders(c *gin.Context) {
	user, _ := currentUser(c)
	orders := h.deps.Orders.For(c.Request.Context(), user.ID).List()
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "results": orders})
}

func (h *handlers) getOrder(c *gin.Context) {
	user, _ := currentUser(c)
	o, ok := h.deps.Orders.For(c.Request.Context(), user.ID).Get(c.Param("orderId"))
	if !ok {
		h.writeError(c, domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, o)
}
