package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func (h *handlers) listAddresses(c *gin.Context) {
	user, _ := currentUser(c)
	list, err := h.deps.Addresses.List(c.Request.Context(), user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if list == nil {
		list = []domain.Address{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "results": list})
}

func (h *handlers) getAddress(c *gin.Context) {
	user, _ := currentUser(c)
	a, err := h.deps.Addresses.Get(c.Request.Context(), user.ID, c.Param("addressId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handlers) addAddress(c *gin.Context) {
	var req domain.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, _ := currentUser(c)
	a, err := h.deps.Addresses.Add(c.Request.Context(), user.ID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *handlers) updateAddress(c *gin.Context) {
	var req domain.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, _ := currentUser(c)
	a, err := h.deps.Addresses.Update(c.Request.Context(), user.ID, c.Param("addressId"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handlers) deleteAddress(c *gin.Context) {
	user, _ := currentUser(c)
	if err := h.deps.Addresses.Delete(c.Request.Context(), user.ID, c.Param("addressId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
