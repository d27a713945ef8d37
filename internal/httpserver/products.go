package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
)

func (h *handlers) listProducts(c *gin.Context) {
	f := catalog.ParseFilter(c.Request.URL.Query())
	products := h.deps.Catalog.Browse(f)
	c.JSON(http.StatusOK, productListResponse{
		Count:   len(products),
		Results: nonNilProducts(products),
		Search:  f.SearchText,
		Catalog: string(h.deps.Catalog.Status().State),
	})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Catalog.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// refreshCatalog reloads the product list. A failed load still answers with the
// resulting status so the UI can show its empty state.
func (h *handlers) refreshCatalog(c *gin.Context) {
	status := http.StatusOK
	if err := h.deps.Catalog.Refresh(c.Request.Context()); err != nil {
		status = http.StatusBadGateway
	}
	c.JSON(status, h.deps.Catalog.Status())
}
