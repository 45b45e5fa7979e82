package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/v1/products?categories=.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context(), c.Query("categories"))
	if err != nil {
		failWith(c, err)
		return
	}
	items := dto.NewProducts(products)
	c.JSON(http.StatusOK, dto.ProductsResponse{Success: true, Count: len(items), Products: items})
}
