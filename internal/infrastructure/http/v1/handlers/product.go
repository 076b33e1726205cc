package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/catalog/product"
)

// ProductHandler exposes the lookup collaborators for the UI shell.
type ProductHandler struct {
	BaseHandler
	products *product.Service
	storeID  id.ID
}

// NewProductHandler creates a product handler scoped to the instance's store.
func NewProductHandler(products *product.Service, storeID id.ID) *ProductHandler {
	return &ProductHandler{products: products, storeID: storeID}
}

// Lookup finds the product owning a code fragment.
// GET /api/v1/products?code=...
func (h *ProductHandler) Lookup(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		h.Error(c, apperror.NewValidation("code query parameter is required"))
		return
	}

	p, err := h.products.FindByIdentifier(c.Request.Context(), h.storeID, code)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Get retrieves a product by id.
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id").WithDetail("id", c.Param("id")))
		return
	}

	p, err := h.products.GetByID(c.Request.Context(), h.storeID, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
