package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sale-pack-service/internal/domain/dto"
	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/i18n"
	"github.com/guttosm/sale-pack-service/internal/middleware"
)

// ListProducts handles GET /api/products requests.
//
// @Summary      List products
// @Tags         Catalog
// @Produce      json
// @Param        limit query int false "Maximum number of products"
// @Success      200 {object} dto.SuccessResponse{data=dto.ProductsResponse} "Products"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := h.productListLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < limit {
			limit = l
		}
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), limit)
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(dto.ProductsResponse{Products: products})
}

// GetProduct handles GET /api/products/:id requests.
//
// @Summary      Get product
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.SuccessResponse{data=model.Product} "Product"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(product)
}

// UpsertProduct handles PUT /api/products/:id requests.
//
// @Summary      Create or replace product
// @Description  Stores a product and its pack definition. A pack that contains itself through its components is refused.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body dto.ProductRequest true "Product"
// @Success      200 {object} dto.SuccessResponse{data=model.Product} "Stored product"
// @Failure      400 {object} dto.ErrorResponse "Invalid product or pack cycle"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/products/{id} [put]
func (h *Handler) UpsertProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.ProductRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	product := req.ToProduct(c.Param("id"))
	if err := h.catalog.UpsertProduct(c.Request.Context(), product); err != nil {
		builder.DomainError(err)
		return
	}

	audit(c, model.ActionUpsertProduct, "Product stored", middleware.AuditRef{}, map[string]interface{}{
		"product_id": product.ID,
		"pack":       product.PackOK,
		"components": len(product.PackLines),
	})
	builder.SuccessOK(product)
}

// GetPricelist handles GET /api/pricelists/:id requests.
//
// @Summary      Get pricelist
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Pricelist ID"
// @Success      200 {object} dto.SuccessResponse{data=model.Pricelist} "Pricelist"
// @Failure      404 {object} dto.ErrorResponse "Pricelist not found"
// @Router       /api/pricelists/{id} [get]
func (h *Handler) GetPricelist(c *gin.Context) {
	builder := NewResponseBuilder(c)

	pricelist, err := h.catalog.GetPricelist(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(pricelist)
}

// UpsertPricelist handles PUT /api/pricelists/:id requests.
//
// @Summary      Create or replace pricelist
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Pricelist ID"
// @Param        request body dto.PricelistRequest true "Pricelist"
// @Success      200 {object} dto.SuccessResponse{data=model.Pricelist} "Stored pricelist"
// @Failure      400 {object} dto.ErrorResponse "Invalid pricelist"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/pricelists/{id} [put]
func (h *Handler) UpsertPricelist(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.PricelistRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	pricelist := req.ToPricelist(c.Param("id"))
	if err := h.catalog.UpsertPricelist(c.Request.Context(), pricelist); err != nil {
		builder.DomainError(err)
		return
	}

	audit(c, model.ActionUpsertPricelist, "Pricelist stored", middleware.AuditRef{}, map[string]interface{}{
		"pricelist_id": pricelist.ID,
		"rules":        len(pricelist.Items),
	})
	builder.SuccessOK(pricelist)
}
