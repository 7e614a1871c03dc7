package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sale-pack-service/internal/domain/dto"
	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/i18n"
	"github.com/guttosm/sale-pack-service/internal/middleware"
	"github.com/guttosm/sale-pack-service/internal/service"
)

const defaultProductListLimit = 100

// Handler provides HTTP handlers for sale order, order line and catalog routes.
type Handler struct {
	orders           service.OrderService
	lines            service.OrderLineService
	catalog          service.CatalogService
	productListLimit int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithProductListLimit caps the number of products GET /api/products returns.
func WithProductListLimit(limit int) HandlerOption {
	return func(h *Handler) {
		if limit > 0 {
			h.productListLimit = limit
		}
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(orders service.OrderService, lines service.OrderLineService, catalog service.CatalogService, opts ...HandlerOption) *Handler {
	h := &Handler{
		orders:           orders,
		lines:            lines,
		catalog:          catalog,
		productListLimit: defaultProductListLimit,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// audit stores an audit entry through the logging service on the context, if any.
func audit(c *gin.Context, actionType, message string, ref middleware.AuditRef, fields map[string]interface{}) {
	middleware.AuditLog(middleware.LoggingServiceFrom(c), c, actionType, message, ref, fields)
}

// CreateOrder handles POST /api/orders requests.
//
// @Summary      Create sale order
// @Description  Opens a sale order. The pricelist, when given, must exist; without one lines are priced at the product list price.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CreateOrderRequest true "Order"
// @Success      201 {object} dto.SuccessResponse{data=model.Order} "Order created"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Pricelist not found"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.CreateOrderRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req.Name, req.PartnerName, req.PricelistID)
	if err != nil {
		builder.DomainError(err)
		return
	}

	audit(c, model.ActionCreateOrder, "Sale order created", middleware.AuditRef{OrderID: order.ID}, map[string]interface{}{
		"pricelist_id": order.PricelistID,
	})
	builder.SuccessCreated(order)
}

// GetOrder handles GET /api/orders/:id requests.
//
// @Summary      Get sale order
// @Tags         Orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.SuccessResponse{data=model.Order} "Order"
// @Failure      404 {object} dto.ErrorResponse "Order not found"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(order)
}

// UpdatePrices handles POST /api/orders/:id/update-prices requests.
//
// @Summary      Refresh order prices
// @Description  Optionally switches the order pricelist, then recomputes the unit price of every line. Pack component lines keep their quantity and discount and no new component is added.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body dto.UpdatePricesRequest false "New pricelist"
// @Success      200 {object} dto.SuccessResponse{data=dto.UpdatePricesResponse} "Order and refreshed lines"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Order or pricelist not found"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/orders/{id}/update-prices [post]
func (h *Handler) UpdatePrices(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.UpdatePricesRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
			return
		}
	}

	orderID := c.Param("id")
	order, lines, err := h.lines.UpdatePrices(c.Request.Context(), orderID, req.PricelistID)
	if err != nil {
		builder.DomainError(err)
		return
	}

	audit(c, model.ActionUpdatePrices, "Order prices refreshed", middleware.AuditRef{OrderID: orderID}, map[string]interface{}{
		"pricelist_id": order.PricelistID,
		"lines":        len(lines),
	})
	builder.SuccessOK(dto.UpdatePricesResponse{Order: order, Lines: lines})
}
