package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// SaleRoutes registers the order, order line and catalog routes.
type SaleRoutes struct {
	handler *Handler
}

var _ RouteGroup = (*SaleRoutes)(nil)

// NewSaleRoutes creates a new SaleRoutes instance.
func NewSaleRoutes(handler *Handler) *SaleRoutes {
	return &SaleRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *SaleRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	h := r.handler

	orders := rg.Group("/orders")
	orders.POST("", h.CreateOrder)
	orders.GET("/:id", h.GetOrder)
	orders.GET("/:id/lines", h.ListLines)
	orders.POST("/:id/lines", h.CreateLines)
	orders.POST("/:id/update-prices", h.UpdatePrices)

	lines := rg.Group("/order-lines")
	lines.POST("/parent-products", h.OpenParentPackProducts)
	lines.PATCH("/:id", h.UpdateLine)
	lines.POST("/:id/preview", h.PreviewLine)
	lines.POST("/:id/expand", h.ExpandLine)

	products := rg.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/:id", h.GetProduct)
	products.PUT("/:id", h.UpsertProduct)

	pricelists := rg.Group("/pricelists")
	pricelists.GET("/:id", h.GetPricelist)
	pricelists.PUT("/:id", h.UpsertPricelist)
}

