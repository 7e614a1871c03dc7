package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sale-pack-service/internal/domain/dto"
	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/i18n"
	"github.com/guttosm/sale-pack-service/internal/middleware"
	"github.com/guttosm/sale-pack-service/internal/service"
)

// ListLines handles GET /api/orders/:id/lines requests.
//
// @Summary      List order lines
// @Description  Returns the lines of the order in document order, each pack line followed by its components.
// @Tags         Order Lines
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.SuccessResponse{data=dto.LinesResponse} "Order lines"
// @Failure      404 {object} dto.ErrorResponse "Order not found"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/orders/{id}/lines [get]
func (h *Handler) ListLines(c *gin.Context) {
	builder := NewResponseBuilder(c)

	lines, err := h.lines.ListLines(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(dto.LinesResponse{Lines: lines})
}

// CreateLines handles POST /api/orders/:id/lines requests.
//
// @Summary      Create order lines
// @Description  Creates a batch of order lines. Omitted values are computed from the product and the order pricelist. A detailed pack line is expanded into one component line per pack definition, right after the pack line. Supports idempotency via Idempotency-Key header.
// @Tags         Order Lines
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        id path string true "Order ID"
// @Param        request body dto.CreateLinesRequest true "Lines to create"
// @Success      201 {object} dto.SuccessResponse{data=dto.LinesResponse} "Created lines, components included"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Order or product not found"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/orders/{id}/lines [post]
func (h *Handler) CreateLines(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CreateLinesRequest](c)
	if err != nil {
		requestError(builder, err)
		return
	}

	orderID := c.Param("id")
	lines, err := h.lines.Create(c.Request.Context(), req.ToValues(orderID), model.ModeStructural)
	if err != nil {
		builder.DomainError(err)
		return
	}

	components := 0
	for _, line := range lines {
		if line.IsPackComponent() {
			components++
		}
	}
	audit(c, model.ActionCreateLines, "Order lines created", middleware.AuditRef{OrderID: orderID}, map[string]interface{}{
		"requested":  len(req.Lines),
		"created":    len(lines),
		"components": components,
	})
	builder.SuccessCreated(dto.LinesResponse{Lines: lines})
}

// UpdateLine handles PATCH /api/order-lines/:id requests.
//
// @Summary      Edit order line
// @Description  Applies a user edit to a line. Edits of a component line of a pack that is not modifiable are refused. Changing a pack line re-expands its components; the updating_prices and updating_pricelist flags restrict that to a price refresh.
// @Tags         Order Lines
// @Accept       json
// @Produce      json
// @Param        id path string true "Order line ID"
// @Param        request body dto.UpdateLineRequest true "Changed values"
// @Success      200 {object} dto.SuccessResponse{data=model.OrderLine} "Updated line"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      403 {object} dto.ErrorResponse "Line is part of a pack that can not be modified"
// @Failure      404 {object} dto.ErrorResponse "Line not found"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/order-lines/{id} [patch]
func (h *Handler) UpdateLine(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdateLineRequest](c)
	if err != nil {
		requestError(builder, err)
		return
	}

	lineID := c.Param("id")
	values := req.Values()
	line, err := h.lines.UpdateLine(c.Request.Context(), lineID, values, req.Mode())
	if err != nil {
		if errors.Is(err, service.ErrModificationForbidden) {
			middleware.AuditLogWarn(middleware.LoggingServiceFrom(c), c, model.ActionModifyRejected,
				"Rejected modification of pack component line", middleware.AuditRef{LineID: lineID}, err,
				map[string]interface{}{"fields": values.Fields()})
		}
		builder.DomainError(err)
		return
	}

	audit(c, model.ActionUpdateLine, "Order line updated", middleware.AuditRef{OrderID: line.OrderID, LineID: line.ID}, map[string]interface{}{
		"fields": values.Fields(),
		"mode":   string(req.Mode()),
	})
	builder.SuccessOK(line)
}

// PreviewLine handles POST /api/order-lines/:id/preview requests.
//
// @Summary      Preview order line edit
// @Description  Checks whether an edit would be accepted and returns the line as it would be saved, without storing anything. A refused edit answers allowed=false with the warning to show.
// @Tags         Order Lines
// @Accept       json
// @Produce      json
// @Param        id path string true "Order line ID"
// @Param        request body dto.UpdateLineRequest true "Changed values"
// @Success      200 {object} dto.SuccessResponse{data=dto.PreviewResponse} "Preview"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Line not found"
// @Router       /api/order-lines/{id}/preview [post]
func (h *Handler) PreviewLine(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdateLineRequest](c)
	if err != nil {
		requestError(builder, err)
		return
	}

	line, err := h.lines.PreviewLine(c.Request.Context(), c.Param("id"), req.Values())
	if errors.Is(err, service.ErrModificationForbidden) {
		builder.SuccessOK(dto.PreviewResponse{
			Allowed: false,
			Message: i18n.GetTranslator().Translate(i18n.ErrKeyPackLineNotModifiable, i18n.GetLocale(c)),
		})
		return
	}
	if err != nil {
		builder.DomainError(err)
		return
	}
	builder.SuccessOK(dto.PreviewResponse{Allowed: true, Line: line})
}

// ExpandLine handles POST /api/order-lines/:id/expand requests.
//
// @Summary      Re-expand pack line
// @Description  Reconciles the components of a pack line with its pack definition. Existing components are rewritten, missing ones created, none deleted.
// @Tags         Order Lines
// @Accept       json
// @Produce      json
// @Param        id path string true "Pack line ID"
// @Param        request body dto.ExpandLineRequest false "Reconcile mode"
// @Success      200 {object} dto.SuccessResponse{data=service.ExpansionResult} "Expansion result"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Line not found"
// @Failure      503 {object} dto.ErrorResponse "Store unavailable"
// @Router       /api/order-lines/{id}/expand [post]
func (h *Handler) ExpandLine(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.ExpandLineRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
			return
		}
	}
	mode := req.Mode
	if mode == "" {
		mode = model.ModeStructural
	}
	if !mode.Valid() {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyValidation,
			map[string]string{"mode": "must be structural or price_refresh"}, nil)
		return
	}

	line, err := h.lines.GetLine(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.DomainError(err)
		return
	}

	res, err := h.lines.ExpandPackLine(c.Request.Context(), line, true, mode)
	if err != nil {
		builder.DomainError(err)
		return
	}

	audit(c, model.ActionExpandLine, "Pack line expanded", middleware.AuditRef{OrderID: line.OrderID, LineID: line.ID}, map[string]interface{}{
		"mode":      string(mode),
		"created":   len(res.Created),
		"updated":   len(res.Updated),
		"discarded": res.Discarded,
	})
	builder.SuccessOK(res)
}

// OpenParentPackProducts handles POST /api/order-lines/parent-products requests.
//
// @Summary      Open parent pack products
// @Description  Returns the client action listing the pack products the given component lines belong to.
// @Tags         Order Lines
// @Accept       json
// @Produce      json
// @Param        request body dto.ParentProductsRequest true "Line IDs"
// @Success      200 {object} dto.SuccessResponse{data=model.ViewAction} "Client action"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Line not found"
// @Router       /api/order-lines/parent-products [post]
func (h *Handler) OpenParentPackProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.ParentProductsRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	action, err := h.lines.OpenParentPackProducts(c.Request.Context(), req.LineIDs)
	if err != nil {
		builder.DomainError(err)
		return
	}
	action.Name = i18n.GetTranslator().Translate(i18n.TitleKeyParentProduct, i18n.GetLocale(c))

	audit(c, model.ActionOpenParentPacks, "Parent pack products opened", middleware.AuditRef{}, map[string]interface{}{
		"line_ids":    req.LineIDs,
		"product_ids": action.IDs,
	})
	builder.SuccessOK(action)
}

// requestError answers a bind or validation failure.
func requestError(builder *ResponseBuilder, err error) {
	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		builder.DomainError(err)
		return
	}
	builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}
