// Package i18n provides internationalization support for the sale pack service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyServiceUnavailable indicates the store is unavailable.
	ErrKeyServiceUnavailable = "error.service_unavailable"
	// ErrKeyValidation indicates a request failed field validation.
	ErrKeyValidation = "error.validation"

	ErrKeyOrderNotFound     = "error.order_not_found"
	ErrKeyLineNotFound      = "error.order_line_not_found"
	ErrKeyProductNotFound   = "error.product_not_found"
	ErrKeyPricelistNotFound = "error.pricelist_not_found"
	ErrKeyInvalidProduct    = "error.invalid_product"
	ErrKeyInvalidPricelist  = "error.invalid_pricelist"
	ErrKeyPackCycle         = "error.pack_cycle"

	// ErrKeyPackLineNotModifiable is raised when a locked pack component line is edited.
	ErrKeyPackLineNotModifiable = "error.pack_line_not_modifiable"
	// ErrKeyChildLineCreation is raised when a component line is created outside an expansion.
	ErrKeyChildLineCreation = "error.child_line_creation"
)

// Title keys for client actions.
const (
	TitleKeyParentProduct = "title.parent_product"
)
