// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model and carry the
// validation rules of the API.
package dto

import (
	"github.com/guttosm/sale-pack-service/internal/domain/model"
)

// CreateOrderRequest is the body of the order creation endpoint.
// @Description Request to open a sale order
type CreateOrderRequest struct {
	Name        string `json:"name" binding:"required" example:"SO001"`
	PartnerName string `json:"partner_name,omitempty" example:"Deco Addict"`
	PricelistID string `json:"pricelist_id,omitempty" example:"public"`
} // @name CreateOrderRequest

// LineInput describes one order line to create.
// @Description Order line values; omitted fields are computed from the product
type LineInput struct {
	ProductID        string    `json:"product_id" binding:"required" example:"workstation"`
	Quantity         *float64  `json:"quantity,omitempty" example:"2"`
	UomID            *string   `json:"uom_id,omitempty" example:"unit"`
	PriceUnit        *float64  `json:"price_unit,omitempty" example:"1299.9"`
	Discount         *float64  `json:"discount,omitempty" example:"5"`
	Name             *string   `json:"name,omitempty"`
	TaxIDs           *[]string `json:"tax_ids,omitempty"`
	PackParentLineID string    `json:"pack_parent_line_id,omitempty" swaggerignore:"true"`
} // @name LineInput

// CreateLinesRequest is the body of the batch line creation endpoint.
type CreateLinesRequest struct {
	Lines []LineInput `json:"lines" binding:"required,min=1,dive"`
} // @name CreateLinesRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrChildLineInput is returned when a client tries to create a pack component line.
	ErrChildLineInput = &ValidationError{
		Field:   "pack_parent_line_id",
		Message: "component lines are created by pack expansion only",
	}
	// ErrNegativeQuantity is returned when a quantity is below zero.
	ErrNegativeQuantity = &ValidationError{
		Field:   "quantity",
		Message: "must not be negative",
	}
	// ErrDiscountRange is returned when a discount is outside 0..100.
	ErrDiscountRange = &ValidationError{
		Field:   "discount",
		Message: "must be between 0 and 100",
	}
	// ErrEmptyUpdate is returned when an update carries no field.
	ErrEmptyUpdate = &ValidationError{
		Field:   "body",
		Message: "at least one field is required",
	}
)

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func validateAmounts(quantity, discount *float64) error {
	if quantity != nil && *quantity < 0 {
		return ErrNegativeQuantity
	}
	if discount != nil && (*discount < 0 || *discount > 100) {
		return ErrDiscountRange
	}
	return nil
}

// Validate performs the checks binding tags cannot express.
func (r *CreateLinesRequest) Validate() error {
	for _, l := range r.Lines {
		if l.PackParentLineID != "" {
			return ErrChildLineInput
		}
		if err := validateAmounts(l.Quantity, l.Discount); err != nil {
			return err
		}
	}
	return nil
}

// ToValues converts the request into line values for the given order.
func (r *CreateLinesRequest) ToValues(orderID string) []model.LineValues {
	out := make([]model.LineValues, len(r.Lines))
	for i, l := range r.Lines {
		qty := l.Quantity
		if qty == nil {
			qty = model.Ptr(1.0)
		}
		out[i] = model.LineValues{
			OrderID:   orderID,
			ProductID: model.Ptr(l.ProductID),
			Quantity:  qty,
			UomID:     l.UomID,
			PriceUnit: l.PriceUnit,
			Discount:  l.Discount,
			Name:      l.Name,
			TaxIDs:    l.TaxIDs,
		}
	}
	return out
}

// UpdateLineRequest is the body of the interactive line edit and preview endpoints.
// @Description Changed line values plus the price update flags of the caller
type UpdateLineRequest struct {
	ProductID         *string   `json:"product_id,omitempty" example:"workstation"`
	Quantity          *float64  `json:"quantity,omitempty" example:"3"`
	UomID             *string   `json:"uom_id,omitempty"`
	PriceUnit         *float64  `json:"price_unit,omitempty"`
	Discount          *float64  `json:"discount,omitempty"`
	Name              *string   `json:"name,omitempty"`
	TaxIDs            *[]string `json:"tax_ids,omitempty"`
	UpdatingPrices    bool      `json:"updating_prices,omitempty"`
	UpdatingPricelist bool      `json:"updating_pricelist,omitempty"`
} // @name UpdateLineRequest

// Values returns the changed line values.
func (r *UpdateLineRequest) Values() model.LineValues {
	return model.LineValues{
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		UomID:     r.UomID,
		PriceUnit: r.PriceUnit,
		Discount:  r.Discount,
		Name:      r.Name,
		TaxIDs:    r.TaxIDs,
	}
}

// Mode returns the reconcile mode implied by the request flags.
func (r *UpdateLineRequest) Mode() model.ReconcileMode {
	return model.ModeFromFlags(r.UpdatingPrices, r.UpdatingPricelist)
}

// Validate checks the edit carries at least one valid field.
func (r *UpdateLineRequest) Validate() error {
	if len(r.Values().Fields()) == 0 {
		return ErrEmptyUpdate
	}
	return validateAmounts(r.Quantity, r.Discount)
}

// ExpandLineRequest is the body of the manual expansion endpoint.
type ExpandLineRequest struct {
	Mode model.ReconcileMode `json:"mode,omitempty" enums:"structural,price_refresh" example:"structural"`
} // @name ExpandLineRequest

// UpdatePricesRequest is the body of the price refresh endpoint.
type UpdatePricesRequest struct {
	PricelistID string `json:"pricelist_id,omitempty" example:"reseller"`
} // @name UpdatePricesRequest

// ParentProductsRequest lists the lines whose parent pack products to open.
type ParentProductsRequest struct {
	LineIDs []string `json:"line_ids" binding:"required,min=1"`
} // @name ParentProductsRequest

// ProductRequest is the body of the product upsert endpoint.
// @Description Catalog product with optional pack definition
type ProductRequest struct {
	Name               string                   `json:"name" binding:"required" example:"Workstation"`
	Description        string                   `json:"description,omitempty"`
	ListPrice          float64                  `json:"list_price" binding:"gte=0" example:"1500"`
	TaxIDs             []string                 `json:"tax_ids,omitempty"`
	UomID              string                   `json:"uom_id,omitempty" example:"unit"`
	PackOK             bool                     `json:"pack_ok"`
	PackType           model.PackType           `json:"pack_type,omitempty" enums:"non_detailed,detailed"`
	PackComponentPrice model.PackComponentPrice `json:"pack_component_price,omitempty" enums:"detailed,non_detailed"`
	PackModifiable     bool                     `json:"pack_modifiable"`
	PackLines          []model.PackLine         `json:"pack_lines,omitempty"`
} // @name ProductRequest

// ToProduct builds the product stored under id.
func (r *ProductRequest) ToProduct(id string) *model.Product {
	uom := r.UomID
	if uom == "" {
		uom = "unit"
	}
	return &model.Product{
		ID:                 id,
		Name:               r.Name,
		Description:        r.Description,
		ListPrice:          r.ListPrice,
		TaxIDs:             r.TaxIDs,
		UomID:              uom,
		PackOK:             r.PackOK,
		PackType:           r.PackType,
		PackComponentPrice: r.PackComponentPrice,
		PackModifiable:     r.PackModifiable,
		PackLines:          r.PackLines,
	}
}

// PricelistRequest is the body of the pricelist upsert endpoint.
// @Description Pricelist with its pricing rules
type PricelistRequest struct {
	Name           string                `json:"name" binding:"required" example:"Reseller"`
	DiscountPolicy model.DiscountPolicy  `json:"discount_policy" binding:"required" enums:"with_discount,without_discount"`
	Items          []model.PricelistItem `json:"items,omitempty"`
} // @name PricelistRequest

// ToPricelist builds the pricelist stored under id.
func (r *PricelistRequest) ToPricelist(id string) *model.Pricelist {
	return &model.Pricelist{
		ID:             id,
		Name:           r.Name,
		DiscountPolicy: r.DiscountPolicy,
		Items:          r.Items,
	}
}
