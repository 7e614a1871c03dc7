package model

import (
	"cmp"
	"slices"
	"time"
)

// Field names an order line attribute. Values match the stored document keys.
type Field string

const (
	FieldProduct        Field = "product_id"
	FieldQuantity       Field = "quantity"
	FieldUom            Field = "uom_id"
	FieldPriceUnit      Field = "price_unit"
	FieldDiscount       Field = "discount"
	FieldName           Field = "name"
	FieldTaxes          Field = "tax_ids"
	FieldPackParent     Field = "pack_parent_line_id"
	FieldPackDepth      Field = "pack_depth"
	FieldPackModifiable Field = "pack_modifiable"
)

// PackGuardedFields are the fields a user may not change on a locked component line.
var PackGuardedFields = []Field{
	FieldProduct,
	FieldQuantity,
	FieldUom,
	FieldPriceUnit,
	FieldDiscount,
	FieldName,
	FieldTaxes,
}

// OrderLine is a sale order line. Component lines of a pack point to their
// pack line through PackParentLineID.
type OrderLine struct {
	ID               string    `bson:"_id" json:"id"`
	OrderID          string    `bson:"order_id" json:"order_id"`
	Sequence         int64     `bson:"sequence" json:"sequence"`
	ProductID        string    `bson:"product_id" json:"product_id"`
	Name             string    `bson:"name" json:"name"`
	Quantity         float64   `bson:"quantity" json:"quantity"`
	UomID            string    `bson:"uom_id" json:"uom_id"`
	PriceUnit        float64   `bson:"price_unit" json:"price_unit"`
	Discount         float64   `bson:"discount" json:"discount"`
	TaxIDs           []string  `bson:"tax_ids" json:"tax_ids"`
	PackParentLineID string    `bson:"pack_parent_line_id,omitempty" json:"pack_parent_line_id,omitempty"`
	PackDepth        int       `bson:"pack_depth" json:"pack_depth"`
	PackModifiable   bool      `bson:"pack_modifiable" json:"pack_modifiable"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// IsPackComponent reports whether the line was produced by a pack expansion.
func (l *OrderLine) IsPackComponent() bool {
	return l.PackParentLineID != ""
}

// Subtotal returns the untaxed amount of the line.
func (l *OrderLine) Subtotal() float64 {
	return RoundPrice(l.Quantity * l.PriceUnit * (1 - l.Discount/100))
}

// Clone returns a deep copy of the line.
func (l *OrderLine) Clone() *OrderLine {
	c := *l
	c.TaxIDs = slices.Clone(l.TaxIDs)
	return &c
}

// DocumentOrder arranges the lines of an order the way they are shown: by
// sequence, with every pack line directly followed by its components. Lines
// whose parent is not in the set are treated as root lines.
func DocumentOrder(lines []*OrderLine) []*OrderLine {
	sorted := slices.Clone(lines)
	slices.SortStableFunc(sorted, func(a, b *OrderLine) int {
		return cmp.Compare(a.Sequence, b.Sequence)
	})

	present := make(map[string]bool, len(sorted))
	for _, l := range sorted {
		present[l.ID] = true
	}
	children := make(map[string][]*OrderLine)
	var roots []*OrderLine
	for _, l := range sorted {
		if l.PackParentLineID != "" && present[l.PackParentLineID] {
			children[l.PackParentLineID] = append(children[l.PackParentLineID], l)
			continue
		}
		roots = append(roots, l)
	}

	out := make([]*OrderLine, 0, len(sorted))
	var walk func(l *OrderLine)
	walk = func(l *OrderLine) {
		out = append(out, l)
		for _, c := range children[l.ID] {
			walk(c)
		}
	}
	for _, l := range roots {
		walk(l)
	}
	return out
}

// FieldValue returns the current value of a field.
func (l *OrderLine) FieldValue(f Field) any {
	switch f {
	case FieldProduct:
		return l.ProductID
	case FieldQuantity:
		return l.Quantity
	case FieldUom:
		return l.UomID
	case FieldPriceUnit:
		return l.PriceUnit
	case FieldDiscount:
		return l.Discount
	case FieldName:
		return l.Name
	case FieldTaxes:
		return l.TaxIDs
	case FieldPackParent:
		return l.PackParentLineID
	case FieldPackDepth:
		return l.PackDepth
	case FieldPackModifiable:
		return l.PackModifiable
	default:
		return nil
	}
}

// ReconcileMode tells the expander how to treat existing component lines.
type ReconcileMode string

const (
	// ModeStructural writes every proposed value and creates missing components.
	ModeStructural ReconcileMode = "structural"
	// ModePriceRefresh only refreshes prices; quantities, discounts and the set
	// of components are left as they are.
	ModePriceRefresh ReconcileMode = "price_refresh"
)

// ModeFromFlags derives the mode from the price update flags of a request.
func ModeFromFlags(updatingPrices, updatingPricelist bool) ReconcileMode {
	if updatingPrices || updatingPricelist {
		return ModePriceRefresh
	}
	return ModeStructural
}

// SuppressesExpansion reports whether component quantities and creation are frozen.
func (m ReconcileMode) SuppressesExpansion() bool {
	return m == ModePriceRefresh
}

// Valid reports whether the mode is known.
func (m ReconcileMode) Valid() bool {
	return m == ModeStructural || m == ModePriceRefresh
}
