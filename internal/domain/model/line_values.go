package model

import "slices"

// LineValues is a partial set of order line values. A nil pointer means the
// field is not part of the values.
type LineValues struct {
	OrderID          string    `json:"order_id,omitempty"`
	ProductID        *string   `json:"product_id,omitempty"`
	Quantity         *float64  `json:"quantity,omitempty"`
	UomID            *string   `json:"uom_id,omitempty"`
	PriceUnit        *float64  `json:"price_unit,omitempty"`
	Discount         *float64  `json:"discount,omitempty"`
	Name             *string   `json:"name,omitempty"`
	TaxIDs           *[]string `json:"tax_ids,omitempty"`
	PackParentLineID *string   `json:"pack_parent_line_id,omitempty"`
	PackDepth        *int      `json:"pack_depth,omitempty"`
	PackModifiable   *bool     `json:"pack_modifiable,omitempty"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Has reports whether the field is set.
func (v LineValues) Has(f Field) bool {
	switch f {
	case FieldProduct:
		return v.ProductID != nil
	case FieldQuantity:
		return v.Quantity != nil
	case FieldUom:
		return v.UomID != nil
	case FieldPriceUnit:
		return v.PriceUnit != nil
	case FieldDiscount:
		return v.Discount != nil
	case FieldName:
		return v.Name != nil
	case FieldTaxes:
		return v.TaxIDs != nil
	case FieldPackParent:
		return v.PackParentLineID != nil
	case FieldPackDepth:
		return v.PackDepth != nil
	case FieldPackModifiable:
		return v.PackModifiable != nil
	default:
		return false
	}
}

var allFields = []Field{
	FieldProduct,
	FieldQuantity,
	FieldUom,
	FieldPriceUnit,
	FieldDiscount,
	FieldName,
	FieldTaxes,
	FieldPackParent,
	FieldPackDepth,
	FieldPackModifiable,
}

// Fields returns the set fields in a stable order.
func (v LineValues) Fields() []Field {
	fields := make([]Field, 0, len(allFields))
	for _, f := range allFields {
		if v.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// HasAny reports whether any of the fields is set.
func (v LineValues) HasAny(fields ...Field) bool {
	for _, f := range fields {
		if v.Has(f) {
			return true
		}
	}
	return false
}

// Without returns a copy of the values with the given fields removed.
func (v LineValues) Without(fields ...Field) LineValues {
	for _, f := range fields {
		switch f {
		case FieldProduct:
			v.ProductID = nil
		case FieldQuantity:
			v.Quantity = nil
		case FieldUom:
			v.UomID = nil
		case FieldPriceUnit:
			v.PriceUnit = nil
		case FieldDiscount:
			v.Discount = nil
		case FieldName:
			v.Name = nil
		case FieldTaxes:
			v.TaxIDs = nil
		case FieldPackParent:
			v.PackParentLineID = nil
		case FieldPackDepth:
			v.PackDepth = nil
		case FieldPackModifiable:
			v.PackModifiable = nil
		}
	}
	return v
}

// Only returns a copy of the values keeping just the given fields.
func (v LineValues) Only(fields ...Field) LineValues {
	drop := make([]Field, 0, len(allFields))
	for _, f := range allFields {
		if !slices.Contains(fields, f) {
			drop = append(drop, f)
		}
	}
	return v.Without(drop...)
}

// NewLine builds an unsaved line from the values.
func (v LineValues) NewLine() *OrderLine {
	line := &OrderLine{OrderID: v.OrderID}
	v.ApplyTo(line)
	return line
}

// ApplyTo copies the set fields onto the line and returns a tracker holding
// the fields whose value actually changed.
func (v LineValues) ApplyTo(line *OrderLine) *ChangeTracker {
	ct := NewChangeTracker()
	if v.ProductID != nil && line.ProductID != *v.ProductID {
		line.ProductID = *v.ProductID
		ct.MarkDirty(FieldProduct)
	}
	if v.Quantity != nil && line.Quantity != *v.Quantity {
		line.Quantity = *v.Quantity
		ct.MarkDirty(FieldQuantity)
	}
	if v.UomID != nil && line.UomID != *v.UomID {
		line.UomID = *v.UomID
		ct.MarkDirty(FieldUom)
	}
	if v.PriceUnit != nil && line.PriceUnit != *v.PriceUnit {
		line.PriceUnit = *v.PriceUnit
		ct.MarkDirty(FieldPriceUnit)
	}
	if v.Discount != nil && line.Discount != *v.Discount {
		line.Discount = *v.Discount
		ct.MarkDirty(FieldDiscount)
	}
	if v.Name != nil && line.Name != *v.Name {
		line.Name = *v.Name
		ct.MarkDirty(FieldName)
	}
	if v.TaxIDs != nil && !slices.Equal(line.TaxIDs, *v.TaxIDs) {
		line.TaxIDs = slices.Clone(*v.TaxIDs)
		ct.MarkDirty(FieldTaxes)
	}
	if v.PackParentLineID != nil && line.PackParentLineID != *v.PackParentLineID {
		line.PackParentLineID = *v.PackParentLineID
		ct.MarkDirty(FieldPackParent)
	}
	if v.PackDepth != nil && line.PackDepth != *v.PackDepth {
		line.PackDepth = *v.PackDepth
		ct.MarkDirty(FieldPackDepth)
	}
	if v.PackModifiable != nil && line.PackModifiable != *v.PackModifiable {
		line.PackModifiable = *v.PackModifiable
		ct.MarkDirty(FieldPackModifiable)
	}
	return ct
}

// ValuesFromLine reads the given fields of a line into values.
func ValuesFromLine(line *OrderLine, fields ...Field) LineValues {
	v := LineValues{OrderID: line.OrderID}
	for _, f := range fields {
		switch f {
		case FieldProduct:
			v.ProductID = Ptr(line.ProductID)
		case FieldQuantity:
			v.Quantity = Ptr(line.Quantity)
		case FieldUom:
			v.UomID = Ptr(line.UomID)
		case FieldPriceUnit:
			v.PriceUnit = Ptr(line.PriceUnit)
		case FieldDiscount:
			v.Discount = Ptr(line.Discount)
		case FieldName:
			v.Name = Ptr(line.Name)
		case FieldTaxes:
			v.TaxIDs = Ptr(slices.Clone(line.TaxIDs))
		case FieldPackParent:
			v.PackParentLineID = Ptr(line.PackParentLineID)
		case FieldPackDepth:
			v.PackDepth = Ptr(line.PackDepth)
		case FieldPackModifiable:
			v.PackModifiable = Ptr(line.PackModifiable)
		}
	}
	return v
}
