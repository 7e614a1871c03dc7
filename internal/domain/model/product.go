// Package model provides domain models for the sale pack service.
package model

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// PackType controls how a pack product is represented on a sale order.
type PackType string

const (
	// PackTypeNonPack marks an ordinary product.
	PackTypeNonPack PackType = "non_pack"
	// PackTypeNonDetailed sells the pack as a single line.
	PackTypeNonDetailed PackType = "non_detailed"
	// PackTypeDetailed expands the pack into one component line per definition.
	PackTypeDetailed PackType = "detailed"
)

// PackComponentPrice controls where the price of a detailed pack is carried.
type PackComponentPrice string

const (
	// ComponentPriceDetailed prices every component line individually.
	ComponentPriceDetailed PackComponentPrice = "detailed"
	// ComponentPriceNonDetailed carries the whole price on the pack line.
	ComponentPriceNonDetailed PackComponentPrice = "non_detailed"
)

var (
	// ErrInvalidProduct is returned when a product fails validation.
	ErrInvalidProduct = errors.New("invalid product")
)

// PackLine defines one component of a pack product.
type PackLine struct {
	ProductID    string  `bson:"product_id" json:"product_id" toml:"product_id"`
	Quantity     float64 `bson:"quantity" json:"quantity" toml:"quantity"`
	SaleDiscount float64 `bson:"sale_discount" json:"sale_discount" toml:"sale_discount"`
}

// Product is a sellable catalog entry, optionally configured as a pack.
type Product struct {
	ID                 string             `bson:"_id" json:"id" toml:"id"`
	Name               string             `bson:"name" json:"name" toml:"name"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty" toml:"description"`
	ListPrice          float64            `bson:"list_price" json:"list_price" toml:"list_price"`
	TaxIDs             []string           `bson:"tax_ids,omitempty" json:"tax_ids,omitempty" toml:"tax_ids"`
	UomID              string             `bson:"uom_id" json:"uom_id" toml:"uom_id"`
	PackOK             bool               `bson:"pack_ok" json:"pack_ok" toml:"pack_ok"`
	PackType           PackType           `bson:"pack_type,omitempty" json:"pack_type,omitempty" toml:"pack_type"`
	PackComponentPrice PackComponentPrice `bson:"pack_component_price,omitempty" json:"pack_component_price,omitempty" toml:"pack_component_price"`
	PackModifiable     bool               `bson:"pack_modifiable" json:"pack_modifiable" toml:"pack_modifiable"`
	PackLines          []PackLine         `bson:"pack_lines,omitempty" json:"pack_lines,omitempty" toml:"pack_lines"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at" toml:"-"`
}

// EffectivePackType returns the pack type, treating non-pack products uniformly.
func (p *Product) EffectivePackType() PackType {
	if !p.PackOK || p.PackType == "" {
		return PackTypeNonPack
	}
	return p.PackType
}

// IsDetailedPack reports whether lines selling this product get component lines.
func (p *Product) IsDetailedPack() bool {
	return p.PackOK && p.PackType == PackTypeDetailed
}

// NeedsLineByLineCreate reports whether lines for this product must be created
// individually so their expansion can follow each parent.
func (p *Product) NeedsLineByLineCreate() bool {
	return p.PackOK && p.EffectivePackType() != PackTypeNonDetailed
}

// IsPackToBeHandled reports whether the price of the pack is computed from the
// template, that is a detailed pack whose components are not priced individually.
func (p *Product) IsPackToBeHandled() bool {
	return p.IsDetailedPack() && p.PackComponentPrice == ComponentPriceNonDetailed
}

// PackLineFor returns the component definition for the given product.
func (p *Product) PackLineFor(productID string) (PackLine, bool) {
	for _, pl := range p.PackLines {
		if pl.ProductID == productID {
			return pl, true
		}
	}
	return PackLine{}, false
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	c := *p
	c.TaxIDs = slices.Clone(p.TaxIDs)
	c.PackLines = slices.Clone(p.PackLines)
	return &c
}

// DisplayName returns the text used as the description of a sale line.
func (p *Product) DisplayName() string {
	if p.Description != "" {
		return p.Name + "\n" + p.Description
	}
	return p.Name
}

// Validate checks the product and its pack definitions.
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if p.ListPrice < 0 {
		return fmt.Errorf("%w: list price must not be negative", ErrInvalidProduct)
	}
	if !p.PackOK {
		if len(p.PackLines) > 0 {
			return fmt.Errorf("%w: pack lines require pack_ok", ErrInvalidProduct)
		}
		return nil
	}

	switch p.PackType {
	case PackTypeDetailed, PackTypeNonDetailed:
	default:
		return fmt.Errorf("%w: unknown pack type %q", ErrInvalidProduct, p.PackType)
	}
	if p.PackType == PackTypeDetailed {
		switch p.PackComponentPrice {
		case ComponentPriceDetailed, ComponentPriceNonDetailed:
		default:
			return fmt.Errorf("%w: unknown pack component price %q", ErrInvalidProduct, p.PackComponentPrice)
		}
	}
	if len(p.PackLines) == 0 {
		return fmt.Errorf("%w: pack %s has no components", ErrInvalidProduct, p.ID)
	}

	seen := make(map[string]struct{}, len(p.PackLines))
	for _, pl := range p.PackLines {
		if pl.ProductID == "" {
			return fmt.Errorf("%w: component product is required", ErrInvalidProduct)
		}
		if pl.ProductID == p.ID {
			return fmt.Errorf("%w: pack %s contains itself", ErrInvalidProduct, p.ID)
		}
		if _, dup := seen[pl.ProductID]; dup {
			return fmt.Errorf("%w: component %s listed twice", ErrInvalidProduct, pl.ProductID)
		}
		seen[pl.ProductID] = struct{}{}
		if pl.Quantity <= 0 {
			return fmt.Errorf("%w: component %s quantity must be positive", ErrInvalidProduct, pl.ProductID)
		}
		if pl.SaleDiscount < 0 || pl.SaleDiscount > 100 {
			return fmt.Errorf("%w: component %s discount out of range", ErrInvalidProduct, pl.ProductID)
		}
	}
	return nil
}
