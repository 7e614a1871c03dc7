package model

import (
	"errors"
	"fmt"
	"math"
)

// DiscountPolicy decides whether a pricelist rebate lowers the unit price or
// is shown as a line discount.
type DiscountPolicy string

const (
	// DiscountIncluded folds the rebate into the unit price.
	DiscountIncluded DiscountPolicy = "with_discount"
	// DiscountShown keeps the list price and reports the rebate as a discount.
	DiscountShown DiscountPolicy = "without_discount"
)

// AppliedOn selects the products a pricelist rule matches.
type AppliedOn string

const (
	AppliedOnGlobal  AppliedOn = "global"
	AppliedOnProduct AppliedOn = "product"
)

// ComputePrice selects how a pricelist rule derives a price.
type ComputePrice string

const (
	ComputeFixed      ComputePrice = "fixed"
	ComputePercentage ComputePrice = "percentage"
)

// ErrInvalidPricelist is returned when a pricelist fails validation.
var ErrInvalidPricelist = errors.New("invalid pricelist")

// PricelistItem is a single pricing rule.
type PricelistItem struct {
	AppliedOn    AppliedOn    `bson:"applied_on" json:"applied_on" toml:"applied_on"`
	ProductID    string       `bson:"product_id,omitempty" json:"product_id,omitempty" toml:"product_id"`
	MinQuantity  float64      `bson:"min_quantity" json:"min_quantity" toml:"min_quantity"`
	ComputePrice ComputePrice `bson:"compute_price" json:"compute_price" toml:"compute_price"`
	FixedPrice   float64      `bson:"fixed_price,omitempty" json:"fixed_price,omitempty" toml:"fixed_price"`
	PercentPrice float64      `bson:"percent_price,omitempty" json:"percent_price,omitempty" toml:"percent_price"`
}

// Matches reports whether the rule applies to the product at the quantity.
func (i PricelistItem) Matches(productID string, quantity float64) bool {
	if quantity < i.MinQuantity {
		return false
	}
	switch i.AppliedOn {
	case AppliedOnProduct:
		return i.ProductID == productID
	case AppliedOnGlobal, "":
		return true
	default:
		return false
	}
}

// Apply returns the price the rule gives for the base price.
func (i PricelistItem) Apply(basePrice float64) float64 {
	switch i.ComputePrice {
	case ComputeFixed:
		return i.FixedPrice
	case ComputePercentage:
		return RoundPrice(basePrice * (1 - i.PercentPrice/100))
	default:
		return basePrice
	}
}

// Pricelist resolves product prices for an order.
type Pricelist struct {
	ID             string          `bson:"_id" json:"id" toml:"id"`
	Name           string          `bson:"name" json:"name" toml:"name"`
	DiscountPolicy DiscountPolicy  `bson:"discount_policy" json:"discount_policy" toml:"discount_policy"`
	Items          []PricelistItem `bson:"items,omitempty" json:"items,omitempty" toml:"items"`
}

// Rule returns the rule applying to the product at the quantity. Product rules
// take precedence over global ones; within a group the first match wins.
func (p *Pricelist) Rule(productID string, quantity float64) (PricelistItem, bool) {
	if p == nil {
		return PricelistItem{}, false
	}
	for _, item := range p.Items {
		if item.AppliedOn == AppliedOnProduct && item.Matches(productID, quantity) {
			return item, true
		}
	}
	for _, item := range p.Items {
		if item.AppliedOn != AppliedOnProduct && item.Matches(productID, quantity) {
			return item, true
		}
	}
	return PricelistItem{}, false
}

// ResolveProductPrice returns the rule price of the product, ignoring the
// discount policy.
func (p *Pricelist) ResolveProductPrice(productID string, basePrice, quantity float64) float64 {
	rule, ok := p.Rule(productID, quantity)
	if !ok {
		return basePrice
	}
	return rule.Apply(basePrice)
}

// UnitPrice returns the unit price a sale line gets under this pricelist.
func (p *Pricelist) UnitPrice(productID string, basePrice, quantity float64) float64 {
	if p == nil || p.DiscountPolicy == DiscountShown {
		return basePrice
	}
	return p.ResolveProductPrice(productID, basePrice, quantity)
}

// Discount returns the percentage shown as line discount. It is zero unless
// the policy shows rebates as discounts.
func (p *Pricelist) Discount(productID string, basePrice, quantity float64) float64 {
	if p == nil || p.DiscountPolicy != DiscountShown || basePrice <= 0 {
		return 0
	}
	price := p.ResolveProductPrice(productID, basePrice, quantity)
	if price >= basePrice {
		return 0
	}
	return RoundDiscount((basePrice - price) / basePrice * 100)
}

// Validate checks the pricelist rules.
func (p *Pricelist) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPricelist)
	}
	switch p.DiscountPolicy {
	case DiscountIncluded, DiscountShown:
	default:
		return fmt.Errorf("%w: unknown discount policy %q", ErrInvalidPricelist, p.DiscountPolicy)
	}
	for n, item := range p.Items {
		if item.AppliedOn == AppliedOnProduct && item.ProductID == "" {
			return fmt.Errorf("%w: rule %d needs a product", ErrInvalidPricelist, n)
		}
		switch item.ComputePrice {
		case ComputeFixed:
		case ComputePercentage:
			if item.PercentPrice < 0 || item.PercentPrice > 100 {
				return fmt.Errorf("%w: rule %d percentage out of range", ErrInvalidPricelist, n)
			}
		default:
			return fmt.Errorf("%w: rule %d has unknown compute %q", ErrInvalidPricelist, n, item.ComputePrice)
		}
	}
	return nil
}

// RoundPrice rounds a monetary amount to cents.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundDiscount rounds a discount percentage to two decimals.
func RoundDiscount(v float64) float64 {
	return math.Round(v*100) / 100
}
