package service

import (
	"context"
	"fmt"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
)

// PricingService resolves product prices for sale lines.
type PricingService interface {
	// TemplatePrice returns the catalog price of the product. For packs priced
	// as a whole it is the discounted sum of the component prices.
	TemplatePrice(ctx context.Context, product *model.Product) (float64, error)
	// UnitPrice returns the unit price of the product under the pricelist.
	UnitPrice(ctx context.Context, product *model.Product, pricelist *model.Pricelist, quantity float64) (float64, error)
	// StandardDiscount returns the discount the pricelist shows for the product.
	StandardDiscount(ctx context.Context, product *model.Product, pricelist *model.Pricelist, quantity float64) (float64, error)
}

// PricingServiceImpl implements PricingService with catalog lookups.
type PricingServiceImpl struct {
	catalog CatalogService
}

// NewPricingService creates a pricing service reading components from the catalog.
func NewPricingService(catalog CatalogService) *PricingServiceImpl {
	return &PricingServiceImpl{catalog: catalog}
}

// TemplatePrice implements PricingService.
func (s *PricingServiceImpl) TemplatePrice(ctx context.Context, product *model.Product) (float64, error) {
	return s.templatePrice(ctx, product, make(map[string]bool))
}

func (s *PricingServiceImpl) templatePrice(ctx context.Context, product *model.Product, path map[string]bool) (float64, error) {
	if !product.IsPackToBeHandled() {
		return product.ListPrice, nil
	}
	if path[product.ID] {
		return 0, fmt.Errorf("%w: %s", ErrPackCycle, product.ID)
	}
	path[product.ID] = true
	defer delete(path, product.ID)

	var total float64
	for _, pl := range product.PackLines {
		component, err := s.catalog.GetProduct(ctx, pl.ProductID)
		if err != nil {
			return 0, fmt.Errorf("pack %s: %w", product.ID, err)
		}
		price, err := s.templatePrice(ctx, component, path)
		if err != nil {
			return 0, err
		}
		total += price * pl.Quantity * (1 - pl.SaleDiscount/100)
	}
	return model.RoundPrice(total), nil
}

// basePrice returns the price and quantity the pricelist resolves for a line.
// Packs priced as a whole are resolved once, at quantity 1.
func (s *PricingServiceImpl) basePrice(ctx context.Context, product *model.Product, quantity float64) (float64, float64, error) {
	if !product.IsPackToBeHandled() {
		return product.ListPrice, quantity, nil
	}
	price, err := s.TemplatePrice(ctx, product)
	if err != nil {
		return 0, 0, err
	}
	return price, 1.0, nil
}

// UnitPrice implements PricingService.
func (s *PricingServiceImpl) UnitPrice(ctx context.Context, product *model.Product, pricelist *model.Pricelist, quantity float64) (float64, error) {
	base, qty, err := s.basePrice(ctx, product, quantity)
	if err != nil {
		return 0, err
	}
	return pricelist.UnitPrice(product.ID, base, qty), nil
}

// StandardDiscount implements PricingService.
func (s *PricingServiceImpl) StandardDiscount(ctx context.Context, product *model.Product, pricelist *model.Pricelist, quantity float64) (float64, error) {
	base, qty, err := s.basePrice(ctx, product, quantity)
	if err != nil {
		return 0, err
	}
	return pricelist.Discount(product.ID, base, qty), nil
}
