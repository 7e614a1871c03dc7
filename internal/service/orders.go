package service

import (
	"context"
	"strings"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/repository"
)

// OrderService provides sale order operations.
type OrderService interface {
	CreateOrder(ctx context.Context, name, partnerName, pricelistID string) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
}

// OrderServiceImpl implements OrderService.
type OrderServiceImpl struct {
	orders  repository.OrderRepositoryInterface
	catalog CatalogService
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepositoryInterface, catalog CatalogService) OrderService {
	return &OrderServiceImpl{
		orders:  orders,
		catalog: catalog,
	}
}

// CreateOrder opens an order. A pricelist, when given, must exist.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, name, partnerName, pricelistID string) (*model.Order, error) {
	if s.orders == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if pricelistID != "" {
		if _, err := s.catalog.GetPricelist(ctx, pricelistID); err != nil {
			return nil, err
		}
	}

	order := &model.Order{
		Name:        strings.TrimSpace(name),
		PartnerName: partnerName,
		PricelistID: pricelistID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns the order or ErrOrderNotFound.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	if s.orders == nil {
		return nil, ErrRepositoryNotConfigured
	}
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound, id)
	}
	return order, nil
}
