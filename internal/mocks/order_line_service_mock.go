// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/service"
)

type MockOrderLineService struct {
	mock.Mock
}

// NewMockOrderLineService creates a mock whose expectations are asserted when the test ends.
func NewMockOrderLineService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderLineService {
	m := &MockOrderLineService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOrderLineService) Create(ctx context.Context, values []model.LineValues, mode model.ReconcileMode) ([]*model.OrderLine, error) {
	args := m.Called(ctx, values, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.OrderLine), args.Error(1)
}

func (m *MockOrderLineService) Write(ctx context.Context, ids []string, values model.LineValues, mode model.ReconcileMode) ([]*model.OrderLine, error) {
	args := m.Called(ctx, ids, values, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.OrderLine), args.Error(1)
}

func (m *MockOrderLineService) UpdateLine(ctx context.Context, id string, values model.LineValues, mode model.ReconcileMode) (*model.OrderLine, error) {
	args := m.Called(ctx, id, values, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderLine), args.Error(1)
}

func (m *MockOrderLineService) PreviewLine(ctx context.Context, id string, values model.LineValues) (*model.OrderLine, error) {
	args := m.Called(ctx, id, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderLine), args.Error(1)
}

func (m *MockOrderLineService) CheckPackLineModify(ctx context.Context, lineID string, changed []model.Field) error {
	args := m.Called(ctx, lineID, changed)
	return args.Error(0)
}

func (m *MockOrderLineService) ExpandPackLine(ctx context.Context, line *model.OrderLine, reconcile bool, mode model.ReconcileMode) (*service.ExpansionResult, error) {
	args := m.Called(ctx, line, reconcile, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExpansionResult), args.Error(1)
}

func (m *MockOrderLineService) PricelistPrice(ctx context.Context, line *model.OrderLine) (float64, error) {
	args := m.Called(ctx, line)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockOrderLineService) PackLineDiscount(ctx context.Context, line *model.OrderLine) (float64, error) {
	args := m.Called(ctx, line)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockOrderLineService) OpenParentPackProducts(ctx context.Context, lineIDs []string) (*model.ViewAction, error) {
	args := m.Called(ctx, lineIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ViewAction), args.Error(1)
}

func (m *MockOrderLineService) UpdatePrices(ctx context.Context, orderID, pricelistID string) (*model.Order, []*model.OrderLine, error) {
	args := m.Called(ctx, orderID, pricelistID)
	var order *model.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*model.Order)
	}
	var lines []*model.OrderLine
	if args.Get(1) != nil {
		lines = args.Get(1).([]*model.OrderLine)
	}
	return order, lines, args.Error(2)
}

func (m *MockOrderLineService) GetLine(ctx context.Context, id string) (*model.OrderLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderLine), args.Error(1)
}

func (m *MockOrderLineService) ListLines(ctx context.Context, orderID string) ([]*model.OrderLine, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.OrderLine), args.Error(1)
}
