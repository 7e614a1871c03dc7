//go:build integration

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/repository"
	"github.com/guttosm/sale-pack-service/internal/service"
)

func newMongoLineService(t *testing.T) (service.OrderLineService, *model.Order) {
	t.Helper()
	ctx := context.Background()
	db := setupTestDB(t)

	catalog := service.NewCatalogService(repository.NewProductRepository(db), repository.NewPricelistRepository(db))
	for _, p := range catalogProducts() {
		require.NoError(t, catalog.UpsertProduct(ctx, p))
	}
	orders := repository.NewOrderRepository(db)
	order := &model.Order{Name: "SO-IT"}
	require.NoError(t, orders.Create(ctx, order))

	svc := service.NewOrderLineService(
		repository.NewOrderLineRepository(db),
		orders,
		catalog,
		service.NewPricingService(catalog),
		repository.NewMongoTransactor(db, true),
	)
	return svc, order
}

func TestOrderLineService_MongoExpansion(t *testing.T) {
	ctx := context.Background()
	svc, order := newMongoLineService(t)
	values := func(productID string, qty float64) model.LineValues {
		return model.LineValues{OrderID: order.ID, ProductID: model.Ptr(productID), Quantity: model.Ptr(qty)}
	}

	created, err := svc.Create(ctx, []model.LineValues{values("cpu", 1), values("workstation", 2)}, model.ModeStructural)
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu", "workstation", "cpu", "ram", "ssd"}, productIDs(created))

	parent := created[1]
	_, err = svc.Write(ctx, []string{parent.ID}, model.LineValues{Quantity: model.Ptr(3.0)}, model.ModeStructural)
	require.NoError(t, err)

	lines, err := svc.ListLines(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 3, 6, 3}, quantities(lines))
	assert.Equal(t, 15.0, lines[3].Discount)

	_, err = svc.UpdateLine(ctx, lines[3].ID, model.LineValues{Discount: model.Ptr(0.0)}, model.ModeStructural)
	assert.ErrorIs(t, err, service.ErrModificationForbidden)
}

func TestOrderLineService_MongoRollback(t *testing.T) {
	ctx := context.Background()
	svc, order := newMongoLineService(t)

	_, err := svc.Create(ctx, []model.LineValues{
		{OrderID: order.ID, ProductID: model.Ptr("workstation"), Quantity: model.Ptr(1.0)},
		{OrderID: order.ID, ProductID: model.Ptr("ghost")},
	}, model.ModeStructural)
	require.ErrorIs(t, err, service.ErrProductNotFound)

	lines, err := svc.ListLines(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
