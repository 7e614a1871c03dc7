//go:build !integration

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

type fixture struct {
	store   *repository.MemoryStore
	catalog *service.CatalogServiceImpl
	svc     *service.OrderLineServiceImpl
	order   *model.Order
}

func newFixture(t *testing.T, pricelists ...*model.Pricelist) *fixture {
	t.Helper()
	ctx := context.Background()

	store := repository.NewMemoryStore()
	catalog := service.NewCatalogService(store.Products(), store.Pricelists())
	for _, p := range catalogProducts() {
		require.NoError(t, catalog.UpsertProduct(ctx, p))
	}
	for _, pl := range pricelists {
		require.NoError(t, catalog.UpsertPricelist(ctx, pl))
	}

	order := &model.Order{Name: "SO001"}
	if len(pricelists) > 0 {
		order.PricelistID = pricelists[0].ID
	}
	require.NoError(t, store.Orders().Create(ctx, order))

	svc := service.NewOrderLineService(store.OrderLines(), store.Orders(), catalog, service.NewPricingService(catalog), store)
	return &fixture{store: store, catalog: catalog, svc: svc, order: order}
}

func (f *fixture) values(productID string, qty float64) model.LineValues {
	return model.LineValues{OrderID: f.order.ID, ProductID: model.Ptr(productID), Quantity: model.Ptr(qty)}
}

func (f *fixture) create(t *testing.T, values ...model.LineValues) []*model.OrderLine {
	t.Helper()
	lines, err := f.svc.Create(context.Background(), values, model.ModeStructural)
	require.NoError(t, err)
	return lines
}

func (f *fixture) children(t *testing.T, parentID string) []*model.OrderLine {
	t.Helper()
	lines, err := f.store.OrderLines().Children(context.Background(), parentID)
	require.NoError(t, err)
	return lines
}

func TestCreate_DetailedPackGetsOneChildPerDefinition(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, f.values("workstation", 2))

	require.Len(t, created, 4)
	parent := created[0]
	assert.Equal(t, []string{"workstation", "cpu", "ram", "ssd"}, productIDs(created))
	assert.Equal(t, []float64{2, 2, 4, 2}, quantities(created))
	for _, child := range created[1:] {
		assert.Equal(t, parent.ID, child.PackParentLineID)
		assert.Equal(t, 1, child.PackDepth)
		assert.False(t, child.PackModifiable)
		assert.Equal(t, []string{"vat21"}, child.TaxIDs)
		assert.Equal(t, "unit", child.UomID)
	}
	assert.Equal(t, "> CPU", created[1].Name)
	assert.Equal(t, 100.0, created[1].PriceUnit)
	assert.Equal(t, 500.0, parent.PriceUnit)
	assert.Equal(t, []string{"cpu", "ram", "ssd"}, productIDs(f.children(t, parent.ID)))
}

func TestCreate_NonDetailedPackHasNoChildren(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, f.values("kit", 3))

	require.Len(t, created, 1)
	assert.Empty(t, f.children(t, created[0].ID))
	assert.Equal(t, 120.0, created[0].PriceUnit)
}

func TestCreate_BatchKeepsChildrenAfterTheirParent(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, f.values("cpu", 1), f.values("workstation", 1), f.values("ssd", 1))

	lines, err := f.svc.ListLines(context.Background(), f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, productIDs(created), productIDs(lines))
	assert.Equal(t, []string{"cpu", "workstation", "cpu", "ram", "ssd", "ssd"}, productIDs(lines))
	for i := 1; i < len(lines); i++ {
		assert.Less(t, lines[i-1].Sequence, lines[i].Sequence)
	}
	assert.Equal(t, lines[1].ID, lines[2].PackParentLineID)
	assert.Empty(t, lines[5].PackParentLineID)
}

func TestCreate_FastPathWithoutPacks(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, f.values("cpu", 1), f.values("kit", 1))

	assert.Equal(t, []string{"cpu", "kit"}, productIDs(created))
}

func TestCreate_KeepsSuppliedValues(t *testing.T) {
	f := newFixture(t)
	v := f.values("cpu", 1)
	v.PriceUnit = model.Ptr(75.0)
	v.Name = model.Ptr("Custom CPU")

	created := f.create(t, v)

	assert.Equal(t, 75.0, created[0].PriceUnit)
	assert.Equal(t, "Custom CPU", created[0].Name)
	assert.Equal(t, []string{"vat21"}, created[0].TaxIDs)
}

func TestCreate_NestedPack(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, f.values("rack", 1))

	assert.Equal(t, []string{"rack", "workstation", "cpu", "ram", "ssd", "ssd"}, productIDs(created))
	assert.Equal(t, []float64{1, 2, 2, 4, 2, 1}, quantities(created))
	assert.Equal(t, "> > RAM", created[3].Name)
	assert.Equal(t, 2, created[3].PackDepth)
	assert.Equal(t, created[1].ID, created[3].PackParentLineID)
	assert.Equal(t, created[0].ID, created[5].PackParentLineID)
}

func TestCreate_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		values model.LineValues
		err    error
	}{
		{
			name:   "component line",
			values: model.LineValues{OrderID: f.order.ID, ProductID: model.Ptr("cpu"), PackParentLineID: model.Ptr("x")},
			err:    service.ErrChildLineCreation,
		},
		{
			name:   "unknown product",
			values: f.values("missing", 1),
			err:    service.ErrProductNotFound,
		},
		{
			name:   "unknown order",
			values: model.LineValues{OrderID: "missing", ProductID: model.Ptr("cpu")},
			err:    service.ErrOrderNotFound,
		},
		{
			name:   "no product",
			values: model.LineValues{OrderID: f.order.ID},
			err:    service.ErrProductRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, []model.LineValues{f.values("workstation", 1), tt.values}, model.ModeStructural)
			assert.ErrorIs(t, err, tt.err)

			lines, err := f.store.OrderLines().ListByOrder(ctx, f.order.ID)
			require.NoError(t, err)
			assert.Empty(t, lines, "failed create leaves no line behind")
		})
	}
}

func TestWrite_QuantityChangeReconcilesChildren(t *testing.T) {
	f := newFixture(t)
	parent := f.create(t, f.values("workstation", 2))[0]

	_, err := f.svc.Write(context.Background(), []string{parent.ID}, model.LineValues{Quantity: model.Ptr(3.0)}, model.ModeStructural)
	require.NoError(t, err)

	children := f.children(t, parent.ID)
	assert.Equal(t, []string{"cpu", "ram", "ssd"}, productIDs(children))
	assert.Equal(t, []float64{3, 6, 3}, quantities(children))
}

func TestWrite_PriceRefreshKeepsChildQuantities(t *testing.T) {
	f := newFixture(t)
	parent := f.create(t, f.values("workstation", 2))[0]

	_, err := f.svc.Write(context.Background(), []string{parent.ID}, model.LineValues{Quantity: model.Ptr(5.0)}, model.ModePriceRefresh)
	require.NoError(t, err)

	children := f.children(t, parent.ID)
	assert.Len(t, children, 3)
	assert.Equal(t, []float64{2, 4, 2}, quantities(children))
	assert.Equal(t, 15.0, children[1].Discount)

	got, err := f.svc.GetLine(context.Background(), parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Quantity)
}

func TestWrite_UnknownLine(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Write(context.Background(), []string{"missing"}, model.LineValues{Quantity: model.Ptr(1.0)}, model.ModeStructural)

	assert.ErrorIs(t, err, service.ErrLineNotFound)
}

func TestWrite_ProductChangeRecomputesFields(t *testing.T) {
	f := newFixture(t)
	line := f.create(t, f.values("cpu", 1))[0]

	lines, err := f.svc.Write(context.Background(), []string{line.ID}, model.LineValues{ProductID: model.Ptr("ssd")}, model.ModeStructural)
	require.NoError(t, err)

	assert.Equal(t, "SSD", lines[0].Name)
	assert.Equal(t, 80.0, lines[0].PriceUnit)
	stored, err := f.svc.GetLine(context.Background(), line.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, stored.PriceUnit)
}

func TestExpandPackLine_Reconcile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	parent := f.create(t, f.values("workstation", 1))[0]

	ws, err := f.catalog.GetProduct(ctx, "workstation")
	require.NoError(t, err)
	ws.PackLines = append(ws.PackLines, model.PackLine{ProductID: "kit", Quantity: 1})
	require.NoError(t, f.catalog.UpsertProduct(ctx, ws))

	res, err := f.svc.ExpandPackLine(ctx, parent, true, model.ModePriceRefresh)
	require.NoError(t, err)
	assert.Len(t, res.Updated, 3)
	assert.Empty(t, res.Created)
	assert.Equal(t, 1, res.Discarded)
	assert.Len(t, f.children(t, parent.ID), 3)

	res, err = f.svc.ExpandPackLine(ctx, parent, true, model.ModeStructural)
	require.NoError(t, err)
	assert.Len(t, res.Updated, 3)
	require.Len(t, res.Created, 1)
	assert.Equal(t, "kit", res.Created[0].ProductID)
	assert.Equal(t, []string{"cpu", "ram", "ssd", "kit"}, productIDs(f.children(t, parent.ID)))
}

func TestWrite_ReconcileAddedComponentStaysWithItsPack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	parent := f.create(t, f.values("workstation", 1), f.values("cpu", 1))[0]

	ws, err := f.catalog.GetProduct(ctx, "workstation")
	require.NoError(t, err)
	ws.PackLines = append(ws.PackLines, model.PackLine{ProductID: "kit", Quantity: 1})
	require.NoError(t, f.catalog.UpsertProduct(ctx, ws))

	_, err = f.svc.Write(ctx, []string{parent.ID}, model.LineValues{Quantity: model.Ptr(2.0)}, model.ModeStructural)
	require.NoError(t, err)

	lines, err := f.svc.ListLines(ctx, f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"workstation", "cpu", "ram", "ssd", "kit", "cpu"}, productIDs(lines))
	assert.Equal(t, parent.ID, lines[4].PackParentLineID)
	assert.Empty(t, lines[5].PackParentLineID)
	assert.Equal(t, 2.0, lines[4].Quantity)
}

func TestExpandPackLine_NotAPack(t *testing.T) {
	f := newFixture(t)
	line := f.create(t, f.values("cpu", 1))[0]

	res, err := f.svc.ExpandPackLine(context.Background(), line, false, model.ModeStructural)

	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Empty(t, res.Updated)
}

func TestUpdateLine_GuardsLockedComponents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, f.values("workstation", 1), f.values("bundle", 1))
	lockedChild := created[2]
	openChild := created[5]
	require.Equal(t, "ram", lockedChild.ProductID)
	require.True(t, openChild.PackModifiable)

	_, err := f.svc.UpdateLine(ctx, lockedChild.ID, model.LineValues{Discount: model.Ptr(50.0)}, model.ModeStructural)
	assert.ErrorIs(t, err, service.ErrModificationForbidden)

	stored, err := f.svc.GetLine(ctx, lockedChild.ID)
	require.NoError(t, err)
	assert.Equal(t, 15.0, stored.Discount)

	_, err = f.svc.Write(ctx, []string{lockedChild.ID}, model.LineValues{Discount: model.Ptr(50.0)}, model.ModeStructural)
	require.NoError(t, err)
	stored, err = f.svc.GetLine(ctx, lockedChild.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, stored.Discount)

	updated, err := f.svc.UpdateLine(ctx, openChild.ID, model.LineValues{Discount: model.Ptr(5.0)}, model.ModeStructural)
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Discount)

	updated, err = f.svc.UpdateLine(ctx, created[0].ID, model.LineValues{Discount: model.Ptr(5.0)}, model.ModeStructural)
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Discount)
}

func TestUpdateLine_UnchangedValuesPassTheGuard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	lockedChild := f.create(t, f.values("workstation", 1))[2]
	require.False(t, lockedChild.PackModifiable)

	tests := []struct {
		name    string
		values  model.LineValues
		wantErr error
	}{
		{name: "same discount", values: model.LineValues{Discount: model.Ptr(lockedChild.Discount)}},
		{name: "same quantity and name", values: model.LineValues{Quantity: model.Ptr(lockedChild.Quantity), Name: model.Ptr(lockedChild.Name)}},
		{name: "one changed value", values: model.LineValues{Discount: model.Ptr(lockedChild.Discount), Quantity: model.Ptr(9.0)}, wantErr: service.ErrModificationForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.PreviewLine(ctx, lockedChild.ID, tt.values)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			updated, err := f.svc.UpdateLine(ctx, lockedChild.ID, tt.values, model.ModeStructural)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, lockedChild.Discount, updated.Discount)
			assert.Equal(t, lockedChild.Quantity, updated.Quantity)
		})
	}
}

func TestCheckPackLineModify(t *testing.T) {
	f := newFixture(t)
	lockedChild := f.create(t, f.values("workstation", 1))[1]

	tests := []struct {
		name    string
		fields  []model.Field
		wantErr error
	}{
		{name: "guarded field", fields: []model.Field{model.FieldQuantity}, wantErr: service.ErrModificationForbidden},
		{name: "description", fields: []model.Field{model.FieldName}, wantErr: service.ErrModificationForbidden},
		{name: "unguarded field", fields: []model.Field{model.FieldPackDepth}},
		{name: "nothing", fields: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.CheckPackLineModify(context.Background(), lockedChild.ID, tt.fields)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPreviewLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created := f.create(t, f.values("workstation", 1), f.values("cpu", 1))

	_, err := f.svc.PreviewLine(ctx, created[1].ID, model.LineValues{Quantity: model.Ptr(3.0)})
	assert.ErrorIs(t, err, service.ErrModificationForbidden)

	preview, err := f.svc.PreviewLine(ctx, created[4].ID, model.LineValues{ProductID: model.Ptr("ssd")})
	require.NoError(t, err)
	assert.Equal(t, 80.0, preview.PriceUnit)
	assert.Equal(t, "SSD", preview.Name)

	stored, err := f.svc.GetLine(ctx, created[4].ID)
	require.NoError(t, err)
	assert.Equal(t, "cpu", stored.ProductID, "preview does not save")
}

func TestComponentDiscount(t *testing.T) {
	ctx := context.Background()

	t.Run("definition discount", func(t *testing.T) {
		f := newFixture(t)
		ram := f.create(t, f.values("workstation", 1))[2]

		assert.Equal(t, 15.0, ram.Discount)
		d, err := f.svc.PackLineDiscount(ctx, ram)
		require.NoError(t, err)
		assert.Equal(t, 15.0, d)
	})

	t.Run("pricelist discount does not reach components", func(t *testing.T) {
		f := newFixture(t, &model.Pricelist{
			ID:             "shown",
			DiscountPolicy: model.DiscountShown,
			Items:          []model.PricelistItem{{AppliedOn: model.AppliedOnGlobal, ComputePrice: model.ComputePercentage, PercentPrice: 10}},
		})
		created := f.create(t, f.values("workstation", 1))
		parent, cpu, ram := created[0], created[1], created[2]

		assert.Equal(t, 10.0, parent.Discount)
		assert.Equal(t, 0.0, cpu.Discount)
		assert.Equal(t, 15.0, ram.Discount)
		assert.Equal(t, 50.0, ram.PriceUnit)
		d, err := f.svc.PackLineDiscount(ctx, ram)
		require.NoError(t, err)
		assert.Equal(t, d, ram.Discount)

		_, err = f.svc.Write(ctx, []string{parent.ID}, model.LineValues{Quantity: model.Ptr(2.0)}, model.ModeStructural)
		require.NoError(t, err)
		stored, err := f.svc.GetLine(ctx, ram.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.0, stored.Quantity)
		assert.Equal(t, 15.0, stored.Discount, "after parent quantity edit")

		_, err = f.svc.Write(ctx, []string{ram.ID}, model.LineValues{Quantity: model.Ptr(5.0)}, model.ModeStructural)
		require.NoError(t, err)
		stored, err = f.svc.GetLine(ctx, ram.ID)
		require.NoError(t, err)
		assert.Equal(t, 15.0, stored.Discount, "after component quantity edit")
	})

	t.Run("pack priced as a whole", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, f.values("bundle", 1))

		for _, child := range created[1:] {
			assert.Equal(t, 0.0, child.PriceUnit)
			assert.Equal(t, 0.0, child.Discount)
			d, err := f.svc.PackLineDiscount(ctx, child)
			require.NoError(t, err)
			assert.Equal(t, 0.0, d)
		}
	})

	t.Run("root line", func(t *testing.T) {
		f := newFixture(t)
		d, err := f.svc.PackLineDiscount(ctx, &model.OrderLine{ProductID: "cpu"})
		require.NoError(t, err)
		assert.Equal(t, 0.0, d)
	})
}

func TestPricelistPrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &model.Pricelist{
		ID:             "volume",
		DiscountPolicy: model.DiscountIncluded,
		Items: []model.PricelistItem{
			{AppliedOn: model.AppliedOnGlobal, MinQuantity: 2, ComputePrice: model.ComputePercentage, PercentPrice: 10},
		},
	})

	tests := []struct {
		name    string
		product string
		qty     float64
		want    float64
	}{
		{name: "template price at quantity one", product: "bundle", qty: 5, want: 140},
		{name: "list price at line quantity", product: "cpu", qty: 5, want: 90},
		{name: "below rule quantity", product: "cpu", qty: 1, want: 100},
		{name: "detailed pack uses its own price", product: "workstation", qty: 2, want: 450},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := f.svc.PricelistPrice(ctx, &model.OrderLine{OrderID: f.order.ID, ProductID: tt.product, Quantity: tt.qty})
			require.NoError(t, err)
			assert.Equal(t, tt.want, price)
		})
	}
}

func TestOpenParentPackProducts(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, f.values("workstation", 1), f.values("bundle", 1), f.values("cpu", 1))

	action, err := f.svc.OpenParentPackProducts(context.Background(), []string{created[1].ID, created[2].ID, created[5].ID, created[7].ID})
	require.NoError(t, err)

	assert.Equal(t, "Parent Product", action.Name)
	assert.Equal(t, "product", action.Model)
	assert.Equal(t, "tree,form", action.ViewMode)
	assert.Equal(t, []string{"workstation", "bundle"}, action.IDs)

	_, err = f.svc.OpenParentPackProducts(context.Background(), []string{"missing"})
	assert.ErrorIs(t, err, service.ErrLineNotFound)
}

func TestUpdatePrices(t *testing.T) {
	ctx := context.Background()
	reseller := &model.Pricelist{
		ID:             "reseller",
		DiscountPolicy: model.DiscountIncluded,
		Items:          []model.PricelistItem{{AppliedOn: model.AppliedOnGlobal, ComputePrice: model.ComputePercentage, PercentPrice: 20}},
	}
	f := newFixture(t)
	require.NoError(t, f.catalog.UpsertPricelist(ctx, reseller))
	created := f.create(t, f.values("workstation", 1), f.values("cpu", 2))

	child := created[2]
	_, err := f.svc.Write(ctx, []string{child.ID}, model.LineValues{Quantity: model.Ptr(7.0)}, model.ModeStructural)
	require.NoError(t, err)

	order, lines, err := f.svc.UpdatePrices(ctx, f.order.ID, "reseller")
	require.NoError(t, err)

	assert.Equal(t, "reseller", order.PricelistID)
	require.Len(t, lines, 5)
	assert.Equal(t, 400.0, lines[0].PriceUnit)
	assert.Equal(t, 80.0, lines[1].PriceUnit)
	assert.Equal(t, 40.0, lines[2].PriceUnit)
	assert.Equal(t, 7.0, lines[2].Quantity, "price refresh keeps component quantities")
	assert.Equal(t, 15.0, lines[2].Discount)
	assert.Equal(t, 80.0, lines[4].PriceUnit)

	_, _, err = f.svc.UpdatePrices(ctx, f.order.ID, "missing")
	assert.ErrorIs(t, err, service.ErrPricelistNotFound)
}

func TestListLines_UnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListLines(context.Background(), "missing")

	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}
