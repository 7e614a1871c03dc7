package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/logger"
	"github.com/guttosm/sale-pack-service/internal/metrics"
	"github.com/guttosm/sale-pack-service/internal/repository"
)

// OrderLineService provides the order line lifecycle, including pack expansion.
type OrderLineService interface {
	// Create stores new root lines and expands the detailed packs among them.
	Create(ctx context.Context, values []model.LineValues, mode model.ReconcileMode) ([]*model.OrderLine, error)
	// Write applies the values to every line and reconciles pack components
	// when the product or quantity was written.
	Write(ctx context.Context, ids []string, values model.LineValues, mode model.ReconcileMode) ([]*model.OrderLine, error)
	// UpdateLine is the user edit of a line: the modification guard runs
	// before the write.
	UpdateLine(ctx context.Context, id string, values model.LineValues, mode model.ReconcileMode) (*model.OrderLine, error)
	// PreviewLine checks an edit and returns the line as it would be saved.
	PreviewLine(ctx context.Context, id string, values model.LineValues) (*model.OrderLine, error)
	CheckPackLineModify(ctx context.Context, lineID string, changed []model.Field) error
	ExpandPackLine(ctx context.Context, line *model.OrderLine, reconcile bool, mode model.ReconcileMode) (*ExpansionResult, error)
	PricelistPrice(ctx context.Context, line *model.OrderLine) (float64, error)
	PackLineDiscount(ctx context.Context, line *model.OrderLine) (float64, error)
	OpenParentPackProducts(ctx context.Context, lineIDs []string) (*model.ViewAction, error)
	// UpdatePrices refreshes the prices of an order, optionally switching its
	// pricelist first. Pack components keep their quantities and discounts.
	UpdatePrices(ctx context.Context, orderID, pricelistID string) (*model.Order, []*model.OrderLine, error)
	GetLine(ctx context.Context, id string) (*model.OrderLine, error)
	ListLines(ctx context.Context, orderID string) ([]*model.OrderLine, error)
}

// OrderLineServiceImpl implements OrderLineService.
type OrderLineServiceImpl struct {
	lines    repository.OrderLineRepositoryInterface
	orders   repository.OrderRepositoryInterface
	catalog  CatalogService
	pricing  PricingService
	tx       repository.Transactor
	registry *ComputeRegistry
}

// NewOrderLineService creates the order line service and registers the
// computed line fields.
func NewOrderLineService(
	lines repository.OrderLineRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	catalog CatalogService,
	pricing PricingService,
	tx repository.Transactor,
) *OrderLineServiceImpl {
	s := &OrderLineServiceImpl{
		lines:    lines,
		orders:   orders,
		catalog:  catalog,
		pricing:  pricing,
		tx:       tx,
		registry: NewComputeRegistry(),
	}
	s.registerComputes()
	return s
}

// Registry returns the computed field declarations of order lines.
func (s *OrderLineServiceImpl) Registry() *ComputeRegistry {
	return s.registry
}

func (s *OrderLineServiceImpl) registerComputes() {
	r := s.registry
	r.Register(model.FieldName, s.computeName, model.FieldProduct)
	r.Register(model.FieldTaxes, s.computeTaxes, model.FieldProduct)
	r.Register(model.FieldUom, s.computeUom, model.FieldProduct)
	r.Register(model.FieldPriceUnit, s.computePriceUnit, model.FieldProduct, model.FieldUom, model.FieldQuantity)
	r.Register(model.FieldDiscount, s.computeDiscount, model.FieldProduct, model.FieldUom, model.FieldQuantity)
}

func (s *OrderLineServiceImpl) computeName(ctx context.Context, line *model.OrderLine) (model.LineValues, error) {
	product, err := s.catalog.GetProduct(ctx, line.ProductID)
	if err != nil {
		return model.LineValues{}, err
	}
	name := product.DisplayName()
	if line.IsPackComponent() {
		name = componentPrefix(line.PackDepth) + name
	}
	return model.LineValues{Name: model.Ptr(name)}, nil
}

func (s *OrderLineServiceImpl) computeTaxes(ctx context.Context, line *model.OrderLine) (model.LineValues, error) {
	product, err := s.catalog.GetProduct(ctx, line.ProductID)
	if err != nil {
		return model.LineValues{}, err
	}
	return model.LineValues{TaxIDs: model.Ptr(slices.Clone(product.TaxIDs))}, nil
}

func (s *OrderLineServiceImpl) computeUom(ctx context.Context, line *model.OrderLine) (model.LineValues, error) {
	product, err := s.catalog.GetProduct(ctx, line.ProductID)
	if err != nil {
		return model.LineValues{}, err
	}
	return model.LineValues{UomID: model.Ptr(product.UomID)}, nil
}

// computePriceUnit leaves component lines alone; their price belongs to the expansion.
func (s *OrderLineServiceImpl) computePriceUnit(ctx context.Context, line *model.OrderLine) (model.LineValues, error) {
	if line.IsPackComponent() {
		return model.LineValues{}, nil
	}
	price, err := s.PricelistPrice(ctx, line)
	if err != nil {
		return model.LineValues{}, err
	}
	return model.LineValues{PriceUnit: model.Ptr(price)}, nil
}

func (s *OrderLineServiceImpl) computeDiscount(ctx context.Context, line *model.OrderLine) (model.LineValues, error) {
	var (
		discount float64
		err      error
	)
	if line.IsPackComponent() {
		discount, err = s.PackLineDiscount(ctx, line)
	} else {
		discount, err = s.standardDiscount(ctx, line)
	}
	if err != nil {
		return model.LineValues{}, err
	}
	return model.LineValues{Discount: model.Ptr(discount)}, nil
}

func componentPrefix(depth int) string {
	return strings.Repeat("> ", depth)
}

// Create implements OrderLineService.
func (s *OrderLineServiceImpl) Create(ctx context.Context, values []model.LineValues, mode model.ReconcileMode) ([]*model.OrderLine, error) {
	for _, v := range values {
		if v.PackParentLineID != nil && *v.PackParentLineID != "" {
			return nil, ErrChildLineCreation
		}
	}

	var created []*model.OrderLine
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		checked := make(map[string]bool)
		for _, v := range values {
			if checked[v.OrderID] {
				continue
			}
			if _, err := s.getOrder(ctx, v.OrderID); err != nil {
				return err
			}
			checked[v.OrderID] = true
		}

		var err error
		created, err = s.create(ctx, values, mode)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// create stores the lines. When a product needs it the lines are stored one
// at a time, each pack directly followed by its components; otherwise they
// are stored in one batch.
func (s *OrderLineServiceImpl) create(ctx context.Context, values []model.LineValues, mode model.ReconcileMode) ([]*model.OrderLine, error) {
	lines := make([]*model.OrderLine, len(values))
	products := make([]*model.Product, len(values))
	lineByLine := false

	for i, v := range values {
		if v.ProductID == nil || *v.ProductID == "" {
			return nil, ErrProductRequired
		}
		product, err := s.catalog.GetProduct(ctx, *v.ProductID)
		if err != nil {
			return nil, err
		}
		products[i] = product
		if product.NeedsLineByLineCreate() {
			lineByLine = true
		}

		line := v.NewLine()
		if _, err := s.registry.ComputeMissing(ctx, line, v); err != nil {
			return nil, err
		}
		lines[i] = line
	}

	if !lineByLine {
		if err := s.lines.CreateMany(ctx, lines); err != nil {
			return nil, fmt.Errorf("create order lines: %w", err)
		}
		return lines, nil
	}

	out := make([]*model.OrderLine, 0, len(lines))
	for i, line := range lines {
		if err := s.lines.CreateMany(ctx, []*model.OrderLine{line}); err != nil {
			return nil, fmt.Errorf("create order line: %w", err)
		}
		out = append(out, line)

		if !products[i].IsDetailedPack() {
			continue
		}
		res, err := s.expand(ctx, line, products[i], false, mode)
		if err != nil {
			return nil, err
		}
		out = append(out, res.Created...)
	}
	return out, nil
}

// Write implements OrderLineService.
func (s *OrderLineServiceImpl) Write(ctx context.Context, ids []string, values model.LineValues, mode model.ReconcileMode) ([]*model.OrderLine, error) {
	var lines []*model.OrderLine
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		lines, err = s.lines.GetMany(ctx, ids)
		if err != nil {
			return notFound(err, ErrLineNotFound, strings.Join(ids, ","))
		}
		return s.write(ctx, lines, values, mode)
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// write persists the values and the fields recomputed from them. Lines whose
// product or quantity was written get their components reconciled.
func (s *OrderLineServiceImpl) write(ctx context.Context, lines []*model.OrderLine, values model.LineValues, mode model.ReconcileMode) error {
	for _, line := range lines {
		changed := values.ApplyTo(line).DirtyFields()
		if len(changed) == 0 {
			continue
		}
		recomputed, err := s.registry.Recompute(ctx, line, changed, values)
		if err != nil {
			return err
		}
		if err := s.lines.Update(ctx, line, append(changed, recomputed...)); err != nil {
			return notFound(err, ErrLineNotFound, line.ID)
		}
	}

	if !values.HasAny(model.FieldProduct, model.FieldQuantity) {
		return nil
	}
	for _, line := range lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if !product.IsDetailedPack() {
			continue
		}
		if _, err := s.expand(ctx, line, product, true, mode); err != nil {
			return err
		}
	}
	return nil
}

// UpdateLine implements OrderLineService. Only values that differ from the
// stored line count as a modification.
func (s *OrderLineServiceImpl) UpdateLine(ctx context.Context, id string, values model.LineValues, mode model.ReconcileMode) (*model.OrderLine, error) {
	line, err := s.GetLine(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.CheckPackLineModify(ctx, id, values.ApplyTo(line).DirtyFields()); err != nil {
		return nil, err
	}
	lines, err := s.Write(ctx, []string{id}, values, mode)
	if err != nil {
		return nil, err
	}
	return lines[0], nil
}

// PreviewLine implements OrderLineService.
func (s *OrderLineServiceImpl) PreviewLine(ctx context.Context, id string, values model.LineValues) (*model.OrderLine, error) {
	line, err := s.GetLine(ctx, id)
	if err != nil {
		return nil, err
	}
	changed := values.ApplyTo(line).DirtyFields()
	if err := s.CheckPackLineModify(ctx, id, changed); err != nil {
		return nil, err
	}
	if _, err := s.registry.Recompute(ctx, line, changed, values); err != nil {
		return nil, err
	}
	return line, nil
}

// CheckPackLineModify rejects a change of guarded fields on a component line
// of a pack that is not modifiable.
func (s *OrderLineServiceImpl) CheckPackLineModify(ctx context.Context, lineID string, changed []model.Field) error {
	guarded := slices.ContainsFunc(changed, func(f model.Field) bool {
		return slices.Contains(model.PackGuardedFields, f)
	})
	if !guarded {
		return nil
	}

	line, err := s.GetLine(ctx, lineID)
	if err != nil {
		return err
	}
	if !line.IsPackComponent() || line.PackModifiable {
		return nil
	}

	metrics.RecordPackLineModifyRejected()
	l := logger.ForLine(line.OrderID, line.ID)
	l.Warn().
		Str("pack_parent_line_id", line.PackParentLineID).
		Interface("fields", changed).
		Msg("Rejected modification of pack component line")
	return fmt.Errorf("%w: line %s", ErrModificationForbidden, line.ID)
}

// ExpandPackLine implements OrderLineService.
func (s *OrderLineServiceImpl) ExpandPackLine(ctx context.Context, line *model.OrderLine, reconcile bool, mode model.ReconcileMode) (*ExpansionResult, error) {
	var res ExpansionResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.GetLine(ctx, line.ID)
		if err != nil {
			return err
		}
		product, err := s.catalog.GetProduct(ctx, current.ProductID)
		if err != nil {
			return err
		}
		res, err = s.expand(ctx, current, product, reconcile, mode)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// PricelistPrice returns the unit price of the line under its order pricelist.
func (s *OrderLineServiceImpl) PricelistPrice(ctx context.Context, line *model.OrderLine) (float64, error) {
	product, err := s.catalog.GetProduct(ctx, line.ProductID)
	if err != nil {
		return 0, err
	}
	pricelist, err := s.pricelistFor(ctx, line.OrderID)
	if err != nil {
		return 0, err
	}
	return s.pricing.UnitPrice(ctx, product, pricelist, line.Quantity)
}

func (s *OrderLineServiceImpl) standardDiscount(ctx context.Context, line *model.OrderLine) (float64, error) {
	product, err := s.catalog.GetProduct(ctx, line.ProductID)
	if err != nil {
		return 0, err
	}
	pricelist, err := s.pricelistFor(ctx, line.OrderID)
	if err != nil {
		return 0, err
	}
	return s.pricing.StandardDiscount(ctx, product, pricelist, line.Quantity)
}

// PackLineDiscount returns the sale discount the parent pack defines for the
// component. It is zero for root lines and for packs priced as a whole.
func (s *OrderLineServiceImpl) PackLineDiscount(ctx context.Context, line *model.OrderLine) (float64, error) {
	if !line.IsPackComponent() {
		return 0, nil
	}
	parent, err := s.GetLine(ctx, line.PackParentLineID)
	if err != nil {
		return 0, err
	}
	pack, err := s.catalog.GetProduct(ctx, parent.ProductID)
	if err != nil {
		return 0, err
	}
	if pack.PackComponentPrice != model.ComponentPriceDetailed {
		return 0, nil
	}
	def, ok := pack.PackLineFor(line.ProductID)
	if !ok {
		return 0, nil
	}
	return def.SaleDiscount, nil
}

// OpenParentPackProducts returns the action listing the pack products of the
// parents of the given lines.
func (s *OrderLineServiceImpl) OpenParentPackProducts(ctx context.Context, lineIDs []string) (*model.ViewAction, error) {
	lines, err := s.lines.GetMany(ctx, lineIDs)
	if err != nil {
		return nil, notFound(err, ErrLineNotFound, strings.Join(lineIDs, ","))
	}

	productIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		if !line.IsPackComponent() {
			continue
		}
		parent, err := s.GetLine(ctx, line.PackParentLineID)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(productIDs, parent.ProductID) {
			productIDs = append(productIDs, parent.ProductID)
		}
	}

	return &model.ViewAction{
		Name:     "Parent Product",
		Model:    "product",
		ViewMode: "tree,form",
		IDs:      productIDs,
	}, nil
}

// UpdatePrices implements OrderLineService.
func (s *OrderLineServiceImpl) UpdatePrices(ctx context.Context, orderID, pricelistID string) (*model.Order, []*model.OrderLine, error) {
	var (
		order *model.Order
		lines []*model.OrderLine
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.getOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if pricelistID != "" && pricelistID != order.PricelistID {
			if _, err := s.catalog.GetPricelist(ctx, pricelistID); err != nil {
				return err
			}
			order.PricelistID = pricelistID
			if err := s.orders.Update(ctx, order); err != nil {
				return err
			}
		}

		roots, err := s.lines.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		for _, line := range roots {
			if line.IsPackComponent() {
				continue
			}
			if err := s.refreshPrices(ctx, line); err != nil {
				return err
			}
		}

		lines, err = s.lines.ListByOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

func (s *OrderLineServiceImpl) refreshPrices(ctx context.Context, line *model.OrderLine) error {
	price, err := s.PricelistPrice(ctx, line)
	if err != nil {
		return err
	}
	discount, err := s.standardDiscount(ctx, line)
	if err != nil {
		return err
	}
	vals := model.LineValues{PriceUnit: model.Ptr(price), Discount: model.Ptr(discount)}
	if err := s.write(ctx, []*model.OrderLine{line}, vals, model.ModePriceRefresh); err != nil {
		return err
	}

	product, err := s.catalog.GetProduct(ctx, line.ProductID)
	if err != nil {
		return err
	}
	if !product.IsDetailedPack() {
		return nil
	}
	_, err = s.expand(ctx, line, product, true, model.ModePriceRefresh)
	return err
}

// GetLine returns the line or ErrLineNotFound.
func (s *OrderLineServiceImpl) GetLine(ctx context.Context, id string) (*model.OrderLine, error) {
	line, err := s.lines.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLineNotFound, id)
	}
	return line, nil
}

// ListLines returns the lines of an order in document order.
func (s *OrderLineServiceImpl) ListLines(ctx context.Context, orderID string) ([]*model.OrderLine, error) {
	if _, err := s.getOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lines.ListByOrder(ctx, orderID)
}

func (s *OrderLineServiceImpl) getOrder(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound, id)
	}
	return order, nil
}

// pricelistFor returns the pricelist of the order, nil when it has none.
func (s *OrderLineServiceImpl) pricelistFor(ctx context.Context, orderID string) (*model.Pricelist, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PricelistID == "" {
		return nil, nil
	}
	return s.catalog.GetPricelist(ctx, order.PricelistID)
}
