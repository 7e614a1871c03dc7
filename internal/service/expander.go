package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/logger"
	"github.com/guttosm/sale-pack-service/internal/metrics"
)

// ExpansionResult summarises what an expansion did to the component lines of a pack line.
type ExpansionResult struct {
	Created []*model.OrderLine `json:"created"`
	Updated []*model.OrderLine `json:"updated"`
	// Discarded counts missing components left out during a price refresh.
	Discarded int `json:"discarded"`
}

func (s *OrderLineServiceImpl) expand(ctx context.Context, line *model.OrderLine, pack *model.Product, reconcile bool, mode model.ReconcileMode) (ExpansionResult, error) {
	start := time.Now()
	res, err := s.expandComponents(ctx, line, pack, reconcile, mode)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordPackExpansion(time.Since(start), string(mode), status, len(res.Created), len(res.Updated), res.Discarded)
	if err != nil {
		return ExpansionResult{}, fmt.Errorf("expand pack line %s: %w", line.ID, err)
	}

	l := logger.ForLine(line.OrderID, line.ID)
	l.Debug().
		Str("product_id", pack.ID).
		Str("mode", string(mode)).
		Bool("reconcile", reconcile).
		Int("created", len(res.Created)).
		Int("updated", len(res.Updated)).
		Int("discarded", res.Discarded).
		Msg("Pack line expanded")
	return res, nil
}

// expandComponents derives one component line per pack definition. Without
// reconcile every component is created. With reconcile existing components
// are matched by product and written; in price refresh mode their quantity
// and discount are kept and missing components are not created.
// Component lines are never deleted.
func (s *OrderLineServiceImpl) expandComponents(ctx context.Context, line *model.OrderLine, pack *model.Product, reconcile bool, mode model.ReconcileMode) (ExpansionResult, error) {
	var res ExpansionResult
	if !pack.IsDetailedPack() {
		return res, nil
	}

	var existing map[string]*model.OrderLine
	if reconcile {
		children, err := s.lines.Children(ctx, line.ID)
		if err != nil {
			return res, err
		}
		existing = make(map[string]*model.OrderLine, len(children))
		for _, child := range children {
			if _, dup := existing[child.ProductID]; !dup {
				existing[child.ProductID] = child
			}
		}
	}

	var queued []model.LineValues
	for _, def := range pack.PackLines {
		vals, err := s.ComponentLineValues(ctx, line, pack, def)
		if err != nil {
			return res, err
		}
		if !reconcile {
			queued = append(queued, vals)
			continue
		}

		child, found := existing[def.ProductID]
		switch {
		case found:
			if mode.SuppressesExpansion() {
				vals = vals.Without(model.FieldQuantity, model.FieldDiscount)
			}
			if err := s.write(ctx, []*model.OrderLine{child}, vals, mode); err != nil {
				return res, err
			}
			res.Updated = append(res.Updated, child)
		case mode.SuppressesExpansion():
			// A price refresh never adds components.
			res.Discarded++
		default:
			queued = append(queued, vals)
		}
	}

	if len(queued) == 0 {
		return res, nil
	}
	created, err := s.create(ctx, queued, mode)
	if err != nil {
		return res, err
	}
	res.Created = created
	return res, nil
}

// ComponentLineValues returns the values of the component line the pack
// definition yields under the parent line.
func (s *OrderLineServiceImpl) ComponentLineValues(ctx context.Context, parent *model.OrderLine, pack *model.Product, def model.PackLine) (model.LineValues, error) {
	vals, err := s.DefaultLineValues(ctx, parent.OrderID, def.ProductID, def.Quantity*parent.Quantity)
	if err != nil {
		return model.LineValues{}, err
	}

	vals.Name = model.Ptr(componentPrefix(parent.PackDepth+1) + *vals.Name)
	if pack.PackComponentPrice == model.ComponentPriceDetailed {
		// Same value PackLineDiscount computes for the stored line.
		vals.Discount = model.Ptr(def.SaleDiscount)
	} else {
		vals.PriceUnit = model.Ptr(0.0)
		vals.Discount = model.Ptr(0.0)
	}
	vals.PackParentLineID = model.Ptr(parent.ID)
	vals.PackDepth = model.Ptr(parent.PackDepth + 1)
	vals.PackModifiable = model.Ptr(pack.PackModifiable)
	return vals, nil
}

// DefaultLineValues returns the values a new root line for the product gets
// on the order: description, taxes, unit of measure, price and discount.
func (s *OrderLineServiceImpl) DefaultLineValues(ctx context.Context, orderID, productID string, quantity float64) (model.LineValues, error) {
	supplied := model.LineValues{
		OrderID:   orderID,
		ProductID: model.Ptr(productID),
		Quantity:  model.Ptr(quantity),
	}
	line := supplied.NewLine()
	if _, err := s.registry.ComputeMissing(ctx, line, supplied); err != nil {
		return model.LineValues{}, err
	}
	return model.ValuesFromLine(line,
		model.FieldProduct,
		model.FieldQuantity,
		model.FieldUom,
		model.FieldPriceUnit,
		model.FieldDiscount,
		model.FieldName,
		model.FieldTaxes,
	), nil
}
