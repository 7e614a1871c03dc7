// Package repository provides interfaces for repository operations.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
)

// ErrNotFound is returned, wrapped with the record kind and id, when a lookup misses.
var ErrNotFound = errors.New("record not found")

// OrderLineRepositoryInterface defines the record store for order lines.
type OrderLineRepositoryInterface interface {
	// CreateMany stores the lines in order, assigning ids, sequences and timestamps.
	CreateMany(ctx context.Context, lines []*model.OrderLine) error
	Get(ctx context.Context, id string) (*model.OrderLine, error)
	GetMany(ctx context.Context, ids []string) ([]*model.OrderLine, error)
	// Update persists the listed fields of the line.
	Update(ctx context.Context, line *model.OrderLine, fields []model.Field) error
	// Children returns the component lines of a pack line ordered by sequence.
	Children(ctx context.Context, parentID string) ([]*model.OrderLine, error)
	// ListByOrder returns the lines of an order in document order: each pack
	// line is directly followed by its components.
	ListByOrder(ctx context.Context, orderID string) ([]*model.OrderLine, error)
}

// ProductRepositoryInterface defines the interface for catalog product operations.
type ProductRepositoryInterface interface {
	Get(ctx context.Context, id string) (*model.Product, error)
	Upsert(ctx context.Context, product *model.Product) error
	List(ctx context.Context, limit int) ([]*model.Product, error)
}

// PricelistRepositoryInterface defines the interface for pricelist operations.
type PricelistRepositoryInterface interface {
	Get(ctx context.Context, id string) (*model.Pricelist, error)
	Upsert(ctx context.Context, pricelist *model.Pricelist) error
}

// OrderRepositoryInterface defines the interface for sale order operations.
type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
}

// Transactor runs a unit of work atomically.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
