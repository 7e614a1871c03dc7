package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/sale-pack-service/internal/domain/model"
)

type txKey struct{}

// MemoryStore keeps orders, lines and the catalog in process memory.
// Lines are stored in an arena keyed by id with a derived parent → children
// index. Transactions snapshot the arena and restore it on failure.
type MemoryStore struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	lines      map[string]*model.OrderLine
	children   map[string][]string
	products   map[string]*model.Product
	pricelists map[string]*model.Pricelist
	orders     map[string]*model.Order
	sequence   int64
	now        func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lines:      make(map[string]*model.OrderLine),
		children:   make(map[string][]string),
		products:   make(map[string]*model.Product),
		pricelists: make(map[string]*model.Pricelist),
		orders:     make(map[string]*model.Order),
		now:        time.Now,
	}
}

// OrderLines returns the order line repository view of the store.
func (s *MemoryStore) OrderLines() OrderLineRepositoryInterface { return &memoryOrderLines{s} }

// Products returns the product repository view of the store.
func (s *MemoryStore) Products() ProductRepositoryInterface { return &memoryProducts{s} }

// Pricelists returns the pricelist repository view of the store.
func (s *MemoryStore) Pricelists() PricelistRepositoryInterface { return &memoryPricelists{s} }

// Orders returns the order repository view of the store.
func (s *MemoryStore) Orders() OrderRepositoryInterface { return &memoryOrders{s} }

// WithinTransaction runs fn while holding the store's write transaction. Any
// error restores the state captured before fn ran. Nested calls join the
// outer transaction.
func (s *MemoryStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memorySnapshot struct {
	lines      map[string]*model.OrderLine
	children   map[string][]string
	products   map[string]*model.Product
	pricelists map[string]*model.Pricelist
	orders     map[string]*model.Order
	sequence   int64
}

func (s *MemoryStore) snapshot() memorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := memorySnapshot{
		lines:      make(map[string]*model.OrderLine, len(s.lines)),
		children:   make(map[string][]string, len(s.children)),
		products:   make(map[string]*model.Product, len(s.products)),
		pricelists: make(map[string]*model.Pricelist, len(s.pricelists)),
		orders:     make(map[string]*model.Order, len(s.orders)),
		sequence:   s.sequence,
	}
	for id, l := range s.lines {
		snap.lines[id] = l.Clone()
	}
	for id, ids := range s.children {
		snap.children[id] = slices.Clone(ids)
	}
	for id, p := range s.products {
		snap.products[id] = p.Clone()
	}
	for id, pl := range s.pricelists {
		snap.pricelists[id] = clonePricelist(pl)
	}
	for id, o := range s.orders {
		c := *o
		snap.orders[id] = &c
	}
	return snap
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = snap.lines
	s.children = snap.children
	s.products = snap.products
	s.pricelists = snap.pricelists
	s.orders = snap.orders
	s.sequence = snap.sequence
}

func clonePricelist(p *model.Pricelist) *model.Pricelist {
	c := *p
	c.Items = slices.Clone(p.Items)
	return &c
}

type memoryOrderLines struct{ s *MemoryStore }

func (r *memoryOrderLines) CreateMany(_ context.Context, lines []*model.OrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.NewString()
		}
		if _, exists := r.s.lines[line.ID]; exists {
			return fmt.Errorf("order line %s already exists", line.ID)
		}
		r.s.sequence++
		line.Sequence = r.s.sequence
		line.CreatedAt = now
		line.UpdatedAt = now

		r.s.lines[line.ID] = line.Clone()
		if line.PackParentLineID != "" {
			r.s.children[line.PackParentLineID] = append(r.s.children[line.PackParentLineID], line.ID)
		}
	}
	return nil
}

func (r *memoryOrderLines) Get(_ context.Context, id string) (*model.OrderLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	line, ok := r.s.lines[id]
	if !ok {
		return nil, fmt.Errorf("order line %s: %w", id, ErrNotFound)
	}
	return line.Clone(), nil
}

func (r *memoryOrderLines) GetMany(ctx context.Context, ids []string) ([]*model.OrderLine, error) {
	out := make([]*model.OrderLine, 0, len(ids))
	for _, id := range ids {
		line, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

func (r *memoryOrderLines) Update(_ context.Context, line *model.OrderLine, fields []model.Field) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.lines[line.ID]
	if !ok {
		return fmt.Errorf("order line %s: %w", line.ID, ErrNotFound)
	}
	if len(fields) == 0 {
		return nil
	}

	oldParent := stored.PackParentLineID
	model.ValuesFromLine(line, fields...).ApplyTo(stored)
	stored.UpdatedAt = r.s.now()
	line.UpdatedAt = stored.UpdatedAt

	if stored.PackParentLineID != oldParent {
		if oldParent != "" {
			r.s.children[oldParent] = slices.DeleteFunc(r.s.children[oldParent], func(id string) bool { return id == stored.ID })
		}
		if stored.PackParentLineID != "" {
			ids := append(r.s.children[stored.PackParentLineID], stored.ID)
			sort.Slice(ids, func(i, j int) bool { return r.s.lines[ids[i]].Sequence < r.s.lines[ids[j]].Sequence })
			r.s.children[stored.PackParentLineID] = ids
		}
	}
	return nil
}

func (r *memoryOrderLines) Children(_ context.Context, parentID string) ([]*model.OrderLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.children[parentID]
	out := make([]*model.OrderLine, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.lines[id].Clone())
	}
	return out, nil
}

func (r *memoryOrderLines) ListByOrder(_ context.Context, orderID string) ([]*model.OrderLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.OrderLine
	for _, line := range r.s.lines {
		if line.OrderID == orderID {
			out = append(out, line.Clone())
		}
	}
	return model.DocumentOrder(out), nil
}

type memoryProducts struct{ s *MemoryStore }

func (r *memoryProducts) Get(_ context.Context, id string) (*model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return p.Clone(), nil
}

func (r *memoryProducts) Upsert(_ context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product.UpdatedAt = r.s.now()
	r.s.products[product.ID] = product.Clone()
	return nil
}

func (r *memoryProducts) List(_ context.Context, limit int) ([]*model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memoryPricelists struct{ s *MemoryStore }

func (r *memoryPricelists) Get(_ context.Context, id string) (*model.Pricelist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pl, ok := r.s.pricelists[id]
	if !ok {
		return nil, fmt.Errorf("pricelist %s: %w", id, ErrNotFound)
	}
	return clonePricelist(pl), nil
}

func (r *memoryPricelists) Upsert(_ context.Context, pricelist *model.Pricelist) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.pricelists[pricelist.ID] = clonePricelist(pricelist)
	return nil
}

type memoryOrders struct{ s *MemoryStore }

func (r *memoryOrders) Create(_ context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if _, exists := r.s.orders[order.ID]; exists {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	now := r.s.now()
	order.CreatedAt = now
	order.UpdatedAt = now
	c := *order
	r.s.orders[order.ID] = &c
	return nil
}

func (r *memoryOrders) Get(_ context.Context, id string) (*model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	c := *o
	return &c, nil
}

func (r *memoryOrders) Update(_ context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[order.ID]; !ok {
		return fmt.Errorf("order %s: %w", order.ID, ErrNotFound)
	}
	order.UpdatedAt = r.s.now()
	c := *order
	r.s.orders[order.ID] = &c
	return nil
}
