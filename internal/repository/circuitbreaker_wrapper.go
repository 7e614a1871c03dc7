package repository

import (
	"context"
	"errors"

	"github.com/guttosm/sale-pack-service/internal/circuitbreaker"
	"github.com/guttosm/sale-pack-service/internal/domain/model"
)

// ProductRepositoryWithCircuitBreaker wraps a product repository with circuit breaker protection.
type ProductRepositoryWithCircuitBreaker struct {
	repo           ProductRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// IsStoreFailure reports whether err should count against a store circuit
// breaker. Lookups of unknown records are not failures.
func IsStoreFailure(err error) bool {
	return !errors.Is(err, ErrNotFound)
}

// NewProductRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewProductRepositoryWithCircuitBreaker(repo ProductRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ProductRepositoryWithCircuitBreaker {
	return &ProductRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Get returns a product with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) Get(ctx context.Context, id string) (*model.Product, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.Product, error) {
		return r.repo.Get(ctx, id)
	})
}

// Upsert stores a product with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) Upsert(ctx context.Context, product *model.Product) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Upsert(ctx, product)
	})
}

// List returns products with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]*model.Product, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]*model.Product, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ProductRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// PricelistRepositoryWithCircuitBreaker wraps a pricelist repository with circuit breaker protection.
type PricelistRepositoryWithCircuitBreaker struct {
	repo           PricelistRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewPricelistRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewPricelistRepositoryWithCircuitBreaker(repo PricelistRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *PricelistRepositoryWithCircuitBreaker {
	return &PricelistRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Get returns a pricelist with circuit breaker protection.
func (r *PricelistRepositoryWithCircuitBreaker) Get(ctx context.Context, id string) (*model.Pricelist, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.Pricelist, error) {
		return r.repo.Get(ctx, id)
	})
}

// Upsert stores a pricelist with circuit breaker protection.
func (r *PricelistRepositoryWithCircuitBreaker) Upsert(ctx context.Context, pricelist *model.Pricelist) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Upsert(ctx, pricelist)
	})
}

// LogsRepositoryWithCircuitBreaker wraps a logs repository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
