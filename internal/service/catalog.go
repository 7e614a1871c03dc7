package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/repository"
	"github.com/guttosm/sale-pack-service/internal/service/cache"
)

// CatalogService provides product and pricelist lookups for order entry.
type CatalogService interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	UpsertProduct(ctx context.Context, product *model.Product) error
	ListProducts(ctx context.Context, limit int) ([]*model.Product, error)
	GetPricelist(ctx context.Context, id string) (*model.Pricelist, error)
	UpsertPricelist(ctx context.Context, pricelist *model.Pricelist) error
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// CatalogServiceImpl implements CatalogService on top of the catalog repositories.
type CatalogServiceImpl struct {
	products   repository.ProductRepositoryInterface
	pricelists repository.PricelistRepositoryInterface
	cache      cache.Cache[string, *model.Product]
}

// NewCatalogService creates a catalog service with the given options.
func NewCatalogService(products repository.ProductRepositoryInterface, pricelists repository.PricelistRepositoryInterface, opts ...CatalogOption) *CatalogServiceImpl {
	s := &CatalogServiceImpl{
		products:   products,
		pricelists: pricelists,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithProductCache enables product caching with the specified capacity and TTL.
func WithProductCache(capacity int, ttl time.Duration) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if capacity > 0 {
			s.cache = cache.New[string, *model.Product]("products", capacity, ttl, ttl)
		}
	}
}

// WithProductCacheInterface allows injecting a custom cache implementation.
func WithProductCacheInterface(c cache.Cache[string, *model.Product]) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.cache = c
	}
}

// GetProduct returns a copy of the product. Unknown ids yield ErrProductNotFound.
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if s.products == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if s.cache != nil {
		if p, ok := s.cache.Get(id); ok {
			return p.Clone(), nil
		}
	}

	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound, id)
	}

	if s.cache != nil {
		s.cache.Set(id, p.Clone())
	}
	return p, nil
}

// UpsertProduct validates and stores the product.
func (s *CatalogServiceImpl) UpsertProduct(ctx context.Context, product *model.Product) error {
	if s.products == nil {
		return ErrRepositoryNotConfigured
	}
	if err := product.Validate(); err != nil {
		return err
	}
	for _, pl := range product.PackLines {
		if _, err := s.GetProduct(ctx, pl.ProductID); err != nil {
			return fmt.Errorf("pack %s component: %w", product.ID, err)
		}
	}
	if err := s.checkPackCycle(ctx, product); err != nil {
		return err
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.products.Upsert(ctx, product); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(product.ID)
	}
	return nil
}

// checkPackCycle walks the component graph of the product as it will be stored.
func (s *CatalogServiceImpl) checkPackCycle(ctx context.Context, product *model.Product) error {
	var walk func(p *model.Product, path map[string]bool) error
	walk = func(p *model.Product, path map[string]bool) error {
		if path[p.ID] {
			return fmt.Errorf("%w: %s", ErrPackCycle, p.ID)
		}
		path[p.ID] = true
		defer delete(path, p.ID)

		for _, pl := range p.PackLines {
			var component *model.Product
			if pl.ProductID == product.ID {
				component = product
			} else {
				c, err := s.GetProduct(ctx, pl.ProductID)
				if err != nil {
					return err
				}
				component = c
			}
			if err := walk(component, path); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(product, make(map[string]bool))
}

// ListProducts returns up to limit products ordered by id.
func (s *CatalogServiceImpl) ListProducts(ctx context.Context, limit int) ([]*model.Product, error) {
	if s.products == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.products.List(ctx, limit)
}

// GetPricelist returns the pricelist. Unknown ids yield ErrPricelistNotFound.
func (s *CatalogServiceImpl) GetPricelist(ctx context.Context, id string) (*model.Pricelist, error) {
	if s.pricelists == nil {
		return nil, ErrRepositoryNotConfigured
	}
	pl, err := s.pricelists.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPricelistNotFound, id)
	}
	return pl, nil
}

// UpsertPricelist validates and stores the pricelist.
func (s *CatalogServiceImpl) UpsertPricelist(ctx context.Context, pricelist *model.Pricelist) error {
	if s.pricelists == nil {
		return ErrRepositoryNotConfigured
	}
	if err := pricelist.Validate(); err != nil {
		return err
	}
	return s.pricelists.Upsert(ctx, pricelist)
}

// notFound replaces a repository miss with the service sentinel for the record kind.
func notFound(err, sentinel error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", sentinel, id)
	}
	return err
}
