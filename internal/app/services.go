// Package app provides service initialization.
package app

import (
	"github.com/guttosm/sale-pack-service/config"
	"github.com/guttosm/sale-pack-service/internal/repository"
	"github.com/guttosm/sale-pack-service/internal/service"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Catalog *service.CatalogServiceImpl
	Pricing *service.PricingServiceImpl
	Orders  service.OrderService
	Lines   *service.OrderLineServiceImpl
	// Logging is nil when audit entries are not persisted.
	Logging service.LoggingService
}

// InitializeServices wires the domain services on the MongoDB repositories,
// or on an in-memory store when no database is available.
func InitializeServices(cfg config.CacheConfig, db *DatabaseComponents) *ServiceComponents {
	var (
		products   repository.ProductRepositoryInterface
		pricelists repository.PricelistRepositoryInterface
		orders     repository.OrderRepositoryInterface
		lines      repository.OrderLineRepositoryInterface
		tx         repository.Transactor
		logging    service.LoggingService
	)

	if db != nil {
		products, pricelists, orders, lines, tx = db.Products, db.Pricelists, db.Orders, db.OrderLines, db.Transactor
		logging = db.LoggingService
	} else {
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		store := repository.NewMemoryStore()
		products, pricelists, orders, lines, tx = store.Products(), store.Pricelists(), store.Orders(), store.OrderLines(), store
	}

	var opts []service.CatalogOption
	if cfg.Size > 0 {
		opts = append(opts, service.WithProductCache(cfg.Size, cfg.TTL))
	}
	catalog := service.NewCatalogService(products, pricelists, opts...)
	pricing := service.NewPricingService(catalog)

	return &ServiceComponents{
		Catalog: catalog,
		Pricing: pricing,
		Orders:  service.NewOrderService(orders, catalog),
		Lines:   service.NewOrderLineService(lines, orders, catalog, pricing, tx),
		Logging: logging,
	}
}
