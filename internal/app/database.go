// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/guttosm/sale-pack-service/config"
	"github.com/guttosm/sale-pack-service/internal/circuitbreaker"
	"github.com/guttosm/sale-pack-service/internal/metrics"
	"github.com/guttosm/sale-pack-service/internal/repository"
	"github.com/guttosm/sale-pack-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                    *repository.MongoDB
	Products              repository.ProductRepositoryInterface
	Pricelists            repository.PricelistRepositoryInterface
	Orders                repository.OrderRepositoryInterface
	OrderLines            repository.OrderLineRepositoryInterface
	Transactor            repository.Transactor
	LoggingService        service.LoggingService
	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker    *circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing with in-memory store")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Bool("transactions", cfg.Transactions).Msg("Connected to MongoDB")
	warnIfNotTransactional(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(ctx, ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index")
	}

	catalogCB := newStoreCircuitBreaker("mongodb-catalog", cfg)
	logsCB := newStoreCircuitBreaker("mongodb-logs", cfg)

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                    db,
		Products:              repository.NewProductRepositoryWithCircuitBreaker(repository.NewProductRepository(db), catalogCB),
		Pricelists:            repository.NewPricelistRepositoryWithCircuitBreaker(repository.NewPricelistRepository(db), catalogCB),
		Orders:                repository.NewOrderRepository(db),
		OrderLines:            repository.NewOrderLineRepository(db),
		Transactor:            repository.NewMongoTransactor(db, cfg.Transactions),
		LoggingService:        service.NewLoggingService(logsRepo),
		CatalogCircuitBreaker: catalogCB,
		LogsCircuitBreaker:    logsCB,
	}
}

// warnIfNotTransactional logs a warning and returns true when MongoDB is
// enabled without transactions. Line writes are then not all-or-nothing.
func warnIfNotTransactional(cfg config.DatabaseConfig) bool {
	if !cfg.Enabled || cfg.Transactions {
		return false
	}
	log.Warn().
		Str("database", cfg.DatabaseName).
		Msg("MongoDB transactions disabled: a failed pack expansion can leave a pack line without all its components (set MONGODB_TRANSACTIONS=true on a replica set)")
	return true
}

// newStoreCircuitBreaker creates a breaker that ignores not-found lookups
// and publishes its state transitions.
func newStoreCircuitBreaker(name string, cfg config.DatabaseConfig) *circuitbreaker.CircuitBreaker {
	metrics.RecordCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        repository.IsStoreFailure,
		OnStateChange:    onCircuitStateChange,
	})
}

func onCircuitStateChange(name string, from, to circuitbreaker.State) {
	metrics.RecordCircuitBreakerState(name, int(to))
	log.Warn().
		Str("circuit", name).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("Circuit breaker state changed")
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
