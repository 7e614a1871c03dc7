//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/sale-pack-service/config"
	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationDatabaseConfig(t *testing.T) config.DatabaseConfig {
	return config.DatabaseConfig{
		URI:                            getSharedContainerURI(),
		DatabaseName:                   sanitizeDBNameForApp(t.Name()),
		LogsTTL:                        30 * 24 * time.Hour,
		Enabled:                        true,
		Transactions:                   true,
		CircuitBreakerFailureThreshold: 5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,
	}
}

func TestInitializeDatabase_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("initialize with enabled database", func(t *testing.T) {
		t.Parallel()
		components := InitializeDatabase(integrationDatabaseConfig(t))
		require.NotNil(t, components)
		t.Cleanup(func() {
			_ = components.Close(context.Background())
		})

		assert.NotNil(t, components.Products)
		assert.NotNil(t, components.Pricelists)
		assert.NotNil(t, components.Orders)
		assert.NotNil(t, components.OrderLines)
		assert.NotNil(t, components.Transactor)
		assert.NotNil(t, components.LoggingService)
		assert.NoError(t, components.DB.HealthCheck(ctx))
	})

	t.Run("unreachable database falls back", func(t *testing.T) {
		t.Parallel()
		cfg := integrationDatabaseConfig(t)
		cfg.URI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200"

		assert.Nil(t, InitializeDatabase(cfg))
	})

	t.Run("circuit breakers start closed", func(t *testing.T) {
		t.Parallel()
		components := InitializeDatabase(integrationDatabaseConfig(t))
		require.NotNil(t, components)
		t.Cleanup(func() {
			_ = components.Close(context.Background())
		})

		stats := components.CatalogCircuitBreaker.GetStats()
		assert.Equal(t, "closed", stats.State)
		assert.True(t, stats.IsHealthy)

		logsStats := components.LogsCircuitBreaker.GetStats()
		assert.Equal(t, "closed", logsStats.State)
		assert.True(t, logsStats.IsHealthy)
	})

	t.Run("services expand packs in a transaction", func(t *testing.T) {
		t.Parallel()
		components := InitializeDatabase(integrationDatabaseConfig(t))
		require.NotNil(t, components)
		t.Cleanup(func() {
			_ = components.Close(context.Background())
		})
		services := InitializeServices(config.CacheConfig{Size: 10, TTL: time.Minute}, components)

		_, err := SeedCatalog(ctx, services.Catalog, sampleSeedFile)
		require.NoError(t, err)
		order, err := services.Orders.CreateOrder(ctx, "SO001", "", "reseller")
		require.NoError(t, err)

		lines, err := services.Lines.Create(ctx, []model.LineValues{{
			OrderID:   order.ID,
			ProductID: model.Ptr("office-bundle"),
			Quantity:  model.Ptr(1.0),
		}}, model.ModeStructural)
		require.NoError(t, err)

		// bundle, workstation, its three components, monitor
		require.Len(t, lines, 6)
		assert.Equal(t, 1, lines[1].PackDepth)
		assert.Equal(t, 2, lines[2].PackDepth)
		assert.Equal(t, 0.0, lines[5].PriceUnit)
	})
}
