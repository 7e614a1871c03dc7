// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sale-pack-service/config"
	"github.com/guttosm/sale-pack-service/internal/http"
	"github.com/guttosm/sale-pack-service/internal/middleware"
	"github.com/rs/zerolog/log"
)

// App holds the wired application.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
// The catalog seed configured in cfg is applied before the router is built;
// a failing seed is logged and does not stop the service.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database)
	services := InitializeServices(cfg.Cache, dbComponents)

	if cfg.Seed.File != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := SeedCatalog(ctx, services.Catalog, cfg.Seed.File); err != nil {
			log.Error().Err(err).Str("file", cfg.Seed.File).Msg("Failed to seed catalog")
		}
		cancel()
	}

	routerComponents := InitializeRouter(services, dbComponents, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		Services: services,
		Database: dbComponents,
	}
}

// Close flushes pending audit entries and disconnects from the database.
func (a *App) Close(ctx context.Context) error {
	middleware.StopAuditWriter()
	return a.Database.Close(ctx)
}
