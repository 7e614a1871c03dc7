package app

import (
	"context"
	"fmt"

	"github.com/guttosm/sale-pack-service/internal/service"
)

// SeedCatalog applies the TOML catalog seed stored at path.
func SeedCatalog(ctx context.Context, catalog service.CatalogService, path string) (service.SeedResult, error) {
	seed, err := service.LoadCatalogSeedFile(path)
	if err != nil {
		return service.SeedResult{}, fmt.Errorf("load seed %s: %w", path, err)
	}
	return seed.Apply(ctx, catalog)
}
