package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
)

// CatalogSeed is the content of a catalog seed file.
type CatalogSeed struct {
	Pricelists []*model.Pricelist `toml:"pricelists"`
	Products   []*model.Product   `toml:"products"`
}

// SeedResult counts the records a seed stored.
type SeedResult struct {
	Pricelists int
	Products   int
}

// LoadCatalogSeed decodes a TOML seed. Unknown keys are rejected.
func LoadCatalogSeed(r io.Reader) (*CatalogSeed, error) {
	var seed CatalogSeed
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}
	return &seed, nil
}

// LoadCatalogSeedFile decodes the TOML seed stored at path.
func LoadCatalogSeedFile(path string) (*CatalogSeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadCatalogSeed(f)
}

// Apply upserts the pricelists, then the products. Products may be listed in
// any order; a pack is stored once all of its components are.
func (s *CatalogSeed) Apply(ctx context.Context, catalog CatalogService) (SeedResult, error) {
	var res SeedResult
	for _, pl := range s.Pricelists {
		if err := catalog.UpsertPricelist(ctx, pl); err != nil {
			return res, fmt.Errorf("pricelist %s: %w", pl.ID, err)
		}
		res.Pricelists++
	}

	pending := make([]*model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if p.UomID == "" {
			p.UomID = "unit"
		}
		pending = append(pending, p)
	}

	for len(pending) > 0 {
		var (
			waiting []*model.Product
			lastErr error
		)
		for _, p := range pending {
			err := catalog.UpsertProduct(ctx, p)
			switch {
			case err == nil:
				res.Products++
			case errors.Is(err, ErrProductNotFound):
				waiting = append(waiting, p)
				lastErr = err
			default:
				return res, fmt.Errorf("product %s: %w", p.ID, err)
			}
		}
		if len(waiting) == len(pending) {
			return res, fmt.Errorf("product %s: %w", waiting[0].ID, lastErr)
		}
		pending = waiting
	}

	log.Info().
		Int("pricelists", res.Pricelists).
		Int("products", res.Products).
		Msg("Catalog seeded")
	return res, nil
}
