// Package main is the entry point for the sale-pack-service application.
//
// @title           Sale Pack Service API
// @version         1.0.0
// @description     API for sale orders whose lines may be product packs.
//
//	Pack lines are expanded into component lines priced from the order pricelist.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/sale-pack-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Orders
// @tag.description Sale order operations
//
// @tag.name        Order Lines
// @tag.description Order line creation, modification and pack expansion
//
// @tag.name        Catalog
// @tag.description Products, pack definitions and pricelists
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"os"

	_ "github.com/guttosm/sale-pack-service/docs" // swagger docs

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
