package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/sale-pack-service/config"
	"github.com/guttosm/sale-pack-service/internal/app"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "sale-pack-service",
		Short:         "Sale orders with product pack expansion",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFile(envFile); err != nil {
				return fmt.Errorf("load env file %s: %w", envFile, err)
			}
			return nil
		},
		RunE: runServe,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCommand(), newSeedCommand())
	return root
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("seed", "", "catalog seed file applied on startup (overrides SEED_FILE)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		cfg.Seed.File = f.Value.String()
	}

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server)

	runErr := server.Run(cmd.Context())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := application.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close application resources")
	}
	return runErr
}

func newSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load products, pack definitions and pricelists from a TOML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			app.InitializeLogger(cfg.Log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db := app.InitializeDatabase(cfg.Database)
			if db == nil {
				return fmt.Errorf("seeding requires a reachable database (MONGODB_ENABLED=true)")
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = db.Close(closeCtx)
			}()

			services := app.InitializeServices(cfg.Cache, db)
			res, err := app.SeedCatalog(ctx, services.Catalog, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d pricelists and %d products from %s\n", res.Pricelists, res.Products, file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "config/catalog.seed.toml", "seed file path")
	return cmd
}
