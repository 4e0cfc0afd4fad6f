package main

import (
	"tour-package-service/internal/adapters/repositories"
	"tour-package-service/internal/platform/db"

	"github.com/spf13/cobra"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			conn, err := db.OpenCatalog(opts.cfg.CatalogDriver, opts.cfg.DBPath, opts.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			opts.log.Info().Str("driver", opts.cfg.CatalogDriver).Msg("initializing database schema")
			if err := repositories.InitSchemaFor(conn, opts.cfg.CatalogDriver); err != nil {
				return err
			}
			opts.log.Info().Msg("schema ready")
			return nil
		},
	}
}

func newSeedCmd(opts *globalOptions) *cobra.Command {
	var seedFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and upsert a catalog seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("file") {
				seedFile = opts.cfg.SeedPath
			}

			conn, err := db.OpenCatalog(opts.cfg.CatalogDriver, opts.cfg.DBPath, opts.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			opts.log.Info().Str("driver", opts.cfg.CatalogDriver).Str("file", seedFile).Msg("seeding database")
			if err := repositories.InitAndSeed(conn, opts.cfg.CatalogDriver, seedFile); err != nil {
				return err
			}
			opts.log.Info().Msg("seeding complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to catalog seed JSON (defaults to SEED_PATH)")
	return cmd
}
