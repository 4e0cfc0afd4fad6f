// Package main implements dbtool, the catalog maintenance and offline package CLI.
package main

import (
	"fmt"
	"os"
	"tour-package-service/internal/config"
	"tour-package-service/internal/platform/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Settings shared by every subcommand. Flags override the environment.
type globalOptions struct {
	driver      string
	dbPath      string
	databaseURL string
	logLevel    string

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "dbtool",
		Short:         "Tour package catalog tool",
		Long:          "dbtool initializes and seeds the tour catalog store and runs package searches offline.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var cfg config.Config
			if err := config.ParseEnv(&cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("driver") {
				cfg.CatalogDriver = opts.driver
			}
			if cmd.Flags().Changed("db-path") {
				cfg.DBPath = opts.dbPath
			}
			if cmd.Flags().Changed("database-url") {
				cfg.DatabaseURL = opts.databaseURL
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = opts.logLevel
			}

			opts.cfg = cfg
			opts.log = logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console"}, cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "Catalog store driver: sqlite or postgres (overrides CATALOG_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db-path", "", "SQLite database path (overrides DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(newInitCmd(opts), newSeedCmd(opts), newGenerateCmd(opts))
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
