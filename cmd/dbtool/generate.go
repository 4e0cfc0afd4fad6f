package main

import (
	"context"
	"encoding/json"
	"fmt"
	"tour-package-service/internal/adapters/repositories"
	"tour-package-service/internal/api/dto"
	"tour-package-service/internal/domain"
	"tour-package-service/internal/platform/db"
	"tour-package-service/internal/ports"
	"tour-package-service/internal/services"

	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var (
		regionID  string
		maxDays   int
		maxBudget float64
		maxVisits int
		seedFile  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Recommend the best tour package for a region",
		Long:  "Loads the catalog (from the configured store, or directly from a seed file with --seed) and prints the best package for the region as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Caps stay unset unless the flag was given, so 0 is a real cap.
			var days *int
			if cmd.Flags().Changed("max-days") {
				days = &maxDays
			}
			var budget *float64
			if cmd.Flags().Changed("max-budget") {
				budget = &maxBudget
			}

			ctx := opts.log.WithContext(context.Background())

			var repo ports.CatalogRepository
			if seedFile != "" {
				seed, err := repositories.LoadSeed(seedFile)
				if err != nil {
					return err
				}
				repo = repositories.NewMemoryCatalogRepository(seed)
			} else {
				conn, err := db.OpenCatalog(opts.cfg.CatalogDriver, opts.cfg.DBPath, opts.cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer conn.Close()
				repo = repositories.NewSQLCatalogRepository(conn)
			}

			catalog, err := services.LoadCatalog(ctx, repo)
			if err != nil {
				return err
			}

			svc, err := services.NewPackageService(catalog,
				services.WithSearchOptions(services.SearchOptions{MaxVisits: maxVisits}),
				services.WithLogger(opts.log),
			)
			if err != nil {
				return err
			}

			pkg, err := svc.GeneratePackage(ctx, services.PackageRequest{
				RegionID: regionID,
				Limits:   domain.NewLimits(days, budget),
			})
			if err != nil {
				return err
			}

			return printPackage(cmd, pkg)
		},
	}

	cmd.Flags().StringVarP(&regionID, "region", "r", "", "Region id (required)")
	cmd.Flags().IntVar(&maxDays, "max-days", 0, "Maximum total days (unset means no cap)")
	cmd.Flags().Float64Var(&maxBudget, "max-budget", 0, "Maximum total cost (unset means no cap)")
	cmd.Flags().IntVar(&maxVisits, "max-visits", 0, "Search node budget; 0 searches exhaustively")
	cmd.Flags().StringVar(&seedFile, "seed", "", "Read the catalog from this seed JSON instead of the database")

	if err := cmd.MarkFlagRequired("region"); err != nil {
		panic(fmt.Sprintf("failed to mark region flag as required: %v", err))
	}

	return cmd
}

func printPackage(cmd *cobra.Command, pkg domain.TravelPackage) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.NewPackageResponse(pkg)); err != nil {
		return fmt.Errorf("write package: %w", err)
	}
	return nil
}
