package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tour-package-service/internal/adapters/cache"
	"tour-package-service/internal/adapters/repositories"
	"tour-package-service/internal/api"
	"tour-package-service/internal/config"
	"tour-package-service/internal/platform/db"
	"tour-package-service/internal/platform/logger"
	"tour-package-service/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// main is the application composition root.
// It wires concrete adapters (SQL catalog, Redis cache) behind ports and starts the HTTP server.
func main() {
	cfg, envFound, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if !envFound {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	conn, err := db.OpenCatalog(cfg.CatalogDriver, cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.CatalogDriver).Msg("open catalog store")
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if cfg.SeedOnStart {
		if err := repositories.InitAndSeed(conn, cfg.CatalogDriver, cfg.SeedPath); err != nil {
			log.Fatal().Err(err).Str("seed_path", cfg.SeedPath).Msg("seed catalog")
		}
	}

	// The catalog is read once; requests only ever see this snapshot.
	loadCtx := log.WithContext(context.Background())
	catalog, err := services.LoadCatalog(loadCtx, repositories.NewSQLCatalogRepository(conn))
	if err != nil {
		log.Fatal().Err(err).Msg("load catalog")
	}
	log.Info().
		Int("regions", len(catalog.Regions())).
		Int("tours", len(catalog.Tours())).
		Str("fingerprint", catalog.Fingerprint()).
		Msg("catalog loaded")

	opts := []services.Option{
		services.WithSearchOptions(services.SearchOptions{MaxVisits: cfg.SearchMaxVisits}),
		services.WithSearchTimeout(cfg.SearchTimeout),
		services.WithLogger(log),
	}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		packageCache, err := cache.NewRedisPackageCache(client, cfg.RedisPrefix, cfg.CacheTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("configure package cache")
		}
		opts = append(opts, services.WithCache(packageCache))
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("package cache enabled")
	}

	svc, err := services.NewPackageService(catalog, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("build package service")
	}

	router := api.NewRouter(catalog, svc, log)

	// WriteTimeout leaves headroom above SEARCH_TIMEOUT for encoding the response.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.SearchTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := serve(srv, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// serve runs srv until SIGINT or SIGTERM, then drains in-flight requests.
func serve(srv *http.Server, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
