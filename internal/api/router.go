package api

import (
	"net/http"
	"tour-package-service/internal/api/handlers"
	"tour-package-service/internal/domain"

	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(catalog *domain.Catalog, svc handlers.PackageGenerator, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	regionHandler := &handlers.RegionHandler{Catalog: catalog}
	packageHandler := &handlers.PackageHandler{Service: svc}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/regions", regionHandler.List)
	mux.HandleFunc("/regions/{id}/tours", regionHandler.Tours)
	mux.HandleFunc("/packages", packageHandler.Generate)

	return loggingMiddleware(log, mux)
}
