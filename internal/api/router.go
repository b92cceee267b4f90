package api

import (
	"art-route-service/internal/api/handlers"
	"art-route-service/internal/platform/metrics"
	"art-route-service/internal/ports"
	"art-route-service/internal/services"
	"net/http"
	"time"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.CandidateRepository, planner *services.RoutePlanner, routeTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	catalogHandler := &handlers.CatalogHandler{Repo: repo}
	routeHandler := handlers.NewRouteHandler(planner, routeTimeout)

	routes := map[string]http.HandlerFunc{
		"/health":     handlers.Health,
		"/art-pieces": catalogHandler.ListArtPieces,
		"/artists":    catalogHandler.ListArtists,
		"/routes":     routeHandler.Generate,
	}

	known := make(map[string]struct{}, len(routes)+1)
	for path, h := range routes {
		mux.HandleFunc(path, h)
		known[path] = struct{}{}
	}

	mux.Handle("/metrics", metrics.Handler())
	known["/metrics"] = struct{}{}

	// The access log runs inside requestIDMiddleware so it sees the id.
	return requestIDMiddleware(loggingMiddleware(known, mux))
}
