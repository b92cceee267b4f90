package main

import (
	"art-route-service/internal/adapters/cache"
	"art-route-service/internal/adapters/geocode"
	"art-route-service/internal/adapters/repositories"
	"art-route-service/internal/api"
	"art-route-service/internal/config"
	"art-route-service/internal/platform/db"
	"art-route-service/internal/platform/obs"
	"art-route-service/internal/ports"
	"art-route-service/internal/services"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	demo := flag.Bool("demo", false, "serve the seed catalog from memory instead of Postgres")
	flag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	obs.Setup(cfg.LogLevel, cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *demo); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, demo bool) error {
	var (
		repo     ports.CandidateRepository
		database *sql.DB
	)

	if demo {
		seed, err := repositories.LoadSeed(cfg.SeedPath)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		repo = repositories.NewMemoryCandidateRepositoryFromSeed(seed)
		log.Info().Str("seed", cfg.SeedPath).Int("pieces", len(seed.ArtPieces)).Msg("serving in-memory catalog")
	} else {
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return errors.New("run: DATABASE_URL is required (or pass -demo)")
		}

		var err error
		database, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		defer database.Close()

		repo = repositories.NewPostgresCandidateRepository(database)
	}

	// Optional adapters are assigned only when configured so the planner
	// sees untyped nil interfaces otherwise.
	var routeCache ports.RouteCache
	if cfg.RedisAddress != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("run: ping redis %q: %w", cfg.RedisAddress, err)
		}

		c, err := cache.NewRedisRouteCache(client, cfg.RouteCacheTTL)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		routeCache = c
		log.Info().Str("addr", cfg.RedisAddress).Dur("ttl", cfg.RouteCacheTTL).Msg("route cache enabled")
	}

	var geocoder ports.Geocoder
	if cfg.ORSAPIKey != "" {
		var geocodeCache ports.AddressCache
		if database != nil {
			geocodeCache = cache.NewSQLGeocodeCache(database)
		}

		g, err := geocode.NewORSGeocoder(cfg.ORSAPIKey, geocodeCache, geocode.WithCountry(cfg.ORSCountry))
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		geocoder = g
		log.Info().Msg("start address geocoding enabled")
	}

	planner := services.NewRoutePlanner(repo, geocoder, routeCache)
	router := api.NewRouter(repo, planner, cfg.RouteTimeout)

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RouteTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
