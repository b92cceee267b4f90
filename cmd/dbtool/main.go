package main

import (
	"art-route-service/internal/adapters/repositories"
	"art-route-service/internal/config"
	"art-route-service/internal/platform/db"
	"art-route-service/internal/platform/obs"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	seedPath := flag.String("seed", "", "seed file (defaults to SEED_PATH)")
	schemaOnly := flag.Bool("schema-only", false, "create the schema without seeding")
	flag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	obs.Setup(cfg.LogLevel, cfg.IsDevelopment())

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}
	defer database.Close()

	path := cfg.SeedPath
	if *seedPath != "" {
		path = *seedPath
	}

	if err := initAndSeed(ctx, database, path, *schemaOnly); err != nil {
		log.Fatal().Err(err).Msg("dbtool failed")
	}
}

func initAndSeed(ctx context.Context, database *sql.DB, seedPath string, schemaOnly bool) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, database); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info().Msg("schema ready")

	if schemaOnly {
		return nil
	}

	log.Info().Str("seed", seedPath).Msg("seeding database")
	if err := repositories.SeedFromJSON(ctx, database, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info().Msg("seeding complete")

	return nil
}
