package repositories

import (
	"art-route-service/internal/domain"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres catalog schema. Requires the PostGIS extension to
// be installable by the connecting role.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createExtensionQuery := `CREATE EXTENSION IF NOT EXISTS postgis;`

	createArtistsQuery := `
	CREATE TABLE IF NOT EXISTS artists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createArtPiecesQuery := `
	CREATE TABLE IF NOT EXISTS art_pieces (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		artist_id TEXT NOT NULL REFERENCES artists(id),
		coordinates geography(Point, 4326) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		resolved_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_art_pieces_artist_id
	ON art_pieces(artist_id);
	`

	statements := []string{
		createExtensionQuery,
		createArtistsQuery,
		createArtPiecesQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ArtistSeed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ArtPieceSeed struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ArtistID string  `json:"artist_id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type CatalogSeed struct {
	Artists   []ArtistSeed   `json:"artists"`
	ArtPieces []ArtPieceSeed `json:"art_pieces"`
}

// Read and validate a catalog seed file.
func LoadSeed(jsonPath string) (*CatalogSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load seed: read %q: %w", jsonPath, err)
	}

	var data CatalogSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load seed: parse json: %w", err)
	}

	artists := make(map[string]struct{}, len(data.Artists))
	for i, a := range data.Artists {
		id := strings.TrimSpace(a.ID)
		if id == "" {
			return nil, fmt.Errorf("load seed: artist at index %d: id cannot be empty", i+1)
		}
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("load seed: artist %q: name cannot be empty", id)
		}
		data.Artists[i].ID = id
		artists[id] = struct{}{}
	}

	pieces := make(map[string]struct{}, len(data.ArtPieces))
	for i, p := range data.ArtPieces {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("load seed: art piece at index %d: id cannot be empty", i+1)
		}
		if _, dup := pieces[id]; dup {
			return nil, fmt.Errorf("load seed: art piece %q: duplicate id", id)
		}
		pieces[id] = struct{}{}

		if _, ok := artists[strings.TrimSpace(p.ArtistID)]; !ok {
			return nil, fmt.Errorf("load seed: art piece %q: unknown artist_id %q", id, p.ArtistID)
		}
		data.ArtPieces[i].ID = id
		data.ArtPieces[i].ArtistID = strings.TrimSpace(p.ArtistID)
	}

	return &data, nil
}

// Populate the catalog tables from a JSON seed file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	data, err := LoadSeed(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	artistStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO artists (id, name)
	VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name;
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare artist insert: %w", err)
	}
	defer artistStmt.Close()

	for _, a := range data.Artists {
		if _, err := artistStmt.ExecContext(ctx, a.ID, a.Name); err != nil {
			return fmt.Errorf("seed catalog: insert artist id=%q: %w", a.ID, err)
		}
	}

	pieceStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO art_pieces (id, name, artist_id, coordinates)
	VALUES ($1, $2, $3, ST_GeogFromText($4))
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		artist_id = EXCLUDED.artist_id,
		coordinates = EXCLUDED.coordinates;
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare art piece insert: %w", err)
	}
	defer pieceStmt.Close()

	for _, p := range data.ArtPieces {
		wkt := "SRID=4326;" + domain.GeoPoint{Lat: p.Lat, Lng: p.Lng}.WKT()
		if _, err := pieceStmt.ExecContext(ctx, p.ID, p.Name, p.ArtistID, wkt); err != nil {
			return fmt.Errorf("seed catalog: insert art piece id=%q: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
