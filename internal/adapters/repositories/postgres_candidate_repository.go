package repositories

import (
	"art-route-service/internal/domain"
	"art-route-service/internal/platform/obs"
	"art-route-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Postgres/PostGIS-backed implementation of the CandidateRepository port.
type PostgresCandidateRepository struct{ DB *sql.DB }

func NewPostgresCandidateRepository(db *sql.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{DB: db}
}

// Return art pieces in catalog order, optionally restricted to a set of artists.
// Rows whose stored coordinates cannot be parsed are logged and skipped.
func (s *PostgresCandidateRepository) FetchCandidates(
	ctx context.Context,
	filter ports.CandidateFilter,
) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "catalog.FetchCandidates")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres candidate repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		artist_id,
		ST_AsText(coordinates)
	FROM art_pieces
	WHERE cardinality($1::text[]) = 0 OR artist_id = ANY($1::text[])
	ORDER BY created_at, id;
	`

	artistIDs := filter.ArtistIDs
	if artistIDs == nil {
		artistIDs = []string{}
	}

	rows, err := s.DB.QueryContext(ctx, query, artistIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: query art_pieces table: %w", err)
	}
	defer rows.Close()

	candidates := make([]domain.Candidate, 0, 64)
	for rows.Next() {
		var id, name, artistID, wkt string
		if err := rows.Scan(&id, &name, &artistID, &wkt); err != nil {
			return nil, fmt.Errorf("fetch candidates: scan row: %w", err)
		}

		pt, err := domain.ParseWKTPoint(wkt)
		if err != nil {
			log.Warn().
				Str("req_id", obs.RequestID(ctx)).
				Str("art_piece_id", id).
				Err(err).
				Msg("skipping art piece with unreadable coordinates")
			continue
		}

		candidates = append(candidates, domain.Candidate{
			ID:       id,
			Name:     name,
			ArtistID: artistID,
			Point:    pt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch candidates: row iteration: %w", err)
	}

	return candidates, nil
}

// Return all artists ordered by name.
func (s *PostgresCandidateRepository) ListArtists(ctx context.Context) (_ []domain.Artist, err error) {
	defer obs.Time(ctx, "catalog.ListArtists")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres candidate repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name FROM artists ORDER BY name, id;`)
	if err != nil {
		return nil, fmt.Errorf("list artists: query artists table: %w", err)
	}
	defer rows.Close()

	artists := make([]domain.Artist, 0, 16)
	for rows.Next() {
		var a domain.Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("list artists: scan row: %w", err)
		}
		artists = append(artists, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list artists: row iteration: %w", err)
	}

	return artists, nil
}
