package repositories

import (
	"art-route-service/internal/domain"
	"art-route-service/internal/ports"
	"context"
	"slices"
)

// In-memory catalog. Used for demo runs without a database and in tests.
type MemoryCandidateRepository struct {
	artists    []domain.Artist
	candidates []domain.Candidate
}

func NewMemoryCandidateRepository(artists []domain.Artist, candidates []domain.Candidate) *MemoryCandidateRepository {
	return &MemoryCandidateRepository{
		artists:    slices.Clone(artists),
		candidates: slices.Clone(candidates),
	}
}

// Build an in-memory catalog from a validated seed file.
func NewMemoryCandidateRepositoryFromSeed(seed *CatalogSeed) *MemoryCandidateRepository {
	artists := make([]domain.Artist, 0, len(seed.Artists))
	for _, a := range seed.Artists {
		artists = append(artists, domain.Artist{ID: a.ID, Name: a.Name})
	}

	candidates := make([]domain.Candidate, 0, len(seed.ArtPieces))
	for _, p := range seed.ArtPieces {
		candidates = append(candidates, domain.Candidate{
			ID:       p.ID,
			Name:     p.Name,
			ArtistID: p.ArtistID,
			Point:    domain.GeoPoint{Lat: p.Lat, Lng: p.Lng},
		})
	}

	return &MemoryCandidateRepository{artists: artists, candidates: candidates}
}

func (m *MemoryCandidateRepository) FetchCandidates(ctx context.Context, filter ports.CandidateFilter) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(filter.ArtistIDs) == 0 {
		return slices.Clone(m.candidates), nil
	}

	out := make([]domain.Candidate, 0, len(m.candidates))
	for _, c := range m.candidates {
		if slices.Contains(filter.ArtistIDs, c.ArtistID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MemoryCandidateRepository) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(m.artists), nil
}
