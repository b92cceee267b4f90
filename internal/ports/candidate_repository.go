package ports

import (
	"art-route-service/internal/domain"
	"context"
)

// Restricts which catalog entries are returned. An empty ArtistIDs slice
// returns the full catalog.
type CandidateFilter struct {
	ArtistIDs []string
}

// Port: a boundary for retrieving art pieces from the catalog.
type CandidateRepository interface {
	// Retrieve the art pieces eligible for routing, in stable catalog order.
	FetchCandidates(ctx context.Context, filter CandidateFilter) ([]domain.Candidate, error)
	// Retrieve all artists known to the catalog.
	ListArtists(ctx context.Context) ([]domain.Artist, error)
}
