package repositories

import (
	"art-route-service/internal/config"
	"art-route-service/internal/platform/db"
	"art-route-service/internal/ports"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Runs against a real PostGIS database when TEST_DATABASE_URL is set.
func TestPostgresCandidateRepository(t *testing.T) {
	url := config.Get("TEST_DATABASE_URL", "")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, url)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, InitSchema(ctx, conn))
	require.NoError(t, SeedFromJSON(ctx, conn, "testdata/catalog.json"))

	repo := NewPostgresCandidateRepository(conn)

	kobra, err := repo.FetchCandidates(ctx, ports.CandidateFilter{ArtistIDs: []string{"kobra"}})
	require.NoError(t, err)
	require.NotEmpty(t, kobra)
	for _, c := range kobra {
		require.Equal(t, "kobra", c.ArtistID)
	}

	byID := map[string]float64{}
	for _, c := range kobra {
		byID[c.ID] = c.Point.Lat
	}
	// Stored longitude-first, read back latitude-first.
	require.InDelta(t, 40.7247, byID["bowery-mural"], 1e-6)

	artists, err := repo.ListArtists(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(artists), 2)
}
