package cache

import (
	"art-route-service/internal/adapters/repositories"
	"art-route-service/internal/config"
	"art-route-service/internal/domain"
	"art-route-service/internal/platform/db"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Runs against a real PostGIS database when TEST_DATABASE_URL is set.
func TestSQLGeocodeCacheRoundTrip(t *testing.T) {
	url := config.Get("TEST_DATABASE_URL", "")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, url)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, repositories.InitSchema(ctx, conn))

	c := NewSQLGeocodeCache(conn)
	addr := "geocode-cache-test 350 Bowery"
	t.Cleanup(func() {
		_, _ = conn.Exec(`DELETE FROM geocode_cache WHERE address = $1`, addr)
	})

	_, ok, err := c.Get(ctx, addr)
	require.NoError(t, err)
	require.False(t, ok)

	// Distinct magnitudes so a lat/lng column swap cannot pass.
	want := domain.GeoPoint{Lat: 40.7247, Lng: -73.9926}
	require.NoError(t, c.Put(ctx, addr, want))

	got, ok, err := c.Get(ctx, addr)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	// Upsert replaces the stored point.
	moved := domain.GeoPoint{Lat: 40.7251, Lng: -73.9947}
	require.NoError(t, c.Put(ctx, addr, moved))

	got, ok, err = c.Get(ctx, addr)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, moved, got)
}

func TestSQLGeocodeCacheNilDB(t *testing.T) {
	c := NewSQLGeocodeCache(nil)

	_, _, err := c.Get(context.Background(), "x")
	require.Error(t, err)
	require.Error(t, c.Put(context.Background(), "x", domain.GeoPoint{}))
}
