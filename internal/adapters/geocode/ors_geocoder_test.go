package geocode

import (
	"art-route-service/internal/domain"
	"art-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func init() {
	retryBackoff = time.Millisecond
}

func newTestGeocoder(t *testing.T, h http.HandlerFunc) *ORSGeocoder {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := NewORSGeocoder("test-key", nil, WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return g
}

func TestORSGeocoderGeocode(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/geocode/search", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("Authorization"))
		require.Equal(t, "350 Bowery New York", r.URL.Query().Get("text"))
		require.Empty(t, r.URL.Query().Get("boundary.country"))

		w.Header().Set("Content-Type", "application/geo+json")
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[-73.9926,40.7247]}}]}`)
	})

	pt, err := g.Geocode(context.Background(), "  350 Bowery   New York ")
	require.NoError(t, err)
	// ORS is longitude-first; the domain point is latitude-first.
	require.Equal(t, domain.GeoPoint{Lat: 40.7247, Lng: -73.9926}, pt)
}

func TestORSGeocoderNotFound(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features":[]}`)
	})

	_, err := g.Geocode(context.Background(), "nowhere")
	require.ErrorIs(t, err, ports.ErrAddressNotFound)
}

func TestORSGeocoderRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[2.35,48.85]}}]}`)
	})

	pt, err := g.Geocode(context.Background(), "Paris")
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())
	require.InDelta(t, 48.85, pt.Lat, 1e-9)
}

func TestORSGeocoderDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusForbidden)
	})

	_, err := g.Geocode(context.Background(), "Paris")
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusForbidden, he.Code)
}

func TestORSGeocoderGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	})

	_, err := g.Geocode(context.Background(), "Paris")
	require.Error(t, err)
	require.Equal(t, int32(maxAttempts), calls.Load())
}

func TestORSGeocoderCountryBoundary(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "US", r.URL.Query().Get("boundary.country"))
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[1,2]}}]}`)
	})
	WithCountry("US")(g)

	_, err := g.Geocode(context.Background(), "Main St")
	require.NoError(t, err)
}

func TestNewORSGeocoderRequiresKey(t *testing.T) {
	_, err := NewORSGeocoder("", nil)
	require.Error(t, err)
}

func TestORSGeocoderEmptyAddress(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := g.Geocode(context.Background(), "   ")
	require.Error(t, err)
}

type memoryAddressCache struct {
	points map[string]domain.GeoPoint
	getErr error
	puts   int
}

func (c *memoryAddressCache) Get(ctx context.Context, address string) (domain.GeoPoint, bool, error) {
	if c.getErr != nil {
		return domain.GeoPoint{}, false, c.getErr
	}
	pt, ok := c.points[address]
	return pt, ok, nil
}

func (c *memoryAddressCache) Put(ctx context.Context, address string, pt domain.GeoPoint) error {
	c.puts++
	c.points[address] = pt
	return nil
}

func TestORSGeocoderServesCachedAddress(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unexpected", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := &memoryAddressCache{points: map[string]domain.GeoPoint{
		"350 Bowery New York": {Lat: 40.7247, Lng: -73.9926},
	}}
	g, err := NewORSGeocoder("test-key", c, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	pt, err := g.Geocode(context.Background(), " 350 Bowery  New York")
	require.NoError(t, err)
	require.Equal(t, domain.GeoPoint{Lat: 40.7247, Lng: -73.9926}, pt)
	require.Zero(t, calls.Load())
	require.Zero(t, c.puts)
}

func TestORSGeocoderStoresMissInCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[-73.9947,40.7251]}}]}`)
	}))
	t.Cleanup(srv.Close)

	c := &memoryAddressCache{points: map[string]domain.GeoPoint{}}
	g, err := NewORSGeocoder("test-key", c, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	first, err := g.Geocode(context.Background(), "Houston  St")
	require.NoError(t, err)
	require.Equal(t, 1, c.puts)
	require.Equal(t, domain.GeoPoint{Lat: 40.7251, Lng: -73.9947}, c.points["Houston St"])

	second, err := g.Geocode(context.Background(), "Houston St")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, int32(1), calls.Load())
}

func TestORSGeocoderCacheReadFailureFallsBackToORS(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[2.35,48.85]}}]}`)
	})
	c := &memoryAddressCache{points: map[string]domain.GeoPoint{}, getErr: errors.New("db down")}
	g.geocodeCache = c

	pt, err := g.Geocode(context.Background(), "Paris")
	require.NoError(t, err)
	require.Equal(t, domain.GeoPoint{Lat: 48.85, Lng: 2.35}, pt)
	require.Equal(t, 1, c.puts)
}
