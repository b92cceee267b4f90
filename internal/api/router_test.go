package api

import (
	"art-route-service/internal/adapters/repositories"
	"art-route-service/internal/api/dto"
	"art-route-service/internal/domain"
	"art-route-service/internal/services"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := repositories.NewMemoryCandidateRepository(
		[]domain.Artist{{ID: "kobra", Name: "Kobra"}, {ID: "osgemeos", Name: "OSGEMEOS"}},
		[]domain.Candidate{
			{ID: "bowery-mural", Name: "Bowery Mural", ArtistID: "kobra", Point: domain.GeoPoint{Lat: 40.7247, Lng: -73.9926}},
			{ID: "houston-wall", Name: "Houston Bowery Wall", ArtistID: "osgemeos", Point: domain.GeoPoint{Lat: 40.7251, Lng: -73.9947}},
		},
	)
	planner := services.NewRoutePlanner(repo, nil, nil)

	srv := httptest.NewServer(NewRouter(repo, planner, 5*time.Second))
	t.Cleanup(srv.Close)
	return srv
}

func postRoute(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(srv.URL+"/routes", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestListArtPiecesFilter(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/art-pieces?artist_id=osgemeos")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ListArtPiecesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.ArtPieces, 1)
	require.Equal(t, "houston-wall", body.ArtPieces[0].ID)
	require.Equal(t, 40.7251, body.ArtPieces[0].Lat)
}

func TestListArtists(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/artists")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ListArtistsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Artists, 2)
}

func TestGenerateRoute(t *testing.T) {
	srv := newTestServer(t)

	resp := postRoute(t, srv, `{"duration_minutes": 30, "start": {"lat": 40.7247, "lng": -73.9926}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.RouteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Stops, 2)
	require.Equal(t, "bowery-mural", body.Stops[0].ID)
	require.Equal(t, 0, body.Stops[0].Order)
	require.Equal(t, "houston-wall", body.Stops[1].ID)
	require.Equal(t, 1, body.Stops[1].Order)
	require.Greater(t, body.EstimatedDurationMinutes, 0.0)
	require.Equal(t, "2 minutes", body.DurationLabel)

	require.Equal(t, "FeatureCollection", body.GeoJSON.Type)
	require.Len(t, body.GeoJSON.Features, 3)
	require.Equal(t, []any{-73.9926, 40.7247}, body.GeoJSON.Features[0].Geometry.Coordinates)
}

func TestGenerateRouteBudgetTooSmall(t *testing.T) {
	srv := newTestServer(t)

	resp := postRoute(t, srv, `{"duration_minutes": 0.01, "start": {"lat": 40.70, "lng": -74.00}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.RouteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Stops)
	require.Empty(t, body.Stops)
	require.Equal(t, 0.0, body.EstimatedDurationMinutes)
}

func TestGenerateRouteErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"empty catalog", `{"artist_ids": ["banksy"]}`, http.StatusNotFound, "no art pieces found matching the criteria"},
		{"malformed json", `{"artist_ids": [`, http.StatusBadRequest, "invalid request: invalid json body"},
		{"unknown field", `{"budget": 5}`, http.StatusBadRequest, "invalid request: invalid json body"},
		{"two objects", `{} {}`, http.StatusBadRequest, "invalid request: body must contain only one JSON object"},
		{"latitude out of range", `{"start": {"lat": 95, "lng": 0}}`, http.StatusBadRequest, ""},
		{"missing longitude", `{"start": {"lat": 40}}`, http.StatusBadRequest, ""},
		{"blank artist id", `{"artist_ids": [""]}`, http.StatusBadRequest, ""},
		{"address without geocoder", `{"start_address": "350 Bowery"}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postRoute(t, srv, tt.body)
			require.Equal(t, tt.status, resp.StatusCode)

			msg := decodeError(t, resp)
			require.NotEmpty(t, msg)
			if tt.message != "" {
				require.Equal(t, tt.message, msg)
			}
		})
	}
}

func TestGenerateRouteWrongMethod(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/routes")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	health, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	health.Body.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}
