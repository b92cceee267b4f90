package geocode

import (
	"art-route-service/internal/domain"
	"art-route-service/internal/platform/metrics"
	"art-route-service/internal/platform/obs"
	"art-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

// ORSGeocoder implements the Geocoder port using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	country      string
	geocodeCache ports.AddressCache
}

type Option func(*ORSGeocoder)

// WithBaseURL points the geocoder at a different ORS deployment.
func WithBaseURL(u string) Option {
	return func(o *ORSGeocoder) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithCountry restricts results to an ISO country code. Empty disables the boundary.
func WithCountry(code string) Option {
	return func(o *ORSGeocoder) { o.country = code }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *ORSGeocoder) { o.session = c }
}

// NewORSGeocoder builds a geocoder. geocodeCache may be nil.
func NewORSGeocoder(apiKey string, geocodeCache ports.AddressCache, opts ...Option) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	g := &ORSGeocoder{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      defaultORSBaseURL,
		geocodeCache: geocodeCache,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves address to a latitude-first point, consulting the
// persistent cache before calling ORS.
func (o *ORSGeocoder) Geocode(ctx context.Context, address string) (_ domain.GeoPoint, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := o.normalize(address)
	if norm == "" {
		return domain.GeoPoint{}, errors.New("geocode: address must be non-empty")
	}

	if o.geocodeCache != nil {
		pt, ok, err := o.geocodeCache.Get(ctx, norm)
		if err != nil {
			log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Msg("geocode cache read failed")
		} else if ok {
			metrics.GeocodeRequestsTotal.WithLabelValues("cache", "hit").Inc()
			return pt, nil
		}
	}

	pt, err := o.search(ctx, norm)
	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("ors", "error").Inc()
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	metrics.GeocodeRequestsTotal.WithLabelValues("ors", "ok").Inc()

	if o.geocodeCache != nil {
		if err := o.geocodeCache.Put(ctx, norm, pt); err != nil {
			log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Msg("geocode cache write failed")
		}
	}

	return pt, nil
}
