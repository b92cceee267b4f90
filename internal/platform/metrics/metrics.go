package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artroute_http_requests_total",
		Help: "Total HTTP requests by route pattern and status code",
	}, []string{"path", "status"})
	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "artroute_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"path"})
	RoutesGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "artroute_routes_generated_total",
		Help: "Total routes produced by the sequencer",
	})
	EmptyCatalogTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "artroute_empty_catalog_total",
		Help: "Total route requests with no eligible art pieces",
	})
	RouteStops = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "artroute_route_stops",
		Help:    "Number of stops per generated route",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})
	RouteCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "artroute_route_cache_hits_total",
		Help: "Total route cache hits",
	})
	RouteCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "artroute_route_cache_misses_total",
		Help: "Total route cache misses",
	})
	GeocodeRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artroute_geocode_requests_total",
		Help: "Total geocoding lookups by source (cache or ors) and outcome",
	}, []string{"source", "outcome"})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDurationMs)
	prometheus.MustRegister(RoutesGeneratedTotal)
	prometheus.MustRegister(EmptyCatalogTotal)
	prometheus.MustRegister(RouteStops)
	prometheus.MustRegister(RouteCacheHitsTotal)
	prometheus.MustRegister(RouteCacheMissesTotal)
	prometheus.MustRegister(GeocodeRequestsTotal)
}

// Handler exposes the registered metrics for Prometheus scraping.
func Handler() http.Handler { return promhttp.Handler() }
