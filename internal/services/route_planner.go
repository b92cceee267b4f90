package services

import (
	"art-route-service/internal/domain"
	"art-route-service/internal/platform/metrics"
	"art-route-service/internal/platform/obs"
	"art-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrGeocoderUnavailable = errors.New("start address given but no geocoder configured")

type PlanRequest struct {
	ArtistIDs     []string
	BudgetMinutes *float64
	Start         *domain.GeoPoint
	// Resolved through the geocoder when Start is nil.
	StartAddress string
}

// RoutePlanner fetches the catalog, resolves the starting point and hands
// both to GenerateRoute. Geocoder and Cache are optional.
type RoutePlanner struct {
	Repo     ports.CandidateRepository
	Geocoder ports.Geocoder
	Cache    ports.RouteCache
}

func NewRoutePlanner(repo ports.CandidateRepository, geocoder ports.Geocoder, cache ports.RouteCache) *RoutePlanner {
	return &RoutePlanner{Repo: repo, Geocoder: geocoder, Cache: cache}
}

// Plan produces a walking route for req. Catalog and geocoder failures are
// returned as-is (wrapped); no retry is attempted here.
func (p *RoutePlanner) Plan(ctx context.Context, req PlanRequest) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	if p.Repo == nil {
		return nil, errors.New("plan route: repository is nil")
	}

	address := strings.TrimSpace(req.StartAddress)
	if req.Start == nil && address != "" && p.Geocoder == nil {
		return nil, fmt.Errorf("plan route: %w", ErrGeocoderUnavailable)
	}

	start := req.Start
	// Geocoding only runs when no explicit start point was given.
	if start == nil && address != "" {
		pt, err := p.Geocoder.Geocode(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("plan route: geocode start address %q: %w", address, err)
		}
		start = &pt
	}

	routeReq := domain.RouteRequest{
		BudgetMinutes: req.BudgetMinutes,
		ArtistIDs:     req.ArtistIDs,
		Start:         start,
	}

	if p.Cache != nil {
		cached, ok, err := p.Cache.Get(ctx, routeReq)
		if err != nil {
			log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Msg("route cache read failed")
		} else if ok {
			metrics.RouteCacheHitsTotal.Inc()
			return cached, nil
		} else {
			metrics.RouteCacheMissesTotal.Inc()
		}
	}

	candidates, err := p.Repo.FetchCandidates(ctx, ports.CandidateFilter{ArtistIDs: req.ArtistIDs})
	if err != nil {
		return nil, fmt.Errorf("plan route: fetch candidates: %w", err)
	}

	result, err := GenerateRoute(candidates, routeReq)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCatalog) {
			metrics.EmptyCatalogTotal.Inc()
		}
		return nil, fmt.Errorf("plan route: %w", err)
	}

	metrics.RoutesGeneratedTotal.Inc()
	metrics.RouteStops.Observe(float64(len(result.Stops)))

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, routeReq, result); err != nil {
			log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Msg("route cache write failed")
		}
	}

	return result, nil
}
