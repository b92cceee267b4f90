package cache

import (
	"art-route-service/internal/domain"
	"art-route-service/internal/platform/obs"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const routeKeyPrefix = "route:"

type cachedStop struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Order int     `json:"order"`
}

type cachedRoute struct {
	Stops             []cachedStop `json:"stops"`
	EstimatedDuration float64      `json:"estimated_duration"`
}

// RedisRouteCache stores generated routes as JSON with a fixed TTL.
// Catalog edits become visible once the entry expires.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) (*RedisRouteCache, error) {
	if client == nil {
		return nil, errors.New("route cache: redis client is nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("route cache: ttl must be positive, got %s", ttl)
	}
	return &RedisRouteCache{client: client, ttl: ttl}, nil
}

// RouteKey derives a cache key from the parts of req that affect the result.
// Artist order is irrelevant to the filter, so ids are sorted first.
func RouteKey(req domain.RouteRequest) string {
	artists := slices.Clone(req.ArtistIDs)
	slices.Sort(artists)
	artists = slices.Compact(artists)

	budget := "none"
	if req.BudgetMinutes != nil {
		budget = strconv.FormatFloat(*req.BudgetMinutes, 'g', -1, 64)
	}

	start := "none"
	if req.Start != nil {
		start = strconv.FormatFloat(req.Start.Lat, 'g', -1, 64) + "," +
			strconv.FormatFloat(req.Start.Lng, 'g', -1, 64)
	}

	canonical := "artists=" + strings.Join(artists, ",") + "|budget=" + budget + "|start=" + start
	sum := sha256.Sum256([]byte(canonical))
	return routeKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisRouteCache) Get(ctx context.Context, req domain.RouteRequest) (_ *domain.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	data, err := c.client.Get(ctx, RouteKey(req)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get route cache: %w", err)
	}

	var cr cachedRoute
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode: %w", err)
	}

	stops := make([]domain.Stop, 0, len(cr.Stops))
	for _, s := range cr.Stops {
		stops = append(stops, domain.Stop{
			ID:    s.ID,
			Name:  s.Name,
			Point: domain.GeoPoint{Lat: s.Lat, Lng: s.Lng},
			Order: s.Order,
		})
	}

	return &domain.RouteResult{Stops: stops, EstimatedDuration: cr.EstimatedDuration}, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, req domain.RouteRequest, result *domain.RouteResult) error {
	if result == nil {
		return errors.New("put route cache: result is nil")
	}

	cr := cachedRoute{
		Stops:             make([]cachedStop, 0, len(result.Stops)),
		EstimatedDuration: result.EstimatedDuration,
	}
	for _, s := range result.Stops {
		cr.Stops = append(cr.Stops, cachedStop{
			ID:    s.ID,
			Name:  s.Name,
			Lat:   s.Point.Lat,
			Lng:   s.Point.Lng,
			Order: s.Order,
		})
	}

	data, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("put route cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, RouteKey(req), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}
	return nil
}
