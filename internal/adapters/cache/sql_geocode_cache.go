package cache

import (
	"art-route-service/internal/domain"
	"art-route-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLGeocodeCache remembers resolved start addresses in Postgres so repeat
// lookups skip the geocoding API. Keys are normalized by the caller.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Get returns the stored point for address. A missing row is (zero, false, nil).
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ domain.GeoPoint, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.GeoPoint{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.GeoPoint{}, false, nil
	}

	var pt domain.GeoPoint
	err = s.DB.QueryRowContext(ctx,
		`SELECT lat, lng FROM geocode_cache WHERE address = $1;`,
		address,
	).Scan(&pt.Lat, &pt.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GeoPoint{}, false, nil
	}
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get geocode cache %q: %w", address, err)
	}

	return pt, true, nil
}

// Put stores or replaces the point for address.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, pt domain.GeoPoint) (err error) {
	defer obs.Time(ctx, "geocode.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("put geocode cache: empty address")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO geocode_cache (address, lat, lng, resolved_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		resolved_at = EXCLUDED.resolved_at;
	`, address, pt.Lat, pt.Lng)
	if err != nil {
		return fmt.Errorf("put geocode cache %q: %w", address, err)
	}

	return nil
}
