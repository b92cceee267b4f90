package ports

import (
	"art-route-service/internal/domain"
	"context"
	"errors"
)

// The geocoder found no match for the address.
var ErrAddressNotFound = errors.New("address not found")

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.GeoPoint, error)
}

// AddressCache persists resolved addresses. Get reports a miss as ok=false
// with a nil error.
type AddressCache interface {
	Get(ctx context.Context, address string) (domain.GeoPoint, bool, error)
	Put(ctx context.Context, address string, pt domain.GeoPoint) error
}
