package geocode

import (
	"art-route-service/internal/domain"
	"art-route-service/internal/ports"
	"context"
	"fmt"
	"strings"
)

// MockGeocoder resolves addresses from a fixed table. Lookups are
// case-insensitive and ignore surrounding whitespace.
type MockGeocoder struct {
	m     map[string]domain.GeoPoint
	Calls int
}

func NewMockGeocoder(known map[string]domain.GeoPoint) *MockGeocoder {
	m := make(map[string]domain.GeoPoint, len(known))
	for k, v := range known {
		m[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	g.Calls++
	p, ok := g.m[strings.ToLower(strings.TrimSpace(address))]
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", address, ports.ErrAddressNotFound)
	}
	return p, nil
}
