package services

import (
	"art-route-service/internal/domain"
	"math"
)

const (
	// Mean Earth radius used by the haversine formula.
	EarthRadiusMeters = 6371000.0

	// Roughly 5 km/h.
	WalkingSpeedMetersPerMinute = 83.0
)

// DistanceMeters returns the great-circle distance between a and b using the
// haversine formula. Out-of-range coordinates are not rejected; they simply
// produce large or meaningless distances.
func DistanceMeters(a, b domain.GeoPoint) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	deltaPhi := (b.Lat - a.Lat) * math.Pi / 180
	deltaLambda := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WalkingMinutes converts a distance to walking time. Fractions are kept so
// that route totals accumulate without rounding drift.
func WalkingMinutes(distanceMeters float64) float64 {
	return distanceMeters / WalkingSpeedMetersPerMinute
}
