package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Geographic point in decimal degrees, latitude first.
//
// Catalog storage (PostGIS WKT, GeoJSON, ORS) is longitude-first. Conversions
// between the two orders go through ParseWKTPoint, WKT and LngLat only.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Return the point as [lng, lat] for GeoJSON and external API compatibility.
func (p GeoPoint) LngLat() []float64 { return []float64{p.Lng, p.Lat} }

// Render the point as a longitude-first WKT string, e.g. "POINT(-73.9926 40.7247)".
func (p GeoPoint) WKT() string {
	return "POINT(" +
		strconv.FormatFloat(p.Lng, 'f', -1, 64) + " " +
		strconv.FormatFloat(p.Lat, 'f', -1, 64) + ")"
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("%g,%g", p.Lat, p.Lng)
}

// ParseWKTPoint parses a "POINT(lng lat)" string into a latitude-first GeoPoint.
// An optional "SRID=4326;" prefix is accepted.
func ParseWKTPoint(s string) (GeoPoint, error) {
	raw := strings.TrimSpace(s)
	if i := strings.IndexByte(raw, ';'); i >= 0 && strings.HasPrefix(strings.ToUpper(raw), "SRID=") {
		raw = strings.TrimSpace(raw[i+1:])
	}

	upper := strings.ToUpper(raw)
	if !strings.HasPrefix(upper, "POINT") {
		return GeoPoint{}, fmt.Errorf("parse wkt point %q: %w", s, ErrInvalidCoordinates)
	}

	open := strings.IndexByte(raw, '(')
	closing := strings.LastIndexByte(raw, ')')
	if open < 0 || closing < open {
		return GeoPoint{}, fmt.Errorf("parse wkt point %q: %w", s, ErrInvalidCoordinates)
	}

	fields := strings.Fields(raw[open+1 : closing])
	if len(fields) != 2 {
		return GeoPoint{}, fmt.Errorf("parse wkt point %q: expected 2 ordinates, got %d: %w", s, len(fields), ErrInvalidCoordinates)
	}

	lng, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("parse wkt point %q: longitude: %w", s, ErrInvalidCoordinates)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("parse wkt point %q: latitude: %w", s, ErrInvalidCoordinates)
	}

	return GeoPoint{Lat: lat, Lng: lng}, nil
}
