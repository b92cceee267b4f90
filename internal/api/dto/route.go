package dto

type PointRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

type RouteRequest struct {
	ArtistIDs       []string      `json:"artist_ids" validate:"omitempty,max=100,dive,required,max=128"`
	DurationMinutes *float64      `json:"duration_minutes"`
	Start           *PointRequest `json:"start" validate:"omitempty"`
	StartAddress    string        `json:"start_address" validate:"omitempty,max=512"`
}

type RouteStopResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Order int     `json:"order"`
}

type RouteResponse struct {
	Stops                    []RouteStopResponse `json:"stops"`
	EstimatedDurationMinutes float64             `json:"estimated_duration_minutes"`
	DurationLabel            string              `json:"duration_label"`
	GeoJSON                  FeatureCollection   `json:"geojson"`
}
