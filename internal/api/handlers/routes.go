package handlers

import (
	"art-route-service/internal/api/dto"
	"art-route-service/internal/apperr"
	"art-route-service/internal/domain"
	"art-route-service/internal/services"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type RouteHandler struct {
	Planner *services.RoutePlanner
	// Upper bound on a single route request. Zero means no extra timeout.
	Timeout  time.Duration
	validate *validator.Validate
}

func NewRouteHandler(planner *services.RoutePlanner, timeout time.Duration) *RouteHandler {
	return &RouteHandler{
		Planner:  planner,
		Timeout:  timeout,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Generate builds a walking route from the request body and returns it with
// a GeoJSON rendering for the map.
func (h *RouteHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, "generate route", err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeAppError(w, r, "generate route", fmt.Errorf("%w: %s", apperr.ErrInvalidRequest, validationMessage(err)))
		return
	}

	planReq := services.PlanRequest{
		ArtistIDs:     trimAll(req.ArtistIDs),
		BudgetMinutes: req.DurationMinutes,
		StartAddress:  req.StartAddress,
	}
	if req.Start != nil {
		planReq.Start = &domain.GeoPoint{Lat: *req.Start.Lat, Lng: *req.Start.Lng}
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	result, err := h.Planner.Plan(ctx, planReq)
	if err != nil {
		writeAppError(w, r, "generate route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, NewRouteResponse(result))
}

// NewRouteResponse converts a route into its JSON form: stop list, duration
// label and a GeoJSON collection holding one Point per stop plus the walking
// path as a LineString when there are at least two stops.
func NewRouteResponse(result *domain.RouteResult) dto.RouteResponse {
	res := dto.RouteResponse{
		Stops:                    make([]dto.RouteStopResponse, 0, len(result.Stops)),
		EstimatedDurationMinutes: result.EstimatedDuration,
		DurationLabel:            FormatDuration(result.EstimatedDuration),
		GeoJSON: dto.FeatureCollection{
			Type:     "FeatureCollection",
			Features: make([]dto.Feature, 0, len(result.Stops)+1),
		},
	}

	path := make([][]float64, 0, len(result.Stops))
	for _, s := range result.Stops {
		res.Stops = append(res.Stops, dto.RouteStopResponse{
			ID:    s.ID,
			Name:  s.Name,
			Lat:   s.Point.Lat,
			Lng:   s.Point.Lng,
			Order: s.Order,
		})

		res.GeoJSON.Features = append(res.GeoJSON.Features, dto.Feature{
			Type: "Feature",
			Properties: map[string]any{
				"id":    s.ID,
				"name":  s.Name,
				"order": s.Order,
			},
			Geometry: dto.Geometry{Type: "Point", Coordinates: s.Point.LngLat()},
		})
		path = append(path, s.Point.LngLat())
	}

	if len(path) >= 2 {
		res.GeoJSON.Features = append(res.GeoJSON.Features, dto.Feature{
			Type:       "Feature",
			Properties: map[string]any{"kind": "path"},
			Geometry:   dto.Geometry{Type: "LineString", Coordinates: path},
		})
	}

	return res
}

func trimAll(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Namespace()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
