package services

import (
	"art-route-service/internal/domain"
	"fmt"
	"math"
	"slices"
)

// GenerateRoute orders candidates into a walking route using a greedy
// nearest-neighbor walk under an optional time budget.
//
// At each step the closest unvisited piece is chosen; ties go to the piece
// that appears first in the candidate list. The walk ends at the first hop
// that would overflow the budget, even if a farther piece would not.
// There is no backtracking and no attempt at global optimization.
//
// The candidates slice is never modified. GenerateRoute holds no state and is
// safe to call from concurrent goroutines.
func GenerateRoute(candidates []domain.Candidate, req domain.RouteRequest) (*domain.RouteResult, error) {
	remaining := filterByArtist(candidates, req.ArtistIDs)
	if len(remaining) == 0 {
		return nil, fmt.Errorf("generate route: %w", domain.ErrEmptyCatalog)
	}

	stops := make([]domain.Stop, 0, len(remaining))
	totalTime := 0.0

	var current domain.GeoPoint
	if req.Start != nil {
		current = *req.Start
	} else {
		// Without an explicit start the first piece seeds the route at zero cost.
		first := remaining[0]
		stops = append(stops, newStop(first, len(stops)))
		current = first.Point
		remaining = remaining[1:]
	}

	withinBudget := func() bool {
		return req.BudgetMinutes == nil || totalTime < *req.BudgetMinutes
	}

	for len(remaining) > 0 && withinBudget() {
		nearestIndex := 0
		minDistance := math.Inf(1)

		for i, c := range remaining {
			d := DistanceMeters(current, c.Point)
			if d < minDistance {
				minDistance = d
				nearestIndex = i
			}
		}

		walkingTime := WalkingMinutes(minDistance)
		if req.BudgetMinutes != nil && totalTime+walkingTime > *req.BudgetMinutes {
			break
		}

		next := remaining[nearestIndex]
		stops = append(stops, newStop(next, len(stops)))
		totalTime += walkingTime

		current = next.Point
		remaining = slices.Delete(remaining, nearestIndex, nearestIndex+1)
	}

	return &domain.RouteResult{
		Stops:             stops,
		EstimatedDuration: totalTime,
	}, nil
}

// filterByArtist returns a fresh slice holding the candidates whose artist is
// listed, in their original order. An empty artist list keeps every candidate.
func filterByArtist(candidates []domain.Candidate, artistIDs []string) []domain.Candidate {
	if len(artistIDs) == 0 {
		return slices.Clone(candidates)
	}

	allowed := make(map[string]struct{}, len(artistIDs))
	for _, id := range artistIDs {
		allowed[id] = struct{}{}
	}

	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := allowed[c.ArtistID]; ok {
			out = append(out, c)
		}
	}
	return out
}

func newStop(c domain.Candidate, order int) domain.Stop {
	return domain.Stop{
		ID:    c.ID,
		Name:  c.Name,
		Point: c.Point,
		Order: order,
	}
}
