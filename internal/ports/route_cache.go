package ports

import (
	"art-route-service/internal/domain"
	"context"
)

// Optional store for previously generated routes.
type RouteCache interface {
	// Return the cached result for req. ok is false on a miss.
	Get(ctx context.Context, req domain.RouteRequest) (result *domain.RouteResult, ok bool, err error)
	Put(ctx context.Context, req domain.RouteRequest, result *domain.RouteResult) error
}
