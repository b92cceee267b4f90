package apperr

import (
	"art-route-service/internal/domain"
	"art-route-service/internal/ports"
	"art-route-service/internal/services"
	"context"
	"errors"
	"net/http"
)

// The request itself is malformed (bad JSON, failed validation).
var ErrInvalidRequest = errors.New("invalid request")

func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, domain.ErrEmptyCatalog):
		return "empty_catalog"

	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, services.ErrGeocoderUnavailable):
		return "invalid_request"

	case errors.Is(err, ports.ErrAddressNotFound):
		return "address_not_found"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"

	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, domain.ErrEmptyCatalog):
		return http.StatusNotFound

	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, services.ErrGeocoderUnavailable),
		errors.Is(err, context.Canceled):
		return http.StatusBadRequest

	case errors.Is(err, ports.ErrAddressNotFound):
		return http.StatusUnprocessableEntity

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	default:
		return http.StatusInternalServerError
	}
}

// Message returns a client-safe error message. Internal errors are not echoed.
func Message(err error) string {
	switch Kind(err) {
	case "empty_catalog":
		return domain.ErrEmptyCatalog.Error()
	case "invalid_request":
		return err.Error()
	case "address_not_found":
		return "start address could not be found"
	case "timeout":
		return "request timed out"
	case "canceled":
		return "request canceled"
	default:
		return "internal server error"
	}
}
