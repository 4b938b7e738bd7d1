// Package httpx contains JSON response helpers shared by all handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/anshul/ecommerce-store/backend/internal/common"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// ServiceError translates a service-layer error into an HTTP response.
// Responses carry only the taxonomy message, never the underlying cause;
// unexpected errors are logged and surface as a bare 500.
func ServiceError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		Error(w, http.StatusBadRequest, "all fields are required")
	case errors.Is(err, common.ErrConflict):
		Error(w, http.StatusBadRequest, "user already exists")
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrTokenInvalid),
		errors.Is(err, common.ErrTokenExpired):
		Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrForbidden):
		Error(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, common.ErrNotFound):
		Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrUnavailable):
		log.Error().Err(err).Msg("store unavailable")
		Error(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		log.Error().Err(err).Msg("unexpected error")
		Error(w, http.StatusInternalServerError, "server error")
	}
}
