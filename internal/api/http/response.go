package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the engine's error taxonomy onto HTTP status codes. The
// kind field lets the UI branch without parsing messages.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var kind string
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, kind = http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvariantViolation):
		status, kind = http.StatusUnprocessableEntity, "invariant_violation"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		status, kind = http.StatusConflict, "concurrency_conflict"
	case errors.Is(err, domain.ErrStoreUnavailable):
		status, kind = http.StatusServiceUnavailable, "store_unavailable"
	default:
		status, kind = http.StatusInternalServerError, "internal"
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}
