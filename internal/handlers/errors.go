package handlers

import (
	"errors"
	"net/http"

	"asset-backend/internal/models"
)

// writeError maps domain error types to HTTP status codes: validation
// problems are 400, state machine violations and lost optimistic writes
// are 409, missing aggregates 404, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case models.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case models.IsInvalidTransition(err):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrVersionConflict):
		http.Error(w, "request was modified concurrently, retry", http.StatusConflict)
	case models.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
