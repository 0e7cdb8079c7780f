package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/campushub/grievance/internal/grievance"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeServiceError maps the store's failure taxonomy onto HTTP statuses.
// Unrecognized errors are treated as the store being unavailable.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, grievance.ErrValidation):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusBadRequest)
	case errors.Is(err, grievance.ErrDuplicateEmail):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusConflict)
	case errors.Is(err, grievance.ErrAuthFailure):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusUnauthorized)
	case errors.Is(err, grievance.ErrNotFound):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusNotFound)
	case errors.Is(err, grievance.ErrAlreadySubmitted):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusConflict)
	case errors.Is(err, grievance.ErrRecoveryUnavailable):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusGone)
	default:
		logger.Error("storage failure", slog.Any("err", err))
		writeJSON(w, errorResponse{Error: "storage unavailable"}, http.StatusServiceUnavailable)
	}
}
