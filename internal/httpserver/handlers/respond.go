// Package handlers implements the JSON API endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/veloria/catalog-api/internal/domain"
	"github.com/veloria/catalog-api/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondStoreError maps domain errors to HTTP statuses; anything unknown
// becomes a 500 with a generic message.
func respondStoreError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidID):
		respondError(w, http.StatusBadRequest, "invalid id")
	case errors.Is(err, domain.ErrSlugConflict):
		respondError(w, http.StatusConflict, "could not allocate a unique slug, retry")
	default:
		log.Error("store operation failed", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
