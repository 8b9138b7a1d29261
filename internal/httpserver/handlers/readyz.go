package handlers

import (
	"net/http"

	"github.com/veloria/catalog-api/internal/httpserver/deps"
	"github.com/veloria/catalog-api/internal/logger"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports readiness by probing the backing stores.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReadyCheck != nil {
			if err := d.ReadyCheck(r.Context()); err != nil {
				d.Logger.Warn("readiness probe failed", logger.Error(err))
				respondJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
				return
			}
		}
		respondJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
