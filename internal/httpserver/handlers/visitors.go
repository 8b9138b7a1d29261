package handlers

import (
	"net/http"
	"time"

	"github.com/veloria/catalog-api/internal/httpserver/deps"
)

func MonthlyVisitors(d deps.Deps) http.HandlerFunc {
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Visitors == nil {
			respondError(w, http.StatusServiceUnavailable, "visitor tracking disabled")
			return
		}
		stats, err := d.Visitors.MonthlyVisitors(r.Context(), now())
		if err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}
