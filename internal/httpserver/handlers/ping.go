package handlers

import (
	"net/http"
	"time"

	"github.com/veloria/catalog-api/internal/httpserver/deps"
)

type pingResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Ping is the target of the keepalive self-ping.
func Ping(d deps.Deps) http.HandlerFunc {
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, pingResponse{
			Message:   "pong",
			Timestamp: now().UTC(),
		})
	}
}
