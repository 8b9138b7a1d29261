package handlers

import (
	"net/http"

	"github.com/veloria/catalog-api/internal/httpserver/deps"
)

type rootResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

func Root(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, rootResponse{
			Service: d.SiteName,
			Version: d.Version,
			Status:  "running",
		})
	}
}
