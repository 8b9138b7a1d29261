package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/veloria/catalog-api/internal/httpserver/deps"
	"github.com/veloria/catalog-api/internal/httpserver/handlers"
)

func init() { Register(registerPing) }

func registerPing(r chi.Router, d deps.Deps) {
	r.Get("/api/v2/ping", handlers.Ping(d))
}
