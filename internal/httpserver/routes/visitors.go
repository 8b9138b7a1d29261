package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/veloria/catalog-api/internal/httpserver/deps"
	"github.com/veloria/catalog-api/internal/httpserver/handlers"
)

func init() { Register(registerVisitors) }

func registerVisitors(r chi.Router, d deps.Deps) {
	r.Get("/api/v1/visitors/monthly", handlers.MonthlyVisitors(d))
}
