package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/veloria/catalog-api/internal/httpserver/deps"
	"github.com/veloria/catalog-api/internal/httpserver/handlers"
	"github.com/veloria/catalog-api/internal/httpserver/mw"
)

func init() { Register(registerProducts) }

func registerProducts(r chi.Router, d deps.Deps) {
	limited := mw.RateLimit(mw.RateLimitConfig{
		RPS:        d.RateLimitRPS,
		Burst:      d.RateLimitBurst,
		TrustProxy: d.TrustProxy,
	})

	r.Route("/api/v1/product", func(r chi.Router) {
		r.Get("/", handlers.ListProducts(d))
		r.Get("/{id}", handlers.GetProduct(d))

		r.Group(func(r chi.Router) {
			r.Use(limited)
			r.Post("/", handlers.CreateProduct(d))
			r.Put("/{id}", handlers.UpdateProduct(d))
			r.Delete("/{id}", handlers.DeleteProduct(d))
		})
	})
}
