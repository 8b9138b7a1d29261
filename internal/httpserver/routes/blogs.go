package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/veloria/catalog-api/internal/httpserver/deps"
	"github.com/veloria/catalog-api/internal/httpserver/handlers"
	"github.com/veloria/catalog-api/internal/httpserver/mw"
)

func init() { Register(registerBlogs) }

func registerBlogs(r chi.Router, d deps.Deps) {
	limited := mw.RateLimit(mw.RateLimitConfig{
		RPS:        d.RateLimitRPS,
		Burst:      d.RateLimitBurst,
		TrustProxy: d.TrustProxy,
	})

	r.Route("/api/v1/blog", func(r chi.Router) {
		r.Get("/", handlers.ListBlogPosts(d))
		r.Get("/{id}", handlers.GetBlogPost(d))

		r.Group(func(r chi.Router) {
			r.Use(limited)
			r.Post("/", handlers.CreateBlogPost(d))
			r.Put("/{id}", handlers.UpdateBlogPost(d))
			r.Delete("/{id}", handlers.DeleteBlogPost(d))
		})
	})
}
