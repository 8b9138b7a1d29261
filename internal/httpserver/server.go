package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/veloria/catalog-api/internal/config"
	"github.com/veloria/catalog-api/internal/httpserver/deps"
	"github.com/veloria/catalog-api/internal/httpserver/mw"
	"github.com/veloria/catalog-api/internal/httpserver/routes"
	"github.com/veloria/catalog-api/internal/logger"
	"github.com/veloria/catalog-api/internal/metrics"
	"github.com/veloria/catalog-api/internal/preview"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http    *http.Server
	logger  logger.Logger
	started time.Time
}

// New builds the HTTP server (router, middlewares, route registration).
// The preview pipeline wraps the whole router so crawler requests are
// classified and answered before any API routing happens.
func New(cfg *config.Config, loggerClient logger.Logger, d deps.Deps, pipe *preview.Pipeline) *Server {
	r := chi.NewRouter()

	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID) // X-Request-ID on each request
	r.Use(middleware.Recoverer) // never crash the process on panic
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(mw.Log(loggerClient)) // structured access logs
	r.Use(metrics.Middleware)
	r.Use(mw.CORS(cfg.CORSOrigins))
	r.Use(mw.VisitorCounter(d.Visitors, cfg.TrustProxy, loggerClient))

	routes.RegisterAll(r, d)

	var handler http.Handler = r
	if pipe != nil {
		handler = pipe.Handler(r)
	}

	s := &http.Server{
		Addr:              cfg.ListenPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:    s,
		logger:  loggerClient,
		started: d.StartTime,
	}
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	// http.ErrServerClosed is expected on graceful shutdown.
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}
