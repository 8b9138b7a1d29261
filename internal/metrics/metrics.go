// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// PreviewIntercepts counts crawler requests answered with a synthesized
	// preview document.
	PreviewIntercepts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_preview_intercepts_total",
		Help: "Crawler requests answered with a server-rendered preview.",
	})

	// PreviewFallthroughs counts crawler-matched requests that declined to
	// the JSON API, labeled with why.
	PreviewFallthroughs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_preview_fallthroughs_total",
		Help: "Product-detail crawler requests that fell through to the API.",
	}, []string{"reason"})

	// SlugConflicts counts commit-time slug unique violations that were
	// retried with an incremented suffix.
	SlugConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_slug_conflicts_total",
		Help: "Slug unique violations detected at commit time.",
	})

	// Visits counts recorded visitor page views.
	Visits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_visits_total",
		Help: "Recorded visitor page views.",
	})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.status)).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
